package summary

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/district"
	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/mascodex/game-backend/internal/player"
	"gorm.io/gorm"
)

// GetPrefectureRanking 处理 GET /api/game/ranking/prefectures
// 返回最近一个统计日的都道府县排行
func GetPrefectureRanking(c *gin.Context) {
	var periods []string
	err := database.DB.Model(&PrefectureScore{}).
		Distinct("period").Order("period DESC").Limit(1).
		Pluck("period", &periods).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取排行"})
		return
	}
	if len(periods) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "period": "", "ranking": []PrefectureScore{}})
		return
	}
	latest := periods[0]

	var scores []PrefectureScore
	if err := database.DB.Where("period = ?", latest).
		Order("score DESC").Find(&scores).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取排行"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "period": latest, "ranking": scores})
}

// GetDistrictDetail 处理 GET /api/game/districts/:code
// 返回地区现状、盘踞的アメーバ、超进化标记和当日防御贡献榜
func GetDistrictDetail(c *gin.Context) {
	code := c.Param("code")

	d, err := district.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "地区不存在: " + code})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取地区"})
		return
	}

	amoebas, err := amoeba.ListActiveInDistrict(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取アメーバ"})
		return
	}

	defenders, err := player.TopDefendersToday(code, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取防御贡献"})
		return
	}

	evolved, err := database.RDB.Exists(database.Ctx, district.EvolvedKeyPrefix+code).Result()
	if err != nil {
		evolved = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"district":     d,
		"amoebas":      amoebas,
		"superEvolved": evolved > 0,
		"defenders":    defenders,
	})
}
