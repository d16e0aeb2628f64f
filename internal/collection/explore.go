package collection

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mascodex/game-backend/internal/character"
	"github.com/mascodex/game-backend/internal/district"
	"github.com/mascodex/game-backend/internal/player"
	"gorm.io/gorm"
)

const (
	dailyExploreLimit = 3
	encounterRate     = 0.6
	duplicateXpBonus  = 20
)

// ExploreAction 处理 POST /api/game/explore
// 在玩家所在都道府县内随机探索一个地区，60%概率遇到该地区下的角色：
// 新角色加入收藏，重复角色获得XP奖励。每日上限3次。
func ExploreAction(c *gin.Context) {
	playerID := player.CurrentPlayerID(c)

	p, err := player.GetByID(playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "尚未注册，请先开始游戏"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取玩家数据"})
		return
	}

	exploreCount, err := player.CountActionsToday(playerID, "explore")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法统计行动次数"})
		return
	}
	if exploreCount >= dailyExploreLimit {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "今天的探索次数已用完", "remaining": 0})
		return
	}

	target, err := district.RandomInPrefecture(p.Prefecture, p.District)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "没有可探索的地区"})
		return
	}

	// 在目标地区下构造一个随机的7位身份键
	foundIdentity := fmt.Sprintf("%s%04d", target.Code, rand.Intn(10000))

	encounter := rand.Float64() < encounterRate
	duplicate := false
	var profile *character.Profile
	var message string

	if encounter {
		_, err := GetOwned(playerID, foundIdentity)
		switch {
		case err == nil:
			// 重逢：为已持有的角色加XP
			duplicate = true
			updated, grantErr := GrantXp(playerID, foundIdentity, duplicateXpBonus)
			if grantErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法发放XP"})
				return
			}
			pr := character.Generate(updated.Identity, updated.Level, updated.Evolved)
			profile = &pr
			message = fmt.Sprintf("%sのゆるキャラに再会！ XP+%d", foundIdentity, duplicateXpBonus)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 初遇：加入收藏
			if _, unlockErr := Unlock(playerID, foundIdentity); unlockErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法加入收藏"})
				return
			}
			pr := character.Generate(foundIdentity, 1, 0)
			profile = &pr
			message = fmt.Sprintf("%sのゆるキャラを発見！ コレクションに追加", foundIdentity)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "无法读取收藏"})
			return
		}
	} else {
		message = fmt.Sprintf("%s地区を探索したが、何も見つからなかった...", target.Code)
	}

	meta := ""
	if encounter {
		meta = foundIdentity
	}
	_ = player.RecordAction(&player.Action{
		PlayerID: playerID, ActionType: "explore", DistrictCode: target.Code, Metadata: meta,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"explored":  target.Code,
		"encounter": encounter,
		"duplicate": duplicate,
		"character": profile,
		"message":   message,
		"remaining": dailyExploreLimit - exploreCount - 1,
	})
}
