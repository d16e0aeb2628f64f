package scheduler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mascodex/game-backend/internal/platform/config"
)

// CronGuard 校验外部调度器携带的密钥。
// 未配置密钥时一律拒绝，避免端点在默认配置下暴露。
func CronGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.Cfg.Game.CronSecret
		if secret == "" || c.GetHeader("X-Cron-Secret") != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "error": "无效的cron密钥",
			})
			return
		}
		c.Next()
	}
}

// TriggerSpread 处理 POST /api/game/cron/spread
func TriggerSpread(c *gin.Context) {
	ran, result, err := RunSpreadJob(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ran": ran, "result": result})
}

// TriggerSpawn 处理 POST /api/game/cron/generate-amoeba
func TriggerSpawn(c *gin.Context) {
	ran, result, err := RunSpawnJob(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ran": ran, "result": result})
}

// TriggerSummary 处理 POST /api/game/cron/daily-summary
func TriggerSummary(c *gin.Context) {
	ran, result, err := RunSummaryJob(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ran": ran, "result": result})
}
