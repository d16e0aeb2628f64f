package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/battle"
	"github.com/mascodex/game-backend/internal/collection"
	"github.com/mascodex/game-backend/internal/platform/scheduler"
	"github.com/mascodex/game-backend/internal/player"
	"github.com/mascodex/game-backend/internal/summary"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	game := router.Group("/api/game")
	{
		// 公开的只读路由
		game.GET("/amoebas", amoeba.ListAmoebas)
		game.GET("/districts/:code", summary.GetDistrictDetail)
		game.GET("/ranking/prefectures", summary.GetPrefectureRanking)

		// 需要认证的玩家路由
		authed := game.Group("", player.AuthRequired())
		{
			authed.GET("/me", player.GetMe)

			authed.POST("/action/login", player.LoginAction)
			authed.POST("/action/share", player.ShareAction)
			authed.POST("/action/quiz", player.QuizAction)

			authed.POST("/explore", collection.ExploreAction)
			authed.GET("/collection", collection.GetCollection)
			authed.GET("/team", collection.GetTeam)
			authed.POST("/team", collection.PostTeam)

			authed.POST("/battle/start", battle.StartBattle)
			authed.POST("/battle/action", battle.BattleAction)
		}

		// 外部调度器触发的cron路由
		cron := game.Group("/cron", scheduler.CronGuard())
		{
			cron.POST("/spread", scheduler.TriggerSpread)
			cron.POST("/generate-amoeba", scheduler.TriggerSpawn)
			cron.POST("/daily-summary", scheduler.TriggerSummary)
		}
	}
}
