package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mascodex/game-backend/api"
	"github.com/mascodex/game-backend/internal/platform/config"
	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/mascodex/game-backend/internal/platform/scheduler"
	"github.com/mascodex/game-backend/internal/platform/shutdown"
	"github.com/mascodex/game-backend/internal/platform/startup"
	"github.com/mascodex/game-backend/pkg/lifecycle"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}
	gin.SetMode(cfg.Server.Mode)

	// 2. 初始化存储
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 3. 执行应用启动初始化流程（迁移、地区预置、缓存预热）
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 4. 启动后台调度器
	gracefulManager := lifecycle.NewManager()
	forcefulManager := lifecycle.NewManager()
	if cfg.Game.SchedulerEnabled {
		if err := scheduler.Start(gracefulManager); err != nil {
			panic(fmt.Sprintf("无法启动调度器: %v", err))
		}
	} else {
		fmt.Println("进程内调度器已禁用，等待外部cron触发。")
	}

	// 5. 组装HTTP服务
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Cron-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("服务器启动失败: " + err.Error())
		}
	}()

	// 6. 阻塞等待停机信号
	coordinator := shutdown.NewCoordinator(gracefulManager, forcefulManager)
	coordinator.ListenForSignalsAndShutdown(server)
}
