package database

import (
	"fmt"
	"log"
	"os"

	"github.com/mascodex/game-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的GORM实例，供项目其他部分使用
var DB *gorm.DB

// InitDB 根据配置初始化关系型数据库连接
// 游戏核心的正确性不依赖任何特定SQL方言，因此驱动可以自由切换
func InitDB(cfg config.DatabaseConfig) {
	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Postgres.DSN)
	default:
		dialector = sqlite.Open(cfg.Sqlite.Path)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}
