package player

import (
	"fmt"

	"github.com/mascodex/game-backend/internal/platform/database"
)

// PrimeModule 负责初始化player模块的表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&Player{}, &Action{}); err != nil {
		return fmt.Errorf("无法迁移player表: %w", err)
	}
	fmt.Println("Player数据库表迁移成功。")
	return nil
}
