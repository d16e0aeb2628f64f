package amoeba

import (
	"fmt"

	"github.com/mascodex/game-backend/internal/platform/database"
)

// PrimeModule 负责初始化amoeba模块的表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&Amoeba{}, &Infection{}); err != nil {
		return fmt.Errorf("无法迁移amoeba表: %w", err)
	}
	fmt.Println("Amoeba数据库表迁移成功。")
	return nil
}
