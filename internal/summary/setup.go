package summary

import (
	"fmt"

	"github.com/mascodex/game-backend/internal/platform/database"
)

// PrimeModule 负责初始化summary模块的表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&PrefectureScore{}); err != nil {
		return fmt.Errorf("无法迁移summary表: %w", err)
	}
	fmt.Println("Summary数据库表迁移成功。")
	return nil
}
