package collection

import (
	"fmt"

	"github.com/mascodex/game-backend/internal/platform/database"
)

// PrimeModule 负责初始化collection模块的表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&OwnedCharacter{}, &Shard{}); err != nil {
		return fmt.Errorf("无法迁移collection表: %w", err)
	}
	fmt.Println("Collection数据库表迁移成功。")
	return nil
}
