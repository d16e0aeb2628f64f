package battle

import (
	"fmt"

	"github.com/mascodex/game-backend/internal/platform/database"
)

// PrimeModule 负责初始化battle模块的表结构
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&BattleResult{}); err != nil {
		return fmt.Errorf("无法迁移battle表: %w", err)
	}
	fmt.Println("Battle数据库表迁移成功。")
	return nil
}
