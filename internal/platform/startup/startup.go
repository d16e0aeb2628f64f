package startup

import (
	"fmt"

	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/battle"
	"github.com/mascodex/game-backend/internal/collection"
	"github.com/mascodex/game-backend/internal/district"
	"github.com/mascodex/game-backend/internal/player"
	"github.com/mascodex/game-backend/internal/summary"
)

// InitializeApplication 是应用启动时执行的总入口。
// 各模块按依赖顺序初始化：地区先于依赖它的感染与玩家数据。
func InitializeApplication() error {
	fmt.Println("开始应用初始化...")

	if err := district.PrimeModule(); err != nil {
		return err
	}
	if err := amoeba.PrimeModule(); err != nil {
		return err
	}
	if err := player.PrimeModule(); err != nil {
		return err
	}
	if err := collection.PrimeModule(); err != nil {
		return err
	}
	if err := battle.PrimeModule(); err != nil {
		return err
	}
	if err := summary.PrimeModule(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
