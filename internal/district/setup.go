package district

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mascodex/game-backend/internal/platform/database"
	"gorm.io/gorm/clause"
)

//go:embed districts.json
var seedData []byte

// seedEntry 对应districts.json中每个编码的静态数据
type seedEntry struct {
	Prefecture string `json:"prefecture"`
	Name       string `json:"name"`
}

const defaultMaxHp = 100

// PrimeModule 负责初始化district模块：迁移表结构并预置地区数据
func PrimeModule() error {
	if err := database.DB.AutoMigrate(&District{}); err != nil {
		return fmt.Errorf("无法迁移district表: %w", err)
	}

	var entries map[string]seedEntry
	if err := json.Unmarshal(seedData, &entries); err != nil {
		return fmt.Errorf("无法解析地区种子数据: %w", err)
	}

	// 只插入不存在的编码，绝不覆盖已有地区的运行时状态
	for code, entry := range entries {
		d := District{
			Code:        code,
			Prefecture:  entry.Prefecture,
			Name:        entry.Name,
			Hp:          defaultMaxHp,
			MaxHp:       defaultMaxHp,
			Status:      StatusHealthy,
			LastUpdated: time.Now(),
		}
		if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&d).Error; err != nil {
			return fmt.Errorf("无法预置地区 %s: %w", code, err)
		}
	}

	// 预热邻接图缓存，首次扩散tick不必现场重建
	if _, err := GetAdjacency(); err != nil {
		fmt.Printf("警告: 邻接图预热失败，将在首次扩散时重建: %v\n", err)
	}

	fmt.Println("District数据库表迁移与预置成功。")
	return nil
}
