package district

import (
	"fmt"
	"time"

	"github.com/mascodex/game-backend/internal/platform/database"
	"gorm.io/gorm"
)

// --- Redis 键名常量 ---

const (
	// AdjacencyKey 是邻接图缓存在Redis中的键，值为JSON编码的 code → []code 映射
	AdjacencyKey = "district:adjacency"

	// AdjacencyTTL 是邻接图缓存的有效期
	AdjacencyTTL = 24 * time.Hour

	// EvolvedKeyPrefix 标记完全恢复后触发超进化的地区，带7天TTL
	EvolvedKeyPrefix = "district:evolved:"

	// EvolvedTTL 是超进化标记的有效期
	EvolvedTTL = 7 * 24 * time.Hour
)

// GetByCode 按编码读取单个地区
func GetByCode(code string) (*District, error) {
	var d District
	if err := database.DB.Where("code = ?", code).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ApplyDamage 对地区施加伤害，HP钳制在0以上。
func ApplyDamage(code string, amount int) error {
	return adjustHp(code, -amount)
}

// ApplyHeal 为地区回复HP，钳制在MaxHp以下
func ApplyHeal(code string, amount int) error {
	return adjustHp(code, amount)
}

// adjustHp 在单条UPDATE内完成增减与钳制。
// 并发的扩散tick和玩家行动各自的增量都不会丢失；
// CASE表达式在sqlite和postgres下行为一致，不依赖方言特定的MAX/MIN函数。
func adjustHp(code string, delta int) error {
	result := database.DB.Model(&District{}).Where("code = ?", code).
		Updates(map[string]interface{}{
			"hp": gorm.Expr(
				"CASE WHEN hp + ? < 0 THEN 0 WHEN hp + ? > max_hp THEN max_hp ELSE hp + ? END",
				delta, delta, delta),
			"last_updated": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("无法更新地区 %s 的HP: %w", code, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("地区 %s 不存在", code)
	}
	return nil
}

// RefreshStatus 重算单个地区的状态分类
func RefreshStatus(code string) error {
	var d District
	if err := database.DB.Where("code = ?", code).First(&d).Error; err != nil {
		return err
	}
	return database.DB.Model(&District{}).Where("code = ?", code).
		Update("status", StatusForHp(d.Hp, d.MaxHp)).Error
}

// RefreshAllStatuses 重算全部地区的状态分类
func RefreshAllStatuses() error {
	var districts []District
	if err := database.DB.Find(&districts).Error; err != nil {
		return fmt.Errorf("无法读取地区列表: %w", err)
	}
	for _, d := range districts {
		status := StatusForHp(d.Hp, d.MaxHp)
		if status == d.Status {
			continue
		}
		if err := database.DB.Model(&District{}).Where("code = ?", d.Code).
			Update("status", status).Error; err != nil {
			return fmt.Errorf("无法更新地区 %s 的状态: %w", d.Code, err)
		}
	}
	return nil
}

// ApplyRecoveryTick 执行一次全局自然回复：
// 低于上限的地区+1，有玩家驻守的地区额外+2。逐行钳制，保持[0,MaxHp]不变量。
func ApplyRecoveryTick() error {
	var districts []District
	if err := database.DB.Where("hp < max_hp").Find(&districts).Error; err != nil {
		return fmt.Errorf("无法读取待回复地区: %w", err)
	}
	for _, d := range districts {
		recovery := 1
		if d.PlayerCount > 0 {
			recovery += 2
		}
		if err := ApplyHeal(d.Code, recovery); err != nil {
			return err
		}
	}
	return nil
}

// Prefectures 返回全部都道府县名，去重
func Prefectures() ([]string, error) {
	var names []string
	if err := database.DB.Model(&District{}).Distinct("prefecture").
		Order("prefecture").Pluck("prefecture", &names).Error; err != nil {
		return nil, fmt.Errorf("无法读取都道府县列表: %w", err)
	}
	return names, nil
}

// ListByPrefecture 返回某都道府县下的全部地区
func ListByPrefecture(prefecture string) ([]District, error) {
	var districts []District
	if err := database.DB.Where("prefecture = ?", prefecture).
		Order("code").Find(&districts).Error; err != nil {
		return nil, fmt.Errorf("无法读取 %s 的地区: %w", prefecture, err)
	}
	return districts, nil
}

// RandomNonFallen 随机返回一个未陷落的地区
func RandomNonFallen() (*District, error) {
	var candidates []District
	if err := database.DB.Where("status <> ?", StatusFallen).Find(&candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("没有可用的未陷落地区")
	}
	return pickRandom(candidates), nil
}

// RandomInPrefecture 在指定都道府县内随机返回一个地区，可排除某个编码
func RandomInPrefecture(prefecture, excludeCode string) (*District, error) {
	var candidates []District
	query := database.DB.Where("prefecture = ?", prefecture)
	if excludeCode != "" {
		query = query.Where("code <> ?", excludeCode)
	}
	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		// 回退：整个都道府县只有一个地区时，从全国随机挑选
		if err := database.DB.Where("code <> ?", excludeCode).Find(&candidates).Error; err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("没有可探索的地区")
	}
	return pickRandom(candidates), nil
}
