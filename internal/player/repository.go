package player

import (
	"fmt"
	"time"

	"github.com/mascodex/game-backend/internal/platform/database"
	"gorm.io/gorm"
)

// --- Redis 键名常量 ---

const (
	// ProfileKeyPrefix 是外部认证系统写入的玩家档案键前缀。
	// 本服务只读取它来验证令牌对应的玩家是否存在。
	ProfileKeyPrefix = "profile_"

	// QuizKeyPrefix 是待答测验挑战的键前缀，完整键为 quiz_{playerID}_{quizID}
	QuizKeyPrefix = "quiz_"

	// QuizTTL 是测验挑战的有效期
	QuizTTL = 5 * time.Minute
)

// jstLocation 是固定的JST时区(UTC+9)，游戏的“逻辑日”以它为准
var jstLocation = time.FixedZone("JST", 9*60*60)

// TodayJST 返回当前的JST日期字符串 (YYYY-MM-DD)
func TodayJST() string {
	return time.Now().In(jstLocation).Format("2006-01-02")
}

// YesterdayJST 返回昨天的JST日期字符串
func YesterdayJST() string {
	return time.Now().In(jstLocation).AddDate(0, 0, -1).Format("2006-01-02")
}

// JSTDayBounds 返回当前JST日的起止时刻，用于按“逻辑日”统计行动次数
func JSTDayBounds() (start, end time.Time) {
	now := time.Now().In(jstLocation)
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, jstLocation)
	end = start.AddDate(0, 0, 1)
	return
}

// GetByID 按ID读取玩家
func GetByID(id string) (*Player, error) {
	var p Player
	if err := database.DB.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CountActionsToday 统计玩家今天（JST）执行某类行动的次数
func CountActionsToday(playerID, actionType string) (int, error) {
	start, end := JSTDayBounds()
	var count int64
	err := database.DB.Model(&Action{}).
		Where("player_id = ? AND action_type = ? AND created_at >= ? AND created_at < ?",
			playerID, actionType, start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("无法统计 %s 行动次数: %w", actionType, err)
	}
	return int(count), nil
}

// RecordAction 落库一条行动记录
func RecordAction(action *Action) error {
	if err := database.DB.Create(action).Error; err != nil {
		return fmt.Errorf("无法记录行动: %w", err)
	}
	return nil
}

// DefenderStat 是某地区当日防御贡献的聚合行
type DefenderStat struct {
	PlayerID string `json:"playerId"`
	HpGiven  int    `json:"hpGiven"`
}

// TopDefendersToday 返回今天（JST）对某地区回复贡献最高的玩家
func TopDefendersToday(districtCode string, limit int) ([]DefenderStat, error) {
	start, end := JSTDayBounds()
	var stats []DefenderStat
	err := database.DB.Model(&Action{}).
		Select("player_id, SUM(hp_given) AS hp_given").
		Where("district_code = ? AND created_at >= ? AND created_at < ?", districtCode, start, end).
		Group("player_id").
		Order("hp_given DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("无法统计地区 %s 的防御贡献: %w", districtCode, err)
	}
	return stats, nil
}

// AddReward 为玩家累加XP与防御贡献。
// 以增量UPDATE写入，并发的行动互不覆盖。
func AddReward(playerID string, xp, defense int) error {
	result := database.DB.Model(&Player{}).Where("id = ?", playerID).
		Updates(map[string]interface{}{
			"xp":            gorm.Expr("xp + ?", xp),
			"total_defense": gorm.Expr("total_defense + ?", defense),
		})
	if result.Error != nil {
		return fmt.Errorf("无法更新玩家 %s 的奖励: %w", playerID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("玩家 %s 不存在", playerID)
	}
	return nil
}
