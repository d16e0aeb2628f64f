package amoeba

import (
	"fmt"
	"time"

	"github.com/mascodex/game-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveTTL 是アメーバ的最大存活时长，超过后由每日汇总停用
const ActiveTTL = 72 * time.Hour

// ListActive 返回全部活跃的アメーバ，按创建时间倒序
func ListActive() ([]Amoeba, error) {
	var amoebas []Amoeba
	if err := database.DB.Where("is_active = ?", true).
		Order("created_at DESC").Find(&amoebas).Error; err != nil {
		return nil, fmt.Errorf("无法读取活跃アメーバ: %w", err)
	}
	return amoebas, nil
}

// GetActiveByID 按ID读取单只活跃的アメーバ；不存在或已停用时返回gorm.ErrRecordNotFound
func GetActiveByID(id string) (*Amoeba, error) {
	var a Amoeba
	if err := database.DB.Where("id = ? AND is_active = ?", id, true).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ApplyDamage 对アメーバ施加伤害，HP钳制在0以上。
// 钳制在单条UPDATE内完成，并发的测验反击与对战结算互不覆盖。
func ApplyDamage(id string, amount int) error {
	result := database.DB.Model(&Amoeba{}).Where("id = ?", id).
		Update("hp", gorm.Expr(
			"CASE WHEN hp - ? < 0 THEN 0 ELSE hp - ? END", amount, amount))
	if result.Error != nil {
		return fmt.Errorf("无法更新アメーバ %s 的HP: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("アメーバ %s 不存在", id)
	}
	return nil
}

// Deactivate 停用一只アメーバ并记录击败时刻
func Deactivate(id string) error {
	now := time.Now()
	return database.DB.Model(&Amoeba{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "defeated_at": now}).Error
}

// DeactivateExpired 停用所有存活超过TTL的アメーバ，返回停用数量
func DeactivateExpired(now time.Time) (int, error) {
	cutoff := now.Add(-ActiveTTL)
	result := database.DB.Model(&Amoeba{}).
		Where("is_active = ? AND created_at < ?", true, cutoff).
		Updates(map[string]interface{}{"is_active": false, "defeated_at": now})
	if result.Error != nil {
		return 0, fmt.Errorf("无法停用过期アメーバ: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// CountDefeatedBetween 统计时间窗口内被击败、且发源于指定地区的アメーバ数量
func CountDefeatedBetween(originCodes []string, start, end time.Time) (int, error) {
	if len(originCodes) == 0 {
		return 0, nil
	}
	var count int64
	err := database.DB.Model(&Amoeba{}).
		Where("origin_district IN ? AND defeated_at >= ? AND defeated_at < ?", originCodes, start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("无法统计击败数: %w", err)
	}
	return int(count), nil
}

// InfectedDistricts 返回一只アメーバ当前感染的全部地区编码
func InfectedDistricts(amoebaID string) ([]string, error) {
	var codes []string
	if err := database.DB.Model(&Infection{}).
		Where("amoeba_id = ?", amoebaID).
		Order("created_at").
		Pluck("district_code", &codes).Error; err != nil {
		return nil, fmt.Errorf("无法读取感染足迹: %w", err)
	}
	return codes, nil
}

// AddInfection 为アメーバ增加一个感染地区。
// 冲突时静默忽略，保证“成员一旦获得不会丢失”的不变量。
func AddInfection(amoebaID, districtCode string) error {
	infection := Infection{AmoebaID: amoebaID, DistrictCode: districtCode}
	return database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&infection).Error
}

// FindActiveInDistrict 返回足迹覆盖指定地区的一只活跃アメーバ，没有则返回nil
func FindActiveInDistrict(code string) (*Amoeba, error) {
	var amoebas []Amoeba
	err := database.DB.
		Joins("JOIN amoeba_districts ON amoeba_districts.amoeba_id = amoebas.id").
		Where("amoeba_districts.district_code = ? AND amoebas.is_active = ?", code, true).
		Limit(1).Find(&amoebas).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询地区 %s 的アメーバ: %w", code, err)
	}
	if len(amoebas) == 0 {
		return nil, nil
	}
	return &amoebas[0], nil
}

// ListActiveInDistrict 返回足迹覆盖指定地区的全部活跃アメーバ
func ListActiveInDistrict(code string) ([]Amoeba, error) {
	var amoebas []Amoeba
	err := database.DB.
		Joins("JOIN amoeba_districts ON amoeba_districts.amoeba_id = amoebas.id").
		Where("amoeba_districts.district_code = ? AND amoebas.is_active = ?", code, true).
		Find(&amoebas).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询地区 %s 的アメーバ: %w", code, err)
	}
	return amoebas, nil
}
