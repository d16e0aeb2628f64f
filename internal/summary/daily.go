package summary

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/district"
	"github.com/mascodex/game-backend/internal/platform/database"
	"gorm.io/gorm/clause"
)

// 完全回复的地区有5%概率获得超进化标记
const superEvolutionRate = 0.05

// DailyResult 是一次每日汇总的执行摘要
type DailyResult struct {
	Expired         int `json:"expired"`
	PrefecturesDone int `json:"prefecturesDone"`
	SuperEvolved    int `json:"superEvolved"`
}

// scoreOf 计算都道府县的综合防御分。
// 各比率取[0,1]，击败数贡献封顶在5次。
func scoreOf(defenseRate, activeRate, avgHpRate float64, defeats int) float64 {
	capped := defeats
	if capped > 5 {
		capped = 5
	}
	return defenseRate*40 + activeRate*30 + avgHpRate*20 + float64(capped)*10
}

// prefectureMetrics 从地区快照聚合出评分用的三个比率
func prefectureMetrics(districts []district.District) (defenseRate, activeRate, avgHpRate float64) {
	if len(districts) == 0 {
		return 0, 0, 0
	}
	defended, active := 0, 0
	hpSum := 0.0
	for _, d := range districts {
		if d.Status != district.StatusFallen {
			defended++
		}
		if d.PlayerCount > 0 {
			active++
		}
		if d.MaxHp > 0 {
			hpSum += float64(d.Hp) / float64(d.MaxHp)
		}
	}
	n := float64(len(districts))
	return float64(defended) / n, float64(active) / n, hpSum / n
}

// upsertScore 写入(都道府县, 统计日)的成绩，重跑时覆盖数值列
func upsertScore(score *PrefectureScore) error {
	return database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "prefecture"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "defense_rate", "active_rate", "avg_hp_rate", "defeats", "updated_at",
		}),
	}).Create(score).Error
}

// markSuperEvolutions 给完全回复的地区掷5%的超进化标记（Redis, 7天）
func markSuperEvolutions(districts []district.District) int {
	marked := 0
	for _, d := range districts {
		if d.Hp < d.MaxHp {
			continue
		}
		if rand.Float64() >= superEvolutionRate {
			continue
		}
		key := district.EvolvedKeyPrefix + d.Code
		if err := database.RDB.Set(database.Ctx, key, "1", district.EvolvedTTL).Err(); err != nil {
			fmt.Printf("警告: 无法写入超进化标记 %s: %v\n", d.Code, err)
			continue
		}
		marked++
	}
	return marked
}

// RunDailySummary 执行每日汇总：
// 1. 停用超过72小时的アメーバ
// 2. 按都道府县聚合当日防御成绩并落库
// 3. 为完全回复的地区掷超进化标记
// 单个都道府县失败只记录日志，不中断整体汇总。
func RunDailySummary(now time.Time) (*DailyResult, error) {
	result := &DailyResult{}

	expired, err := amoeba.DeactivateExpired(now)
	if err != nil {
		fmt.Printf("警告: 停用过期アメーバ失败: %v\n", err)
	}
	result.Expired = expired

	prefectures, err := district.Prefectures()
	if err != nil {
		return nil, err
	}

	jst := time.FixedZone("JST", 9*60*60)
	nowJST := now.In(jst)
	period := nowJST.Format("2006-01-02")
	dayStart := time.Date(nowJST.Year(), nowJST.Month(), nowJST.Day(), 0, 0, 0, 0, jst)
	dayEnd := dayStart.AddDate(0, 0, 1)

	for _, pref := range prefectures {
		districts, err := district.ListByPrefecture(pref)
		if err != nil {
			fmt.Printf("警告: 无法读取 %s 的地区: %v\n", pref, err)
			continue
		}

		codes := make([]string, 0, len(districts))
		for _, d := range districts {
			codes = append(codes, d.Code)
		}
		defeats, err := amoeba.CountDefeatedBetween(codes, dayStart, dayEnd)
		if err != nil {
			fmt.Printf("警告: 无法统计 %s 的击败数: %v\n", pref, err)
		}

		defenseRate, activeRate, avgHpRate := prefectureMetrics(districts)
		score := &PrefectureScore{
			Prefecture:  pref,
			Period:      period,
			Score:       scoreOf(defenseRate, activeRate, avgHpRate, defeats),
			DefenseRate: defenseRate,
			ActiveRate:  activeRate,
			AvgHpRate:   avgHpRate,
			Defeats:     defeats,
		}
		if err := upsertScore(score); err != nil {
			fmt.Printf("警告: 无法写入 %s 的成绩: %v\n", pref, err)
			continue
		}

		result.SuperEvolved += markSuperEvolutions(districts)
		result.PrefecturesDone++
	}

	fmt.Printf("每日汇总完成: %d个都道府县, 过期%d只, 超进化%d个\n",
		result.PrefecturesDone, result.Expired, result.SuperEvolved)
	return result, nil
}
