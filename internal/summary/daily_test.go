package summary

import (
	"testing"

	"github.com/mascodex/game-backend/internal/district"
	"github.com/stretchr/testify/assert"
)

// 测试评分公式的边界：满分结构与击败数封顶
func TestScoreOf(t *testing.T) {
	// 全防御、全活跃、满HP、击败5次以上 → 40+30+20+50
	assert.InDelta(t, 140.0, scoreOf(1, 1, 1, 9), 1e-9)
	assert.InDelta(t, 140.0, scoreOf(1, 1, 1, 5), 1e-9)
	assert.InDelta(t, 0.0, scoreOf(0, 0, 0, 0), 1e-9)
	assert.InDelta(t, 10.0, scoreOf(0, 0, 0, 1), 1e-9)
}

// 测试从地区快照聚合比率
func TestPrefectureMetrics(t *testing.T) {
	districts := []district.District{
		{Code: "100", Hp: 100, MaxHp: 100, Status: district.StatusHealthy, PlayerCount: 3},
		{Code: "101", Hp: 50, MaxHp: 100, Status: district.StatusAnxious, PlayerCount: 0},
		{Code: "102", Hp: 0, MaxHp: 100, Status: district.StatusFallen, PlayerCount: 0},
		{Code: "103", Hp: 30, MaxHp: 100, Status: district.StatusPain, PlayerCount: 1},
	}

	defenseRate, activeRate, avgHpRate := prefectureMetrics(districts)
	assert.InDelta(t, 0.75, defenseRate, 1e-9)
	assert.InDelta(t, 0.5, activeRate, 1e-9)
	assert.InDelta(t, 0.45, avgHpRate, 1e-9)
}

// 测试空都道府县不会除零
func TestPrefectureMetricsEmpty(t *testing.T) {
	defenseRate, activeRate, avgHpRate := prefectureMetrics(nil)
	assert.Zero(t, defenseRate)
	assert.Zero(t, activeRate)
	assert.Zero(t, avgHpRate)
}
