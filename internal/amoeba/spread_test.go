package amoeba

import (
	"testing"

	"github.com/mascodex/game-backend/internal/district"
	"github.com/stretchr/testify/assert"
)

func TestChooseInfectionTarget(t *testing.T) {
	candidates := []district.District{
		{Code: "101", Hp: 80, MaxHp: 100, Status: district.StatusHealthy},
		{Code: "102", Hp: 30, MaxHp: 100, Status: district.StatusPain},
		{Code: "103", Hp: 55, MaxHp: 100, Status: district.StatusAnxious},
	}
	target := chooseInfectionTarget(candidates)
	assert.NotNil(t, target)
	assert.Equal(t, "102", target.Code, "应当选择HP最低的候选")
}

func TestChooseInfectionTargetSkipsFallen(t *testing.T) {
	candidates := []district.District{
		{Code: "101", Hp: 0, MaxHp: 100, Status: district.StatusFallen},
		{Code: "102", Hp: 90, MaxHp: 100, Status: district.StatusHealthy},
	}
	target := chooseInfectionTarget(candidates)
	assert.NotNil(t, target)
	assert.Equal(t, "102", target.Code, "已陷落的地区不能成为感染目标")

	onlyFallen := []district.District{
		{Code: "101", Hp: 0, MaxHp: 100, Status: district.StatusFallen},
	}
	assert.Nil(t, chooseInfectionTarget(onlyFallen))
}

func TestAdjacentUninfected(t *testing.T) {
	adjacency := district.AdjacencyMap{
		"100": {"101", "102"},
		"101": {"100", "102"},
		"102": {"100", "101", "103"},
	}

	frontier := adjacentUninfected([]string{"100", "101"}, adjacency)
	assert.ElementsMatch(t, []string{"102"}, frontier)

	// 前沿不含已感染地区，也不重复计数
	frontier = adjacentUninfected([]string{"100", "101", "102"}, adjacency)
	assert.ElementsMatch(t, []string{"103"}, frontier)
}

func TestAdjacentUninfectedEmptyFootprint(t *testing.T) {
	adjacency := district.AdjacencyMap{"100": {"101"}}
	assert.Empty(t, adjacentUninfected(nil, adjacency))
}
