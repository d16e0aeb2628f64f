package amoeba

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpawnStatsRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		level := 5 + rng.Intn(14)
		strength := 3 + rng.Intn(5)
		hp, atk, def, spd := spawnStats(level, strength, false, rng)

		assert.Equal(t, strength*100, hp)
		// ±10%抖动范围
		assert.InDelta(t, level*8, atk, float64(level*8)/10+1)
		assert.InDelta(t, level*5, def, float64(level*5)/10+1)
		assert.InDelta(t, level*4, spd, float64(level*4)/10+1)
	}
}

func TestSpawnStatsBossMultipliers(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	hp, atk, def, spd := spawnStats(40, 8, true, rng)

	assert.Equal(t, 8*150, hp)
	assert.Greater(t, atk, 40*8, "Boss的攻击倍率应当高于普通个体")
	assert.Greater(t, def, 40*5)
	assert.Greater(t, spd, 40*4)
}

func TestDropIdentityIsDeterministic(t *testing.T) {
	id1 := dropIdentityFor("100", "a7f3c9b2-0000-0000-0000-000000000001")
	id2 := dropIdentityFor("100", "a7f3c9b2-0000-0000-0000-000000000001")
	assert.Equal(t, id1, id2, "同一アメーバ的掉落身份键必须稳定")

	// 构成该地区下的合法7位邮政编码
	assert.Len(t, id1, 7)
	assert.Equal(t, "100", id1[:3])
}
