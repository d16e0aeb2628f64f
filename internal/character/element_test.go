package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementMultiplier(t *testing.T) {
	// 规格示例: fire vs wood → 1.5，反向 → 0.5，同属性 → 1.0
	assert.Equal(t, 1.5, ElementMultiplier(ElementFire, ElementWood))
	assert.Equal(t, 0.5, ElementMultiplier(ElementWood, ElementFire))
	assert.Equal(t, 1.0, ElementMultiplier(ElementFire, ElementFire))
}

func TestElementCycleIsClosed(t *testing.T) {
	// 相克环: fire→wood→earth→thunder→water→fire
	cycle := []Element{ElementFire, ElementWood, ElementEarth, ElementThunder, ElementWater}
	for i, attacker := range cycle {
		defender := cycle[(i+1)%len(cycle)]
		assert.Equal(t, 1.5, ElementMultiplier(attacker, defender), "%s 应当克制 %s", attacker, defender)
		assert.Equal(t, 0.5, ElementMultiplier(defender, attacker), "%s 应当被 %s 克制", defender, attacker)
	}
}

func TestElementMultiplierNeutral(t *testing.T) {
	// 环上不相邻的组合是中性的
	assert.Equal(t, 1.0, ElementMultiplier(ElementFire, ElementEarth))
	assert.Equal(t, 1.0, ElementMultiplier(ElementEarth, ElementFire))
}
