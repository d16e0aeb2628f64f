package district

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForHp(t *testing.T) {
	// 阈值边界: >=80% healthy, >=50% anxious, >=20% pain, >0 dark, 0 fallen
	assert.Equal(t, StatusHealthy, StatusForHp(100, 100))
	assert.Equal(t, StatusHealthy, StatusForHp(80, 100))
	assert.Equal(t, StatusAnxious, StatusForHp(79, 100))
	assert.Equal(t, StatusAnxious, StatusForHp(50, 100))
	assert.Equal(t, StatusPain, StatusForHp(49, 100))
	assert.Equal(t, StatusPain, StatusForHp(20, 100))
	assert.Equal(t, StatusDark, StatusForHp(19, 100))
	assert.Equal(t, StatusDark, StatusForHp(1, 100))
	assert.Equal(t, StatusFallen, StatusForHp(0, 100))
}

func TestStatusForHpDegenerateMaxHp(t *testing.T) {
	assert.Equal(t, StatusFallen, StatusForHp(10, 0))
}
