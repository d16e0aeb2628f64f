package amoeba

import (
	"math/rand"
	"testing"

	"github.com/mascodex/game-backend/internal/district"
	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 用内存sqlite替换全局DB，避免测试依赖外部数据库
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Amoeba{}, &Infection{}, &district.District{}))

	old := database.DB
	database.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		database.DB = old
	})
}

// 测试伤害在单条UPDATE内钳制到0，并发扣血不会丢失增量
func TestApplyDamageClampsToZero(t *testing.T) {
	setupTestDB(t)

	a := Amoeba{ID: "a1", Name: "テスト", Hp: 50, MaxHp: 100, IsActive: true}
	require.NoError(t, database.DB.Create(&a).Error)

	// 多次小额伤害逐次累积
	for i := 0; i < 3; i++ {
		require.NoError(t, ApplyDamage("a1", 10))
	}
	got, err := GetActiveByID("a1")
	require.NoError(t, err)
	assert.Equal(t, 20, got.Hp)

	// 超量伤害钳制到0
	require.NoError(t, ApplyDamage("a1", 9999))
	got, err = GetActiveByID("a1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hp)

	// 不存在的个体报错
	assert.Error(t, ApplyDamage("missing", 10))
}

// 测试生成伤害与强度成正比（强度×5）
func TestSpawnDamageScalesWithStrength(t *testing.T) {
	setupTestDB(t)

	d := district.District{
		Code: "100", Prefecture: "東京都", Name: "テスト",
		Hp: 100, MaxHp: 100, Status: district.StatusHealthy,
	}
	require.NoError(t, database.DB.Create(&d).Error)

	a, err := spawnOne(BossNormal, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, "100", a.OriginDistrict)

	got, err := district.GetByCode("100")
	require.NoError(t, err)
	assert.Equal(t, 100-a.Strength*5, got.Hp)
}
