package district

import (
	"testing"

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
	require.NoError(t, db.AutoMigrate(&District{}))

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

func seedDistrict(t *testing.T, code string, hp int, playerCount int) {
	t.Helper()
	d := District{
		Code: code, Prefecture: "東京都", Name: "テスト",
		Hp: hp, MaxHp: 100,
		Status: StatusForHp(hp, 100), PlayerCount: playerCount,
	}
	require.NoError(t, database.DB.Create(&d).Error)
}

// 测试伤害与回复都被钳制在[0, MaxHp]
func TestHpClamping(t *testing.T) {
	setupTestDB(t)
	seedDistrict(t, "100", 30, 0)

	// 超量伤害钳制到0
	require.NoError(t, ApplyDamage("100", 9999))
	d, err := GetByCode("100")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Hp)

	// 超量回复钳制到MaxHp
	require.NoError(t, ApplyHeal("100", 9999))
	d, err = GetByCode("100")
	require.NoError(t, err)
	assert.Equal(t, 100, d.Hp)

	// 不存在的地区报错
	assert.Error(t, ApplyHeal("999", 1))
}

// 测试增减以增量UPDATE写入，连续的小额变动逐次累积
func TestHpAdjustmentsAccumulate(t *testing.T) {
	setupTestDB(t)
	seedDistrict(t, "100", 50, 0)

	for i := 0; i < 5; i++ {
		require.NoError(t, ApplyHeal("100", 1))
	}
	require.NoError(t, ApplyDamage("100", 3))

	d, err := GetByCode("100")
	require.NoError(t, err)
	assert.Equal(t, 52, d.Hp)
}

// 测试状态重算跟随HP变动
func TestRefreshStatus(t *testing.T) {
	setupTestDB(t)
	seedDistrict(t, "100", 100, 0)

	require.NoError(t, ApplyDamage("100", 60))
	require.NoError(t, RefreshStatus("100"))

	d, err := GetByCode("100")
	require.NoError(t, err)
	assert.Equal(t, StatusPain, d.Status)
}

// 测试自然回复tick：基础+1，有玩家驻守额外+2，且不超过上限
func TestApplyRecoveryTick(t *testing.T) {
	setupTestDB(t)
	seedDistrict(t, "100", 50, 0)
	seedDistrict(t, "101", 50, 2)
	seedDistrict(t, "102", 100, 5)

	require.NoError(t, ApplyRecoveryTick())

	cases := map[string]int{"100": 51, "101": 53, "102": 100}
	for code, want := range cases {
		d, err := GetByCode(code)
		require.NoError(t, err)
		assert.Equal(t, want, d.Hp, "地区 %s", code)
	}
}

// 测试县内随机探索排除指定编码
func TestRandomInPrefectureExcludes(t *testing.T) {
	setupTestDB(t)
	seedDistrict(t, "100", 100, 0)
	seedDistrict(t, "101", 100, 0)

	for i := 0; i < 20; i++ {
		d, err := RandomInPrefecture("東京都", "100")
		require.NoError(t, err)
		assert.Equal(t, "101", d.Code)
	}
}
