package player

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
	require.NoError(t, db.AutoMigrate(&Player{}, &Action{}))

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

// 测试奖励以增量UPDATE累加，多次行动的奖励互不覆盖
func TestAddRewardAccumulates(t *testing.T) {
	setupTestDB(t)

	p := Player{ID: "p1", PostalCode: "1000001", Prefecture: "東京都", District: "100"}
	require.NoError(t, database.DB.Create(&p).Error)

	require.NoError(t, AddReward("p1", 15, 25))
	require.NoError(t, AddReward("p1", 20, 50))

	got, err := GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 35, got.Xp)
	assert.Equal(t, 75, got.TotalDefense)

	// 不存在的玩家报错
	assert.Error(t, AddReward("missing", 1, 1))
}

// 测试每日行动计数只统计当天的同类行动
func TestCountActionsToday(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < 2; i++ {
		require.NoError(t, RecordAction(&Action{PlayerID: "p1", ActionType: "share", DistrictCode: "100"}))
	}
	require.NoError(t, RecordAction(&Action{PlayerID: "p1", ActionType: "quiz", DistrictCode: "100"}))
	require.NoError(t, RecordAction(&Action{PlayerID: "p2", ActionType: "share", DistrictCode: "100"}))

	count, err := CountActionsToday("p1", "share")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
