package collection

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
	require.NoError(t, db.AutoMigrate(&OwnedCharacter{}, &Shard{}))

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

// 测试重复解锁同一角色是幂等的
func TestUnlockIdempotent(t *testing.T) {
	setupTestDB(t)

	added, err := Unlock("p1", "1000001")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = Unlock("p1", "1000001")
	require.NoError(t, err)
	assert.False(t, added)

	owned, err := ListOwned("p1")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
	assert.Equal(t, 1, owned[0].Level)
	assert.Equal(t, 0, owned[0].Evolved)
}

// 测试XP累加后等级与进化阶段同步重算
func TestGrantXpSyncsLevelAndEvolution(t *testing.T) {
	setupTestDB(t)

	_, err := Unlock("p1", "1000001")
	require.NoError(t, err)

	// 100XP正好到2级
	oc, err := GrantXp("p1", "1000001", 100)
	require.NoError(t, err)
	assert.Equal(t, 2, oc.Level)
	assert.Equal(t, 0, oc.Evolved)

	// 未持有的角色报错
	_, err = GrantXp("p1", "9999999", 100)
	assert.Error(t, err)
}

// 测试碎片凑满10枚时自动解锁角色并清零
func TestAddShardUnlocksAtThreshold(t *testing.T) {
	setupTestDB(t)

	for i := 1; i < ShardUnlockThreshold; i++ {
		drop, err := AddShard("p1", "5450001")
		require.NoError(t, err)
		assert.Equal(t, i, drop.Count)
		assert.False(t, drop.Unlocked)
	}

	// 第10枚触发解锁
	drop, err := AddShard("p1", "5450001")
	require.NoError(t, err)
	assert.True(t, drop.Unlocked)
	assert.Equal(t, ShardUnlockThreshold, drop.Count)

	_, err = GetOwned("p1", "5450001")
	require.NoError(t, err)

	// 碎片已清零，不再出现在库存里
	shards, err := ListShards("p1")
	require.NoError(t, err)
	assert.Empty(t, shards)
}

// 测试碎片解锁对已持有角色不会重复建档
func TestAddShardOnOwnedCharacter(t *testing.T) {
	setupTestDB(t)

	_, err := Unlock("p1", "5450001")
	require.NoError(t, err)

	for i := 0; i < ShardUnlockThreshold; i++ {
		_, err := AddShard("p1", "5450001")
		require.NoError(t, err)
	}

	owned, err := ListOwned("p1")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

// 测试设置队伍的校验与原子替换
func TestSetTeam(t *testing.T) {
	setupTestDB(t)

	for _, id := range []string{"1000001", "5450001", "0600001"} {
		_, err := Unlock("p1", id)
		require.NoError(t, err)
	}

	// 未持有的角色不能上队
	err := SetTeam("p1", []TeamSlotAssignment{{Identity: "9999999", Slot: 1}})
	assert.Error(t, err)

	// 重复槽位被拒绝
	err = SetTeam("p1", []TeamSlotAssignment{
		{Identity: "1000001", Slot: 1},
		{Identity: "5450001", Slot: 1},
	})
	assert.Error(t, err)

	require.NoError(t, SetTeam("p1", []TeamSlotAssignment{
		{Identity: "1000001", Slot: 1},
		{Identity: "5450001", Slot: 2},
	}))

	members, err := TeamMembers("p1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "1000001", members[0].Identity)
	assert.Equal(t, "5450001", members[1].Identity)

	// 重设队伍会清掉旧槽位
	require.NoError(t, SetTeam("p1", []TeamSlotAssignment{
		{Identity: "0600001", Slot: 1},
	}))
	members, err = TeamMembers("p1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "0600001", members[0].Identity)
}
