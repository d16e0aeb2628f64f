package battle

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis 用内嵌redis替换全局RDB，避免测试依赖外部服务
func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)

	old := database.RDB
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		database.RDB.Close()
		database.RDB = old
	})
}

// 测试同一玩家的会话创建是原子的：并发开战只有一个能成功
func TestCreateSessionIsExclusive(t *testing.T) {
	setupTestRedis(t)

	first := testSession(testMember(1, "fire"))
	require.NoError(t, CreateSession(first))

	// 第二次创建被SETNX拒绝，第一场会话原样保留
	second := testSession(testMember(1, "water"))
	second.ID = "b2"
	err := CreateSession(second)
	assert.ErrorIs(t, err, ErrSessionExists)

	loaded, err := LoadSession("p1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, first.ID, loaded.ID)
}

// 测试会话的读写与删除
func TestSessionRoundTrip(t *testing.T) {
	setupTestRedis(t)

	// 无会话时返回(nil, nil)
	loaded, err := LoadSession("p1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	s := testSession(testMember(1, "thunder"))
	require.NoError(t, CreateSession(s))

	s.Turn = 3
	require.NoError(t, SaveSession(s))

	loaded, err = LoadSession("p1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3, loaded.Turn)
	assert.Equal(t, s.Amoeba.Name, loaded.Amoeba.Name)

	require.NoError(t, DeleteSession("p1"))
	loaded, err = LoadSession("p1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
