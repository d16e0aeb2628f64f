package battle

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionKeyPrefix 是对战会话在Redis中的键前缀，完整键为 battle_{playerID}
	SessionKeyPrefix = "battle_"

	// SessionTTL 是对战会话的有效期，每个非终局回合后刷新
	SessionTTL = 15 * time.Minute
)

// ErrSessionExists 表示该玩家已有一场进行中的对战
var ErrSessionExists = errors.New("已有进行中的对战")

func sessionKey(playerID string) string {
	return SessionKeyPrefix + playerID
}

// LoadSession 读取玩家的进行中对战；不存在时返回(nil, nil)
func LoadSession(playerID string) (*Session, error) {
	raw, err := database.RDB.Get(database.Ctx, sessionKey(playerID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取对战会话: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("无法解析对战会话: %w", err)
	}
	return &s, nil
}

// CreateSession 用SETNX原子地创建会话，保证同一玩家同时只有一场对战。
// 并发的开战请求只有一个能成功，其余收到ErrSessionExists。
func CreateSession(s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("无法序列化对战会话: %w", err)
	}
	ok, err := database.RDB.SetNX(database.Ctx, sessionKey(s.PlayerID), raw, SessionTTL).Result()
	if err != nil {
		return fmt.Errorf("无法创建对战会话: %w", err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

// SaveSession 写回进行中的会话并刷新TTL
func SaveSession(s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("无法序列化对战会话: %w", err)
	}
	if err := database.RDB.Set(database.Ctx, sessionKey(s.PlayerID), raw, SessionTTL).Err(); err != nil {
		return fmt.Errorf("无法保存对战会话: %w", err)
	}
	return nil
}

// DeleteSession 删除玩家的对战会话
func DeleteSession(playerID string) error {
	return database.RDB.Del(database.Ctx, sessionKey(playerID)).Err()
}
