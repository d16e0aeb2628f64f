package collection

import (
	"errors"
	"fmt"
	"time"

	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/mascodex/game-backend/internal/progression"
	"gorm.io/gorm"
)

// ListOwned 返回玩家收集的全部角色，按获得时间倒序
func ListOwned(playerID string) ([]OwnedCharacter, error) {
	var owned []OwnedCharacter
	if err := database.DB.Where("player_id = ?", playerID).
		Order("acquired_at DESC").Find(&owned).Error; err != nil {
		return nil, fmt.Errorf("无法读取收藏列表: %w", err)
	}
	return owned, nil
}

// GetOwned 读取玩家持有的单个角色；未持有时返回gorm.ErrRecordNotFound
func GetOwned(playerID, identity string) (*OwnedCharacter, error) {
	var oc OwnedCharacter
	if err := database.DB.Where("player_id = ? AND identity = ?", playerID, identity).
		First(&oc).Error; err != nil {
		return nil, err
	}
	return &oc, nil
}

// TeamMembers 返回玩家已编入队伍的角色，按槽位升序
func TeamMembers(playerID string) ([]OwnedCharacter, error) {
	var members []OwnedCharacter
	if err := database.DB.Where("player_id = ? AND team_slot > 0", playerID).
		Order("team_slot ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("无法读取队伍: %w", err)
	}
	return members, nil
}

// Unlock 把一个新角色加入玩家的收藏（等级1、未进化）。
// 已持有时静默成功，返回是否真正新增。
func Unlock(playerID, identity string) (bool, error) {
	_, err := GetOwned(playerID, identity)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	oc := OwnedCharacter{
		PlayerID:   playerID,
		Identity:   identity,
		Level:      1,
		Xp:         0,
		Evolved:    0,
		TeamSlot:   0,
		AcquiredAt: time.Now(),
	}
	if err := database.DB.Create(&oc).Error; err != nil {
		return false, fmt.Errorf("无法解锁角色 %s: %w", identity, err)
	}
	return true, nil
}

// GrantXp 为玩家持有的角色增加XP，并同步重算等级与进化阶段。
// 等级与进化阶段永远由累计XP推导，绝不独立写入。
func GrantXp(playerID, identity string, xp int) (*OwnedCharacter, error) {
	var oc OwnedCharacter
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ? AND identity = ?", playerID, identity).
			First(&oc).Error; err != nil {
			return err
		}

		oc.Xp += xp
		info := progression.LevelFromXp(oc.Xp)
		oc.Level = info.Level
		oc.Evolved = progression.EvolutionStage(info.Level)

		return tx.Model(&OwnedCharacter{}).Where("id = ?", oc.ID).
			Updates(map[string]interface{}{
				"xp":      oc.Xp,
				"level":   oc.Level,
				"evolved": oc.Evolved,
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("无法为角色 %s 增加XP: %w", identity, err)
	}
	return &oc, nil
}

// ShardDrop 描述一次碎片掉落的结果
type ShardDrop struct {
	Identity string `json:"postalCode"`
	Count    int    `json:"count"`
	Unlocked bool   `json:"unlocked"`
}

// AddShard 为(玩家, 身份键)累加一枚碎片。
// 计数到达阈值时，在同一个事务内解锁完整角色并把碎片清零。
func AddShard(playerID, identity string) (*ShardDrop, error) {
	drop := &ShardDrop{Identity: identity}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var shard Shard
		err := tx.Where("player_id = ? AND identity = ?", playerID, identity).First(&shard).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			shard = Shard{PlayerID: playerID, Identity: identity, Count: 0}
			if err := tx.Create(&shard).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		shard.Count++

		if shard.Count >= ShardUnlockThreshold {
			// 原子转换：解锁角色并清零碎片
			var existing OwnedCharacter
			err := tx.Where("player_id = ? AND identity = ?", playerID, identity).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				oc := OwnedCharacter{
					PlayerID: playerID, Identity: identity,
					Level: 1, Evolved: 0, AcquiredAt: time.Now(),
				}
				if err := tx.Create(&oc).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			drop.Count = ShardUnlockThreshold
			drop.Unlocked = true
			return tx.Model(&Shard{}).Where("id = ?", shard.ID).Update("count", 0).Error
		}

		drop.Count = shard.Count
		return tx.Model(&Shard{}).Where("id = ?", shard.ID).Update("count", shard.Count).Error
	})
	if err != nil {
		return nil, fmt.Errorf("无法累加碎片 %s: %w", identity, err)
	}
	return drop, nil
}

// ListShards 返回玩家全部非零的碎片库存
func ListShards(playerID string) ([]Shard, error) {
	var shards []Shard
	if err := database.DB.Where("player_id = ? AND count > 0", playerID).
		Find(&shards).Error; err != nil {
		return nil, fmt.Errorf("无法读取碎片库存: %w", err)
	}
	return shards, nil
}
