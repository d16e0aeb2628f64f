package collection

import (
	"fmt"

	"github.com/mascodex/game-backend/internal/platform/database"
	"gorm.io/gorm"
)

// TeamSlotAssignment 是设置队伍时的单个槽位指派
type TeamSlotAssignment struct {
	Identity string `json:"postalCode" binding:"required"`
	Slot     int    `json:"slot" binding:"required"`
}

// SetTeam 重设玩家的出战队伍。
// 先验证全部角色归属，再在一个事务内清空并写入新槽位。
func SetTeam(playerID string, slots []TeamSlotAssignment) error {
	if len(slots) == 0 || len(slots) > 3 {
		return fmt.Errorf("队伍槽位数量必须在1-3之间")
	}

	seen := make(map[int]bool)
	for _, entry := range slots {
		if entry.Slot < 1 || entry.Slot > 3 {
			return fmt.Errorf("无效的槽位: %d", entry.Slot)
		}
		if seen[entry.Slot] {
			return fmt.Errorf("槽位 %d 被重复指派", entry.Slot)
		}
		seen[entry.Slot] = true
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		// 验证全部角色归属于该玩家
		for _, entry := range slots {
			var oc OwnedCharacter
			if err := tx.Where("player_id = ? AND identity = ?", playerID, entry.Identity).
				First(&oc).Error; err != nil {
				return fmt.Errorf("未持有角色: %s", entry.Identity)
			}
		}

		// 清空当前队伍
		if err := tx.Model(&OwnedCharacter{}).Where("player_id = ?", playerID).
			Update("team_slot", 0).Error; err != nil {
			return err
		}

		// 写入新槽位
		for _, entry := range slots {
			if err := tx.Model(&OwnedCharacter{}).
				Where("player_id = ? AND identity = ?", playerID, entry.Identity).
				Update("team_slot", entry.Slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
