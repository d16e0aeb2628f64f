package battle

import (
	"fmt"
	"math/rand"

	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/collection"
	"github.com/mascodex/game-backend/internal/platform/database"
)

// Boss加成XP
const (
	weeklyBossBonusXp  = 100
	monthlyBossBonusXp = 500
)

// 碎片掉落率，按Boss档位
var dropRates = map[amoeba.BossType]float64{
	amoeba.BossNormal:  0.3,
	amoeba.BossWeekly:  0.7,
	amoeba.BossMonthly: 1.0,
}

// RewardSummary 是胜利结算的汇总，随终局响应返回
type RewardSummary struct {
	XpEarned int                   `json:"xpEarned"`
	Shard    *collection.ShardDrop `json:"shard,omitempty"`
}

// Settle 落盘一场结束的对战：发奖、掉落、历史记录、敌方失活、清除会话。
// 会话必须已处于win或lose状态。
func Settle(s *Session, rng *rand.Rand) (*RewardSummary, error) {
	if s.Status != StatusWin && s.Status != StatusLose {
		return nil, fmt.Errorf("对战尚未结束，无法结算")
	}

	summary := &RewardSummary{}

	if s.Status == StatusWin {
		xp := s.Amoeba.Level * 10
		switch s.Amoeba.BossType {
		case amoeba.BossWeekly:
			xp += weeklyBossBonusXp
		case amoeba.BossMonthly:
			xp += monthlyBossBonusXp
		}
		summary.XpEarned = xp

		// 只有存活成员获得XP；等级与进化阶段由GrantXp统一重算
		for _, m := range s.Team {
			if !m.Alive {
				continue
			}
			if _, err := collection.GrantXp(s.PlayerID, m.Identity, xp); err != nil {
				fmt.Printf("警告: 无法为 %s 发放对战XP: %v\n", m.Identity, err)
			}
		}

		// 碎片掉落判定
		target, err := amoeba.GetActiveByID(s.Amoeba.ID)
		if err == nil && target.DropIdentity != "" {
			if rng.Float64() < dropRates[s.Amoeba.BossType] {
				drop, dropErr := collection.AddShard(s.PlayerID, target.DropIdentity)
				if dropErr != nil {
					fmt.Printf("警告: 无法累加掉落碎片: %v\n", dropErr)
				} else {
					summary.Shard = drop
				}
			}
		}

		if err := amoeba.Deactivate(s.Amoeba.ID); err != nil {
			fmt.Printf("警告: 无法使阿米巴 %s 失活: %v\n", s.Amoeba.ID, err)
		}
	}

	result := BattleResult{
		PlayerID:   s.PlayerID,
		AmoebaID:   s.Amoeba.ID,
		AmoebaName: s.Amoeba.Name,
		BossType:   s.Amoeba.BossType,
		Result:     s.Status,
		Turns:      s.Turn,
		XpEarned:   summary.XpEarned,
	}
	if summary.Shard != nil {
		result.ShardIdentity = summary.Shard.Identity
		result.ShardUnlocked = summary.Shard.Unlocked
	}
	if err := database.DB.Create(&result).Error; err != nil {
		return nil, fmt.Errorf("无法写入对战历史: %w", err)
	}

	if err := DeleteSession(s.PlayerID); err != nil {
		fmt.Printf("警告: 无法删除对战会话: %v\n", err)
	}
	return summary, nil
}
