package battle

import (
	"time"

	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/character"
)

// 对战状态
const (
	StatusActive = "active"
	StatusWin    = "win"
	StatusLose   = "lose"
)

// 玩家可选的回合行动
const (
	ActionAttack = "attack"
	ActionSkill  = "skill"
	ActionDefend = "defend"
	ActionSwitch = "switch"
)

const (
	// MaxSpGauge 是SP槽上限
	MaxSpGauge = 10
	// SkillCost 是释放必杀技消耗的SP
	SkillCost = 3
)

// AmoebaSnapshot 是开战时敌方的快照。
// 对战期间敌方数值只在会话内变动，不回写数据库（结算时统一处理）。
type AmoebaSnapshot struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Element  character.Element `json:"element"`
	Level    int               `json:"level"`
	Hp       int               `json:"hp"`
	MaxHp    int               `json:"maxHp"`
	Atk      int               `json:"atk"`
	Def      int               `json:"def"`
	Spd      int               `json:"spd"`
	BossType amoeba.BossType   `json:"bossType"`
}

// TeamMember 是会话内的队伍成员战斗状态
type TeamMember struct {
	Identity string            `json:"postalCode"`
	Slot     int               `json:"slot"`
	Level    int               `json:"level"`
	Element  character.Element `json:"element"`
	Skill    character.Skill   `json:"skill"`
	Hp       int               `json:"hp"`
	MaxHp    int               `json:"maxHp"`
	Atk      int               `json:"atk"`
	Def      int               `json:"def"`
	Spd      int               `json:"spd"`
	SpGauge  int               `json:"spGauge"`
	Alive    bool              `json:"alive"`
}

// Session 是存放在Redis里的完整对战状态
type Session struct {
	ID       string         `json:"id"`
	PlayerID string         `json:"playerId"`
	Amoeba   AmoebaSnapshot `json:"amoeba"`
	Team     []TeamMember   `json:"team"`

	// ActiveSlot 是当前出战成员的槽位号（非数组下标）
	ActiveSlot int      `json:"activeSlot"`
	Turn       int      `json:"turn"`
	Log        []string `json:"log"`
	Status     string   `json:"status"`

	StartedAt time.Time `json:"startedAt"`
}

// BattleResult 是一场对战结束后落库的历史记录
type BattleResult struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	PlayerID   string          `gorm:"index" json:"playerId"`
	AmoebaID   string          `gorm:"type:varchar(36)" json:"amoebaId"`
	AmoebaName string          `json:"amoebaName"`
	BossType   amoeba.BossType `json:"bossType"`

	Result   string `json:"result"`
	Turns    int    `json:"turns"`
	XpEarned int    `json:"xpEarned"`

	ShardIdentity string `json:"shardPostal,omitempty"`
	ShardUnlocked bool   `json:"shardUnlocked"`

	CreatedAt time.Time `json:"createdAt"`
}

func (BattleResult) TableName() string {
	return "battles"
}
