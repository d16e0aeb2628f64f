package amoeba

import (
	"time"

	"github.com/mascodex/game-backend/internal/character"
)

// BossType 是敌对生物的档位，决定奖励与掉落概率
type BossType string

const (
	BossNormal  BossType = "normal"
	BossWeekly  BossType = "weekly"
	BossMonthly BossType = "monthly"
)

// Amoeba 定义了敌对生物（アメーバ）在数据库中的持久化模型。
// 由SpawnScheduler创建，被SpreadSimulator和BattleEngine修改，
// HP归零或存活超过72小时后被停用。
type Amoeba struct {
	// ID 是UUID主键
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	Name    string            `json:"name"`
	Element character.Element `json:"element"`
	Level   int               `json:"level"`

	// Strength 决定扩散伤害的基准值
	Strength int `json:"strength"`

	Hp    int `json:"hp"`
	MaxHp int `json:"maxHp"`
	Atk   int `json:"atk"`
	Def   int `json:"def"`
	Spd   int `json:"spd"`

	BossType BossType `gorm:"index" json:"bossType"`

	// OriginDistrict 是生成时的起源地区编码
	OriginDistrict string `json:"district"`

	// DropIdentity 是击败后碎片掉落指向的角色身份键，
	// 由起源地区编码确定性构造
	DropIdentity string `json:"dropPostal"`

	// NewsHeadline 是生成时的快报文案
	NewsHeadline string `json:"newsHeadline"`

	IsActive   bool       `gorm:"index" json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	DefeatedAt *time.Time `json:"defeatedAt,omitempty"`
}

// Infection 是感染足迹的规范化成员行，替代JSON编码的地区列表。
// 在同一只アメーバ的生命周期内，成员行只增不删；
// 停用整只アメーバ是清除感染的唯一方式。
type Infection struct {
	ID           uint   `gorm:"primarykey"`
	AmoebaID     string `gorm:"index:idx_amoeba_district,unique;type:varchar(36)"`
	DistrictCode string `gorm:"index:idx_amoeba_district,unique;type:varchar(3)"`
	CreatedAt    time.Time
}

// TableName 保持与历史数据一致的表名
func (Infection) TableName() string {
	return "amoeba_districts"
}
