package district

import "time"

// Status 是地区的健康状态，完全由HP比例推导
type Status string

const (
	StatusHealthy Status = "healthy"
	StatusAnxious Status = "anxious"
	StatusPain    Status = "pain"
	StatusDark    Status = "dark"
	StatusFallen  Status = "fallen"
)

// District 定义了地区在数据库中的持久化模型。
// 地区在启动时预置，运行期间永远不会被创建或销毁。
type District struct {
	// Code 是3位地区编码，作为业务主键
	Code string `gorm:"primarykey;type:varchar(3)" json:"code"`

	// Prefecture 是地区所属的都道府县
	Prefecture string `gorm:"index" json:"prefecture"`

	// Name 是地区的显示名称
	Name string `json:"name"`

	// Hp 是地区当前的集体健康值，永远被钳制在[0, MaxHp]
	Hp int `json:"hp"`

	// MaxHp 是地区健康值的上限
	MaxHp int `json:"maxHp"`

	// Status 是由Hp/MaxHp推导的状态快照，每次扩散tick后重算
	Status Status `json:"status"`

	// PlayerCount 是注册在该地区的玩家数，影响自然回复速度
	PlayerCount int `json:"playerCount"`

	// ImmuneUntil 在该时刻前地区免疫新的感染（预留给道具效果）
	ImmuneUntil *time.Time `json:"immuneUntil,omitempty"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// StatusForHp 根据HP比例计算地区状态
// 阈值: >=80% healthy, >=50% anxious, >=20% pain, >0 dark, 否则 fallen
func StatusForHp(hp, maxHp int) Status {
	if maxHp <= 0 {
		return StatusFallen
	}
	pct := float64(hp) / float64(maxHp) * 100
	switch {
	case pct >= 80:
		return StatusHealthy
	case pct >= 50:
		return StatusAnxious
	case pct >= 20:
		return StatusPain
	case pct > 0:
		return StatusDark
	default:
		return StatusFallen
	}
}
