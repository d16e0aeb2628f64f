package player

import "time"

// Player 定义了玩家在数据库中的持久化模型。
// 账号注册与会话签发由外部系统负责，本服务只消费已认证的玩家身份。
type Player struct {
	// ID 是玩家的主键，来自外部认证系统
	ID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	// PostalCode 是玩家注册时的7位邮政编码
	PostalCode string `json:"postalCode"`

	// Prefecture 与 District 是由邮政编码推导的归属地
	Prefecture string `gorm:"index" json:"prefecture"`
	District   string `gorm:"index;type:varchar(3)" json:"district"`

	Level int `json:"level"`
	Xp    int `json:"xp"`

	// TotalDefense 是玩家累计为地区回复的HP总量
	TotalDefense int `json:"totalDefense"`

	// ConsecutiveDays 是连续登录天数，影响登录奖励
	ConsecutiveDays int `json:"consecutiveDays"`

	// LastLoginDate 是最近一次领取登录奖励的JST日期 (YYYY-MM-DD)
	LastLoginDate string `json:"lastLoginDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Action 是玩家防御行动的持久化记录。
// 每日行动上限从这张表统计，绝不依赖进程内状态。
type Action struct {
	ID       uint   `gorm:"primarykey"`
	PlayerID string `gorm:"index;type:varchar(36)"`

	// ActionType 是行动类型: login / quiz / share / explore
	ActionType string `gorm:"index"`

	DistrictCode string `gorm:"type:varchar(3)"`
	HpGiven      int
	XpEarned     int

	// Metadata 是行动的附加JSON信息（如测验的正误与加成）
	Metadata string

	CreatedAt time.Time
}
