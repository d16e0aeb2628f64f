package collection

import "time"

// OwnedCharacter 定义了玩家持有角色的持久化模型。
// 角色档案本身由身份键确定性推导，这里只存储成长状态。
type OwnedCharacter struct {
	ID uint `gorm:"primarykey"`

	PlayerID string `gorm:"index:idx_player_identity,unique;type:varchar(36)"`

	// Identity 是角色的7位身份键
	Identity string `gorm:"index:idx_player_identity,unique;type:varchar(7)"`

	Level int `json:"level"`
	Xp    int `json:"xp"`

	// Evolved 是进化阶段，必须与Level保持一致，
	// 只允许通过progression.EvolutionStage(Level)写入
	Evolved int `json:"evolved"`

	// TeamSlot 是队伍槽位: 0=未编入, 1-3=出战位置
	TeamSlot int `gorm:"index" json:"teamSlot"`

	AcquiredAt time.Time `json:"acquiredAt"`
}

// TableName 保持与历史数据一致的表名
func (OwnedCharacter) TableName() string {
	return "player_characters"
}

// Shard 是角色碎片库存，按(玩家, 身份键)计数。
// 计数到达10时原子地转换为OwnedCharacter并清零。
type Shard struct {
	ID       uint   `gorm:"primarykey"`
	PlayerID string `gorm:"index:idx_player_shard,unique;type:varchar(36)"`
	Identity string `gorm:"index:idx_player_shard,unique;type:varchar(7)"`
	Count    int
}

// TableName 保持与历史数据一致的表名
func (Shard) TableName() string {
	return "character_shards"
}

// ShardUnlockThreshold 是解锁完整角色所需的碎片数量
const ShardUnlockThreshold = 10
