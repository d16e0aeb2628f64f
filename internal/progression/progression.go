package progression

import "math"

// LevelInfo 描述了一个累计XP值对应的等级进度
type LevelInfo struct {
	// Level 是当前等级，从1开始
	Level int `json:"level"`

	// CurrentXp 是在当前等级内已积累的XP
	CurrentXp int `json:"currentXp"`

	// NextLevelXp 是升到下一级所需的XP总量
	NextLevelXp int `json:"nextLevelXp"`
}

// XpForLevel 返回从等级n升到n+1所需的XP
// 曲线: need(n) = floor(100 * 1.5^(n-1))
func XpForLevel(level int) int {
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// CumulativeXpForLevel 返回恰好到达等级n所需的累计XP总量
// 它是LevelFromXp的逆函数，用于属性测试的往返校验
func CumulativeXpForLevel(level int) int {
	total := 0
	for n := 1; n < level; n++ {
		total += XpForLevel(n)
	}
	return total
}

// LevelFromXp 根据累计XP计算等级进度
// 对XP单调不减：更多的XP永远不会得到更低的等级
func LevelFromXp(totalXp int) LevelInfo {
	level := 1
	remaining := totalXp
	needed := XpForLevel(level)
	for remaining >= needed {
		remaining -= needed
		level++
		needed = XpForLevel(level)
	}
	return LevelInfo{
		Level:       level,
		CurrentXp:   remaining,
		NextLevelXp: needed,
	}
}

// EvolutionStage 根据等级计算进化阶段
// 纯阶跃函数: 等级<10为0，[10,25)为1，>=25为2
// 进化阶段永远不允许独立于等级被修改
func EvolutionStage(level int) int {
	if level >= 25 {
		return 2
	}
	if level >= 10 {
		return 1
	}
	return 0
}
