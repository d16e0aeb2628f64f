package character

import (
	"errors"
	"math"
	"strings"

	"github.com/mascodex/game-backend/internal/progression"
)

// ErrInvalidIdentity 表示身份键不是7位数字
var ErrInvalidIdentity = errors.New("身份键必须是7位数字")

// hashCode 对字符串做确定性哈希，得到32位有符号整数
// 这是整个生成引擎的兼容性契约：算法一旦改变，全部角色属性都会漂移
func hashCode(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = (h << 5) - h + int32(s[i])
	}
	return h
}

// hashFloat 从哈希+盐派生出[0,1)内的确定性浮点数
func hashFloat(identity, salt string) float64 {
	h := int64(hashCode(identity + ":" + salt))
	if h < 0 {
		h = -h
	}
	return float64(h%10000) / 10000
}

// hashRange 把哈希派生的浮点数缩放到[min,max]闭区间内的整数
func hashRange(identity, salt string, min, max int) int {
	return int(hashFloat(identity, salt)*float64(max-min+1)) + min
}

// NormalizeIdentity 去掉连字符并校验身份键格式
func NormalizeIdentity(raw string) (string, error) {
	code := strings.ReplaceAll(raw, "-", "")
	if len(code) != 7 {
		return "", ErrInvalidIdentity
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", ErrInvalidIdentity
		}
	}
	return code, nil
}

// prefixElement 把身份键首位数字映射到属性
// 桶的划分来自地域: 0北海道/东北, 1-2关东, 3-4中部, 5-6关西, 7中国/四国, 8九州, 9北陆/冲绳
var prefixElement = map[byte]Element{
	'0': ElementWater,
	'1': ElementThunder,
	'2': ElementThunder,
	'3': ElementEarth,
	'4': ElementEarth,
	'5': ElementFire,
	'6': ElementFire,
	'7': ElementWood,
	'8': ElementFire,
	'9': ElementWater,
}

// ElementOf 根据身份键首位数字返回角色属性
func ElementOf(identity string) Element {
	code := strings.ReplaceAll(identity, "-", "")
	if len(code) == 0 {
		return ElementEarth
	}
	if e, ok := prefixElement[code[0]]; ok {
		return e
	}
	return ElementEarth
}

// rarityThreshold 是稀有度的累积概率表
type rarityThreshold struct {
	max    float64
	rarity Rarity
}

var rarityThresholds = []rarityThreshold{
	{0.01, RarityLegend},
	{0.05, RaritySuperRare},
	{0.20, RarityRare},
	{1.00, RarityNormal},
}

var rarityMultiplier = map[Rarity]float64{
	RarityNormal:    1.0,
	RarityRare:      1.2,
	RaritySuperRare: 1.5,
	RarityLegend:    2.0,
}

// RarityOf 根据身份键的第二个确定性哈希计算稀有度
// 对同一身份键，无论调用顺序如何，结果都是稳定的
func RarityOf(identity string) Rarity {
	roll := hashFloat(identity, "rarity")
	for _, t := range rarityThresholds {
		if roll < t.max {
			return t.rarity
		}
	}
	return RarityNormal
}

// RarityMultiplier 返回稀有度对应的属性倍率
func RarityMultiplier(r Rarity) float64 {
	if m, ok := rarityMultiplier[r]; ok {
		return m
	}
	return 1.0
}

// StatsOf 计算身份键在给定等级/进化阶段下的全部战斗属性
// 每项基础值来自独立盐位的哈希，再经 稀有度×进化×等级 三重缩放后取整
func StatsOf(identity string, level int, evolutionStage int) Stats {
	code := strings.ReplaceAll(identity, "-", "")

	baseHp := hashRange(code, "hp", 40, 120)
	baseAtk := hashRange(code, "atk", 30, 100)
	baseDef := hashRange(code, "def", 30, 100)
	baseSpd := hashRange(code, "spd", 20, 80)
	baseSp := hashRange(code, "sp", 20, 80)

	rarityMul := RarityMultiplier(RarityOf(code))
	evoMul := 1.0 + float64(evolutionStage)*0.3
	lvlMul := 1.0 + float64(level-1)*0.05

	scale := func(base int) int {
		return int(math.Floor(float64(base) * rarityMul * evoMul * lvlMul))
	}

	return Stats{
		Hp:  scale(baseHp),
		Atk: scale(baseAtk),
		Def: scale(baseDef),
		Spd: scale(baseSpd),
		Sp:  scale(baseSp),
	}
}

// Generate 从身份键物化一个完整的角色档案
// evolutionOverride 为负时，进化阶段由等级推导
func Generate(identity string, level int, evolutionOverride int) Profile {
	code := strings.ReplaceAll(identity, "-", "")

	evoStage := evolutionOverride
	if evoStage < 0 {
		evoStage = progression.EvolutionStage(level)
	}

	return Profile{
		Identity:       code,
		Element:        ElementOf(code),
		Rarity:         RarityOf(code),
		Level:          level,
		EvolutionStage: evoStage,
		Stats:          StatsOf(code, level, evoStage),
		Skill:          SkillOf(code),
	}
}
