package amoeba

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mascodex/game-backend/internal/character"
	"github.com/mascodex/game-backend/internal/district"
	"github.com/mascodex/game-backend/internal/platform/database"
)

// amoebaNames 是每个属性的名字池
var amoebaNames = map[character.Element][]string{
	character.ElementFire:    {"ヒートスライム", "炎の怒り", "マグマビースト", "灼熱のコア", "ファイアワーム"},
	character.ElementWater:   {"ツナミゲル", "大渦の主", "アクアファング", "深海の涙", "タイダルビースト"},
	character.ElementThunder: {"ライトニングバグ", "雷鳴の子", "ボルトシェイド", "電撃のコア", "サンダーワーム"},
	character.ElementWood:    {"モリノカゲ", "蔦の絞撃", "ウッドゴーレム", "腐葉の群れ", "フォレストイーター"},
	character.ElementEarth:   {"ジシンムシ", "大地の唸り", "クレイタイタン", "砂塵の渦", "グラウンドワーム"},
}

// bossNames 是周期Boss的名字池
var bossNames = []string{"ギガアメーバ", "深淵の王", "侵蝕の皇帝", "滅びの巨核"}

// SpawnResult 汇总一次生成任务的结果
type SpawnResult struct {
	Spawned []Amoeba `json:"spawned"`
}

// spawnStats 根据等级和强度推导战斗属性
// Boss使用更高的倍率；普通个体带少量抖动
func spawnStats(level, strength int, boss bool, rng *rand.Rand) (hp, atk, def, spd int) {
	jitter := func(base int) int {
		// ±10%的抖动
		span := base / 10
		if span < 1 {
			return base
		}
		return base - span + rng.Intn(2*span+1)
	}
	if boss {
		hp = strength * 150
		atk = jitter(level * 10)
		def = jitter(level * 7)
		spd = jitter(level * 5)
		return
	}
	hp = strength * 100
	atk = jitter(level * 8)
	def = jitter(level * 5)
	spd = jitter(level * 4)
	return
}

// dropIdentityFor 由起源地区编码与アメーバID确定性构造掉落身份键：
// 地区编码3位 + ID哈希派生的4位后缀，构成该地区下的合法邮政编码
func dropIdentityFor(originCode, amoebaID string) string {
	var h int32
	for i := 0; i < len(amoebaID); i++ {
		h = (h << 5) - h + int32(amoebaID[i])
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%s%04d", originCode, n%10000)
}

// spawnOne 生成一只アメーバ并落库，同时对起源地区施加生成伤害
func spawnOne(bossType BossType, rng *rand.Rand) (*Amoeba, error) {
	origin, err := district.RandomNonFallen()
	if err != nil {
		return nil, fmt.Errorf("没有可生成的地区: %w", err)
	}

	element := character.AllElements[rng.Intn(len(character.AllElements))]

	var name string
	var level, strength int
	switch bossType {
	case BossWeekly, BossMonthly:
		name = bossNames[rng.Intn(len(bossNames))]
		level = 30 + rng.Intn(20) // [30, 50)
		strength = 6 + rng.Intn(5)
	default:
		names := amoebaNames[element]
		name = names[rng.Intn(len(names))]
		level = 5 + rng.Intn(14) // [5, 19)
		strength = 3 + rng.Intn(5)
	}

	hp, atk, def, spd := spawnStats(level, strength, bossType != BossNormal, rng)

	id := uuid.NewString()
	headlines := []string{
		fmt.Sprintf("%sが%s地区に出現！", name, origin.Code),
		fmt.Sprintf("緊急速報：%s地区で%sを確認", origin.Code, name),
		fmt.Sprintf("%s地区住民に警報：%sが接近中", origin.Code, name),
	}

	a := Amoeba{
		ID:             id,
		Name:           name,
		Element:        element,
		Level:          level,
		Strength:       strength,
		Hp:             hp,
		MaxHp:          hp,
		Atk:            atk,
		Def:            def,
		Spd:            spd,
		BossType:       bossType,
		OriginDistrict: origin.Code,
		DropIdentity:   dropIdentityFor(origin.Code, id),
		NewsHeadline:   headlines[rng.Intn(len(headlines))],
		IsActive:       true,
	}

	if err := database.DB.Create(&a).Error; err != nil {
		return nil, fmt.Errorf("无法创建アメーバ: %w", err)
	}
	if err := AddInfection(id, origin.Code); err != nil {
		return nil, fmt.Errorf("无法记录起源感染: %w", err)
	}

	// 生成伤害与强度成正比（强度×5），并立刻重算地区状态
	if err := district.ApplyDamage(origin.Code, a.Strength*5); err != nil {
		return nil, err
	}
	if err := district.RefreshStatus(origin.Code); err != nil {
		return nil, err
	}

	return &a, nil
}

// RunSpawn 执行一次生成任务：3-5只普通アメーバ，
// 到达每周Boss日时额外生成一只周Boss。
// 单只失败只记录日志，不中断剩余的生成。
func RunSpawn(now time.Time, bossWeekday int) (*SpawnResult, error) {
	rng := rand.New(rand.NewSource(now.UnixNano()))
	result := &SpawnResult{}

	count := 3 + rng.Intn(3) // [3, 5]
	for i := 0; i < count; i++ {
		a, err := spawnOne(BossNormal, rng)
		if err != nil {
			fmt.Printf("警告: 生成第%d只アメーバ失败: %v\n", i+1, err)
			continue
		}
		result.Spawned = append(result.Spawned, *a)
	}

	if int(now.Weekday()) == bossWeekday {
		boss, err := spawnOne(BossWeekly, rng)
		if err != nil {
			fmt.Printf("警告: 生成周Boss失败: %v\n", err)
		} else {
			result.Spawned = append(result.Spawned, *boss)
		}
	}

	fmt.Printf("生成任务完成: 新增 %d 只アメーバ。\n", len(result.Spawned))
	return result, nil
}
