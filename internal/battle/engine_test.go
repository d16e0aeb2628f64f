package battle

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/mascodex/game-backend/internal/character"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func testMember(slot int, element character.Element) TeamMember {
	return TeamMember{
		Identity: "1000001",
		Slot:     slot,
		Level:    10,
		Element:  element,
		Skill:    character.Skill{Name: "テストスキル", Element: element},
		Hp:       100, MaxHp: 100,
		Atk: 50, Def: 40, Spd: 30,
		SpGauge: 0,
		Alive:   true,
	}
}

func testSession(members ...TeamMember) *Session {
	s := &Session{
		ID:       "b1",
		PlayerID: "p1",
		Amoeba: AmoebaSnapshot{
			ID: "a1", Name: "テストアメーバ", Element: character.ElementFire,
			Level: 10, Hp: 500, MaxHp: 500, Atk: 40, Def: 30, Spd: 20,
			BossType: "normal",
		},
		Team:       members,
		ActiveSlot: members[0].Slot,
		Status:     StatusActive,
	}
	return s
}

// 测试伤害下限为1点
func TestDamageRollMinimumOne(t *testing.T) {
	rng := testRng()
	for i := 0; i < 100; i++ {
		dmg := damageRoll(1, 0.5, 9999, rng)
		assert.GreaterOrEqual(t, dmg, 1)
	}
}

// 测试普通攻击：敌方扣血、SP+1、敌方反击、回合数递增
func TestResolveAttack(t *testing.T) {
	s := testSession(testMember(1, character.ElementWater))

	require.NoError(t, Resolve(s, ActionAttack, 0, testRng()))

	assert.Less(t, s.Amoeba.Hp, s.Amoeba.MaxHp)
	assert.Equal(t, 1, s.Team[0].SpGauge)
	assert.Less(t, s.Team[0].Hp, s.Team[0].MaxHp)
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, StatusActive, s.Status)
}

// 测试SP槽不会超过上限
func TestSpGaugeCap(t *testing.T) {
	s := testSession(testMember(1, character.ElementWater))
	s.Team[0].SpGauge = MaxSpGauge

	require.NoError(t, Resolve(s, ActionAttack, 0, testRng()))
	assert.Equal(t, MaxSpGauge, s.Team[0].SpGauge)
}

// 测试胜利判定先于反击：击破瞬间己方不再承受伤害
func TestWinBeforeCounter(t *testing.T) {
	member := testMember(1, character.ElementWater)
	member.Hp = 1
	s := testSession(member)
	s.Amoeba.Hp = 1

	require.NoError(t, Resolve(s, ActionAttack, 0, testRng()))

	assert.Equal(t, StatusWin, s.Status)
	assert.Equal(t, 0, s.Amoeba.Hp)
	assert.Equal(t, 1, s.Team[0].Hp)
	assert.True(t, s.Team[0].Alive)
	// 终局回合不推进回合数
	assert.Equal(t, 0, s.Turn)
}

// 测试非法行动被拒绝时会话完全不变
func TestInvalidActionLeavesStateUntouched(t *testing.T) {
	s := testSession(testMember(1, character.ElementFire), testMember(2, character.ElementWood))

	cases := []struct {
		action string
		slot   int
	}{
		{ActionSkill, 0},  // SP不足
		{ActionSwitch, 1}, // 已在出战中
		{ActionSwitch, 3}, // 槽位不存在
		{"dance", 0},      // 未知行动
	}
	for _, tc := range cases {
		before := *s
		before.Team = append([]TeamMember(nil), s.Team...)
		before.Log = append([]string(nil), s.Log...)

		err := Resolve(s, tc.action, tc.slot, testRng())
		require.Error(t, err, "行动 %s 应被拒绝", tc.action)

		var invalid *InvalidActionError
		assert.ErrorAs(t, err, &invalid)
		assert.True(t, reflect.DeepEqual(before.Team, s.Team))
		assert.Equal(t, before.Turn, s.Turn)
		assert.Equal(t, before.ActiveSlot, s.ActiveSlot)
		assert.Equal(t, before.Amoeba, s.Amoeba)
	}
}

// 测试防御只在本回合使防御者的防御翻倍。
// 敌方Atk低于10时随机加成恒为0，反击伤害完全确定。
func TestDefendReducesCounterDamage(t *testing.T) {
	plain := testSession(testMember(1, character.ElementWater))
	guarded := testSession(testMember(1, character.ElementWater))
	for _, s := range []*Session{plain, guarded} {
		s.Amoeba.Atk = 9
		s.Team[0].Def = 4
	}

	require.NoError(t, Resolve(plain, ActionAttack, 0, testRng()))
	require.NoError(t, Resolve(guarded, ActionDefend, 0, testRng()))

	// mul(fire→water)=0.5: 素防御4 → 9*0.5/2=2点；防御时8 → 9*0.5/4=1点
	plainDmg := plain.Team[0].MaxHp - plain.Team[0].Hp
	guardedDmg := guarded.Team[0].MaxHp - guarded.Team[0].Hp
	assert.Equal(t, 2, plainDmg)
	assert.Equal(t, 1, guardedDmg)
}

// 测试交替后反击命中新的出战成员
func TestSwitchThenCounterHitsNewActive(t *testing.T) {
	s := testSession(testMember(1, character.ElementWater), testMember(2, character.ElementWood))

	require.NoError(t, Resolve(s, ActionSwitch, 2, testRng()))

	assert.Equal(t, 2, s.ActiveSlot)
	assert.Equal(t, 100, s.Team[0].Hp)
	assert.Less(t, s.Team[1].Hp, 100)
}

// 测试出战成员倒下时自动交替到下一个存活槽位
func TestAutoSwitchOnDeath(t *testing.T) {
	front := testMember(1, character.ElementWater)
	front.Hp = 1
	s := testSession(front, testMember(2, character.ElementWood))

	require.NoError(t, Resolve(s, ActionAttack, 0, testRng()))

	assert.False(t, s.Team[0].Alive)
	assert.Equal(t, 0, s.Team[0].Hp)
	assert.Equal(t, 2, s.ActiveSlot)
	assert.Equal(t, StatusActive, s.Status)
}

// 测试最后一名成员倒下即败北
func TestLoseWhenLastMemberFalls(t *testing.T) {
	front := testMember(1, character.ElementWater)
	front.Hp = 1
	s := testSession(front)

	require.NoError(t, Resolve(s, ActionAttack, 0, testRng()))

	assert.Equal(t, StatusLose, s.Status)
	assert.False(t, s.Team[0].Alive)
	assert.Equal(t, 0, s.Turn)
}

// 测试木属性必杀技回复HP且不超过上限
func TestWoodSkillHeals(t *testing.T) {
	member := testMember(1, character.ElementWood)
	member.Hp = 30
	member.SpGauge = SkillCost
	s := testSession(member)

	require.NoError(t, Resolve(s, ActionSkill, 0, testRng()))

	// 回复50 = MaxHp的一半，随后承受反击
	assert.Equal(t, 0, s.Team[0].SpGauge)
	assert.Greater(t, s.Team[0].Hp, 30)
	assert.LessOrEqual(t, s.Team[0].Hp, s.Team[0].MaxHp)
	assert.Equal(t, s.Amoeba.MaxHp, s.Amoeba.Hp)
}

// 测试土属性必杀技提升防御
func TestEarthSkillBuffsDefense(t *testing.T) {
	member := testMember(1, character.ElementEarth)
	member.SpGauge = SkillCost
	s := testSession(member)

	require.NoError(t, Resolve(s, ActionSkill, 0, testRng()))
	assert.Equal(t, 60, s.Team[0].Def)
}

// 测试火属性必杀技造成的伤害高于普通攻击。
// 敌方Def=10时技能的最小伤害(18)必然超过普通攻击的最大伤害(14)，
// 结果与随机加成无关。
func TestFireSkillOutdamagesAttack(t *testing.T) {
	attack := testSession(testMember(1, character.ElementFire))
	skill := testSession(testMember(1, character.ElementFire))
	attack.Amoeba.Def = 10
	skill.Amoeba.Def = 10
	skill.Team[0].SpGauge = SkillCost

	require.NoError(t, Resolve(attack, ActionAttack, 0, testRng()))
	require.NoError(t, Resolve(skill, ActionSkill, 0, testRng()))

	attackDmg := attack.Amoeba.MaxHp - attack.Amoeba.Hp
	skillDmg := skill.Amoeba.MaxHp - skill.Amoeba.Hp
	assert.Greater(t, skillDmg, attackDmg)
}

// 测试必杀技的随机加成随放大后的攻击力一起缩放。
// Atk=100时普通攻击的伤害上限是 100/100 + 9 = 10；
// 火技把攻击力放大到180后加成上限扩大到17，多次掷骰必然观察到超过10的伤害。
func TestSkillVarianceScalesWithAmplifier(t *testing.T) {
	rng := testRng()
	s := testSession(testMember(1, character.ElementFire))
	m := &s.Team[0]
	m.Atk = 100
	s.Amoeba.Def = 200

	maxDmg := 0
	for i := 0; i < 200; i++ {
		m.SpGauge = SkillCost
		s.Amoeba.Hp = s.Amoeba.MaxHp
		dmg := applySkill(s, m, rng)
		if dmg > maxDmg {
			maxDmg = dmg
		}
	}
	assert.Greater(t, maxDmg, 10)
}

// 测试对战结束后拒绝一切行动
func TestResolveAfterBattleOver(t *testing.T) {
	s := testSession(testMember(1, character.ElementWater))
	s.Status = StatusWin

	err := Resolve(s, ActionAttack, 0, testRng())
	assert.ErrorIs(t, err, ErrBattleOver)
}
