package battle

import (
	"fmt"
	"math/rand"

	"github.com/mascodex/game-backend/internal/character"
)

// ErrBattleOver 表示对战已经结束，不再接受行动
var ErrBattleOver = fmt.Errorf("对战已结束")

// InvalidActionError 表示一个被拒绝的行动；拒绝时会话状态保持原样
type InvalidActionError struct {
	Reason string
}

func (e *InvalidActionError) Error() string {
	return e.Reason
}

func invalidAction(format string, args ...interface{}) error {
	return &InvalidActionError{Reason: fmt.Sprintf(format, args...)}
}

// memberBySlot 按槽位号查找队伍成员
func (s *Session) memberBySlot(slot int) *TeamMember {
	for i := range s.Team {
		if s.Team[i].Slot == slot {
			return &s.Team[i]
		}
	}
	return nil
}

// activeMember 返回当前出战成员
func (s *Session) activeMember() *TeamMember {
	return s.memberBySlot(s.ActiveSlot)
}

// nextLivingSlot 按槽位升序找下一个存活成员，没有则返回0
func (s *Session) nextLivingSlot() int {
	for slot := 1; slot <= 3; slot++ {
		m := s.memberBySlot(slot)
		if m != nil && m.Alive {
			return slot
		}
	}
	return 0
}

// damageRoll 计算一次攻击的伤害。
// 公式: floor(atk × 属性倍率 / (def × 0.5)) + 随机加成，下限1点。
func damageRoll(atk int, mul float64, def int, rng *rand.Rand) int {
	if def < 1 {
		def = 1
	}
	base := int(float64(atk) * mul / (float64(def) * 0.5))
	jitterMax := atk / 10
	if jitterMax < 1 {
		jitterMax = 1
	}
	dmg := base + rng.Intn(jitterMax)
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

func gainSp(m *TeamMember) {
	if m.SpGauge < MaxSpGauge {
		m.SpGauge++
	}
}

// skillDamage 结算一次攻击型必杀技：
// 技能倍率先放大攻击力，随机加成随放大后的攻击力一起缩放
func skillDamage(s *Session, m *TeamMember, amp float64, rng *rand.Rand) int {
	amped := int(float64(m.Atk) * amp)
	mul := character.ElementMultiplier(m.Element, s.Amoeba.Element)
	dmg := damageRoll(amped, mul, s.Amoeba.Def, rng)
	s.Amoeba.Hp -= dmg
	s.log("%sの%s！ %dのダメージ", m.Identity, m.Skill.Name, dmg)
	return dmg
}

// applySkill 结算出战成员的必杀技效果，返回对敌方造成的伤害（治疗/强化技为0）。
// 前提: SP消耗已在校验阶段确认，扣除在这里完成。
func applySkill(s *Session, m *TeamMember, rng *rand.Rand) int {
	m.SpGauge -= SkillCost

	switch m.Element {
	case character.ElementFire:
		return skillDamage(s, m, 1.8, rng)
	case character.ElementThunder:
		return skillDamage(s, m, 2.0, rng)
	case character.ElementWater:
		return skillDamage(s, m, 1.5, rng)
	case character.ElementEarth:
		m.Def = m.Def * 3 / 2
		s.log("%sの%s！ 防御力が%dに上がった", m.Identity, m.Skill.Name, m.Def)
		return 0
	case character.ElementWood:
		heal := m.MaxHp / 2
		m.Hp += heal
		if m.Hp > m.MaxHp {
			m.Hp = m.MaxHp
		}
		s.log("%sの%s！ HPが%d回復した", m.Identity, m.Skill.Name, heal)
		return 0
	}
	return 0
}

func (s *Session) log(format string, args ...interface{}) {
	s.Log = append(s.Log, fmt.Sprintf(format, args...))
}

// Resolve 结算一个完整回合：玩家行动、胜利判定、敌方反击、死亡处理。
// 校验全部在任何状态变更之前完成，非法行动返回InvalidActionError且会话不变。
func Resolve(s *Session, action string, targetSlot int, rng *rand.Rand) error {
	if s.Status != StatusActive {
		return ErrBattleOver
	}

	active := s.activeMember()
	if active == nil || !active.Alive {
		return fmt.Errorf("会话状态异常: 出战槽位%d不可用", s.ActiveSlot)
	}

	// 1. 行动前置校验（不产生任何状态变更）
	switch action {
	case ActionAttack, ActionDefend:
		// 无前置条件
	case ActionSkill:
		if active.SpGauge < SkillCost {
			return invalidAction("SP不足: 需要%d，当前%d", SkillCost, active.SpGauge)
		}
	case ActionSwitch:
		target := s.memberBySlot(targetSlot)
		if target == nil {
			return invalidAction("槽位%d没有队伍成员", targetSlot)
		}
		if !target.Alive {
			return invalidAction("槽位%d的成员已战斗不能", targetSlot)
		}
		if targetSlot == s.ActiveSlot {
			return invalidAction("槽位%d已经在出战中", targetSlot)
		}
	default:
		return invalidAction("未知的行动: %s", action)
	}

	defending := false

	// 2. 玩家行动
	switch action {
	case ActionAttack:
		mul := character.ElementMultiplier(active.Element, s.Amoeba.Element)
		dmg := damageRoll(active.Atk, mul, s.Amoeba.Def, rng)
		s.Amoeba.Hp -= dmg
		gainSp(active)
		s.log("%sの攻撃！ %sに%dのダメージ", active.Identity, s.Amoeba.Name, dmg)
	case ActionSkill:
		applySkill(s, active, rng)
	case ActionDefend:
		defending = true
		gainSp(active)
		s.log("%sは身を守っている", active.Identity)
	case ActionSwitch:
		s.ActiveSlot = targetSlot
		active = s.activeMember()
		s.log("交代！ %sが前に出た", active.Identity)
	}

	// 3. 胜利判定先于反击
	if s.Amoeba.Hp <= 0 {
		s.Amoeba.Hp = 0
		s.Status = StatusWin
		s.log("%sを倒した！", s.Amoeba.Name)
		return nil
	}

	// 4. 敌方反击，目标是交替后的出战成员
	mul := character.ElementMultiplier(s.Amoeba.Element, active.Element)
	def := active.Def
	if defending {
		def *= 2
	}
	dmg := damageRoll(s.Amoeba.Atk, mul, def, rng)
	active.Hp -= dmg
	s.log("%sの反撃！ %sに%dのダメージ", s.Amoeba.Name, active.Identity, dmg)

	// 5. 死亡处理与自动交替
	if active.Hp <= 0 {
		active.Hp = 0
		active.Alive = false
		s.log("%sは倒れた！", active.Identity)

		next := s.nextLivingSlot()
		if next == 0 {
			s.Status = StatusLose
			s.log("全滅...敗北した")
			return nil
		}
		s.ActiveSlot = next
		s.log("%sが自動で前に出た", s.activeMember().Identity)
	}

	// 终局回合不计入回合数，只有写回会话的回合才推进
	s.Turn++
	return nil
}
