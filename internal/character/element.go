package character

// advantageMap 定义了五行相克环: fire→wood→earth→thunder→water→fire
var advantageMap = map[Element]Element{
	ElementFire:    ElementWood,
	ElementWood:    ElementEarth,
	ElementEarth:   ElementThunder,
	ElementThunder: ElementWater,
	ElementWater:   ElementFire,
}

// ElementMultiplier 返回攻击方对防御方的伤害倍率
// 克制1.5倍，被克制0.5倍，其余（含同属性）1.0倍
func ElementMultiplier(attacker, defender Element) float64 {
	if attacker == defender {
		return 1.0
	}
	if advantageMap[attacker] == defender {
		return 1.5
	}
	if advantageMap[defender] == attacker {
		return 0.5
	}
	return 1.0
}
