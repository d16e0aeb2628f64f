package character

// elementSkills 是每个属性固定的必杀技记录
var elementSkills = map[Element]Skill{
	ElementWater:   {ID: "blizzard", Name: "ブリザード", Description: "氷の嵐で敵を凍らせる", Power: 80, Element: ElementWater},
	ElementThunder: {ID: "thunder_strike", Name: "サンダーストライク", Description: "稲妻の一撃を放つ", Power: 85, Element: ElementThunder},
	ElementEarth:   {ID: "mountain_wall", Name: "マウンテンウォール", Description: "大地の壁で守りを固める", Power: 60, Element: ElementEarth},
	ElementFire:    {ID: "fire_storm", Name: "ファイアストーム", Description: "炎の嵐で焼き尽くす", Power: 90, Element: ElementFire},
	ElementWood:    {ID: "forest_heal", Name: "フォレストヒール", Description: "森の力で仲間を癒す", Power: 50, Element: ElementWood},
}

// SkillOf 返回身份键对应属性的必杀技
func SkillOf(identity string) Skill {
	return elementSkills[ElementOf(identity)]
}
