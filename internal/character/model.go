package character

// Element 是角色和敌对生物共用的五行属性
type Element string

const (
	ElementFire    Element = "fire"
	ElementWater   Element = "water"
	ElementWood    Element = "wood"
	ElementEarth   Element = "earth"
	ElementThunder Element = "thunder"
)

// AllElements 按固定顺序列出全部属性，供随机生成使用
var AllElements = []Element{ElementFire, ElementWater, ElementWood, ElementEarth, ElementThunder}

// Rarity 是角色的稀有度档位，决定基础属性的缩放倍率
type Rarity string

const (
	RarityNormal    Rarity = "normal"
	RarityRare      Rarity = "rare"
	RaritySuperRare Rarity = "super_rare"
	RarityLegend    Rarity = "legend"
)

// Stats 是一组战斗属性值
type Stats struct {
	Hp  int `json:"hp"`
	Atk int `json:"atk"`
	Def int `json:"def"`
	Spd int `json:"spd"`
	Sp  int `json:"sp"`
}

// Skill 是每个属性固定的必杀技定义
type Skill struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"desc"`
	Power       int     `json:"power"`
	Element     Element `json:"element"`
}

// Profile 是由身份键完全推导出的角色视图，不做任何持久化。
// 不变量: 相同的(identity, level, evolutionStage)必然产生完全相同的Profile。
type Profile struct {
	// Identity 是7位邮政编码形态的身份键，生成的唯一种子
	Identity string `json:"postalCode"`

	Element        Element `json:"element"`
	Rarity         Rarity  `json:"rarity"`
	Level          int     `json:"level"`
	EvolutionStage int     `json:"evolved"`
	Stats          Stats   `json:"stats"`
	Skill          Skill   `json:"skill"`
}
