package player

import (
	"math/rand"
)

// Quiz 是一道乡土知识测验题
type Quiz struct {
	Question   string   `json:"q"`
	Options    []string `json:"options"`
	Correct    int      `json:"correct"`
	Prefecture string   `json:"prefecture,omitempty"`
}

// quizBank 是内置题库。优先出玩家所在都道府县的题目，不足时出全国题。
var quizBank = []Quiz{
	{Question: "東京都の都庁所在地はどこ？", Options: []string{"新宿区", "千代田区", "渋谷区", "港区"}, Correct: 0, Prefecture: "東京都"},
	{Question: "大阪府の名物「たこ焼き」の主な具材は？", Options: []string{"イカ", "タコ", "エビ", "ホタテ"}, Correct: 1, Prefecture: "大阪府"},
	{Question: "北海道で最も人口が多い都市は？", Options: []string{"函館市", "旭川市", "札幌市", "釧路市"}, Correct: 2, Prefecture: "北海道"},
	{Question: "京都府にある金閣寺の正式名称は？", Options: []string{"慈照寺", "鹿苑寺", "清水寺", "東福寺"}, Correct: 1, Prefecture: "京都府"},
	{Question: "沖縄県の県庁所在地は？", Options: []string{"宜野湾市", "沖縄市", "名護市", "那覇市"}, Correct: 3, Prefecture: "沖縄県"},
	{Question: "福岡県の名物ラーメンといえば？", Options: []string{"味噌ラーメン", "豚骨ラーメン", "塩ラーメン", "醤油ラーメン"}, Correct: 1, Prefecture: "福岡県"},
	{Question: "日本で一番高い山は？", Options: []string{"北岳", "富士山", "奥穂高岳", "間ノ岳"}, Correct: 1},
	{Question: "日本で一番面積が大きい都道府県は？", Options: []string{"岩手県", "長野県", "北海道", "福島県"}, Correct: 2},
	{Question: "日本の郵便番号は何桁？", Options: []string{"5桁", "6桁", "7桁", "8桁"}, Correct: 2},
	{Question: "日本一長い川は？", Options: []string{"利根川", "信濃川", "石狩川", "北上川"}, Correct: 1},
	{Question: "都道府県の数はいくつ？", Options: []string{"43", "45", "47", "49"}, Correct: 2},
}

// RandomQuiz 返回一道随机题目，优先匹配玩家的都道府县
func RandomQuiz(prefecture string) Quiz {
	var local []Quiz
	for _, q := range quizBank {
		if q.Prefecture == prefecture {
			local = append(local, q)
		}
	}
	if len(local) > 0 && rand.Intn(2) == 0 {
		return local[rand.Intn(len(local))]
	}
	return quizBank[rand.Intn(len(quizBank))]
}
