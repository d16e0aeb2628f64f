package summary

import "time"

// PrefectureScore 是每日汇总产出的都道府县防御成绩，
// 同一(都道府县, 统计日)只保留一行，重跑时覆盖。
type PrefectureScore struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Prefecture string `gorm:"index:idx_pref_period,unique" json:"prefecture"`

	// Period 是统计日的JST日期 (YYYY-MM-DD)
	Period string `gorm:"index:idx_pref_period,unique;type:varchar(10)" json:"period"`

	// Score = 防御率·40 + 活跃率·30 + 平均HP率·20 + min(击败数,5)·10
	Score float64 `json:"score"`

	DefenseRate float64 `json:"defenseRate"`
	ActiveRate  float64 `json:"activeRate"`
	AvgHpRate   float64 `json:"avgHpRate"`
	Defeats     int     `json:"defeats"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PrefectureScore) TableName() string {
	return "prefecture_scores"
}
