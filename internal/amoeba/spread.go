package amoeba

import (
	"fmt"

	"github.com/mascodex/game-backend/internal/district"
	"github.com/mascodex/game-backend/internal/platform/database"
)

// SpreadResult 汇总一次扩散tick的统计
type SpreadResult struct {
	Processed     int `json:"processed"`
	NewInfections int `json:"newInfections"`
	TotalDamage   int `json:"totalDamage"`
}

// chooseInfectionTarget 从候选地区中选择感染目标：
// 跳过已陷落的地区，取当前HP最低者；没有可选目标时返回nil
func chooseInfectionTarget(candidates []district.District) *district.District {
	var target *district.District
	for i := range candidates {
		d := &candidates[i]
		if d.Status == district.StatusFallen {
			continue
		}
		if target == nil || d.Hp < target.Hp {
			target = d
		}
	}
	return target
}

// adjacentUninfected 计算一只アメーバ足迹的扩散前沿：
// 所有与足迹相邻、且自身尚未被感染的地区编码
func adjacentUninfected(infected []string, adjacency district.AdjacencyMap) []string {
	infectedSet := make(map[string]bool, len(infected))
	for _, code := range infected {
		infectedSet[code] = true
	}

	seen := make(map[string]bool)
	var frontier []string
	for _, code := range infected {
		for _, neighbor := range adjacency[code] {
			if infectedSet[neighbor] || seen[neighbor] {
				continue
			}
			seen[neighbor] = true
			frontier = append(frontier, neighbor)
		}
	}
	return frontier
}

// spreadOne 推进单只アメーバ一步：扩散、持续伤害、前沿压力
func spreadOne(a *Amoeba, adjacency district.AdjacencyMap, result *SpreadResult) error {
	infected, err := InfectedDistricts(a.ID)
	if err != nil {
		return err
	}
	if len(infected) == 0 {
		return nil
	}

	// 1. 向前沿中HP最低的未陷落地区扩散，并施加初始扩散伤害(强度×5)
	frontier := adjacentUninfected(infected, adjacency)
	if len(frontier) > 0 {
		var candidates []district.District
		if err := database.DB.Where("code IN ?", frontier).Find(&candidates).Error; err != nil {
			return fmt.Errorf("无法读取前沿地区: %w", err)
		}
		if target := chooseInfectionTarget(candidates); target != nil {
			if err := AddInfection(a.ID, target.Code); err != nil {
				return fmt.Errorf("无法感染地区 %s: %w", target.Code, err)
			}
			infected = append(infected, target.Code)
			spreadDamage := a.Strength * 5
			if err := district.ApplyDamage(target.Code, spreadDamage); err != nil {
				return err
			}
			result.NewInfections++
			result.TotalDamage += spreadDamage
		}
	}

	// 2. 对全部已感染地区施加持续伤害(强度×2)
	for _, code := range infected {
		continuingDamage := a.Strength * 2
		if err := district.ApplyDamage(code, continuingDamage); err != nil {
			return err
		}
		result.TotalDamage += continuingDamage
	}

	// 3. 对相邻未感染地区施加前沿压力(强度×1)，模拟扩散锋面
	for _, code := range adjacentUninfected(infected, adjacency) {
		if err := district.ApplyDamage(code, a.Strength); err != nil {
			return err
		}
		result.TotalDamage += a.Strength
	}

	return nil
}

// RunSpread 执行一次完整的扩散tick。
// 逐只推进活跃アメーバ（单只失败不影响其余），随后执行全局回复
// 与全量状态重算。玩家行动已把HP打到0的个体在同一趟中被停用。
func RunSpread() (*SpreadResult, error) {
	result := &SpreadResult{}

	amoebas, err := ListActive()
	if err != nil {
		return nil, err
	}
	if len(amoebas) == 0 {
		return result, nil
	}

	adjacency, err := district.GetAdjacency()
	if err != nil {
		return nil, err
	}

	for i := range amoebas {
		a := &amoebas[i]
		if err := spreadOne(a, adjacency, result); err != nil {
			fmt.Printf("警告: アメーバ %s 的扩散处理失败: %v\n", a.ID, err)
			continue
		}
		result.Processed++

		// 玩家行动的副作用可能已把HP打到0，在本趟中完成停用
		var current Amoeba
		if err := database.DB.Where("id = ?", a.ID).First(&current).Error; err == nil && current.Hp <= 0 {
			if err := Deactivate(a.ID); err != nil {
				fmt.Printf("警告: 无法停用アメーバ %s: %v\n", a.ID, err)
			}
		}
	}

	// 全局自然回复与状态重算
	if err := district.ApplyRecoveryTick(); err != nil {
		return result, err
	}
	if err := district.RefreshAllStatuses(); err != nil {
		return result, err
	}

	return result, nil
}
