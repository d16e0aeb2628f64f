package district

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// AdjacencyMap 是地区编码到相邻编码列表的映射
type AdjacencyMap map[string][]string

// GetAdjacency 返回地区邻接图。
// 优先读取Redis缓存；缓存未命中时从地区表重建并写回（24小时TTL）。
func GetAdjacency() (AdjacencyMap, error) {
	cached, err := database.RDB.Get(database.Ctx, AdjacencyKey).Result()
	if err == nil {
		var adjacency AdjacencyMap
		if jsonErr := json.Unmarshal([]byte(cached), &adjacency); jsonErr == nil {
			return adjacency, nil
		}
		// 缓存损坏时走重建路径
	} else if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("读取邻接图缓存失败: %w", err)
	}

	adjacency, err := buildAdjacency()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(adjacency)
	if err != nil {
		return nil, fmt.Errorf("无法序列化邻接图: %w", err)
	}
	if err := database.RDB.Set(database.Ctx, AdjacencyKey, payload, AdjacencyTTL).Err(); err != nil {
		return nil, fmt.Errorf("无法缓存邻接图: %w", err)
	}

	return adjacency, nil
}

// buildAdjacency 从地区表推导邻接图：
// 同一都道府县内编码排序后的前后邻居，加上跨县的±1数字邻居（边界地区）。
func buildAdjacency() (AdjacencyMap, error) {
	var districts []District
	if err := database.DB.Order("code").Find(&districts).Error; err != nil {
		return nil, fmt.Errorf("无法读取地区列表: %w", err)
	}

	exists := make(map[string]bool, len(districts))
	for _, d := range districts {
		exists[d.Code] = true
	}

	adjacency := make(AdjacencyMap, len(districts))
	for i, d := range districts {
		neighbors := []string{}

		// 同县内排序后的前一个编码
		if i > 0 && districts[i-1].Prefecture == d.Prefecture {
			neighbors = append(neighbors, districts[i-1].Code)
		}
		// 同县内排序后的后一个编码
		if i < len(districts)-1 && districts[i+1].Prefecture == d.Prefecture {
			neighbors = append(neighbors, districts[i+1].Code)
		}

		// 跨县的±1数字邻居
		codeNum, err := strconv.Atoi(d.Code)
		if err == nil {
			prev := fmt.Sprintf("%03d", codeNum-1)
			next := fmt.Sprintf("%03d", codeNum+1)
			if exists[prev] && !contains(neighbors, prev) {
				neighbors = append(neighbors, prev)
			}
			if exists[next] && !contains(neighbors, next) {
				neighbors = append(neighbors, next)
			}
		}

		adjacency[d.Code] = neighbors
	}

	return adjacency, nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
