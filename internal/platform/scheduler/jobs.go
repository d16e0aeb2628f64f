package scheduler

import (
	"fmt"
	"time"

	"github.com/mascodex/game-backend/internal/amoeba"
	"github.com/mascodex/game-backend/internal/platform/config"
	"github.com/mascodex/game-backend/internal/platform/database"
	"github.com/mascodex/game-backend/internal/summary"
)

// jstLocation 是调度器使用的逻辑时区(UTC+9)
var jstLocation = time.FixedZone("JST", 9*60*60)

// tryAcquire 用SETNX抢占一个幂等锁。
// 进程内调度器和外部cron端点可能在同一逻辑时段内同时触发，
// 谁抢到锁谁执行，其余调用方静默跳过。
func tryAcquire(key string, ttl time.Duration) bool {
	ok, err := database.RDB.SetNX(database.Ctx, key, "1", ttl).Result()
	if err != nil {
		fmt.Printf("警告: 无法抢占幂等锁 %s: %v\n", key, err)
		return false
	}
	return ok
}

// RunSpreadJob 执行一次扩散模拟，同一逻辑小时只执行一次。
// 返回是否真正执行了本次任务。
func RunSpreadJob(now time.Time) (bool, *amoeba.SpreadResult, error) {
	key := "cron:spread:" + now.In(jstLocation).Format("2006-01-02T15")
	if !tryAcquire(key, 2*time.Hour) {
		return false, nil, nil
	}

	result, err := amoeba.RunSpread()
	if err != nil {
		return true, nil, err
	}
	return true, result, nil
}

// RunSpawnJob 执行一次アメーバ生成，同一JST日只执行一次
func RunSpawnJob(now time.Time) (bool, *amoeba.SpawnResult, error) {
	key := "cron:spawn:" + now.In(jstLocation).Format("2006-01-02")
	if !tryAcquire(key, 48*time.Hour) {
		return false, nil, nil
	}

	result, err := amoeba.RunSpawn(now, config.Cfg.Game.BossWeekday)
	if err != nil {
		return true, nil, err
	}
	return true, result, nil
}

// RunSummaryJob 执行一次每日汇总，同一JST日只执行一次
func RunSummaryJob(now time.Time) (bool, *summary.DailyResult, error) {
	key := "cron:summary:" + now.In(jstLocation).Format("2006-01-02")
	if !tryAcquire(key, 48*time.Hour) {
		return false, nil, nil
	}

	result, err := summary.RunDailySummary(now)
	if err != nil {
		return true, nil, err
	}
	return true, result, nil
}
