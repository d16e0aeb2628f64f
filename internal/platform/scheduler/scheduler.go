package scheduler

import (
	"fmt"
	"time"

	"github.com/mascodex/game-backend/internal/platform/config"
	"github.com/mascodex/game-backend/pkg/lifecycle"
)

// Start 启动进程内调度器：
//   - 扩散任务按配置的间隔执行
//   - 生成与每日汇总在JST午夜后执行
//
// 所有等待都通过生命周期句柄完成，停机信号会让循环立即退出。
// 幂等锁保证与外部cron端点并存时任务不会重复执行。
func Start(manager *lifecycle.Manager) error {
	spreadHandle, err := manager.NewServiceHandle("scheduler-spread")
	if err != nil {
		return err
	}
	go runSpreadLoop(spreadHandle)

	dailyHandle, err := manager.NewServiceHandle("scheduler-daily")
	if err != nil {
		return err
	}
	go runDailyLoop(dailyHandle)

	return nil
}

func runSpreadLoop(handle *lifecycle.Handle) {
	defer handle.Close()

	interval := time.Duration(config.Cfg.Game.SpreadIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	for {
		if err := handle.Sleep(interval); err != nil {
			fmt.Println("调度器: 扩散循环收到停机信号，退出。")
			return
		}

		ran, result, err := RunSpreadJob(time.Now())
		if err != nil {
			fmt.Printf("调度器: 扩散任务失败: %v\n", err)
			continue
		}
		if ran && result != nil {
			fmt.Printf("调度器: 扩散完成, 处理%d只, 新感染%d处, 总伤害%d\n",
				result.Processed, result.NewInfections, result.TotalDamage)
		}
	}
}

// untilNextMidnightJST 返回距下一个JST午夜的时长
func untilNextMidnightJST(now time.Time) time.Duration {
	nowJST := now.In(jstLocation)
	next := time.Date(nowJST.Year(), nowJST.Month(), nowJST.Day(), 0, 0, 0, 0, jstLocation).
		AddDate(0, 0, 1)
	return next.Sub(nowJST)
}

func runDailyLoop(handle *lifecycle.Handle) {
	defer handle.Close()

	for {
		if err := handle.Sleep(untilNextMidnightJST(time.Now())); err != nil {
			fmt.Println("调度器: 每日循环收到停机信号，退出。")
			return
		}

		now := time.Now()
		if _, _, err := RunSpawnJob(now); err != nil {
			fmt.Printf("调度器: 生成任务失败: %v\n", err)
		}
		if _, _, err := RunSummaryJob(now); err != nil {
			fmt.Printf("调度器: 每日汇总失败: %v\n", err)
		}

		// 跨过午夜边界，避免同一逻辑日被立即重算
		if err := handle.Sleep(time.Minute); err != nil {
			return
		}
	}
}
