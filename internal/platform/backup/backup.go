package backup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/platform/config"
	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/SlpAus/habitforge-backend/internal/platform/metadata"
	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/SlpAus/habitforge-backend/pkg/lifecycle"
)

var backupMutex sync.Mutex // 避免定时快照与停机快照竞态

// StartBackupScheduler 启动后台Goroutine来定期把Redis中的实时统计落盘。
// 它接收一个lifecycle.Handle来管理其生命周期。
func StartBackupScheduler(handle *lifecycle.Handle) {
	defer handle.Close() // 确保在退出时通知管理器
	fmt.Println("用户数据快照调度器已启动。")

	interval := config.Cfg.Backup.SnapshotInterval
	for {
		// 使用可中断的休眠来代替ticker。
		// 这使得整个循环可以在收到停机信号时立刻从休眠中唤醒并退出。
		if err := handle.Sleep(interval); err != nil {
			fmt.Println("快照调度器: 休眠被中断，正在关闭...")
			return
		}

		if !database.IsRedisHealthy() {
			fmt.Println("快照调度器: 检测到Redis不可用，跳过本次快照。")
			continue
		}

		fmt.Println("快照调度器: 正在执行定时快照...")
		if err := CreateConsistentSnapshotInDB(handle.Ctx()); err != nil {
			// 停机信号导致的错误静默退出
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("快照调度器错误: 执行快照失败: %v\n", err)
			}
		} else {
			fmt.Println("快照调度器: 快照成功。")
		}
	}
}

// CreateConsistentSnapshotInDB 执行一次一致的快照落盘：
// 在user模块的写锁下读取并回写全部用户统计，随后更新快照元数据。
// 写锁阻塞结算期间的读-改-写序列，保证快照不会落到半次结算中间。
func CreateConsistentSnapshotInDB(ctx context.Context) error {
	backupMutex.Lock()
	defer backupMutex.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := func() error {
		user.LockRepository()
		defer user.UnlockRepository()
		return user.SnapshotToDB()
	}()
	if err != nil {
		return err
	}

	now := time.Now()
	if err := metadata.SetLastSnapshotAt(database.DB, now); err != nil {
		return fmt.Errorf("更新快照时间元数据失败: %w", err)
	}
	count, err := metadata.GetSnapshotCount(database.DB)
	if err != nil {
		return fmt.Errorf("读取快照计数元数据失败: %w", err)
	}
	if err := metadata.SetSnapshotCount(database.DB, count+1); err != nil {
		return fmt.Errorf("更新快照计数元数据失败: %w", err)
	}
	return nil
}
