package startup

import (
	"context"
	"fmt"

	"github.com/SlpAus/habitforge-backend/internal/badge"
	"github.com/SlpAus/habitforge-backend/internal/checkin"
	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/internal/platform/backup"
	"github.com/SlpAus/habitforge-backend/internal/platform/metadata"
	"github.com/SlpAus/habitforge-backend/internal/reward"
	"github.com/SlpAus/habitforge-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := habit.PrimeCachedDB(); err != nil {
		return err
	}
	if err := checkin.PrimeDB(); err != nil {
		return err
	}
	if err := reward.PrimeDB(); err != nil {
		return err
	}
	if err := badge.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	err := func() error {
		habit.LockRepository()
		defer habit.UnlockRepository()
		if err := habit.WarmupCache(); err != nil {
			return err
		}

		user.LockRepository()
		defer user.UnlockRepository()
		return user.WarmupCache()
	}()
	if err != nil {
		return err
	}

	// 触发一次新的快照，让SQLite尽快追上重建后的缓存
	fmt.Println("缓存热重建完成，正在触发一次新的数据快照...")
	if err := backup.CreateConsistentSnapshotInDB(context.Background()); err != nil {
		fmt.Printf("警告: 缓存热重建后的快照创建失败: %v\n", err)
	} else {
		fmt.Println("快照创建成功！")
	}

	return nil
}
