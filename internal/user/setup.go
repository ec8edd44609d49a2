package user

import (
	"encoding/json"
	"fmt"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// PrimeCachedDB 是user模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	fmt.Println("User数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载所有用户，预热已知用户集合、统计缓存和积分榜。
// 注意：此函数不加锁，调用方需要在单线程启动或重建锁下调用。
func WarmupCache() error {
	var users []User
	if err := database.DB.Find(&users).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取用户数据: %w", err)
	}

	pipe := database.RDB.Pipeline()
	// 先清空旧缓存，确保数据一致性
	pipe.Del(database.Ctx, KnownUsersKey, StatsKey, RankingKey)

	for i := range users {
		u := &users[i]
		pipe.SAdd(database.Ctx, KnownUsersKey, u.UUID)

		stats := UserStats{
			TotalPoints:   u.TotalPoints,
			CurrentStreak: u.CurrentStreak,
			BestStreak:    u.BestStreak,
		}
		statsJSON, _ := json.Marshal(stats)
		pipe.HSet(database.Ctx, StatsKey, u.UUID, statsJSON)
		pipe.ZAdd(database.Ctx, RankingKey, redis.Z{
			Score:  float64(u.TotalPoints),
			Member: u.UUID,
		})
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热用户数据到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个用户到Redis。\n", len(users))
	return nil
}

// SnapshotToDB 将Redis中的用户实时统计落盘回SQLite。
// 由backup模块周期性调用，以及停机时做最终快照。
func SnapshotToDB() error {
	statsMap, err := database.RDB.HGetAll(database.Ctx, StatsKey).Result()
	if err != nil {
		return fmt.Errorf("无法从Redis读取用户统计: %w", err)
	}

	for uuidStr, statsJSON := range statsMap {
		var stats UserStats
		if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
			fmt.Printf("警告: 跳过无法解析的用户统计 %s: %v\n", uuidStr, err)
			continue
		}
		err := database.DB.Model(&User{}).Where("uuid = ?", uuidStr).Updates(map[string]interface{}{
			"total_points":   stats.TotalPoints,
			"current_streak": stats.CurrentStreak,
			"best_streak":    stats.BestStreak,
		}).Error
		if err != nil {
			return fmt.Errorf("无法将用户 %s 的统计写回SQLite: %w", uuidStr, err)
		}
	}
	return nil
}
