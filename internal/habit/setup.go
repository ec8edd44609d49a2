package habit

import (
	"encoding/json"
	"fmt"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
)

// PrimeCachedDB 负责初始化habit模块的数据库和Redis缓存
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
	if err := database.DB.AutoMigrate(&Habit{}); err != nil {
		return fmt.Errorf("无法迁移habit表: %w", err)
	}
	fmt.Println("Habit数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载全部习惯的静态展示数据和连续天数缓存到Redis。
// 注意：此函数不加锁，调用方需要在单线程启动或重建锁下调用。
func WarmupCache() error {
	var habits []Habit
	if err := database.DB.Find(&habits).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取习惯数据: %w", err)
	}

	pipe := database.RDB.Pipeline()
	// 先清空旧缓存，确保数据一致性
	pipe.Del(database.Ctx, InfoKey, StreaksKey)

	for i := range habits {
		h := &habits[i]
		info := HabitInfo{
			Name:     h.Name,
			Type:     h.Type,
			Icon:     h.Icon,
			UserUUID: h.UserUUID,
		}
		infoJSON, _ := json.Marshal(info)
		pipe.HSet(database.Ctx, InfoKey, h.UUID, infoJSON)
		pipe.HSet(database.Ctx, StreaksKey, h.UUID, h.StreakCount)
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热习惯数据到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 条习惯数据到Redis。\n", len(habits))
	return nil
}
