package habit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// --- Redis 键名常量 ---

const (
	// InfoKey 是一个Redis Hash的键，缓存所有习惯的静态展示数据。
	// Field: 习惯的UUID
	// Value: HabitInfo 结构体的JSON序列化字符串
	InfoKey = "habit:info"

	// StreaksKey 是一个Redis Hash的键，缓存每个习惯当前连续天数。
	// Field: 习惯的UUID
	// Value: 十进制整数字符串
	StreaksKey = "habit:streaks"
)

// HabitInfo 定义了在Redis habit:info 哈希表中存储的静态展示数据
type HabitInfo struct {
	Name     string    `json:"name"`
	Type     HabitType `json:"type"`
	Icon     string    `json:"icon"`
	UserUUID string    `json:"userUuid"`
}

// --- 并发控制 ---

// repoMutex 是模块内部的全局读写锁，
// 保护对本模块管理的Redis键的并发访问。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() { repoMutex.Lock() }

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() { repoMutex.Unlock() }

// RLockRepository 封装了对模块全局锁的读锁定操作。
func RLockRepository() { repoMutex.RLock() }

// RUnlockRepository 封装了对模块全局锁的读解锁操作。
func RUnlockRepository() { repoMutex.RUnlock() }

// --- SQLite 访问 ---

// GetByUUID 按UUID查询单个习惯。未找到时返回 (nil, nil)。
func GetByUUID(uuid string) (*Habit, error) {
	var h Habit
	err := database.DB.Where("uuid = ?", uuid).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("无法查询习惯 %s: %w", uuid, err)
	}
	return &h, nil
}

// ListByUser 查询某用户的全部习惯，按创建时间升序。
func ListByUser(userUUID string) ([]Habit, error) {
	var habits []Habit
	err := database.DB.Where("user_uuid = ?", userUUID).Order("created_at asc").Find(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询用户 %s 的习惯列表: %w", userUUID, err)
	}
	return habits, nil
}

// ListActive 查询所有未删除的习惯，提醒巡查器使用。
func ListActive() ([]Habit, error) {
	var habits []Habit
	if err := database.DB.Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("无法查询习惯列表: %w", err)
	}
	return habits, nil
}

// --- Redis 缓存读取 ---

// GetCachedInfo 从Redis读取单个习惯的静态展示数据。缓存未命中时返回 (nil, nil)。
func GetCachedInfo(uuid string) (*HabitInfo, error) {
	infoJSON, err := database.RDB.HGet(database.Ctx, InfoKey, uuid).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取习惯 %s 的静态数据: %w", uuid, err)
	}
	var info HabitInfo
	if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
		return nil, fmt.Errorf("无法解析习惯 %s 的静态数据: %w", uuid, err)
	}
	return &info, nil
}

// GetCachedStreak 从Redis读取习惯当前连续天数。
// 第二个返回值表示缓存是否命中。
func GetCachedStreak(uuid string) (int, bool, error) {
	val, err := database.RDB.HGet(database.Ctx, StreaksKey, uuid).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("无法从Redis读取习惯 %s 的连续天数: %w", uuid, err)
	}
	streak, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("无法解析习惯 %s 的连续天数缓存: %w", uuid, err)
	}
	return streak, true, nil
}

// --- Redis 缓存写入 ---

// cacheHabitInfo 将单个习惯的静态展示数据写入Redis缓存。
func cacheHabitInfo(h *Habit) error {
	info := HabitInfo{
		Name:     h.Name,
		Type:     h.Type,
		Icon:     h.Icon,
		UserUUID: h.UserUUID,
	}
	infoJSON, _ := json.Marshal(info)
	if err := database.RDB.HSet(database.Ctx, InfoKey, h.UUID, infoJSON).Err(); err != nil {
		return fmt.Errorf("无法缓存习惯 %s 的静态数据: %w", h.UUID, err)
	}
	return nil
}

// dropHabitCache 将单个习惯从Redis缓存中移除。
func dropHabitCache(uuid string) {
	pipe := database.RDB.Pipeline()
	pipe.HDel(database.Ctx, InfoKey, uuid)
	pipe.HDel(database.Ctx, StreaksKey, uuid)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("警告: 无法清除习惯 %s 的缓存: %v\n", uuid, err)
	}
}

// CacheStreak 将习惯的当前连续天数写入Redis缓存。
func CacheStreak(uuid string, streak int) error {
	return database.RDB.HSet(database.Ctx, StreaksKey, uuid, streak).Err()
}
