package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// --- Redis 键名常量 ---

const (
	// StatsKey 是一个Redis Hash的键，存储每个用户的实时奖励统计。
	// Field: 用户的UUID
	// Value: UserStats 结构体的JSON序列化字符串
	StatsKey = "user:stats"

	// RankingKey 是一个Redis Sorted Set的键，按总积分对用户排名（积分榜）。
	// Score: 用户的TotalPoints
	// Member: 用户的UUID
	RankingKey = "user:ranking"
)

// UserStats 定义了在Redis user:stats 哈希表中以JSON格式存储的实时统计数据
type UserStats struct {
	TotalPoints   int `json:"totalPoints"`
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
}

// --- 并发控制 ---

// repoMutex 是模块内部的全局读写锁。
// 奖励结算是对单个User的读-改-写序列，必须在写锁下执行，
// 防止同日并发打卡造成重复计分。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() { repoMutex.Lock() }

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() { repoMutex.Unlock() }

// RLockRepository 封装了对模块全局锁的读锁定操作。
func RLockRepository() { repoMutex.RLock() }

// RUnlockRepository 封装了对模块全局锁的读解锁操作。
func RUnlockRepository() { repoMutex.RUnlock() }

// --- 数据访问 ---

// GetByUUID 按UUID查询单个用户。未找到时返回 (nil, nil)。
func GetByUUID(uuidStr string) (*User, error) {
	var u User
	err := database.DB.Where("uuid = ?", uuidStr).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("无法查询用户 %s: %w", uuidStr, err)
	}
	return &u, nil
}

// GetCachedStats 从Redis读取用户的实时统计。缓存未命中时返回 (nil, nil)。
func GetCachedStats(uuidStr string) (*UserStats, error) {
	statsJSON, err := database.RDB.HGet(database.Ctx, StatsKey, uuidStr).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取用户 %s 的统计: %w", uuidStr, err)
	}
	var stats UserStats
	if err := json.Unmarshal([]byte(statsJSON), &stats); err != nil {
		return nil, fmt.Errorf("无法解析用户 %s 的统计: %w", uuidStr, err)
	}
	return &stats, nil
}

// CacheStats 将用户的实时统计写入Redis，并同步积分榜。
func CacheStats(uuidStr string, stats UserStats) error {
	statsJSON, _ := json.Marshal(stats)
	pipe := database.RDB.Pipeline()
	pipe.HSet(database.Ctx, StatsKey, uuidStr, statsJSON)
	pipe.ZAdd(database.Ctx, RankingKey, redis.Z{
		Score:  float64(stats.TotalPoints),
		Member: uuidStr,
	})
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法写入用户 %s 的统计缓存: %w", uuidStr, err)
	}
	return nil
}
