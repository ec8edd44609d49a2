package metadata

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- 通用访问器 ---

// GetValue 从metadata表中读取给定key的值。
// key不存在时返回空字符串，这是一个合法的默认值。
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue 以upsert的方式写入给定key的值。
// 使用GORM的OnConflict子句保证原子性。
func SetValue(db *gorm.DB, key, value string) error {
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// --- 类型转换辅助函数 ---

// GetLastSnapshotAt 读取并解析最近一次快照时间。
// 没有快照记录时返回零值时间。
func GetLastSnapshotAt(db *gorm.DB) (time.Time, error) {
	valueStr, err := GetValue(db, LastSnapshotAtKey)
	if err != nil {
		return time.Time{}, err
	}
	if valueStr == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, valueStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("无法解析元数据 '%s' 的值: %w", LastSnapshotAtKey, err)
	}
	return t, nil
}

// SetLastSnapshotAt 格式化并写入最近一次快照时间。
func SetLastSnapshotAt(db *gorm.DB, t time.Time) error {
	return SetValue(db, LastSnapshotAtKey, t.Format(time.RFC3339))
}

// GetSnapshotCount 读取并解析快照总次数。
func GetSnapshotCount(db *gorm.DB) (uint64, error) {
	valueStr, err := GetValue(db, SnapshotCountKey)
	if err != nil {
		return 0, err
	}
	if valueStr == "" {
		return 0, nil
	}
	count, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析元数据 '%s' 的值: %w", SnapshotCountKey, err)
	}
	return count, nil
}

// SetSnapshotCount 格式化并写入快照总次数。
func SetSnapshotCount(db *gorm.DB, count uint64) error {
	return SetValue(db, SnapshotCountKey, strconv.FormatUint(count, 10))
}
