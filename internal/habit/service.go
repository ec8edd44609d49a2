package habit

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Service 层 DTO ---

// NewHabitInput 是创建习惯所需的全部业务字段
type NewHabitInput struct {
	Name             string
	Description      string
	Type             HabitType
	Icon             string
	Schedule         Schedule
	Reminders        []string
	ConfirmationTime string
}

// UpdateHabitInput 是更新习惯时允许修改的字段
type UpdateHabitInput struct {
	Name        *string
	Description *string
	Icon        *string
	Schedule    *Schedule
	Reminders   []string
}

// CreateHabit 校验并持久化一个新习惯。
// 新习惯以streakCount=0、totalPointsEarned=0起步，
// 创建日取自调用方显式传入的now。
func CreateHabit(userUUID string, input NewHabitInput, now time.Time) (*Habit, error) {
	if input.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "不能为空"}
	}
	if err := ValidateSchedule(input.Schedule); err != nil {
		return nil, err
	}
	if err := validateVariantFields(input.Type, input.Reminders, input.ConfirmationTime); err != nil {
		return nil, err
	}

	newUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成UUID v7: %w", err)
	}

	h := &Habit{
		UUID:             newUUID.String(),
		UserUUID:         userUUID,
		Name:             input.Name,
		Description:      input.Description,
		Type:             input.Type,
		Icon:             input.Icon,
		ConfirmationTime: input.ConfirmationTime,
		CreatedDay:       civil.DayOf(now),
	}
	if err := h.SetSchedule(input.Schedule); err != nil {
		return nil, err
	}
	if err := h.SetReminders(input.Reminders); err != nil {
		return nil, err
	}

	if err := database.DB.Create(h).Error; err != nil {
		return nil, fmt.Errorf("无法在SQLite中创建习惯: %w", err)
	}

	// 写入缓存失败不影响主流程，缓存会在下次预热时补齐
	if err := cacheHabitInfo(h); err != nil {
		fmt.Printf("警告: %v\n", err)
	}
	return h, nil
}

// UpdateHabit 校验并更新一个已有习惯的可变字段。
// 习惯的类型和创建日一经创建不可更改。
func UpdateHabit(userUUID, habitUUID string, input UpdateHabitInput) (*Habit, error) {
	h, err := GetByUUID(habitUUID)
	if err != nil {
		return nil, err
	}
	if h == nil || h.UserUUID != userUUID {
		return nil, nil
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, &ValidationError{Field: "name", Reason: "不能为空"}
		}
		h.Name = *input.Name
	}
	if input.Description != nil {
		h.Description = *input.Description
	}
	if input.Icon != nil {
		h.Icon = *input.Icon
	}
	if input.Schedule != nil {
		if err := ValidateSchedule(*input.Schedule); err != nil {
			return nil, err
		}
		if err := h.SetSchedule(*input.Schedule); err != nil {
			return nil, err
		}
	}
	if input.Reminders != nil {
		if err := validateVariantFields(h.Type, input.Reminders, h.ConfirmationTime); err != nil {
			return nil, err
		}
		if err := h.SetReminders(input.Reminders); err != nil {
			return nil, err
		}
	}

	if err := database.DB.Save(h).Error; err != nil {
		return nil, fmt.Errorf("无法更新习惯 %s: %w", habitUUID, err)
	}
	if err := cacheHabitInfo(h); err != nil {
		fmt.Printf("警告: %v\n", err)
	}
	return h, nil
}

// DeleteHabit 软删除一个习惯并清除其缓存。
// 返回是否确实删除了属于该用户的习惯。
func DeleteHabit(userUUID, habitUUID string) (bool, error) {
	h, err := GetByUUID(habitUUID)
	if err != nil {
		return false, err
	}
	if h == nil || h.UserUUID != userUUID {
		return false, nil
	}

	if err := database.DB.Delete(h).Error; err != nil {
		return false, fmt.Errorf("无法删除习惯 %s: %w", habitUUID, err)
	}
	dropHabitCache(habitUUID)
	return true, nil
}

// UpdateStreakCount 将重算后的连续天数写入SQLite并同步到Redis缓存。
func UpdateStreakCount(habitUUID string, streak int) error {
	err := database.DB.Model(&Habit{}).Where("uuid = ?", habitUUID).Update("streak_count", streak).Error
	if err != nil {
		return fmt.Errorf("无法更新习惯 %s 的连续天数: %w", habitUUID, err)
	}
	if err := CacheStreak(habitUUID, streak); err != nil {
		fmt.Printf("警告: 无法缓存习惯 %s 的连续天数: %v\n", habitUUID, err)
	}
	return nil
}

// AddPoints 将一次事件的积分变化累加到习惯的累计积分上。
// delta可以为负；累计值永不清零。
func AddPoints(habitUUID string, delta int) error {
	result := database.DB.Model(&Habit{}).Where("uuid = ?", habitUUID).
		Update("total_points_earned", gorm.Expr("total_points_earned + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("无法累加习惯 %s 的积分: %w", habitUUID, result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("习惯不存在，积分未累加")
	}
	return nil
}
