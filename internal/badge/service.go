package badge

import (
	"fmt"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
)

// ListForUser 返回某用户已获得的全部徽章，按颁发时间升序。
func ListForUser(userUUID string) ([]Badge, error) {
	var badges []Badge
	err := database.DB.Where("user_uuid = ?", userUUID).Order("date_earned asc").Find(&badges).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询用户 %s 的徽章: %w", userUUID, err)
	}
	return badges, nil
}

// EvaluateAndAward 以当前连续天数驱动一次徽章结算：
// 查出已持有的徽章，计算新跨越的里程碑，并持久化新徽章。
// 返回本次新获得的徽章列表（可能为空）。
func EvaluateAndAward(userUUID string, currentStreak int, now time.Time) ([]Badge, error) {
	owned, err := ListForUser(userUUID)
	if err != nil {
		return nil, err
	}

	ownedIDs := make(map[string]bool, len(owned))
	for _, b := range owned {
		ownedIDs[b.BadgeID] = true
	}

	newBadges := NewBadges(currentStreak, ownedIDs, now)
	if len(newBadges) == 0 {
		return nil, nil
	}

	for i := range newBadges {
		newBadges[i].UserUUID = userUUID
	}
	if err := database.DB.Create(&newBadges).Error; err != nil {
		return nil, fmt.Errorf("无法持久化用户 %s 的新徽章: %w", userUUID, err)
	}
	return newBadges, nil
}
