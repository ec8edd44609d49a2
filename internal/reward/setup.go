package reward

import (
	"fmt"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
)

// PrimeDB 确保积分流水表结构存在。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&RewardEvent{}); err != nil {
		return fmt.Errorf("无法迁移RewardEvent表: %w", err)
	}
	return nil
}
