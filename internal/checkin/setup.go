package checkin

import (
	"fmt"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
)

// PrimeDB 确保打卡记录表结构存在。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&CheckIn{}); err != nil {
		return fmt.Errorf("无法迁移CheckIn表: %w", err)
	}
	return nil
}
