package badge

import (
	"fmt"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
)

// PrimeDB 负责初始化badge模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Badge{}); err != nil {
		return fmt.Errorf("无法迁移badge表: %w", err)
	}
	fmt.Println("Badge数据库表迁移成功。")
	return nil
}
