package api

import (
	"github.com/SlpAus/habitforge-backend/internal/badge"
	"github.com/SlpAus/habitforge-backend/internal/checkin"
	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/internal/reminder"
	"github.com/SlpAus/habitforge-backend/internal/reward"
	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	// 所有业务路由都依赖Cookie身份，中间件统一挂在组上
	api.Use(user.EnsureUserCookieMiddleware())
	{
		// 习惯相关的路由组 /api/habits
		habitRoutes := api.Group("/habits")
		{
			habitRoutes.POST("", habit.CreateHabitHandler)
			habitRoutes.GET("", habit.ListHabitsHandler)
			habitRoutes.GET("/:id", habit.GetHabitHandler)
			habitRoutes.PUT("/:id", habit.UpdateHabitHandler)
			habitRoutes.DELETE("/:id", habit.DeleteHabitHandler)

			// 打卡与分析
			habitRoutes.POST("/:id/checkins", checkin.RecordCheckInHandler)
			habitRoutes.GET("/:id/checkins", checkin.ListCheckInsHandler)
			habitRoutes.POST("/:id/confirmation", checkin.ConfirmDayHandler)
			habitRoutes.GET("/:id/analytics", checkin.GetAnalyticsHandler)
		}

		// 用户相关的路由组 /api/user
		userRoutes := api.Group("/user")
		{
			userRoutes.GET("/profile", reward.GetProfileHandler)
			userRoutes.GET("/badges", badge.GetBadgesHandler)
			userRoutes.GET("/leaderboard", user.GetLeaderboardHandler)
			userRoutes.GET("/history/:habitId", reward.GetHistoryHandler)
		}

		// 提醒相关的路由 /api/reminders
		api.GET("/reminders/pending", reminder.GetPendingHandler)
	}
}
