package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/habitforge-backend/api"
	"github.com/SlpAus/habitforge-backend/internal/platform/backup"
	"github.com/SlpAus/habitforge-backend/internal/platform/config"
	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/SlpAus/habitforge-backend/internal/platform/health"
	"github.com/SlpAus/habitforge-backend/internal/platform/shutdown"
	"github.com/SlpAus/habitforge-backend/internal/platform/startup"
	"github.com/SlpAus/habitforge-backend/internal/reminder"
	"github.com/SlpAus/habitforge-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 缺失不是错误，环境变量仍可直接注入
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 1. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 2. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 4. 创建两阶段停机的生命周期管理器，并启动后台服务
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	healthHandle, err := forcefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	reminderHandle, err := gracefulMgr.NewServiceHandle("reminder-poller")
	if err != nil {
		panic(err)
	}
	go reminder.StartPoller(reminderHandle)

	backupHandle, err := gracefulMgr.NewServiceHandle("backup-scheduler")
	if err != nil {
		panic(err)
	}
	go backup.StartBackupScheduler(backupHandle)

	// 5. 组装Gin引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// 6. 异步启动HTTP服务器
	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("服务器启动失败: " + err.Error())
		}
	}()

	// 7. 阻塞等待停机信号，执行两阶段优雅停机与最终快照
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
