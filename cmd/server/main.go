package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/wasilah/csr/internal/config"
	"github.com/wasilah/csr/internal/database"
	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/logic"
	"github.com/wasilah/csr/internal/router"
	"github.com/wasilah/csr/internal/task"
	"github.com/wasilah/csr/internal/upload"
	"github.com/wasilah/csr/internal/wizard"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	setupLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化上传通道与创建向导
	uploadManager := upload.NewManager(cfg.Upload)
	wizardManager := wizard.NewManager(logic.NewDraftLogic(db), uploadManager)

	// 初始化路由
	r := router.Setup(db, wizardManager, cfg)

	// 启动定时任务
	taskManager := task.Start(db, cfg)
	defer taskManager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupLogger 按配置初始化全局日志器
func setupLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.GetLevel())

	var l *logger.Logger
	var err error
	if cfg.GetOutput() == "file" && cfg.GetFile() != "" {
		l, err = logger.NewWithFileRotation(level, cfg.GetFile())
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
