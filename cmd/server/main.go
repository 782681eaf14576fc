package main

import (
	"os"
	"strings"
	"syscall"

	"github.com/storeadmin/internal/app"
	"github.com/storeadmin/internal/config"
	"github.com/storeadmin/internal/logger"
	"github.com/storeadmin/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Env, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if !cfg.Server.IsDevelopment() {
		if isWeakSecret(cfg.JWT.Secret) {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.JWT.Secret) {
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	defer func() {
		if err := models.CloseDB(); err != nil {
			stdLog.Printf("警告: 关闭数据库连接失败: %v", err)
		}
	}()

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化内置角色、权限与默认管理员
	defaultAdminEmail := os.Getenv("SA_DEFAULT_ADMIN_EMAIL")
	defaultAdminPass := os.Getenv("SA_DEFAULT_ADMIN_PASSWORD")
	if !cfg.Server.IsDevelopment() && defaultAdminPass == "" {
		stdLog.Printf("警告: 未设置 SA_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
	} else if err := models.InitDefaults(defaultAdminEmail, defaultAdminPass); err != nil {
		stdLog.Printf("警告: 初始化默认数据失败: %v", err)
	}

	// 设置 Gin 模式
	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
