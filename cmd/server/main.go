package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/madtung/sanghak2/config"
	"github.com/madtung/sanghak2/internal/api/handler"
	"github.com/madtung/sanghak2/internal/api/router"
	"github.com/madtung/sanghak2/internal/ledger"
	"github.com/madtung/sanghak2/internal/repository"
	"github.com/madtung/sanghak2/internal/service"
	"github.com/madtung/sanghak2/internal/ws"
	"github.com/madtung/sanghak2/pkg/database"
	"github.com/madtung/sanghak2/pkg/jwt"
	applogger "github.com/madtung/sanghak2/pkg/logger"
	"github.com/madtung/sanghak2/pkg/queue"
	"github.com/madtung/sanghak2/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("SANGHAK_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("timezone", cfg.Kiosk.Timezone),
	)

	// 3. 连接数据库并执行迁移
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if _, err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：失败时登出黑名单与登录限流降级）
	var (
		rdb       *redis.Client
		blacklist service.TokenBlacklist
		deps      router.Deps
	)
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单与登录限流将不可用", zap.Error(err))
		rdb = nil
	} else {
		// 仅在连接成功时赋值，避免 nil 指针被包装成非 nil 接口
		blacklist = rdb
		deps.Tokens = rdb
		deps.Limiter = rdb
	}

	// 5. 事件队列（可选）
	var publisher service.EventPublisher
	if pub := queue.NewPublisher(&cfg.Queue, logger); pub != nil {
		publisher = pub
	} else {
		logger.Info("未配置 queue.url，台账事件不发布")
	}

	// 6. 现况看板推送
	hub := ws.NewStatusHub(logger)
	go hub.Run()

	// 7. 加载台账
	repo := repository.NewRepository(db)
	store := service.NewLedgerStore(repo.Record, func() ledger.State {
		return ledger.Defaults(cfg.Kiosk.InitialAdminPassword)
	}, hub, logger)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = store.Load(loadCtx)
	loadCancel()
	if err != nil {
		logger.Fatal("加载台账失败", zap.Error(err))
	}

	l, err := service.NewLedger(&cfg.Kiosk, store)
	if err != nil {
		logger.Fatal("初始化台账失败", zap.Error(err))
	}

	// 8. 依赖注入: Service → Handler → Router
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, l, jwtMgr, blacklist, publisher, logger)
	h := handler.NewHandler(svc)

	deps.JWT = jwtMgr
	deps.Hub = hub
	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(cfg, h, deps, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	hub.Stop()
	svc.Events.Close()

	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
