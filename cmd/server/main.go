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
	"go.uber.org/zap/zapcore"

	"github.com/langchou/fleetgazer/internal/api/booking"
	"github.com/langchou/fleetgazer/internal/api/handlers"
	"github.com/langchou/fleetgazer/internal/api/portal"
	"github.com/langchou/fleetgazer/internal/config"
	"github.com/langchou/fleetgazer/internal/repository"
	"github.com/langchou/fleetgazer/internal/service"
	"github.com/langchou/fleetgazer/pkg/ws"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	logger.Info("Starting Fleetgazer", zap.String("port", cfg.ServerPort))

	// 创建 context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 连接数据库
	db, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}
	defer db.Close()

	// 执行数据库迁移
	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database migrated successfully")

	// 快照存储
	store := repository.NewSnapshotRepository(db)

	// 门户与预订 feed 客户端
	portalClient := portal.NewClient(cfg.PortalBaseURL, cfg.PortalSessionCookie)
	bookingClient := booking.NewClient(cfg.BookingAPIHost)

	// 创建 WebSocket Hub
	wsHub := ws.NewHub(logger)
	wsHub.SetInitDataProvider(func() *ws.InitData {
		result, err := service.Dispatch(ctx, store, service.GetVehiclesRequest{})
		if err != nil {
			logger.Warn("Failed to build init data", zap.Error(err))
			return nil
		}
		vehicles := result.(service.VehiclesResult)

		stats, err := service.Dispatch(ctx, store, service.GetStatsRequest{})
		if err != nil {
			logger.Warn("Failed to build init stats", zap.Error(err))
			return nil
		}

		return &ws.InitData{
			Stats:    stats.(service.StatsResult).Stats,
			Vehicles: vehicles.Vehicles,
		}
	})
	go wsHub.Run()

	// 创建扫描服务
	scanService := service.NewScanService(
		cfg,
		logger,
		portalClient,
		bookingClient,
		store,
		wsHub,
	)

	// 启动后自动扫描一次
	if cfg.ScanOnStart {
		go func() {
			if _, err := scanService.Scan(ctx); err != nil {
				logger.Error("Startup scan failed", zap.Error(err))
			}
		}()
	}

	// 创建 HTTP 处理器
	handler := handlers.NewHandler(
		logger,
		store,
		scanService,
		wsHub,
	)

	// 设置 Gin 模式
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// 注册路由
	handler.RegisterRoutes(router)

	// 启动 HTTP 服务器
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", server.Addr))

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 优雅关闭
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, _ := config.Build()
	return logger
}

// corsMiddleware CORS 中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
