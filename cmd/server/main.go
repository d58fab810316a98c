package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/api/handlers"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/config"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/sensor"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/service"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store/seed"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/pkg/ws"
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

	logger.Info("Starting UniPark", zap.String("port", cfg.ServerPort))

	// 初始化内存存储
	st := store.New()
	rngSeed := cfg.RandSeed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))
	if cfg.Seed {
		seed.Populate(st, rng)
		logger.Info("Mock data seeded",
			zap.Int("parkings", len(st.ListParkings())),
			zap.Int("slots", len(st.AllSlots())))
	}

	// 创建 WebSocket Hub
	wsHub := ws.NewHub(logger)
	go wsHub.Run()

	// 创建服务
	reservationSvc := service.NewReservationService(logger, st, wsHub)
	statsSvc := service.NewStatsService(st)
	authSvc := service.NewAuthService(logger, st, cfg)

	// 创建传感器模拟器
	simulator := sensor.New(logger, st, wsHub, cfg.SensorInterval, cfg.SensorPerturb, rng)

	// 新客户端连接时下发当前统计和传感器日志
	wsHub.SetInitDataProvider(func() *ws.InitData {
		return &ws.InitData{
			Stats:     statsSvc.ComputeOverall(),
			SensorLog: simulator.Log(),
		}
	})

	// 创建 HTTP 处理器
	handler := handlers.NewHandler(
		logger,
		st,
		reservationSvc,
		statsSvc,
		authSvc,
		simulator,
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

	// 停止模拟器
	simulator.Stop()

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
