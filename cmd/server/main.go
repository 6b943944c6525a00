package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payrelay/internal/config"
	"payrelay/internal/gateway"
	"payrelay/internal/handler"
	"payrelay/internal/infrastructure/cache"
	"payrelay/internal/infrastructure/database"
	"payrelay/internal/infrastructure/lock"
	"payrelay/internal/repository"
	"payrelay/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化订单存储
	orderRepo, closeRepo, err := newOrderRepository(&cfg.Database)
	if err != nil {
		log.Fatalf("初始化订单存储失败: %v", err)
	}
	defer closeRepo()

	// 可选：Redis 订单锁
	var locker service.Locker
	if cfg.Redis.Enabled {
		redisClient, err := cache.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer redisClient.Close()
		locker = lock.NewOrderLocker(redisClient, time.Duration(cfg.Payment.InitLockSeconds)*time.Second)
	}

	orderService := service.NewOrderService(orderRepo)
	paymentService := service.NewPaymentService(orderRepo, gateway.NewClient(cfg.Gateway), locker)

	// 设置路由
	gin.SetMode(gin.ReleaseMode)
	router := handler.SetupRouter(handler.NewHandler(orderService, paymentService))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Backend running on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 关闭 HTTP 服务（等待最多5秒）
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("服务关闭异常: %v", err)
	}

	log.Println("服务已关闭")
}

// newOrderRepository driver 为 memory 时使用进程内存储，便于本地联调
func newOrderRepository(cfg *config.DatabaseConfig) (repository.OrderRepository, func(), error) {
	if cfg.Driver == "memory" {
		log.Println("使用内存订单存储，数据不会持久化")
		return repository.NewMemoryOrderRepository(), func() {}, nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return repository.NewOrderRepository(db), func() { sqlDB.Close() }, nil
}
