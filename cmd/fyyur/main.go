package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/qs-lzh/fyyur-trivia/config"
	"github.com/qs-lzh/fyyur-trivia/internal/app"
	"github.com/qs-lzh/fyyur-trivia/internal/cache"
	"github.com/qs-lzh/fyyur-trivia/internal/database"
	"github.com/qs-lzh/fyyur-trivia/internal/handler"
	"github.com/qs-lzh/fyyur-trivia/internal/logger"
	"github.com/qs-lzh/fyyur-trivia/internal/mq"
	"github.com/qs-lzh/fyyur-trivia/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":5000"
	}
	if cfg.MQQueue == "" {
		cfg.MQQueue = mq.FyyurChangesQueue
	}
	gin.SetMode(cfg.GinMode)

	zl, err := logger.New(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	if err := database.MigrateFyyur(db); err != nil {
		zl.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	redisCache, err := cache.NewRedisCache(cfg.CacheURL)
	if err != nil {
		zl.Fatal("failed to create redis client", zap.Error(err))
	}
	if err := redisCache.Ping(ctx); err != nil {
		zl.Fatal("failed to reach redis", zap.String("addr", cfg.CacheURL), zap.Error(err))
	}

	var mqConn *amqp.Connection
	if cfg.MQURL != "" {
		if mqConn, err = mq.NewMQConn(cfg.MQURL); err != nil {
			zl.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
	}

	a, err := app.New(cfg, db, redisCache, zl, mqConn)
	if err != nil {
		zl.Fatal("failed to build app", zap.Error(err))
	}
	defer a.Close()

	r, err := handler.NewFyyurRouter(a)
	if err != nil {
		zl.Fatal("failed to build router", zap.Error(err))
	}

	if err := server.Run(ctx, cfg.Addr, r, zl); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}
}
