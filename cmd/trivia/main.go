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
		cfg.Addr = ":5001"
	}
	if cfg.MQQueue == "" {
		cfg.MQQueue = mq.TriviaChangesQueue
	}
	gin.SetMode(cfg.GinMode)

	zl, err := logger.New(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	ctx := context.Background()
	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	if err := database.MigrateTrivia(db); err != nil {
		zl.Fatal("failed to migrate database", zap.Error(err))
	}
	if n, err := database.SeedTriviaCategories(ctx, db); err != nil {
		zl.Fatal("failed to seed categories", zap.Error(err))
	} else if n > 0 {
		zl.Info("seeded categories", zap.Int("count", n))
	}

	// the category cache is optional for the API
	var redisCache *cache.RedisCache
	if cfg.CacheURL != "" {
		if redisCache, err = cache.NewRedisCache(cfg.CacheURL); err != nil {
			zl.Fatal("failed to create redis client", zap.Error(err))
		}
		if err := redisCache.Ping(ctx); err != nil {
			zl.Warn("redis unreachable, category cache disabled", zap.Error(err))
			redisCache.Close()
			redisCache = nil
		}
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

	if err := server.Run(ctx, cfg.Addr, handler.NewTriviaRouter(a), zl); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}
}
