package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/internal/router"
	"julianmorley.ca/con-plar/storefront/internal/service"
	"julianmorley.ca/con-plar/storefront/pkg/events"
	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/mongo"
	"julianmorley.ca/con-plar/storefront/pkg/redis"
)

func main() {
	cfg, err := global.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := global.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	store, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	logger.WithField("database", cfg.MongoDatabase).Info("Connected to MongoDB")

	if err := store.EnsureIndexes(ctx, logger); err != nil {
		logger.WithError(err).Fatal("Failed to ensure indexes")
	}
	if cfg.SeedOnStart {
		if err := store.SeedProducts(ctx, logger); err != nil {
			logger.WithError(err).Fatal("Failed to seed products")
		}
	}

	// Redis is optional: without it the catalog reads straight from MongoDB
	// and rate limiting is off.
	var cache service.ProductCache
	var limiter router.Limiter
	redisClient, err := redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, running without cache and rate limiting")
	} else {
		cache = redis.NewProductCache(redisClient, cfg.CacheTTL)
		if cfg.RateLimitPerMinute > 0 {
			limiter = redis.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaEnabled() {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		logger.WithField("topic", cfg.KafkaTopic).Info("Publishing change events to Kafka")
	}

	products := store.Products()
	catalog := service.NewCatalogService(products, cache, publisher, logger)
	carts := service.NewCartService(store.Carts(), products, publisher, logger)

	engine := router.NewEngine(cfg, logger, router.Dependencies{
		Catalog:  catalog,
		Carts:    carts,
		Database: store,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port": cfg.Port,
			"env":  cfg.Env,
		}).Info("Server is running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	if err := publisher.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close event publisher")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.WithError(err).Warn("Failed to disconnect from MongoDB")
	}

	logger.Info("Server exited")
}
