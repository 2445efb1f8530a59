package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"tone-preview/internal/backend"
	"tone-preview/internal/config"
	apihttp "tone-preview/internal/http"
	"tone-preview/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	backendClient := backend.NewHTTPClient(cfg.BackendBaseURL, time.Duration(cfg.BackendTimeoutSeconds)*time.Second, logger)

	var (
		prefsCache  service.PreferencesCache
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using memory cache", zap.Error(err))
		} else {
			prefsCache = service.NewRedisPreferencesCache(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	styleSvc := service.NewStyleService(logger, backendClient, prefsCache, time.Duration(cfg.PreferencesCacheTTL)*time.Second)
	previewHandler := apihttp.NewPreviewHandler(logger, styleSvc)
	router := apihttp.NewRouter(logger, jwtSvc, previewHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("backend", cfg.BackendBaseURL),
		zap.Bool("redis_cache", prefsCache != nil),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
