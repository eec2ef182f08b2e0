package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"travel-persona/internal/config"
	"travel-persona/internal/db"
	apihttp "travel-persona/internal/http"
	"travel-persona/internal/llm"
	"travel-persona/internal/repository"
	"travel-persona/internal/service"

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

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	ctxPing, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := db.Ping(ctxPing, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	cancelPing()

	userRepo := repository.NewPgUserRepository(pool)
	traitRepo := repository.NewPgTraitRepository(pool)
	eventRepo := repository.NewPgEventRepository(pool)
	resultRepo := repository.NewPgResultRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, nil)

	// Redis es opcional: sin el, cache y refresh tokens viven en memoria.
	cacheTTL := time.Duration(cfg.PersonaCacheTTLMinutes) * time.Minute
	personaCache := service.NewMemoryPersonaCache(cacheTTL)
	var tokenStore service.RefreshTokenStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory fallbacks", zap.Error(err))
		} else {
			personaCache = service.NewRedisPersonaCache(redisClient, cacheTTL)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient, cfg.RedisKeyPrefix)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	userSvc := service.NewUserService(logger, userRepo)
	narrativeSvc := service.NewNarrativeService(llmClient)
	personaSvc := service.NewPersonaService(logger, eventRepo, traitRepo, resultRepo, personaCache, narrativeSvc, llmClient)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	personaHandler := apihttp.NewPersonaHandler(logger, personaSvc)
	healthHandler := apihttp.NewHealthHandler(pool)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, personaHandler, healthHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
