package main

// @title Itinerary Microservice API
// @version 1.0.0
// @description Микросервис туристических рекомендаций. Строит многодневные маршруты по городам Индонезии: подбирает места по категориям, ранжирует их гибридной моделью и жадно распределяет по дням с учетом лимитов времени и бюджета.
// @description
// @description Основные возможности:
// @description - Построение многодневного маршрута с учетом истории оценок пользователя
// @description - Cold start для новых пользователей через топовые категории города
// @description - Поиск рейсов между городами с сортировкой по цене

// @contact.name API Support
// @contact.email support@itinerary-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/itinerary-microservice/docs"
	"github.com/itinerary-microservice/internal/config"
	httpDelivery "github.com/itinerary-microservice/internal/delivery/http"
	"github.com/itinerary-microservice/internal/delivery/http/handler"
	"github.com/itinerary-microservice/internal/mf"
	"github.com/itinerary-microservice/internal/pkg/logger"
	"github.com/itinerary-microservice/internal/recommend"
	"github.com/itinerary-microservice/internal/repository/cache"
	"github.com/itinerary-microservice/internal/repository/postgres"
	"github.com/itinerary-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Itinerary Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Load model artifact. Отсутствие артефакта не фатально:
	// cold-start путь работает и без модели, а запросы известных
	// пользователей получат MODEL_UNAVAILABLE.
	var oracle recommend.AffinityOracle
	if model, err := mf.Load(cfg.Model.Path); err != nil {
		log.Warn("Affinity model not loaded, serving cold-start only",
			zap.String("path", cfg.Model.Path),
			zap.Error(err))
	} else {
		oracle = model
		log.Info("Affinity model loaded", zap.String("path", cfg.Model.Path))
	}

	// 7. Initialize repositories
	placeRepo := postgres.NewPlaceRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	userRepo := postgres.NewUserRepository(db)
	flightRepo := postgres.NewFlightRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	flightUC := usecase.NewFlightUseCase(flightRepo, log)

	recommendationUC := usecase.NewRecommendationUseCase(
		placeRepo,
		ratingRepo,
		userRepo,
		cacheRepo,
		flightUC,
		oracle,
		func() recommend.JitterFunc {
			return recommend.UniformJitter(time.Now().UnixNano())
		},
		log,
		cfg.Cache.RecommendationTTL,
		cfg.Recommender.DefaultDailyTimeLimitHours,
		cfg.Recommender.MaxDays,
	)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	recommendationHandler := handler.NewRecommendationHandler(recommendationUC, log)
	flightHandler := handler.NewFlightHandler(flightUC, log)

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		db,
		redisClient,
		recommendationHandler,
		flightHandler,
	)

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
