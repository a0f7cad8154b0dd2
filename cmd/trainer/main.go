package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/config"
	"github.com/itinerary-microservice/internal/mf"
	"github.com/itinerary-microservice/internal/pkg/logger"
	"github.com/itinerary-microservice/internal/repository/postgres"
)

// Обучение отделено от сервинга: trainer читает полный набор оценок,
// обучает модель и атомарно записывает артефакт. API-процесс подхватывает
// новый артефакт при следующем старте.
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

	log.Info("Starting model trainer",
		zap.String("artifact_path", cfg.Model.Path),
		zap.Int("factors", cfg.Model.Factors),
		zap.Int("epochs", cfg.Model.Epochs))

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

	// 4. Load the full rating history
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ratingRepo := postgres.NewRatingRepository(db)
	ratings, err := ratingRepo.GetAll(ctx)
	if err != nil {
		log.Fatal("Failed to load ratings", zap.Error(err))
	}
	log.Info("Ratings loaded", zap.Int("count", len(ratings)))

	// 5. Train
	start := time.Now()
	model, err := mf.Train(ratings, mf.TrainConfig{
		Factors:        cfg.Model.Factors,
		Epochs:         cfg.Model.Epochs,
		LearningRate:   cfg.Model.LearningRate,
		Regularization: cfg.Model.Regularization,
		Seed:           cfg.Model.Seed,
	})
	if err != nil {
		log.Fatal("Training failed", zap.Error(err))
	}

	log.Info("Training complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("train_rmse", model.RMSE(ratings)))

	// 6. Save the artifact
	if err := model.Save(cfg.Model.Path); err != nil {
		log.Fatal("Failed to save model artifact", zap.Error(err))
	}

	log.Info("Model artifact saved", zap.String("path", cfg.Model.Path))
}
