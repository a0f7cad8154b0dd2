package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/errors"
)

type ratingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRatingRepository(db *DB) repository.RatingRepository {
	return &ratingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *ratingRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Rating, error) {
	query := `SELECT user_id, place_id, score FROM ratings WHERE user_id = $1 ORDER BY place_id`

	var ratings []*domain.Rating
	err := r.db.SelectContext(ctx, &ratings, query, userID)
	if err != nil {
		r.logger.Error("Failed to get ratings by user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return ratings, nil
}

func (r *ratingRepository) GetAll(ctx context.Context) ([]*domain.Rating, error) {
	query := `SELECT user_id, place_id, score FROM ratings ORDER BY user_id, place_id`

	var ratings []*domain.Rating
	err := r.db.SelectContext(ctx, &ratings, query)
	if err != nil {
		r.logger.Error("Failed to get all ratings", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return ratings, nil
}

func (r *ratingRepository) Insert(ctx context.Context, rating *domain.Rating) error {
	query := `INSERT INTO ratings (user_id, place_id, score) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, rating.UserID, rating.PlaceID, rating.Score)
	if err != nil {
		r.logger.Error("Failed to insert rating",
			zap.Int64("user_id", rating.UserID),
			zap.Int64("place_id", rating.PlaceID),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	return nil
}
