package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/errors"
)

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const placeColumns = `
	place_id, name, category, city, price, time_minutes, rating,
	lat, lng, description, image_url
`

func (r *placeRepository) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE place_id = $1`

	var place domain.Place
	err := r.db.GetContext(ctx, &place, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place by ID", zap.Int64("place_id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &place, nil
}

func (r *placeRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Place, error) {
	if len(ids) == 0 {
		return []*domain.Place{}, nil
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE place_id = ANY($1) ORDER BY place_id`

	var places []*domain.Place
	err := r.db.SelectContext(ctx, &places, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get places by IDs", zap.Int("count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return places, nil
}

func (r *placeRepository) GetByCity(ctx context.Context, city string) ([]*domain.Place, error) {
	// Регистронезависимое вхождение подстроки, как в исходном каталоге
	query := `SELECT ` + placeColumns + ` FROM places WHERE city ILIKE '%' || $1 || '%' ORDER BY place_id`

	var places []*domain.Place
	err := r.db.SelectContext(ctx, &places, query, city)
	if err != nil {
		r.logger.Error("Failed to get places by city", zap.String("city", city), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return places, nil
}

func (r *placeRepository) GetByCityAndCategories(
	ctx context.Context,
	city string,
	categories []string,
) ([]*domain.Place, error) {
	query := `
		SELECT ` + placeColumns + `
		FROM places
		WHERE city ILIKE '%' || $1 || '%'
		  AND category = ANY($2)
		ORDER BY place_id
	`

	var places []*domain.Place
	err := r.db.SelectContext(ctx, &places, query, city, pq.Array(categories))
	if err != nil {
		r.logger.Error("Failed to get places by city and categories",
			zap.String("city", city),
			zap.Strings("categories", categories),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return places, nil
}
