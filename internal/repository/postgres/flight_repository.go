package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/errors"
)

type flightRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewFlightRepository(db *DB) repository.FlightRepository {
	return &flightRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *flightRepository) Search(
	ctx context.Context,
	departureAirport, arrivalAirport string,
	maxPrice float64,
) ([]*domain.Flight, error) {
	query := `
		SELECT flight_id, airline, departure_airport_name, arrival_airport_name,
		       departure_time, arrival_time, price
		FROM flights
		WHERE departure_airport_name = $1
		  AND arrival_airport_name = $2
		  AND ($3 <= 0 OR price <= $3)
		ORDER BY price
	`

	var flights []*domain.Flight
	err := r.db.SelectContext(ctx, &flights, query, departureAirport, arrivalAirport, maxPrice)
	if err != nil {
		r.logger.Error("Failed to search flights",
			zap.String("departure", departureAirport),
			zap.String("arrival", arrivalAirport),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}

	return flights, nil
}
