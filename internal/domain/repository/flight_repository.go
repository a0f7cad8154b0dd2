package repository

import (
	"context"

	"github.com/itinerary-microservice/internal/domain"
)

// FlightRepository определяет методы для поиска рейсов.
// Аэропорты задаются полными названиями, сортировка всегда по цене.
type FlightRepository interface {
	// Search возвращает рейсы между аэропортами, отсортированные по цене.
	// maxPrice <= 0 означает отсутствие потолка по цене.
	Search(ctx context.Context, departureAirport, arrivalAirport string, maxPrice float64) ([]*domain.Flight, error)
}
