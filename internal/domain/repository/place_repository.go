package repository

import (
	"context"

	"github.com/itinerary-microservice/internal/domain"
)

// PlaceRepository определяет методы для работы с каталогом мест.
// Каталог read-only: сервис его не изменяет.
type PlaceRepository interface {
	// GetByID возвращает место по ID
	GetByID(ctx context.Context, id int64) (*domain.Place, error)

	// GetByIDs возвращает места по списку ID
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Place, error)

	// GetByCity возвращает места, город которых содержит подстроку city
	// (регистронезависимо)
	GetByCity(ctx context.Context, city string) ([]*domain.Place, error)

	// GetByCityAndCategories возвращает места города, отфильтрованные
	// по списку категорий
	GetByCityAndCategories(ctx context.Context, city string, categories []string) ([]*domain.Place, error)
}
