package repository

import (
	"context"

	"github.com/itinerary-microservice/internal/domain"
)

// UserRepository определяет методы для чтения пользователей
type UserRepository interface {
	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
