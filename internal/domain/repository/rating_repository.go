package repository

import (
	"context"

	"github.com/itinerary-microservice/internal/domain"
)

// RatingRepository определяет методы для работы с историческими оценками
type RatingRepository interface {
	// GetByUser возвращает все оценки пользователя
	GetByUser(ctx context.Context, userID int64) ([]*domain.Rating, error)

	// GetAll возвращает все оценки (используется офлайн-обучением)
	GetAll(ctx context.Context) ([]*domain.Rating, error)

	// Insert сохраняет новую оценку (вызывается только воркером ингестии)
	Insert(ctx context.Context, rating *domain.Rating) error
}
