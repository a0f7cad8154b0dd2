package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stream names (должны совпадать с публикующими сервисами)
const (
	StreamRatingSubmitted = "stream:rating:submitted"
)

// RatingSubmittedEvent - входящее событие с новой оценкой места.
// Оценки попадают в хранилище только через этот стрим, serving-путь
// рейтинги не пишет.
type RatingSubmittedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	UserID      int64     `json:"user_id"`
	PlaceID     int64     `json:"place_id"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Validate проверяет событие перед записью в хранилище
func (e *RatingSubmittedEvent) Validate() error {
	if e.UserID <= 0 {
		return fmt.Errorf("invalid user_id: %d", e.UserID)
	}
	if e.PlaceID <= 0 {
		return fmt.Errorf("invalid place_id: %d", e.PlaceID)
	}
	if !ValidScore(e.Score) {
		return fmt.Errorf("score %.2f outside range [%.0f, %.0f]", e.Score, RatingMin, RatingMax)
	}
	return nil
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
