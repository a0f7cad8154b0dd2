package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/worker"
)

// retryBackoff - пауза между повторными попытками вставки оценки
const retryBackoff = 100 * time.Millisecond

// IngestWorker читает события stream:rating:submitted и сохраняет оценки в БД
type IngestWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	ratingRepo repository.RatingRepository
	maxRetries int
}

// NewIngestWorker создает новый IngestWorker. maxRetries задает число
// попыток вставки оценки до того, как сообщение будет оставлено в pending.
func NewIngestWorker(
	streamRepo repository.StreamRepository,
	ratingRepo repository.RatingRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *IngestWorker {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &IngestWorker{
		BaseWorker: worker.NewBaseWorker("rating-ingest", consumerGroup, logger),
		streamRepo: streamRepo,
		ratingRepo: ratingRepo,
		maxRetries: maxRetries,
	}
}

// Start запускает воркер
func (w *IngestWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting rating ingest worker",
		zap.String("stream", domain.StreamRatingSubmitted),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRatingSubmitted, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamRatingSubmitted, w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно сообщение из стрима.
// Битые сообщения подтверждаются и отбрасываются, чтобы не блокировать очередь.
func (w *IngestWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	event, err := parseEvent(msg)
	if err != nil {
		logger.Warn("Failed to parse rating event, dropping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	if err := event.Validate(); err != nil {
		logger.Warn("Invalid rating event, dropping",
			zap.String("message_id", msg.ID),
			zap.String("event_id", event.EventID.String()),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	rating := &domain.Rating{
		UserID:  event.UserID,
		PlaceID: event.PlaceID,
		Score:   event.Score,
	}

	if err := w.insertWithRetry(ctx, rating); err != nil {
		// Без ACK: сообщение останется в pending и будет переобработано
		logger.Error("Failed to insert rating",
			zap.String("message_id", msg.ID),
			zap.Int64("user_id", event.UserID),
			zap.Int64("place_id", event.PlaceID),
			zap.Int("attempts", w.maxRetries),
			zap.Error(err))
		return
	}

	w.ack(ctx, msg.ID)

	logger.Debug("Rating ingested",
		zap.String("event_id", event.EventID.String()),
		zap.Int64("user_id", event.UserID),
		zap.Int64("place_id", event.PlaceID),
		zap.Float64("score", event.Score))
}

// insertWithRetry делает до maxRetries попыток вставки с короткой паузой
func (w *IngestWorker) insertWithRetry(ctx context.Context, rating *domain.Rating) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.ratingRepo.Insert(ctx, rating); err == nil {
			return nil
		}

		if attempt < w.maxRetries {
			w.Logger().Warn("Rating insert failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int64("user_id", rating.UserID),
				zap.Int64("place_id", rating.PlaceID),
				zap.Error(err))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}
	}
	return err
}

func (w *IngestWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamRatingSubmitted, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}

// parseEvent парсит сообщение из стрима в RatingSubmittedEvent
func parseEvent(msg domain.StreamMessage) (*domain.RatingSubmittedEvent, error) {
	var event domain.RatingSubmittedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
