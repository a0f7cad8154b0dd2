package rating_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/worker/rating"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockRatingRepository is a mock of RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetAll(ctx context.Context) ([]*domain.Rating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) Insert(ctx context.Context, r *domain.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func eventMessage(t *testing.T, id string, event *domain.RatingSubmittedEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	assert.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func TestIngestWorker_Name(t *testing.T) {
	w := rating.NewIngestWorker(&MockStreamRepository{}, &MockRatingRepository{}, "test-group", 3, zap.NewNop())

	assert.Equal(t, "rating-ingest", w.Name())
}

func TestIngestWorker_Stop(t *testing.T) {
	w := rating.NewIngestWorker(&MockStreamRepository{}, &MockRatingRepository{}, "test-group", 3, zap.NewNop())

	// Stop should not error even if not started
	assert.NoError(t, w.Stop())

	// Calling stop multiple times should be safe
	assert.NoError(t, w.Stop())
}

func TestIngestWorker_IngestsValidEvent(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockRatings := &MockRatingRepository{}

	w := rating.NewIngestWorker(mockStream, mockRatings, "test-group", 3, zap.NewNop())

	event := &domain.RatingSubmittedEvent{
		EventID:     uuid.New(),
		UserID:      42,
		PlaceID:     7,
		Score:       4.5,
		SubmittedAt: time.Now(),
	}

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- eventMessage(t, "1234567890-0", event)
	close(msgChan)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRatingSubmitted, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRatingSubmitted, "test-group", mock.AnythingOfType("string")).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamRatingSubmitted, "test-group", "1234567890-0").
		Return(nil)

	mockRatings.On("Insert", mock.Anything, mock.MatchedBy(func(r *domain.Rating) bool {
		return r.UserID == 42 && r.PlaceID == 7 && r.Score == 4.5
	})).Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	// Channel close ends the worker once the message is processed
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop after channel close")
	}

	mockStream.AssertExpectations(t)
	mockRatings.AssertExpectations(t)
}

func TestIngestWorker_DropsInvalidEvents(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockRatings := &MockRatingRepository{}

	w := rating.NewIngestWorker(mockStream, mockRatings, "test-group", 3, zap.NewNop())

	badScore := &domain.RatingSubmittedEvent{
		EventID:     uuid.New(),
		UserID:      42,
		PlaceID:     7,
		Score:       9.0, // outside [1, 5]
		SubmittedAt: time.Now(),
	}

	msgChan := make(chan domain.StreamMessage, 2)
	msgChan <- domain.StreamMessage{ID: "1234567890-0", Data: "{not json"}
	msgChan <- eventMessage(t, "1234567890-1", badScore)
	close(msgChan)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRatingSubmitted, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRatingSubmitted, "test-group", mock.AnythingOfType("string")).
		Return((<-chan domain.StreamMessage)(msgChan), nil)

	// Both broken messages get acked so the queue does not stall
	mockStream.On("AckMessage", mock.Anything, domain.StreamRatingSubmitted, "test-group", "1234567890-0").
		Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamRatingSubmitted, "test-group", "1234567890-1").
		Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop after channel close")
	}

	// Insert must never be called for invalid events
	mockRatings.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockStream.AssertExpectations(t)
}

func TestIngestWorker_NoAckOnInsertFailure(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockRatings := &MockRatingRepository{}

	w := rating.NewIngestWorker(mockStream, mockRatings, "test-group", 3, zap.NewNop())

	event := &domain.RatingSubmittedEvent{
		EventID:     uuid.New(),
		UserID:      1,
		PlaceID:     2,
		Score:       3.0,
		SubmittedAt: time.Now(),
	}

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- eventMessage(t, "1234567890-0", event)
	close(msgChan)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRatingSubmitted, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRatingSubmitted, "test-group", mock.AnythingOfType("string")).
		Return((<-chan domain.StreamMessage)(msgChan), nil)

	mockRatings.On("Insert", mock.Anything, mock.Anything).
		Return(assert.AnError)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop after channel close")
	}

	// Message stays pending for redelivery; insert was retried up to the limit
	mockStream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRatings.AssertNumberOfCalls(t, "Insert", 3)
	mockStream.AssertExpectations(t)
	mockRatings.AssertExpectations(t)
}

func TestIngestWorker_RetriesInsertBeforeAck(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockRatings := &MockRatingRepository{}

	w := rating.NewIngestWorker(mockStream, mockRatings, "test-group", 3, zap.NewNop())

	event := &domain.RatingSubmittedEvent{
		EventID:     uuid.New(),
		UserID:      42,
		PlaceID:     7,
		Score:       4.5,
		SubmittedAt: time.Now(),
	}

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- eventMessage(t, "1234567890-0", event)
	close(msgChan)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRatingSubmitted, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRatingSubmitted, "test-group", mock.AnythingOfType("string")).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamRatingSubmitted, "test-group", "1234567890-0").
		Return(nil)

	// Two transient failures, then success on the last attempt
	mockRatings.On("Insert", mock.Anything, mock.Anything).Return(assert.AnError).Twice()
	mockRatings.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop after channel close")
	}

	mockRatings.AssertNumberOfCalls(t, "Insert", 3)
	mockStream.AssertExpectations(t)
	mockRatings.AssertExpectations(t)
}

func TestIngestWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockRatings := &MockRatingRepository{}

	w := rating.NewIngestWorker(mockStream, mockRatings, "test-group", 3, zap.NewNop())

	msgChan := make(chan domain.StreamMessage) // never delivers

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRatingSubmitted, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRatingSubmitted, "test-group", mock.AnythingOfType("string")).
		Return((<-chan domain.StreamMessage)(msgChan), nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}

	mockStream.AssertExpectations(t)
}
