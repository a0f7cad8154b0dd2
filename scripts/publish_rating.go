//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RatingSubmittedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	UserID      int64     `json:"user_id"`
	PlaceID     int64     `json:"place_id"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	userID := flag.Int64("user", 1, "user id")
	placeID := flag.Int64("place", 1, "place id")
	score := flag.Float64("score", 4.5, "rating score (1..5)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := RatingSubmittedEvent{
		EventID:     uuid.New(),
		UserID:      *userID,
		PlaceID:     *placeID,
		Score:       *score,
		SubmittedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:rating:submitted",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:rating:submitted\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Event ID: %s\n", event.EventID)
	fmt.Printf("   Rating: user=%d place=%d score=%.1f\n", event.UserID, event.PlaceID, event.Score)
}
