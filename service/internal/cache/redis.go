// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list (queue) name for match action logs.
const DefaultQueueName = "dog_actions"

// GameActionRecord is one entry of a match's action log.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"game_id"`
	ActionIndex   int                    `json:"action_index"`
	ActorUserID   uuid.UUID              `json:"actor_user_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}

// listPusher is the part of the Redis client the recorder needs.
type listPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisRecorder appends action records to a Redis list.
type RedisRecorder struct {
	client listPusher
	queue  string
}

// Connect opens a Redis client and checks it with a PING.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisRecorder returns a recorder pushing onto queue, or DefaultQueueName
// when queue is empty.
func NewRedisRecorder(client listPusher, queue string) *RedisRecorder {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &RedisRecorder{client: client, queue: queue}
}

// Queue returns the list the recorder writes to.
func (r *RedisRecorder) Queue() string { return r.queue }

// PublishGameAction serializes the record to JSON and pushes it to the queue.
func (r *RedisRecorder) PublishGameAction(ctx context.Context, record GameActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal GameActionRecord: %w", err)
	}
	if err := r.client.RPush(ctx, r.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", r.queue, err)
	}
	return nil
}
