package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexvielma/bingove/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// presenceKey is the hash of online users
	presenceKey = "presence:users"

	// presenceEventsChannel carries the online count after every change
	presenceEventsChannel = "presence:events"

	subscribeBuffer = 16
)

// Config holds configuration for the Redis presence repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed presence repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Connect records a user as online
func (r *redisRepository) Connect(ctx context.Context, input *ConnectInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	entry := &models.PresenceEntry{
		UserID:   input.UserID,
		Online:   true,
		LastSeen: time.Now(),
	}

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal presence entry: %w", err)
	}

	if err := r.client.HSet(ctx, presenceKey, input.UserID, entryJSON).Err(); err != nil {
		return fmt.Errorf("failed to set presence entry: %w", err)
	}

	r.publishCount(ctx)
	return nil
}

// Disconnect removes a user's liveness entry
func (r *redisRepository) Disconnect(ctx context.Context, input *DisconnectInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	if err := r.client.HDel(ctx, presenceKey, input.UserID).Err(); err != nil {
		return fmt.Errorf("failed to delete presence entry: %w", err)
	}

	r.publishCount(ctx)
	return nil
}

// Count returns the number of online users
func (r *redisRepository) Count(ctx context.Context) (int, error) {
	count, err := r.client.HLen(ctx, presenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count presence entries: %w", err)
	}
	return int(count), nil
}

// List returns all liveness entries
func (r *redisRepository) List(ctx context.Context) ([]*models.PresenceEntry, error) {
	fields, err := r.client.HGetAll(ctx, presenceKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list presence entries: %w", err)
	}

	entries := make([]*models.PresenceEntry, 0, len(fields))
	for _, entryJSON := range fields {
		var entry models.PresenceEntry
		if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
			continue
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// SubscribeCount delivers the current count and every subsequent change
func (r *redisRepository) SubscribeCount(ctx context.Context) (<-chan int, error) {
	pubsub := r.client.Subscribe(ctx, presenceEventsChannel)

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to presence events: %w", err)
	}

	out := make(chan int, subscribeBuffer)

	go func() {
		defer close(out)
		defer pubsub.Close()

		if count, err := r.Count(ctx); err == nil {
			select {
			case out <- count:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				count, err := strconv.Atoi(msg.Payload)
				if err != nil {
					continue
				}
				select {
				case out <- count:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Clear wipes the registry
func (r *redisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, presenceKey).Err(); err != nil {
		return fmt.Errorf("failed to clear presence registry: %w", err)
	}

	r.publishCount(ctx)
	return nil
}

func (r *redisRepository) publishCount(ctx context.Context) {
	count, err := r.client.HLen(ctx, presenceKey).Result()
	if err != nil {
		return
	}
	_ = r.client.Publish(ctx, presenceEventsChannel, strconv.FormatInt(count, 10)).Err()
}
