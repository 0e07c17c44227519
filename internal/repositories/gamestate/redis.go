package gamestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexvielma/bingove/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// gameRecordKey is the well-known path of the single live record
	gameRecordKey = "game:active"

	// gameEventsChannel carries a full snapshot per committed change
	gameEventsChannel = "game:events"

	// maxTxRetries bounds the optimistic retry loop
	maxTxRetries = 50

	// subscribeBuffer is the per-subscriber snapshot buffer
	subscribeBuffer = 16
)

// ErrRecordNotFound is returned when no live record exists
var ErrRecordNotFound = errors.New("game record not found")

// ErrTooMuchContention is returned when a transaction keeps losing races
var ErrTooMuchContention = errors.New("game record transaction retries exhausted")

// Config holds configuration for the Redis game state store
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisStore implements the Store interface using Redis
type redisStore struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game state store
func NewRedis(cfg *Config) (*redisStore, error) {
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

	return &redisStore{
		client: cfg.RedisClient,
	}, nil
}

// Get retrieves the live record
func (s *redisStore) Get(ctx context.Context) (*models.GameRecord, error) {
	recordJSON, err := s.client.Get(ctx, gameRecordKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get game record: %w", err)
	}

	var record models.GameRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}

	return &record, nil
}

// Put unconditionally replaces the live record and publishes the snapshot
func (s *redisStore) Put(ctx context.Context, input *PutInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	// Version continues from whatever record the put replaces, so a reset to
	// a fresh draw never looks stale to subscribers.
	if current, err := s.Get(ctx); err == nil {
		input.Record.Version = current.Version + 1
	} else {
		input.Record.Version = 1
	}

	recordJSON, err := json.Marshal(input.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	if err := s.client.Set(ctx, gameRecordKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to put game record: %w", err)
	}

	s.publish(ctx, recordJSON)
	return nil
}

// Update runs fn inside a WATCH-based optimistic transaction. The commit only
// lands if no other writer touched the record between read and write; on a
// lost race the fresh record is re-read and fn re-applied.
func (s *redisStore) Update(ctx context.Context, fn UpdateFunc) (*models.GameRecord, error) {
	if fn == nil {
		return nil, errors.New("update function cannot be nil")
	}

	var committed *models.GameRecord

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			recordJSON, err := tx.Get(ctx, gameRecordKey).Result()
			if err != nil {
				if err == redis.Nil {
					return ErrRecordNotFound
				}
				return fmt.Errorf("failed to get game record: %w", err)
			}

			var record models.GameRecord
			if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
				return fmt.Errorf("failed to unmarshal game record: %w", err)
			}

			next, err := fn(&record)
			if err != nil {
				return err
			}
			next.Version = record.Version + 1

			nextJSON, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("failed to marshal game record: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, gameRecordKey, nextJSON, 0)
				return nil
			})
			if err != nil {
				return err
			}

			committed = next
			s.publish(ctx, nextJSON)
			return nil
		}, gameRecordKey)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return committed, nil
	}

	return nil, ErrTooMuchContention
}

// Subscribe delivers the current record first, then every committed snapshot
func (s *redisStore) Subscribe(ctx context.Context) (<-chan *models.GameRecord, error) {
	pubsub := s.client.Subscribe(ctx, gameEventsChannel)

	// Force the subscription to be established before the initial read so no
	// change can slip between them unseen.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to game events: %w", err)
	}

	out := make(chan *models.GameRecord, subscribeBuffer)

	go func() {
		defer close(out)
		defer pubsub.Close()

		var lastVersion int64

		if current, err := s.Get(ctx); err == nil {
			lastVersion = current.Version
			select {
			case out <- current:
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
				var record models.GameRecord
				if err := json.Unmarshal([]byte(msg.Payload), &record); err != nil {
					continue
				}
				// Publishes from racing committers can arrive inverted;
				// anything at or below the last delivered version is stale.
				if record.Version <= lastVersion {
					continue
				}
				lastVersion = record.Version
				select {
				case out <- &record:
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

func (s *redisStore) publish(ctx context.Context, snapshot []byte) {
	// Delivery is best-effort; observers reconcile from full snapshots so a
	// missed publish is healed by the next one.
	_ = s.client.Publish(ctx, gameEventsChannel, snapshot).Err()
}
