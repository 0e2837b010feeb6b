package uistate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/pkg/clock"
	redisclient "github.com/debnet/fallout/internal/redis"
)

// Key pattern: ui_state:{session}:{key}, with the session query-escaped so
// it never contains the separator
const keyPrefix = "ui_state:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL of an entry, refreshed on every write. Zero keeps entries forever.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for UI state
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    cfg.TTL,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.Session, input.Key); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, buildKey(input.Session, input.Key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("ui state %s not found", input.Key)
		}
		return nil, errors.Wrapf(err, "failed to get ui state from Redis")
	}

	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal ui state")
	}

	return &GetOutput{Entry: &entry}, nil
}

func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if err := validateKey(input.Session, input.Key); err != nil {
		return nil, err
	}

	entry := &Entry{
		Session:   input.Session,
		Key:       input.Key,
		Value:     input.Value,
		UpdatedAt: r.clock.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal ui state")
	}

	if err := r.client.Set(ctx, buildKey(input.Session, input.Key), data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store ui state in Redis")
	}

	return &SetOutput{Entry: entry}, nil
}

func validateKey(session, key string) error {
	if session == "" {
		return errors.InvalidArgument(errSessionEmpty)
	}
	if key == "" {
		return errors.InvalidArgument(errKeyEmpty)
	}
	return nil
}

// buildKey creates the Redis key for a UI state entry
func buildKey(session, key string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, url.QueryEscape(session), key)
}
