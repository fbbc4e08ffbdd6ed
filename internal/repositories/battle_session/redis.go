package battlesession

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/showdown-player/internal/redis"
)

const (
	// Key pattern: battle_session:{battle_id}:{side}
	sessionKeyPrefix = "battle_session:"
	// KeyPattern matches every session key
	KeyPattern       = sessionKeyPrefix + "*"
	defaultTTL       = 30 * time.Minute

	// Error messages
	errSessionNil     = "session cannot be nil"
	errBattleIDEmpty  = "battle ID cannot be empty"
	errSideEmpty      = "side cannot be empty"
	errSessionExpired = "battle session has expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for battle sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new battle session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	ttl := ttlOrDefault(input.TTL)

	session := *input.Session
	session.CreatedAt = now
	session.ExpiresAt = now.Add(ttl)

	if err := r.store(ctx, &session, ttl); err != nil {
		return nil, err
	}

	return &CreateOutput{
		Session: &session,
	}, nil
}

// Get retrieves a battle session by battle id and side
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.BattleID, input.Side); err != nil {
		return nil, err
	}

	key := r.buildKey(input.BattleID, input.Side)

	sessionJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("battle session not found").
				WithBattle(input.BattleID, input.Side)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session BattleSession
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// Redis expiry is authoritative but the stored deadline is checked too
	if session.Expired(r.clock.Now()) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound(errSessionExpired)
	}

	return &GetOutput{
		Session: &session,
	}, nil
}

// Update replaces an existing battle session and extends its expiry
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	ttl := ttlOrDefault(input.TTL)
	session := *input.Session
	session.ExpiresAt = r.clock.Now().Add(ttl)

	if err := r.store(ctx, &session, ttl); err != nil {
		return nil, err
	}

	return &UpdateOutput{
		Session: &session,
	}, nil
}

// Delete removes a battle session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.BattleID, input.Side); err != nil {
		return nil, err
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.BattleID, input.Side)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{
		Existed: removed > 0,
	}, nil
}

func (r *redisRepository) store(ctx context.Context, session *BattleSession, ttl time.Duration) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session")
	}

	key := r.buildKey(session.BattleID, session.Side)
	if err := r.client.Set(ctx, key, sessionJSON, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to store session in Redis")
	}
	return nil
}

// buildKey creates the Redis key for a battle session
func (r *redisRepository) buildKey(battleID, side string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, battleID, side)
}

func validateSession(session *BattleSession) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	return validateKey(session.BattleID, session.Side)
}

func validateKey(battleID, side string) error {
	if battleID == "" {
		return errors.InvalidArgument(errBattleIDEmpty)
	}
	if side == "" {
		return errors.InvalidArgument(errSideEmpty)
	}
	return nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return defaultTTL
	}
	return ttl
}
