package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/showdown-player/internal/config"
	"github.com/KirkDiggler/showdown-player/internal/engine"
	"github.com/KirkDiggler/showdown-player/internal/orchestrators/decision"
	"github.com/KirkDiggler/showdown-player/internal/pkg/clock"
	"github.com/KirkDiggler/showdown-player/internal/pkg/idgen"
	"github.com/KirkDiggler/showdown-player/internal/redis"
	battlesession "github.com/KirkDiggler/showdown-player/internal/repositories/battle_session"
)

const redisPingTimeout = 5 * time.Second

// newSessionRepository returns a Redis backed store when an endpoint is
// configured and an in-memory one otherwise. The returned func releases it.
func newSessionRepository(ctx context.Context, cfg *config.Config) (battlesession.Repository, func(), error) {
	if cfg.Redis.Endpoint == "" {
		slog.Info("Using in-memory battle sessions")
		return battlesession.NewInMemory(clock.New()), func() {}, nil
	}

	client, err := redis.NewClient(cfg.Redis.Endpoint, &redis.Options{
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	if err := redis.Ping(ctx, client, redisPingTimeout); err != nil {
		cleanup()
		return nil, nil, err
	}

	repo, err := battlesession.NewRedisRepository(&battlesession.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	slog.Info("Using redis battle sessions", "endpoint", cfg.Redis.Endpoint)
	return repo, cleanup, nil
}

// newDecisionService wires the engine and a session store into the decision
// orchestrator. A nil factory uses the autonomous policy.
func newDecisionService(
	cfg *config.Config,
	repo battlesession.Repository,
	factory decision.PolicyFactory,
) (decision.Service, error) {
	eng, err := engine.New(&engine.Config{
		TransformProbability: cfg.Policy.TransformProbability,
	})
	if err != nil {
		return nil, err
	}

	return decision.NewOrchestrator(&decision.Config{
		SessionRepo: repo,
		Engine:      eng,
		IDGenerator: idgen.NewUUID("decision"),
		Policy:      factory,
		MoveBias:    cfg.Policy.MoveBias,
		Seed:        cfg.Policy.Seed,
		SessionTTL:  cfg.SessionTTL,
	})
}
