package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the session store depends on.
// It embeds redis.UniversalClient so single node, cluster and sentinel
// clients are interchangeable.
type Client interface {
	redis.UniversalClient
}
