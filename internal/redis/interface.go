package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories are written against.
// Anything satisfying redis.UniversalClient (single node, cluster, failover)
// can be passed in.
type Client interface {
	redis.UniversalClient
}
