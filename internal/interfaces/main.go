package interfaces

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
)

// Limiter is implemented by the toolkit's limiter.Limiter. Allow returns an error when key
// has used up limit.
type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}
