package repository

import (
	"github.com/redis/go-redis/v9"
	"lan_relay/pkg/logger"
)

type Repositories struct {
	History   HistoryRepository
	Files     FileRepository
	RateLimit RateLimitRepository
}

// NewRepositories wires the in-memory session stores. rdb may be nil, in which
// case RateLimit is nil and uploads are not throttled.
func NewRepositories(rdb *redis.Client, log logger.Logger) *Repositories {
	repos := &Repositories{
		History: NewHistoryRepository(log),
		Files:   NewFileRepository(log),
	}

	if rdb != nil {
		repos.RateLimit = NewRateLimitRepository(rdb, log)
		log.Info("RateLimit repository initialized")
	} else {
		log.Warn("Redis not configured, upload rate limiting disabled")
	}

	return repos
}
