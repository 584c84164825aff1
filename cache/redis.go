package cache

import (
	"time"

	"github.com/go-redis/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	log "github.com/tavolo/search-api-go/pkg/logger"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_cache_hits_total",
		Help: "Search responses served from the response cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_cache_misses_total",
		Help: "Search responses that had to be computed.",
	})
)

// RedisRepository stores serialized search responses. The cache is advisory:
// when the store is unreachable every operation degrades to a logged no-op,
// so correctness never depends on cache availability, only latency does.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(addr, password string) *RedisRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &RedisRepository{client: client}
}

func (repository *RedisRepository) SetKey(key string, value []byte, ttl time.Duration) {
	if err := repository.client.Set(key, value, ttl).Err(); err != nil {
		log.Logger().Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// GetBytes returns the cached payload or nil on miss or store failure.
func (repository *RedisRepository) GetBytes(key string) []byte {
	result, err := repository.client.Get(key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Logger().Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		cacheMisses.Inc()
		return nil
	}

	cacheHits.Inc()
	return []byte(result)
}

// DeletePattern removes every key matching the given pattern. Best effort.
func (repository *RedisRepository) DeletePattern(pattern string) {
	keys, err := repository.client.Keys(pattern).Result()
	if err != nil {
		log.Logger().Warn("cache pattern scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := repository.client.Del(keys...).Err(); err != nil {
		log.Logger().Warn("cache pattern delete failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// Prune drops the whole cache database.
func (repository *RedisRepository) Prune() error {
	return repository.client.FlushDB().Err()
}
