package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crpt-client/crpt/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava contadores de envio em hashes do Redis, permitindo
// agregar vários processos cliente que compartilham o mesmo endpoint.
//
// Chaves (prefixo padrão "crpt:submit:stats"):
//
//	<prefix>:total                 succeeded/failed (cumulativo, não expira)
//	<prefix>:minute:200601021504   succeeded/failed por minuto (TTL)
//	<prefix>:kind                  contagem de falhas por ErrorKind
//	<prefix>:participant:<inn>     succeeded/failed por participante (TTL, opcional)
type RedisStatsStore struct {
	rdb *redis.Client

	prefix string
	// ttl aplica apenas em chaves de série temporal / por participante.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackParticipants bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackParticipants(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackParticipants = track }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "crpt:submit:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "failed"
	if ev.Succeeded() {
		field = "succeeded"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if !ev.Succeeded() {
		pipe.HIncrBy(ctx, s.prefix+":kind", string(ev.Kind), 1)
	}

	if s.trackParticipants {
		inn := strings.TrimSpace(ev.Participant)
		if inn != "" {
			key := s.prefix + ":participant:" + inn
			pipe.HIncrBy(ctx, key, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, key, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
