package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guardline/guardline-core/internal/domain"
)

// staleAttemptTTL auto-clears counters long after any lockout could matter,
// keeping the keyspace from accumulating dead installations.
const staleAttemptTTL = 24 * time.Hour

// RedisAttemptStore keeps the failed-login counter in a Redis hash per
// installation. An absent key reads back as the zero state.
type RedisAttemptStore struct {
	client *redis.Client
}

func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{client: client}
}

func attemptKey(installationID string) string {
	return "guardline:attempts:" + installationID
}

func (s *RedisAttemptStore) Get(ctx context.Context, installationID string) (domain.AttemptState, error) {
	data, err := s.client.HGetAll(ctx, attemptKey(installationID)).Result()
	if err != nil {
		return domain.AttemptState{}, err
	}
	if len(data) == 0 {
		return domain.AttemptState{}, nil
	}

	state := domain.AttemptState{}
	if raw, found := data["login_attempts"]; found {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			state.FailedCount = n
		}
	}
	if raw, found := data["last_attempt_time"]; found && raw != "" {
		if unix, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil && unix > 0 {
			state.LastAttemptAt = time.Unix(unix, 0).UTC()
		}
	}
	return state, nil
}

func (s *RedisAttemptStore) Put(ctx context.Context, installationID string, state domain.AttemptState) error {
	key := attemptKey(installationID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key,
			"login_attempts", state.FailedCount,
			"last_attempt_time", state.LastAttemptAt.Unix(),
		)
		p.Expire(ctx, key, staleAttemptTTL)
		return nil
	})
	return err
}

func (s *RedisAttemptStore) Reset(ctx context.Context, installationID string) error {
	return s.client.Del(ctx, attemptKey(installationID)).Err()
}
