package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/guardline/guardline-core/internal/domain"
)

// RedisSessionStore keeps the per-installation session record and the
// is_logged_in mirror flag in Redis hashes. Clearing an absent session is a
// no-op so invalidation stays idempotent.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(installationID string) string {
	return "guardline:session:" + installationID
}

func (s *RedisSessionStore) Get(ctx context.Context, installationID string) (domain.Session, error) {
	data, err := s.client.HGetAll(ctx, sessionKey(installationID)).Result()
	if err != nil {
		return domain.Session{}, err
	}
	if len(data) == 0 {
		return domain.Session{}, nil
	}

	record := domain.Session{Token: data["session_token"]}
	if raw, found := data["session_user"]; found && raw != "" {
		if parsed, parseErr := uuid.Parse(raw); parseErr == nil {
			record.UserID = parsed
		}
	}
	if raw, found := data["session_timestamp"]; found && raw != "" {
		if unix, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil && unix > 0 {
			record.CreatedAt = time.Unix(unix, 0).UTC()
		}
	}
	if raw, found := data["session_active"]; found {
		record.Active = raw == "1"
	}
	return record, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, installationID string, record domain.Session) error {
	active := "0"
	if record.Active {
		active = "1"
	}
	return s.client.HSet(ctx, sessionKey(installationID),
		"session_token", record.Token,
		"session_user", record.UserID.String(),
		"session_timestamp", record.CreatedAt.Unix(),
		"session_active", active,
	).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, installationID string) error {
	return s.client.Del(ctx, sessionKey(installationID)).Err()
}

func (s *RedisSessionStore) SetLoggedInFlag(ctx context.Context, installationID string, loggedIn bool) error {
	value := "0"
	if loggedIn {
		value = "1"
	}
	return s.client.Set(ctx, "guardline:is_logged_in:"+installationID, value, 0).Err()
}
