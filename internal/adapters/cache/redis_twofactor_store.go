package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/guardline/guardline-core/internal/domain"
)

// RedisTwoFactorStore keeps second-factor opt-in state keyed by user. The
// secret lives only in this hash; it is never written to logs or the
// document store.
type RedisTwoFactorStore struct {
	client *redis.Client
}

func NewRedisTwoFactorStore(client *redis.Client) *RedisTwoFactorStore {
	return &RedisTwoFactorStore{client: client}
}

func twoFactorKey(userID string) string {
	return "guardline:2fa:" + userID
}

func (s *RedisTwoFactorStore) Get(ctx context.Context, userID string) (domain.TwoFactorState, error) {
	data, err := s.client.HGetAll(ctx, twoFactorKey(userID)).Result()
	if err != nil {
		return domain.TwoFactorState{}, err
	}
	if len(data) == 0 {
		return domain.TwoFactorState{}, nil
	}
	return domain.TwoFactorState{
		Enabled: data["2fa_enabled"] == "1",
		Secret:  data["2fa_secret"],
	}, nil
}

func (s *RedisTwoFactorStore) Put(ctx context.Context, userID string, state domain.TwoFactorState) error {
	enabled := "0"
	if state.Enabled {
		enabled = "1"
	}
	return s.client.HSet(ctx, twoFactorKey(userID),
		"2fa_enabled", enabled,
		"2fa_secret", state.Secret,
	).Err()
}

func (s *RedisTwoFactorStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, twoFactorKey(userID)).Err()
}
