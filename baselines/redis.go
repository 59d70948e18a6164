package baselines

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "daaf:baselines:"

// RedisStore shares persisted baselines across driver machines through
// a redis instance, so parallel batches on a cluster reuse each other's
// computations.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore(ctx context.Context, addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ctx: ctx,
	}
}

var _ Store = &RedisStore{}

func (s *RedisStore) Load(key Key) (*Entry, bool, error) {
	bs, err := s.client.Get(s.ctx, redisKeyPrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	entry := &Entry{}
	if err := json.Unmarshal(bs, entry); err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (s *RedisStore) Save(key Key, entry *Entry) error {
	bs, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(s.ctx, redisKeyPrefix+key.String(), bs, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
