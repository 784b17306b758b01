package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/simplyaboveaverage/multicart-backend/pkg/redis"
)

// Redis persists client state blobs in the shared redis instance. Entries
// never expire: saved carts and format preferences survive until the owner
// overwrites or clears them.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps the shared redis client as a state store.
func NewRedis(client *redis.Client) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, owner, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.StateKey(owner, key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("loading state %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *Redis) Set(ctx context.Context, owner, key string, value []byte) error {
	if err := r.client.Set(ctx, r.client.StateKey(owner, key), string(value), 0); err != nil {
		return fmt.Errorf("saving state %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, owner, key string) error {
	if err := r.client.Del(ctx, r.client.StateKey(owner, key)); err != nil {
		return fmt.Errorf("deleting state %q: %w", key, err)
	}
	return nil
}
