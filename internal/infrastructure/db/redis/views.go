package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ViewStore is the path-keyed cache-bust backend. The rendering layer caches
// rendered views under view:<path>; deleting the key forces a rebuild on the
// next request. Key format: view:<path>
type ViewStore struct {
	client *redis.Client
}

// NewViewStore creates a ViewStore wrapping the given Redis client.
func NewViewStore(client *redis.Client) *ViewStore {
	return &ViewStore{client: client}
}

// Invalidate drops the cached view for a path. Deleting a key that does not
// exist is a no-op, so invalidation is safe to repeat.
func (v *ViewStore) Invalidate(ctx context.Context, path string) error {
	if err := v.client.Del(ctx, v.key(path)).Err(); err != nil {
		return fmt.Errorf("view invalidate: %w", err)
	}
	return nil
}

func (v *ViewStore) key(path string) string {
	return "view:" + path
}
