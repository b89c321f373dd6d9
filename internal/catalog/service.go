package catalog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orderdesk/orderdesk/internal/platform/cache"
)

const listCacheKey = "orderdesk:items:list"

// Service serves catalog reference data. Listings go through a read-through
// cache for the UI; the pricing path bypasses it via the repository so
// authoritative amounts are never computed from a stale price.
type Service struct {
	repo     Repository
	listings *cache.ReadThrough[[]Item]
}

// NewService constructs the catalog service. A nil Redis client disables
// caching.
func NewService(repo Repository, rdb *redis.Client, ttl time.Duration) *Service {
	s := &Service{repo: repo}
	s.listings = cache.NewReadThrough(rdb, listCacheKey, ttl, repo.List)
	return s
}

// List returns all catalog items, via the cache.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.listings.Get(ctx)
}

// Refresh invalidates the cached listing and reloads it from the store.
func (s *Service) Refresh(ctx context.Context) ([]Item, error) {
	if err := s.listings.Invalidate(ctx); err != nil {
		return nil, err
	}
	return s.listings.Get(ctx)
}

// Get returns a single catalog item by id.
func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.Get(ctx, id)
}
