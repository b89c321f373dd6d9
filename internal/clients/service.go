package clients

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orderdesk/orderdesk/internal/platform/cache"
)

const listCacheKey = "orderdesk:clients:list"

// Service serves client reference data. Listings go through a read-through
// cache; lookups by id hit the store directly.
type Service struct {
	repo     Repository
	listings *cache.ReadThrough[[]Client]
}

// NewService constructs the client service. The Redis client may be nil, in
// which case listings are served straight from the repository.
func NewService(repo Repository, rdb *redis.Client, ttl time.Duration) *Service {
	s := &Service{repo: repo}
	s.listings = cache.NewReadThrough(rdb, listCacheKey, ttl, repo.List)
	return s
}

// List returns all clients, via the cache.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.listings.Get(ctx)
}

// Refresh invalidates the cached listing and reloads it. The UI triggers this
// when navigating to the order-edit view so address autofill is current.
func (s *Service) Refresh(ctx context.Context) ([]Client, error) {
	if err := s.listings.Invalidate(ctx); err != nil {
		return nil, err
	}
	return s.listings.Get(ctx)
}

// Get returns a single client by id.
func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}
