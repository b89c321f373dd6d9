package clients

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/platform/httpx"
)

type countingRepo struct {
	data      []Client
	listCalls int
}

func (r *countingRepo) List(ctx context.Context) ([]Client, error) {
	r.listCalls++
	return append([]Client(nil), r.data...), nil
}

func (r *countingRepo) Get(ctx context.Context, id int64) (*Client, error) {
	for _, c := range r.data {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func newCachedService(t *testing.T, repo *countingRepo) *Service {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, client, time.Minute)
}

func TestListServesFromCache(t *testing.T) {
	repo := &countingRepo{data: []Client{{ID: 1, CustomerName: "Acme"}}}
	svc := newCachedService(t, repo)

	for i := 0; i < 3; i++ {
		result, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, result, 1)
	}
	require.Equal(t, 1, repo.listCalls)
}

func TestRefreshPicksUpChanges(t *testing.T) {
	repo := &countingRepo{data: []Client{{ID: 1, CustomerName: "Acme"}}}
	svc := newCachedService(t, repo)

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	repo.data = append(repo.data, Client{ID: 2, CustomerName: "Globex"})

	stale, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stale, 1)

	fresh, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, fresh, 2)
}

func TestGetBypassesCache(t *testing.T) {
	repo := &countingRepo{data: []Client{{ID: 1, CustomerName: "Acme"}}}
	svc := newCachedService(t, repo)

	c, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Acme", c.CustomerName)
	require.Zero(t, repo.listCalls)

	_, err = svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestListEndpointRefreshParam(t *testing.T) {
	repo := &countingRepo{data: []Client{{ID: 1, CustomerName: "Acme"}}}
	svc := newCachedService(t, repo)
	handler := NewHandler(slog.Default(), svc)

	router := chi.NewRouter()
	router.Route("/api/clients", handler.MountRoutes)

	get := func(path string) []Client {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var result []Client
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		return result
	}

	require.Len(t, get("/api/clients"), 1)
	require.Equal(t, 1, repo.listCalls)

	repo.data = append(repo.data, Client{ID: 2, CustomerName: "Globex"})
	require.Len(t, get("/api/clients"), 1)
	require.Equal(t, 1, repo.listCalls)

	require.Len(t, get("/api/clients?refresh=1"), 2)
	require.Equal(t, 2, repo.listCalls)
}
