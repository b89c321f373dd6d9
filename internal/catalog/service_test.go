package catalog

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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/platform/httpx"
)

type countingRepo struct {
	data      []Item
	listCalls int
}

func (r *countingRepo) List(ctx context.Context) ([]Item, error) {
	r.listCalls++
	return append([]Item(nil), r.data...), nil
}

func (r *countingRepo) Get(ctx context.Context, id int64) (*Item, error) {
	for _, item := range r.data {
		if item.ID == id {
			item := item
			return &item, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (r *countingRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]Item, error) {
	result := make(map[int64]Item, len(ids))
	for _, id := range ids {
		for _, item := range r.data {
			if item.ID == id {
				result[id] = item
			}
		}
	}
	return result, nil
}

func TestListCachesCatalog(t *testing.T) {
	repo := &countingRepo{data: []Item{
		{ID: 1, ItemCode: "WID-01", Description: "Widget", Price: decimal.RequireFromString("50")},
	}}
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewService(repo, client, time.Minute)

	for i := 0; i < 3; i++ {
		items, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.True(t, items[0].Price.Equal(decimal.RequireFromString("50")))
	}
	require.Equal(t, 1, repo.listCalls)
}

func TestListEndpointEmptyCatalogIsEmptyArray(t *testing.T) {
	svc := NewService(&countingRepo{}, nil, time.Minute)
	handler := NewHandler(slog.Default(), svc)

	router := chi.NewRouter()
	router.Route("/api/items", handler.MountRoutes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	var items []Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Empty(t, items)
}
