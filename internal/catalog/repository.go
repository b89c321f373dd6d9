package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk/internal/platform/httpx"
)

// Repository provides read access to the items table. The order service
// resolves prices through it directly, never through the listing cache.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int64) (*Item, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Item, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed catalog repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Item, error) {
	const query = `
		SELECT id, item_code, description, price
		FROM items
		ORDER BY item_code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var result []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Item, error) {
	const query = `
		SELECT id, item_code, description, price
		FROM items
		WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %d", httpx.ErrNotFound, id)
		}
		return nil, fmt.Errorf("catalog: get %d: %w", id, err)
	}
	return &item, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]Item, error) {
	result := make(map[int64]Item, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const query = `
		SELECT id, item_code, description, price
		FROM items
		WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("catalog: get by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result[item.ID] = item
	}
	return result, rows.Err()
}

func scanItem(row pgx.Row) (Item, error) {
	var (
		item  Item
		price pgtype.Numeric
	)
	if err := row.Scan(&item.ID, &item.ItemCode, &item.Description, &price); err != nil {
		return Item{}, err
	}
	item.Price = numericToDecimal(price)
	return item, nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
