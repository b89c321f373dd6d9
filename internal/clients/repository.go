package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orderdesk/orderdesk/internal/platform/httpx"
)

// Repository provides read access to the clients table.
type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id int64) (*Client, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed client repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	const query = `
		SELECT id, customer_name, address1, address2, address3, suburb, state, post_code
		FROM clients
		ORDER BY customer_name, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("clients: list: %w", err)
	}
	defer rows.Close()

	var result []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.CustomerName, &c.Address1, &c.Address2, &c.Address3, &c.Suburb, &c.State, &c.PostCode); err != nil {
			return nil, fmt.Errorf("clients: scan: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Client, error) {
	const query = `
		SELECT id, customer_name, address1, address2, address3, suburb, state, post_code
		FROM clients
		WHERE id = $1`

	var c Client
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CustomerName, &c.Address1, &c.Address2, &c.Address3, &c.Suburb, &c.State, &c.PostCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %d", httpx.ErrNotFound, id)
		}
		return nil, fmt.Errorf("clients: get %d: %w", id, err)
	}
	return &c, nil
}
