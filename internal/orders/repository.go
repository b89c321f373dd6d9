package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk/internal/platform/db"
	"github.com/orderdesk/orderdesk/internal/platform/httpx"
)

// Repository persists the order aggregate. Create and Update run inside
// WithTx so the header and its lines are visible all-or-nothing.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*SalesOrder, error)
	GetDetail(ctx context.Context, id int64) (*SalesOrderDetail, error)
	List(ctx context.Context) ([]SalesOrderSummary, error)
	Create(ctx context.Context, order SalesOrder) (int64, error)
	UpdateHeader(ctx context.Context, order SalesOrder) error
	InsertItem(ctx context.Context, item SalesOrderItem) (int64, error)
	DeleteItems(ctx context.Context, orderID int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed order repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		repoTx := &repository{db: tx, pool: r.pool}
		return fn(ctx, repoTx)
	})
}

func (r *repository) Get(ctx context.Context, id int64) (*SalesOrder, error) {
	const query = `
		SELECT id, client_id, invoice_no, invoice_date, reference_no, note,
		       total_excl, total_tax, total_incl
		FROM sales_orders
		WHERE id = $1`

	var (
		o                   SalesOrder
		invoiceDate         pgtype.Date
		totalExcl, totalTax pgtype.Numeric
		totalIncl           pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.ClientID, &o.InvoiceNo, &invoiceDate, &o.ReferenceNo, &o.Note,
		&totalExcl, &totalTax, &totalIncl,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sales order %d", httpx.ErrNotFound, id)
		}
		return nil, fmt.Errorf("orders: get %d: %w", id, err)
	}
	o.InvoiceDate = invoiceDate.Time
	o.TotalExcl = numericToDecimal(totalExcl)
	o.TotalTax = numericToDecimal(totalTax)
	o.TotalIncl = numericToDecimal(totalIncl)

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *repository) items(ctx context.Context, orderID int64) ([]SalesOrderItem, error) {
	const query = `
		SELECT id, sales_order_id, item_id, note, quantity, tax,
		       excl_amount, tax_amount, incl_amount, position
		FROM sales_order_items
		WHERE sales_order_id = $1
		ORDER BY position, id`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders: items for %d: %w", orderID, err)
	}
	defer rows.Close()

	var items []SalesOrderItem
	for rows.Next() {
		var (
			item            SalesOrderItem
			tax, excl       pgtype.Numeric
			taxAmount, incl pgtype.Numeric
		)
		err := rows.Scan(
			&item.ID, &item.SalesOrderID, &item.ItemID, &item.Note, &item.Quantity,
			&tax, &excl, &taxAmount, &incl, &item.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("orders: scan item: %w", err)
		}
		item.Tax = numericToDecimal(tax)
		item.ExclAmount = numericToDecimal(excl)
		item.TaxAmount = numericToDecimal(taxAmount)
		item.InclAmount = numericToDecimal(incl)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) GetDetail(ctx context.Context, id int64) (*SalesOrderDetail, error) {
	order, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Display fields come from the catalog as it is now, not as it was when
	// the order was priced. The stored amounts stay frozen either way.
	const query = `
		SELECT soi.id, soi.sales_order_id, soi.item_id, soi.note, soi.quantity, soi.tax,
		       soi.excl_amount, soi.tax_amount, soi.incl_amount, soi.position,
		       i.item_code, i.description, i.price
		FROM sales_order_items soi
		JOIN items i ON i.id = soi.item_id
		WHERE soi.sales_order_id = $1
		ORDER BY soi.position, soi.id`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("orders: detail items for %d: %w", id, err)
	}
	defer rows.Close()

	detail := &SalesOrderDetail{Order: *order}
	for rows.Next() {
		var (
			item            SalesOrderItemDetail
			tax, excl       pgtype.Numeric
			taxAmount, incl pgtype.Numeric
			price           pgtype.Numeric
		)
		err := rows.Scan(
			&item.ID, &item.SalesOrderID, &item.ItemID, &item.Note, &item.Quantity,
			&tax, &excl, &taxAmount, &incl, &item.Position,
			&item.ItemCode, &item.Description, &price,
		)
		if err != nil {
			return nil, fmt.Errorf("orders: scan detail item: %w", err)
		}
		item.Tax = numericToDecimal(tax)
		item.ExclAmount = numericToDecimal(excl)
		item.TaxAmount = numericToDecimal(taxAmount)
		item.InclAmount = numericToDecimal(incl)
		item.Price = numericToDecimal(price)
		detail.Items = append(detail.Items, item)
	}
	return detail, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]SalesOrderSummary, error) {
	const query = `
		SELECT so.id, so.invoice_no, so.invoice_date, c.customer_name, so.total_incl
		FROM sales_orders so
		JOIN clients c ON c.id = so.client_id
		ORDER BY so.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	defer rows.Close()

	var summaries []SalesOrderSummary
	for rows.Next() {
		var (
			s           SalesOrderSummary
			invoiceDate pgtype.Date
			totalIncl   pgtype.Numeric
		)
		if err := rows.Scan(&s.ID, &s.InvoiceNo, &invoiceDate, &s.CustomerName, &totalIncl); err != nil {
			return nil, fmt.Errorf("orders: scan summary: %w", err)
		}
		s.InvoiceDate = invoiceDate.Time
		s.TotalIncl = numericToDecimal(totalIncl)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *repository) Create(ctx context.Context, o SalesOrder) (int64, error) {
	const query = `
		INSERT INTO sales_orders (client_id, invoice_no, invoice_date, reference_no, note,
		                          total_excl, total_tax, total_incl)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		o.ClientID, o.InvoiceNo, o.InvoiceDate, o.ReferenceNo, o.Note,
		numericParam(o.TotalExcl), numericParam(o.TotalTax), numericParam(o.TotalIncl),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("orders: create: %w", err)
	}
	return id, nil
}

func (r *repository) UpdateHeader(ctx context.Context, o SalesOrder) error {
	const query = `
		UPDATE sales_orders
		SET client_id = $1, invoice_no = $2, invoice_date = $3, reference_no = $4, note = $5,
		    total_excl = $6, total_tax = $7, total_incl = $8, updated_at = NOW()
		WHERE id = $9`

	tag, err := r.db.Exec(ctx, query,
		o.ClientID, o.InvoiceNo, o.InvoiceDate, o.ReferenceNo, o.Note,
		numericParam(o.TotalExcl), numericParam(o.TotalTax), numericParam(o.TotalIncl),
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("orders: update %d: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sales order %d", httpx.ErrNotFound, o.ID)
	}
	return nil
}

func (r *repository) InsertItem(ctx context.Context, item SalesOrderItem) (int64, error) {
	const query = `
		INSERT INTO sales_order_items (sales_order_id, item_id, note, quantity, tax,
		                               excl_amount, tax_amount, incl_amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		item.SalesOrderID, item.ItemID, item.Note, item.Quantity, numericParam(item.Tax),
		numericParam(item.ExclAmount), numericParam(item.TaxAmount), numericParam(item.InclAmount),
		item.Position,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("orders: insert item: %w", err)
	}
	return id, nil
}

func (r *repository) DeleteItems(ctx context.Context, orderID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sales_order_items WHERE sales_order_id = $1`, orderID); err != nil {
		return fmt.Errorf("orders: delete items for %d: %w", orderID, err)
	}
	return nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func numericParam(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.String())
	return n
}
