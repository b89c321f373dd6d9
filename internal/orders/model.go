package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder is the order aggregate root. Totals are always derived from the
// current items via the pricing calculator and never set independently.
type SalesOrder struct {
	ID          int64
	ClientID    int64
	InvoiceNo   string
	InvoiceDate time.Time
	ReferenceNo string
	Note        string
	TotalExcl   decimal.Decimal
	TotalTax    decimal.Decimal
	TotalIncl   decimal.Decimal
	Items       []SalesOrderItem
}

// SalesOrderItem is one order line. The unit price is not stored on the line;
// only the amounts derived from it at pricing time are frozen here.
type SalesOrderItem struct {
	ID           int64
	SalesOrderID int64
	ItemID       int64
	Note         string
	Quantity     int64
	Tax          decimal.Decimal
	ExclAmount   decimal.Decimal
	TaxAmount    decimal.Decimal
	InclAmount   decimal.Decimal
	Position     int
}

// SalesOrderSummary is one row of the order listing, with the client name
// joined in.
type SalesOrderSummary struct {
	ID           int64
	InvoiceNo    string
	InvoiceDate  time.Time
	CustomerName string
	TotalIncl    decimal.Decimal
}

// SalesOrderItemDetail is a line enriched with catalog display fields joined
// at read time. Code, description and price reflect the catalog's current
// state, not the state at order time; the stored amounts stay frozen.
type SalesOrderItemDetail struct {
	SalesOrderItem
	ItemCode    string
	Description string
	Price       decimal.Decimal
}

// SalesOrderDetail is the full order plus enriched lines.
type SalesOrderDetail struct {
	Order SalesOrder
	Items []SalesOrderItemDetail
}
