package catalog

import "github.com/shopspring/decimal"

// Item is a catalog entry. Price is authoritative only at the moment an
// order line is priced; orders freeze derived amounts, not the price itself.
type Item struct {
	ID          int64           `json:"id"`
	ItemCode    string          `json:"itemCode"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}
