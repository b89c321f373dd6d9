// Package pricing computes sales-order line amounts and order totals.
//
// All arithmetic is decimal so summation is exact and order-independent;
// binary floats would make the grand totals depend on line ordering.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineAmounts holds the derived amounts for one order line.
type LineAmounts struct {
	Excl decimal.Decimal
	Tax  decimal.Decimal
	Incl decimal.Decimal
}

// Totals holds the derived grand totals for an order.
type Totals struct {
	Excl decimal.Decimal
	Tax  decimal.Decimal
	Incl decimal.Decimal
}

// PriceLine derives a line's amounts from quantity, tax rate (percent, e.g.
// 15 for 15%) and the catalog unit price at pricing time. Inputs are not
// range-checked: negative quantities and rates flow through arithmetically.
func PriceLine(quantity int64, taxRate, unitPrice decimal.Decimal) LineAmounts {
	excl := unitPrice.Mul(decimal.NewFromInt(quantity))
	tax := excl.Mul(taxRate).Div(hundred)
	return LineAmounts{
		Excl: excl,
		Tax:  tax,
		Incl: excl.Add(tax),
	}
}

// SumTotals folds line amounts into order totals. An empty slice yields
// zero totals. TotalIncl is defined as TotalExcl + TotalTax.
func SumTotals(lines []LineAmounts) Totals {
	var excl, tax decimal.Decimal
	for _, line := range lines {
		excl = excl.Add(line.Excl)
		tax = tax.Add(line.Tax)
	}
	return Totals{
		Excl: excl,
		Tax:  tax,
		Incl: excl.Add(tax),
	}
}
