package pricing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPriceLine(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		taxRate  string
		price    string
		excl     string
		tax      string
		incl     string
	}{
		{"basic", 2, "10", "50.00", "100", "10", "110"},
		{"fifteen percent", 3, "15", "35.50", "106.50", "15.975", "122.475"},
		{"zero quantity", 0, "15", "450.00", "0", "0", "0"},
		{"zero tax", 5, "0", "62.25", "311.25", "0", "311.25"},
		{"zero price", 7, "15", "0", "0", "0", "0"},
		{"negative quantity passes through", -2, "10", "50.00", "-100", "-10", "-110"},
		{"negative tax passes through", 2, "-10", "50.00", "100", "-10", "90"},
		{"fractional tax rate", 1, "12.5", "27.90", "27.90", "3.4875", "31.3875"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceLine(tt.quantity, dec(tt.taxRate), dec(tt.price))
			assert.True(t, got.Excl.Equal(dec(tt.excl)), "excl: got %s want %s", got.Excl, tt.excl)
			assert.True(t, got.Tax.Equal(dec(tt.tax)), "tax: got %s want %s", got.Tax, tt.tax)
			assert.True(t, got.Incl.Equal(dec(tt.incl)), "incl: got %s want %s", got.Incl, tt.incl)
		})
	}
}

func TestPriceLineInclIsExclPlusTax(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		qty := rng.Int63n(1000)
		rate := decimal.New(rng.Int63n(30000), -3)
		price := decimal.New(rng.Int63n(10_000_000), -4)

		got := PriceLine(qty, rate, price)
		require.True(t, got.Incl.Equal(got.Excl.Add(got.Tax)),
			"qty=%d rate=%s price=%s", qty, rate, price)
	}
}

func TestPriceLineDecimalExactness(t *testing.T) {
	// 0.1 + 0.2 style cases that drift under float64.
	got := PriceLine(3, dec("10"), dec("0.10"))
	assert.True(t, got.Excl.Equal(dec("0.30")))
	assert.True(t, got.Tax.Equal(dec("0.03")))
	assert.True(t, got.Incl.Equal(dec("0.33")))
}

func TestSumTotalsEmpty(t *testing.T) {
	totals := SumTotals(nil)
	assert.True(t, totals.Excl.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Incl.IsZero())
}

func TestSumTotals(t *testing.T) {
	lines := []LineAmounts{
		PriceLine(2, dec("10"), dec("50.00")),
		PriceLine(3, dec("15"), dec("35.50")),
		PriceLine(1, dec("0"), dec("189.00")),
	}
	totals := SumTotals(lines)
	assert.True(t, totals.Excl.Equal(dec("395.50")), "excl %s", totals.Excl)
	assert.True(t, totals.Tax.Equal(dec("25.975")), "tax %s", totals.Tax)
	assert.True(t, totals.Incl.Equal(dec("421.475")), "incl %s", totals.Incl)
}

func TestSumTotalsPermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lines := make([]LineAmounts, 20)
	for i := range lines {
		lines[i] = PriceLine(rng.Int63n(100), decimal.New(rng.Int63n(2500), -2), decimal.New(rng.Int63n(1_000_000), -4))
	}
	want := SumTotals(lines)

	for trial := 0; trial < 10; trial++ {
		shuffled := make([]LineAmounts, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := SumTotals(shuffled)
		require.True(t, got.Excl.Equal(want.Excl))
		require.True(t, got.Tax.Equal(want.Tax))
		require.True(t, got.Incl.Equal(want.Incl))
	}
}

func TestSumTotalsIncrementalMatchesOnePass(t *testing.T) {
	lines := []LineAmounts{
		PriceLine(2, dec("10"), dec("0.10")),
		PriceLine(9, dec("12.5"), dec("0.07")),
		PriceLine(4, dec("15"), dec("62.25")),
	}

	var running Totals
	for i := range lines {
		running = SumTotals(lines[:i+1])
	}
	onePass := SumTotals(lines)

	assert.True(t, running.Excl.Equal(onePass.Excl))
	assert.True(t, running.Tax.Equal(onePass.Tax))
	assert.True(t, running.Incl.Equal(onePass.Incl))
}
