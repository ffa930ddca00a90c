// internal/domain/revenue_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitRevenue(t *testing.T) {
	tests := []struct {
		name      string
		payment   string
		viewers   int64
		rewards   string
		fee       string
		costs     string
		perViewer string
	}{
		{"DefaultPayment", "1000", 100, "750", "150", "100", "7.5"},
		{"ZeroViewers", "1000", 0, "750", "150", "100", "0"},
		{"NegativeViewers", "1000", -5, "750", "150", "100", "0"},
		{"ZeroPayment", "0", 10, "0", "0", "0", "0"},
		{"FractionalPayment", "123.45", 3, "92.5875", "18.5175", "12.345", "30.8625"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			split := SplitRevenue(decimal.RequireFromString(tc.payment), tc.viewers)

			assert.True(t, decimal.RequireFromString(tc.rewards).Equal(split.UserRewards), "rewards %s", split.UserRewards)
			assert.True(t, decimal.RequireFromString(tc.fee).Equal(split.PlatformFee), "fee %s", split.PlatformFee)
			assert.True(t, decimal.RequireFromString(tc.costs).Equal(split.OperatingCosts), "costs %s", split.OperatingCosts)
			assert.True(t, decimal.RequireFromString(tc.perViewer).Equal(split.PerViewer), "per viewer %s", split.PerViewer)
		})
	}
}

func TestSplitRevenueSharesSumToPayment(t *testing.T) {
	for _, p := range []string{"0", "0.01", "1", "999.99", "1000", "31415.9265", "1e9"} {
		payment := decimal.RequireFromString(p)
		split := SplitRevenue(payment, 7)
		sum := split.UserRewards.Add(split.PlatformFee).Add(split.OperatingCosts)
		assert.True(t, payment.Equal(sum), "payment %s summed to %s", payment, sum)
	}
}

func TestSplitRevenueDoesNotRound(t *testing.T) {
	split := SplitRevenue(decimal.NewFromInt(1000), 3)
	// 750 / 3 is exact; 1000 / 7 viewers is not and must keep its precision.
	assert.Equal(t, "250", split.PerViewer.String())

	split = SplitRevenue(decimal.NewFromInt(1000), 7)
	assert.True(t, split.PerViewer.GreaterThan(decimal.RequireFromString("107.1428")))
	assert.True(t, split.PerViewer.LessThan(decimal.RequireFromString("107.1429")))
}
