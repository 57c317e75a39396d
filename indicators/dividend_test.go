package indicators

import (
	"testing"

	"github.com/rustyeddy/gbce/market"
	"github.com/stretchr/testify/assert"
)

func TestDividendYield(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stock market.Stock
		price float64
		want  float64
	}{
		{"common", market.Stock{Symbol: "SAM", ParValue: 250, Dividend: market.Common{LastDividend: 13}}, 125, 0.104},
		{"common zero dividend", market.Stock{Symbol: "TEA", ParValue: 100, Dividend: market.Common{}}, 50, 0},
		{"preferred", market.Stock{Symbol: "PRE", ParValue: 100, Dividend: market.Preferred{FixedDividend: 0.02}}, 50, 0.04},
		{"common ignores par value", market.Stock{Symbol: "POP", ParValue: 1000, Dividend: market.Common{LastDividend: 8}}, 100, 0.08},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, DividendYield(tt.stock, tt.price), 1e-12)
		})
	}
}

func TestPERatio(t *testing.T) {
	t.Parallel()

	pe, ok := PERatio(125, 0.104)
	assert.True(t, ok)
	assert.InDelta(t, 125/0.104, pe, 1e-9)

	_, ok = PERatio(125, 0)
	assert.False(t, ok)
}
