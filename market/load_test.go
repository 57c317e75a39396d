package market

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStocksFile(t *testing.T) {
	t.Parallel()

	stocks, err := LoadStocksFile(filepath.Join("testdata", "sample_data.csv"))
	require.NoError(t, err)
	require.Len(t, stocks, 5)

	c := NewCatalog(stocks...)
	gin, ok := c.Get("GIN")
	require.True(t, ok)
	assert.Equal(t, PreferredStock, gin.Type())
	assert.InDelta(t, 0.02, gin.Dividend.(Preferred).FixedDividend, 1e-12)

	joe, ok := c.Get("JOE")
	require.True(t, ok)
	assert.Equal(t, CommonStock, joe.Type())
	assert.InDelta(t, 13.0, joe.Dividend.(Common).LastDividend, 1e-12)
	assert.InDelta(t, 250.0, joe.ParValue, 1e-12)
}

func TestLoadStocksCSVColumnOrder(t *testing.T) {
	t.Parallel()

	in := "par_value,type,symbol,fixed_dividend,last_dividend\n100,preferred,pre,0.02,\n"
	stocks, err := LoadStocksCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "PRE", stocks[0].Symbol)
	assert.InDelta(t, 0.02, stocks[0].Dividend.(Preferred).FixedDividend, 1e-12)
}

func TestLoadStocksCSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		errMsg string
	}{
		{"missing column", "stock_symbol,type,par_value\nTEA,Common,100\n", `missing column "last_dividend"`},
		{"bad type", "stock_symbol,type,last_divident,fixed_divident,par_value\nTEA,Bond,0,,100\n", "line 2"},
		{"bad number", "stock_symbol,type,last_divident,fixed_divident,par_value\nTEA,Common,abc,,100\n", "last_dividend"},
		{"zero par", "stock_symbol,type,last_divident,fixed_divident,par_value\n\nTEA,Common,1,,0\n", "line 3"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadStocksCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadStocksCSVEmpty(t *testing.T) {
	t.Parallel()

	stocks, err := LoadStocksCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, stocks)
}
