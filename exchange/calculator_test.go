package exchange

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/gbce/market"
)

func TestDividendYield(t *testing.T) {
	t.Parallel()

	calc := New(testCatalog(t)).Calculator()

	y, ok, err := calc.DividendYield("SAM", 125)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.104, y, 1e-12)

	y, ok, err = calc.DividendYield("PRE", 50)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.04, y, 1e-12)

	for _, p := range []float64{1, 13, 250, 1e6} {
		y, ok, err = calc.DividendYield("SAM", p)
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, 13/p, y, 1e-12)
	}
}

func TestDividendYieldUnknownStockIsAbsent(t *testing.T) {
	t.Parallel()

	calc := New(testCatalog(t)).Calculator()
	_, ok, err := calc.DividendYield("XXX", 100)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDividendYieldWithoutDividendTerms(t *testing.T) {
	t.Parallel()

	ex := New(testCatalog(t))
	ex.AddStock(market.Stock{Symbol: "ZZZ", ParValue: 1})
	calc := ex.Calculator()

	_, ok, err := calc.DividendYield("ZZZ", 10)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = calc.PERatio("ZZZ", 10)
	assert.ErrorIs(t, err, ErrUndefinedRatio)

	sum, err := calc.Summary("ZZZ", 10, DefaultWindow)
	require.NoError(t, err)
	assert.Nil(t, sum.DividendYield)
	assert.Nil(t, sum.PERatio)
}

func TestDividendYieldInvalidPrice(t *testing.T) {
	t.Parallel()

	calc := New(testCatalog(t)).Calculator()
	for _, p := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, _, err := calc.DividendYield("SAM", p)
		assert.ErrorIs(t, err, ErrInvalidPrice, "price %v", p)
	}
	// invalid price wins over unknown stock
	_, _, err := calc.DividendYield("XXX", 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestPERatio(t *testing.T) {
	t.Parallel()

	calc := New(testCatalog(t)).Calculator()

	pe, err := calc.PERatio("SAM", 125)
	require.NoError(t, err)
	assert.InDelta(t, 125/0.104, pe, 1e-9)

	pe, err = calc.PERatio("PRE", 50)
	require.NoError(t, err)
	assert.InDelta(t, 50/0.04, pe, 1e-9)
}

func TestPERatioUndefined(t *testing.T) {
	t.Parallel()

	calc := New(testCatalog(t)).Calculator()

	_, err := calc.PERatio("TEA", 100)
	assert.ErrorIs(t, err, ErrUndefinedRatio, "zero dividend")

	_, err = calc.PERatio("XXX", 100)
	assert.ErrorIs(t, err, ErrUndefinedRatio, "unknown stock")

	_, err = calc.PERatio("SAM", -1)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestVolumeWeightedPriceScenario(t *testing.T) {
	t.Parallel()

	clk := newClock()
	ex := New(testCatalog(t), WithClock(clk.Now))

	for _, tr := range []struct {
		q    int64
		side string
		p    float64
	}{{10, "B", 100}, {20, "S", 110}, {5, "B", 90}} {
		_, err := ex.RecordTrade("SAM", tr.q, tr.side, tr.p)
		require.NoError(t, err)
		clk.Advance(10 * time.Second)
	}

	v, ok, err := ex.Calculator().VolumeWeightedPrice("SAM", 5*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, (10*100.0+20*110+5*90)/35, v, 1e-9)
}

func TestVolumeWeightedPriceWindow(t *testing.T) {
	t.Parallel()

	clk := newClock()
	ex := New(testCatalog(t), WithClock(clk.Now))
	calc := ex.Calculator()

	_, err := ex.RecordTrade("SAM", 100, "B", 1)
	require.NoError(t, err)
	clk.Advance(10 * time.Minute)
	_, err = ex.RecordTrade("SAM", 10, "B", 100)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	_, err = ex.RecordTrade("SAM", 30, "S", 120)
	require.NoError(t, err)

	v, ok, err := calc.VolumeWeightedPrice("SAM", DefaultWindow)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, (10*100.0+30*120)/40, v, 1e-9)

	// zero window includes everything
	v, ok, err = calc.VolumeWeightedPrice("SAM", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, (100*1.0+10*100+30*120)/140, v, 1e-9)

	// once the trades age out the window is empty
	clk.Advance(time.Hour)
	_, ok, err = calc.VolumeWeightedPrice("SAM", DefaultWindow)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVolumeWeightedPriceIgnoresTradesAfterNow(t *testing.T) {
	t.Parallel()

	clk := newClock()
	ex := New(testCatalog(t), WithClock(clk.Now))
	calc := ex.Calculator()

	_, err := ex.RecordTrade("SAM", 10, "B", 100)
	require.NoError(t, err)
	clk.Advance(-2 * time.Minute)
	// clamped forward to the first trade's timestamp
	_, err = ex.RecordTrade("SAM", 30, "S", 120)
	require.NoError(t, err)

	_, ok, err := calc.VolumeWeightedPrice("SAM", DefaultWindow)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := calc.VolumeWeightedPrice("SAM", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, (10*100.0+30*120)/40, v, 1e-9)
}

func TestVolumeWeightedPriceAbsentAndInvalid(t *testing.T) {
	t.Parallel()

	calc := New(testCatalog(t)).Calculator()

	_, ok, err := calc.VolumeWeightedPrice("SAM", DefaultWindow)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = calc.VolumeWeightedPrice("XXX", 0)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = calc.VolumeWeightedPrice("SAM", -time.Minute)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestCompositeIndex(t *testing.T) {
	t.Parallel()

	clk := newClock()
	ex := New(testCatalog(t), WithClock(clk.Now))
	calc := ex.Calculator()

	_, err := calc.CompositeIndex()
	assert.ErrorIs(t, err, ErrNoDataForIndex)

	// SAM all-time vwp: (10*100 + 30*120) / 40 = 115
	_, err = ex.RecordTrade("SAM", 10, "B", 100)
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = ex.RecordTrade("SAM", 30, "S", 120)
	require.NoError(t, err)
	// PRE all-time vwp: 40
	_, err = ex.RecordTrade("PRE", 5, "B", 40)
	require.NoError(t, err)

	got, err := calc.CompositeIndex()
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(115*40, 0.5), got, 1e-9)

	idx, err := calc.Index()
	require.NoError(t, err)
	assert.Equal(t, []string{"PRE", "SAM"}, idx.Symbols)
	assert.True(t, idx.Time.Equal(clk.Now()))
}

func TestCompositeIndexSingleSymbol(t *testing.T) {
	t.Parallel()

	ex := New(testCatalog(t))
	_, err := ex.RecordTrade("TEA", 3, "B", 42)
	require.NoError(t, err)

	got, err := ex.Calculator().CompositeIndex()
	require.NoError(t, err)
	assert.InDelta(t, 42.0, got, 1e-9)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	clk := newClock()
	ex := New(testCatalog(t), WithClock(clk.Now))
	_, err := ex.RecordTrade("SAM", 10, "B", 100)
	require.NoError(t, err)

	calc := ex.Calculator()
	s, err := calc.Summary("SAM", 125, DefaultWindow)
	require.NoError(t, err)
	require.NotNil(t, s.DividendYield)
	require.NotNil(t, s.PERatio)
	require.NotNil(t, s.VolumeWeightedPrice)
	assert.InDelta(t, 0.104, *s.DividendYield, 1e-12)
	assert.InDelta(t, 100.0, *s.VolumeWeightedPrice, 1e-12)

	s, err = calc.Summary("TEA", 100, DefaultWindow)
	require.NoError(t, err)
	require.NotNil(t, s.DividendYield)
	assert.Nil(t, s.PERatio)
	assert.Nil(t, s.VolumeWeightedPrice)

	s, err = calc.Summary("XXX", 100, 0)
	require.NoError(t, err)
	assert.Nil(t, s.DividendYield)

	_, err = calc.Summary("SAM", 0, DefaultWindow)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, err = calc.Summary("SAM", 1, -time.Second)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
