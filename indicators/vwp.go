package indicators

import (
	"math"
	"time"

	"github.com/rustyeddy/gbce/market"
)

// VolumeWeightedPrice returns sum(price*quantity)/sum(quantity) over the
// trades stamped in [since, until]. A zero since or until leaves that end
// of the window open.
//
// trades must be in chronological order: the scan runs newest first and
// stops at the first trade older than since.
func VolumeWeightedPrice(trades []market.Trade, since, until time.Time) (float64, bool) {
	var (
		quantity int64
		notional float64
		count    int
	)
	for i := len(trades) - 1; i >= 0; i-- {
		t := trades[i]
		if !until.IsZero() && t.Timestamp.After(until) {
			continue
		}
		if !since.IsZero() && t.Timestamp.Before(since) {
			break
		}
		quantity += t.Quantity
		notional += t.Notional()
		count++
	}
	if count == 0 || quantity == 0 {
		return 0, false
	}
	return notional / float64(quantity), true
}

// GeometricMean returns the n-th root of the product of values. Values that
// are not positive are skipped; it reports false when none remain.
// The product is accumulated in log space so large indexes do not overflow.
func GeometricMean(values []float64) (float64, int, bool) {
	var (
		logSum float64
		n      int
	)
	for _, v := range values {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		logSum += math.Log(v)
		n++
	}
	if n == 0 {
		return 0, 0, false
	}
	return math.Exp(logSum / float64(n)), n, true
}
