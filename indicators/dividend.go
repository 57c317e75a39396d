package indicators

import "github.com/rustyeddy/gbce/market"

// DividendYield is the stock's dividend divided by price. Common stock uses
// its last dividend, preferred stock its fixed dividend times par value.
// Callers must ensure price > 0.
func DividendYield(s market.Stock, price float64) float64 {
	return s.Dividend.Amount(s.ParValue) / price
}

// PERatio is price over dividend yield. It reports false when the yield is
// zero and the ratio is undefined.
func PERatio(price, yield float64) (float64, bool) {
	if yield == 0 {
		return 0, false
	}
	return price / yield, true
}
