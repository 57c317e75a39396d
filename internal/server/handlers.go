package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rustyeddy/gbce/exchange"
	"github.com/rustyeddy/gbce/market"
)

type stockJSON struct {
	Symbol        string  `json:"symbol"`
	Type          string  `json:"type"`
	LastDividend  float64 `json:"last_dividend,omitempty"`
	FixedDividend float64 `json:"fixed_dividend,omitempty"`
	ParValue      float64 `json:"par_value"`
}

func toStockJSON(s market.Stock) stockJSON {
	out := stockJSON{Symbol: s.Symbol, Type: s.Type().String(), ParValue: s.ParValue}
	switch d := s.Dividend.(type) {
	case market.Common:
		out.LastDividend = d.LastDividend
	case market.Preferred:
		out.FixedDividend = d.FixedDividend
	}
	return out
}

func (j stockJSON) toStock() (market.Stock, error) {
	typ, err := market.ParseStockType(j.Type)
	if err != nil {
		return market.Stock{}, err
	}
	var d market.Dividend = market.Common{LastDividend: j.LastDividend}
	if typ == market.PreferredStock {
		d = market.Preferred{FixedDividend: j.FixedDividend}
	}
	return market.NewStock(j.Symbol, j.ParValue, d)
}

type tradeJSON struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Quantity  int64     `json:"quantity"`
	Side      string    `json:"side"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

func toTradeJSON(t market.Trade) tradeJSON {
	return tradeJSON{
		ID:        t.ID,
		Symbol:    t.Symbol,
		Quantity:  t.Quantity,
		Side:      t.Side.String(),
		Price:     t.Price,
		Timestamp: t.Timestamp,
	}
}

func toTradesJSON(ts []market.Trade) []tradeJSON {
	out := make([]tradeJSON, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTradeJSON(t))
	}
	return out
}

// metricJSON carries a value that may be absent; Value is null then.
type metricJSON struct {
	Symbol string   `json:"symbol"`
	Price  float64  `json:"price,omitempty"`
	Window string   `json:"window,omitempty"`
	Value  *float64 `json:"value"`
}

type summaryJSON struct {
	Symbol              string   `json:"symbol"`
	Price               float64  `json:"price"`
	Window              string   `json:"window"`
	DividendYield       *float64 `json:"dividend_yield"`
	PERatio             *float64 `json:"pe_ratio"`
	VolumeWeightedPrice *float64 `json:"volume_weighted_price"`
}

type indexJSON struct {
	Value   float64   `json:"value"`
	Symbols []string  `json:"symbols"`
	Time    time.Time `json:"time"`
}

// GET /stocks
func (s *Server) ListStocks(w http.ResponseWriter, r *http.Request) {
	cat := s.ex.Catalog()
	out := make([]stockJSON, 0, cat.Len())
	for _, sym := range cat.Symbols() {
		if st, ok := cat.Get(sym); ok {
			out = append(out, toStockJSON(st))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /stocks
func (s *Server) AddStock(w http.ResponseWriter, r *http.Request) {
	var body stockJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	st, err := body.toStock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.ex.AddStock(st)
	writeJSON(w, http.StatusCreated, toStockJSON(st))
}

// GET /stocks/{symbol}
func (s *Server) GetStock(w http.ResponseWriter, r *http.Request) {
	sym := symbolParam(r)
	st, ok := s.ex.Catalog().Get(sym)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%s: %w", sym, exchange.ErrUnknownStock))
		return
	}
	writeJSON(w, http.StatusOK, toStockJSON(st))
}

// GET /stocks/{symbol}/trades
func (s *Server) ListTrades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toTradesJSON(s.ex.History(symbolParam(r))))
}

// POST /stocks/{symbol}/trades
func (s *Server) RecordTrade(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int64   `json:"quantity"`
		Side     string  `json:"side"`
		Price    float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	t, err := s.ex.RecordTrade(symbolParam(r), body.Quantity, body.Side, body.Price)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, toTradeJSON(t))
}

// GET /stocks/{symbol}/yield?price=
func (s *Server) DividendYield(w http.ResponseWriter, r *http.Request) {
	sym := symbolParam(r)
	price, err := priceParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, ok, err := s.calc.DividendYield(sym, price)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, metricJSON{Symbol: sym, Price: price, Value: optional(y, ok)})
}

// GET /stocks/{symbol}/pe?price=
func (s *Server) PERatio(w http.ResponseWriter, r *http.Request) {
	sym := symbolParam(r)
	price, err := priceParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pe, err := s.calc.PERatio(sym, price)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, metricJSON{Symbol: sym, Price: price, Value: &pe})
}

// GET /stocks/{symbol}/vwp?window=5m
func (s *Server) VolumeWeightedPrice(w http.ResponseWriter, r *http.Request) {
	sym := symbolParam(r)
	window, err := s.windowParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, ok, err := s.calc.VolumeWeightedPrice(sym, window)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, metricJSON{Symbol: sym, Window: window.String(), Value: optional(v, ok)})
}

// GET /stocks/{symbol}/summary?price=&window=
func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	sym := symbolParam(r)
	price, err := priceParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	window, err := s.windowParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sum, err := s.calc.Summary(sym, price, window)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, summaryJSON{
		Symbol:              sum.Symbol,
		Price:               sum.Price,
		Window:              sum.Window.String(),
		DividendYield:       sum.DividendYield,
		PERatio:             sum.PERatio,
		VolumeWeightedPrice: sum.VolumeWeightedPrice,
	})
}

// GET /trades
func (s *Server) AllTrades(w http.ResponseWriter, r *http.Request) {
	all := s.ex.Trades()
	out := make(map[string][]tradeJSON, len(all))
	for sym, ts := range all {
		out[sym] = toTradesJSON(ts)
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /index
func (s *Server) CompositeIndex(w http.ResponseWriter, r *http.Request) {
	idx, err := s.calc.Index()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, indexJSON{Value: idx.Value, Symbols: idx.Symbols, Time: idx.Time})
}

func symbolParam(r *http.Request) string {
	return market.NormalizeSymbol(chi.URLParam(r, "symbol"))
}

func priceParam(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("price")
	if raw == "" {
		return 0, errors.New("query parameter 'price' is required")
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid 'price' %q", raw)
	}
	return p, nil
}

func (s *Server) windowParam(r *http.Request) (time.Duration, error) {
	raw := r.URL.Query().Get("window")
	switch raw {
	case "":
		return s.window, nil
	case "0", "all":
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid 'window' %q", raw)
	}
	return d, nil
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, exchange.ErrUnknownStock):
		return http.StatusNotFound
	case errors.Is(err, exchange.ErrInvalidTradeSide),
		errors.Is(err, exchange.ErrInvalidQuantity),
		errors.Is(err, exchange.ErrInvalidPrice),
		errors.Is(err, exchange.ErrInvalidWindow):
		return http.StatusBadRequest
	case errors.Is(err, exchange.ErrUndefinedRatio),
		errors.Is(err, exchange.ErrNoDataForIndex):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
