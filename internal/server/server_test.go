package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/gbce/exchange"
	"github.com/rustyeddy/gbce/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *exchange.Exchange) {
	t.Helper()
	sam, err := market.NewStock("SAM", 250, market.Common{LastDividend: 13})
	require.NoError(t, err)
	pre, err := market.NewStock("PRE", 100, market.Preferred{FixedDividend: 0.02})
	require.NoError(t, err)
	tea, err := market.NewStock("TEA", 100, market.Common{})
	require.NoError(t, err)

	ex := exchange.New(market.NewCatalog(sam, pre, tea))
	return New(ex, exchange.DefaultWindow), ex
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v))
}

func TestListAndGetStocks(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	h := s.Routes()

	rr := do(t, h, http.MethodGet, "/stocks", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var stocks []stockJSON
	decode(t, rr, &stocks)
	require.Len(t, stocks, 3)
	assert.Equal(t, "PRE", stocks[0].Symbol)
	assert.Equal(t, "Preferred", stocks[0].Type)

	rr = do(t, h, http.MethodGet, "/stocks/sam", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var st stockJSON
	decode(t, rr, &st)
	assert.Equal(t, "SAM", st.Symbol)
	assert.Equal(t, 13.0, st.LastDividend)

	rr = do(t, h, http.MethodGet, "/stocks/XXX", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddStock(t *testing.T) {
	t.Parallel()

	s, ex := newTestServer(t)
	h := s.Routes()

	rr := do(t, h, http.MethodPost, "/stocks", `{"symbol":"gin","type":"preferred","fixed_dividend":0.02,"par_value":100}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	gin, ok := ex.Catalog().Get("GIN")
	require.True(t, ok)
	assert.Equal(t, market.PreferredStock, gin.Type())

	rr = do(t, h, http.MethodPost, "/stocks", `{"symbol":"BAD","type":"bond","par_value":100}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/stocks", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordAndListTrades(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	h := s.Routes()

	rr := do(t, h, http.MethodPost, "/stocks/SAM/trades", `{"quantity":10,"side":"B","price":100}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var tr tradeJSON
	decode(t, rr, &tr)
	assert.Equal(t, "BUY", tr.Side)
	assert.NotEmpty(t, tr.ID)

	rr = do(t, h, http.MethodGet, "/stocks/SAM/trades", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var trades []tradeJSON
	decode(t, rr, &trades)
	require.Len(t, trades, 1)

	rr = do(t, h, http.MethodGet, "/stocks/POP/trades", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/trades", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all map[string][]tradeJSON
	decode(t, rr, &all)
	assert.Len(t, all["SAM"], 1)
}

func TestRecordTradeErrors(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	h := s.Routes()

	tests := []struct {
		path string
		body string
		code int
	}{
		{"/stocks/XXX/trades", `{"quantity":10,"side":"B","price":100}`, http.StatusNotFound},
		{"/stocks/SAM/trades", `{"quantity":10,"side":"X","price":100}`, http.StatusBadRequest},
		{"/stocks/SAM/trades", `{"quantity":0,"side":"B","price":100}`, http.StatusBadRequest},
		{"/stocks/SAM/trades", `{"quantity":10,"side":"B","price":0}`, http.StatusBadRequest},
		{"/stocks/SAM/trades", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rr := do(t, h, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, tt.code, rr.Code, tt.body)
		assert.Contains(t, rr.Body.String(), `"error"`)
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	s, ex := newTestServer(t)
	h := s.Routes()

	rr := do(t, h, http.MethodGet, "/stocks/SAM/yield?price=125", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var m metricJSON
	decode(t, rr, &m)
	require.NotNil(t, m.Value)
	assert.InDelta(t, 0.104, *m.Value, 1e-12)

	rr = do(t, h, http.MethodGet, "/stocks/XXX/yield?price=125", "")
	require.Equal(t, http.StatusOK, rr.Code)
	m = metricJSON{}
	decode(t, rr, &m)
	assert.Nil(t, m.Value)

	rr = do(t, h, http.MethodGet, "/stocks/SAM/yield?price=0", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = do(t, h, http.MethodGet, "/stocks/SAM/yield", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/stocks/PRE/pe?price=50", "")
	require.Equal(t, http.StatusOK, rr.Code)
	m = metricJSON{}
	decode(t, rr, &m)
	require.NotNil(t, m.Value)
	assert.InDelta(t, 1250.0, *m.Value, 1e-9)

	rr = do(t, h, http.MethodGet, "/stocks/TEA/pe?price=50", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, h, http.MethodGet, "/stocks/SAM/vwp", "")
	require.Equal(t, http.StatusOK, rr.Code)
	m = metricJSON{}
	decode(t, rr, &m)
	assert.Nil(t, m.Value)
	assert.Equal(t, "5m0s", m.Window)

	_, err := ex.RecordTrade("SAM", 10, "B", 100)
	require.NoError(t, err)
	_, err = ex.RecordTrade("SAM", 30, "S", 120)
	require.NoError(t, err)

	rr = do(t, h, http.MethodGet, "/stocks/SAM/vwp?window=all", "")
	require.Equal(t, http.StatusOK, rr.Code)
	m = metricJSON{}
	decode(t, rr, &m)
	require.NotNil(t, m.Value)
	assert.InDelta(t, 115.0, *m.Value, 1e-9)

	rr = do(t, h, http.MethodGet, "/stocks/SAM/vwp?window=-1m", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = do(t, h, http.MethodGet, "/stocks/SAM/vwp?window=soon", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/stocks/SAM/summary?price=125", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var sum summaryJSON
	decode(t, rr, &sum)
	require.NotNil(t, sum.DividendYield)
	require.NotNil(t, sum.PERatio)
	require.NotNil(t, sum.VolumeWeightedPrice)
	assert.InDelta(t, 115.0, *sum.VolumeWeightedPrice, 1e-9)
}

func TestCompositeIndex(t *testing.T) {
	t.Parallel()

	s, ex := newTestServer(t)
	h := s.Routes()

	rr := do(t, h, http.MethodGet, "/index", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	_, err := ex.RecordTrade("SAM", 1, "B", 2)
	require.NoError(t, err)
	_, err = ex.RecordTrade("PRE", 1, "B", 8)
	require.NoError(t, err)

	rr = do(t, h, http.MethodGet, "/index", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var idx indexJSON
	decode(t, rr, &idx)
	assert.InDelta(t, 4.0, idx.Value, 1e-9)
	assert.Equal(t, []string{"PRE", "SAM"}, idx.Symbols)
}

func TestListenAndServeShutdown(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
