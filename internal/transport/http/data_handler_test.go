package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findash/internal/analytics"
	"findash/internal/dataprocessing"
	apierrors "findash/internal/errors"
	"findash/pkg/contracts/domain"
)

// stubDataService implements DataServiceInterface with canned values.
type stubDataService struct {
	snapshot *domain.Snapshot
	symbols  []string
	bars     []domain.PriceBar
	returns  []domain.ReturnPoint
	vol      float64
	pairs    []domain.CorrelationPair
	series   []domain.ChartSeries
	err      error

	correlationSymbols []string
	filterArgs         []string
}

func (s *stubDataService) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubDataService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubDataService) Symbols(ctx context.Context) ([]string, error) {
	return s.symbols, s.err
}

func (s *stubDataService) PriceBars(ctx context.Context) ([]domain.PriceBar, error) {
	return s.bars, s.err
}

func (s *stubDataService) Dividends(ctx context.Context) ([]domain.DividendEvent, error) {
	return nil, s.err
}

func (s *stubDataService) Earnings(ctx context.Context) ([]domain.EarningsEvent, error) {
	return nil, s.err
}

func (s *stubDataService) Returns(ctx context.Context, symbol string) ([]domain.ReturnPoint, error) {
	return s.returns, s.err
}

func (s *stubDataService) Volatility(ctx context.Context, symbol string) (float64, error) {
	return s.vol, s.err
}

func (s *stubDataService) CorrelationMatrix(ctx context.Context, symbols []string) ([]domain.CorrelationPair, error) {
	s.correlationSymbols = symbols
	return s.pairs, s.err
}

func (s *stubDataService) FilterByTime(ctx context.Context, symbol, start, end string) ([]domain.PriceBar, error) {
	s.filterArgs = []string{symbol, start, end}
	return s.bars, s.err
}

func (s *stubDataService) FilterBySymbols(ctx context.Context, symbols []string) ([]domain.PriceBar, error) {
	return s.bars, s.err
}

func (s *stubDataService) ChartData(ctx context.Context) ([]domain.ChartSeries, error) {
	return s.series, s.err
}

func newTestHandler(service DataServiceInterface) *DataHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDataHandler(service, logger, apierrors.NewErrorHandler(logger))
}

func doRequest(t *testing.T, h *DataHandler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetSymbols(t *testing.T) {
	stub := &stubDataService{symbols: []string{"AAA", "BBB"}}
	w := doRequest(t, newTestHandler(stub), http.MethodGet, "/symbols", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []interface{}{"AAA", "BBB"}, body["symbols"])
}

func TestGetPriceBars(t *testing.T) {
	stub := &stubDataService{bars: []domain.PriceBar{{
		Symbol: "AAA",
		Date:   time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		Close:  110,
		Volume: 1000,
	}}}
	w := doRequest(t, newTestHandler(stub), http.MethodGet, "/prices", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	bars, ok := body["price_bars"].([]interface{})
	require.True(t, ok)
	require.Len(t, bars, 1)
}

func TestGetPriceBarsSourceUnavailable(t *testing.T) {
	stub := &stubDataService{err: &dataprocessing.SourceUnavailableError{
		Path: "data/master.xlsx",
		Err:  io.ErrUnexpectedEOF,
	}}
	w := doRequest(t, newTestHandler(stub), http.MethodGet, "/prices", "")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, apierrors.TypeSourceUnavailable, body["type"])
	assert.Equal(t, "data/master.xlsx", body["source_path"])
}

func TestCalculateReturns(t *testing.T) {
	stub := &stubDataService{returns: []domain.ReturnPoint{{
		Date:   time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		Return: 0.10,
	}}}
	w := doRequest(t, newTestHandler(stub), http.MethodPost, "/analytics/returns", `{"symbol":"AAA"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AAA", body["symbol"])
	points, ok := body["returns"].([]interface{})
	require.True(t, ok)
	assert.Len(t, points, 1)
}

func TestCalculateReturnsValidation(t *testing.T) {
	t.Run("missing symbol", func(t *testing.T) {
		w := doRequest(t, newTestHandler(&stubDataService{}), http.MethodPost, "/analytics/returns", `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, apierrors.TypeValidation, body["type"])
	})

	t.Run("malformed json", func(t *testing.T) {
		w := doRequest(t, newTestHandler(&stubDataService{}), http.MethodPost, "/analytics/returns", `{"symbol":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCalculateVolatility(t *testing.T) {
	stub := &stubDataService{vol: 0.095}
	w := doRequest(t, newTestHandler(stub), http.MethodPost, "/analytics/volatility", `{"symbol":"AAA"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.InDelta(t, 0.095, body["volatility"].(float64), 1e-12)
}

func TestCalculateVolatilityComputationError(t *testing.T) {
	stub := &stubDataService{err: &analytics.ComputationError{
		Kind: analytics.KindEmptyInput,
		Op:   "volatility",
	}}
	w := doRequest(t, newTestHandler(stub), http.MethodPost, "/analytics/volatility", `{"symbol":"AAA"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, apierrors.TypeEmptyInput, body["type"])
	assert.Equal(t, "volatility", body["operation"])
}

func TestCalculateCorrelations(t *testing.T) {
	stub := &stubDataService{pairs: []domain.CorrelationPair{
		{SymbolA: "AAA", SymbolB: "BBB", Correlation: 0.93},
	}}
	h := newTestHandler(stub)

	t.Run("explicit symbols", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/analytics/correlations", `{"symbols":["AAA","BBB"]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"AAA", "BBB"}, stub.correlationSymbols)
	})

	t.Run("omitted symbols means all", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/analytics/correlations", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, stub.correlationSymbols)
	})

	t.Run("single symbol rejected", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/analytics/correlations", `{"symbols":["AAA"]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFilterByTimeEndpoint(t *testing.T) {
	stub := &stubDataService{bars: []domain.PriceBar{{Symbol: "AAA", Close: 100}}}
	h := newTestHandler(stub)

	body := `{"symbol":"AAA","start_date":"2023-01-01","end_date":"2023-01-31"}`
	w := doRequest(t, h, http.MethodPost, "/prices/filter", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"AAA", "2023-01-01", "2023-01-31"}, stub.filterArgs)

	t.Run("missing dates rejected", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/prices/filter", `{"symbol":"AAA"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFilterBySymbolsEndpoint(t *testing.T) {
	stub := &stubDataService{bars: []domain.PriceBar{{Symbol: "AAA"}, {Symbol: "BBB"}}}
	h := newTestHandler(stub)

	w := doRequest(t, h, http.MethodPost, "/prices/by-symbols", `{"symbols":["AAA","BBB"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("empty list rejected", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/prices/by-symbols", `{"symbols":[]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSnapshotEndpoints(t *testing.T) {
	snap := &domain.Snapshot{
		ID:        "snap-1",
		LoadedAt:  time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
		Symbols:   []string{"AAA"},
		PriceBars: []domain.PriceBar{{Symbol: "AAA"}},
	}
	stub := &stubDataService{snapshot: snap}
	h := newTestHandler(stub)

	t.Run("get", func(t *testing.T) {
		w := doRequest(t, h, http.MethodGet, "/snapshot", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "snap-1", body["id"])
		assert.Equal(t, float64(1), body["symbols"])
		assert.Equal(t, float64(1), body["price_bars"])
	})

	t.Run("reload", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/snapshot/reload", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "snap-1", body["id"])
	})
}

func TestGetChart(t *testing.T) {
	stub := &stubDataService{series: []domain.ChartSeries{{
		Symbol:     "AAA",
		DataPoints: []domain.DataPoint{{Label: "2023-01-01", Value: 100}},
	}}}
	w := doRequest(t, newTestHandler(stub), http.MethodGet, "/chart", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	series, ok := body["series"].([]interface{})
	require.True(t, ok)
	require.Len(t, series, 1)
}
