package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"findash/internal/config"
	"findash/internal/dataprocessing"
)

func writeServiceFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]interface{}{
		"stock_prices_latest": {
			{"symbol", "date", "open", "high", "low", "close", "close_adjusted", "volume", "split_coefficient"},
			{"AAA", 44927, 100.0, 102.0, 99.0, 100.0, 100.0, 1000, 1.0},
			{"AAA", 44928, 100.0, 112.0, 100.0, 110.0, 110.0, 1200, 1.0},
			{"AAA", 44929, 110.0, 111.0, 98.0, 99.0, 99.0, 900, 1.0},
			{"BBB", 44927, 50.0, 51.0, 49.0, 50.0, 50.0, 500, 1.0},
			{"BBB", 44928, 50.0, 56.0, 50.0, 55.0, 55.0, 600, 1.0},
			{"BBB", 44929, 55.0, 56.0, 49.0, 49.5, 49.5, 400, 1.0},
		},
		"dividends": {
			{"symbol", "date", "amount"},
			{"AAA", 44930, 0.25},
			{"BBB", 44931, 0.10},
		},
		"earnings": {
			{"symbol", "date", "quarter", "eps_estimate", "eps", "release_time"},
			{"AAA", 44932, 1, 1.05, 1.10, "16:30"},
		},
	}
	for sheet, rows := range sheets {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		for i, row := range rows {
			addr, err := excelize.JoinCellName("A", i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, addr, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "master.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newTestService(t *testing.T, workbookPath string) (*DataService, *Metrics) {
	t.Helper()
	metrics := NewMetrics(prometheus.NewRegistry())
	cfg := config.DataConfig{
		WorkbookPath:  workbookPath,
		PriceSheet:    "stock_prices_latest",
		DividendSheet: "dividends",
		EarningsSheet: "earnings",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDataService(cfg, logger, metrics), metrics
}

func TestLoadSnapshot(t *testing.T) {
	service, metrics := newTestService(t, writeServiceFixture(t))

	snap, err := service.LoadSnapshot(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.False(t, snap.LoadedAt.IsZero())
	assert.Equal(t, []string{"AAA", "BBB"}, snap.Symbols)
	assert.Len(t, snap.PriceBars, 6)
	assert.Len(t, snap.Dividends, 2)
	assert.Len(t, snap.Earnings, 1)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SnapshotLoads))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.SnapshotLoadErrors))
}

func TestLoadSnapshotReplacesCurrent(t *testing.T) {
	service, _ := newTestService(t, writeServiceFixture(t))
	ctx := context.Background()

	first, err := service.LoadSnapshot(ctx)
	require.NoError(t, err)
	second, err := service.LoadSnapshot(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	current, err := service.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}

func TestLoadSnapshotMissingWorkbook(t *testing.T) {
	service, metrics := newTestService(t, filepath.Join(t.TempDir(), "absent.xlsx"))

	_, err := service.LoadSnapshot(context.Background())
	require.Error(t, err)
	assert.True(t, dataprocessing.IsSourceUnavailable(err))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SnapshotLoadErrors))
}

func TestQueriesLoadLazily(t *testing.T) {
	service, _ := newTestService(t, writeServiceFixture(t))

	// No explicit LoadSnapshot; the first query triggers one.
	symbols, err := service.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, symbols)
}

func TestReturnsThroughService(t *testing.T) {
	service, metrics := newTestService(t, writeServiceFixture(t))

	points, err := service.Returns(context.Background(), "AAA")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.InDelta(t, 0.10, points[0].Return, 1e-9)
	assert.InDelta(t, -0.10, points[1].Return, 1e-9)

	count := testutil.ToFloat64(metrics.AnalyticsRequests.WithLabelValues("returns"))
	assert.Equal(t, float64(1), count)
}

func TestVolatilityThroughService(t *testing.T) {
	service, _ := newTestService(t, writeServiceFixture(t))

	vol, err := service.Volatility(context.Background(), "AAA")
	require.NoError(t, err)
	assert.Greater(t, vol, 0.0)
}

func TestCorrelationMatrixDefaultsToAllSymbols(t *testing.T) {
	service, _ := newTestService(t, writeServiceFixture(t))

	pairs, err := service.CorrelationMatrix(context.Background(), nil)
	require.NoError(t, err)

	// Two symbols, both orders, no diagonal.
	require.Len(t, pairs, 2)
	assert.Equal(t, "AAA", pairs[0].SymbolA)
	assert.Equal(t, "BBB", pairs[0].SymbolB)
	// Both fixture series return +10% then -10%.
	assert.InDelta(t, 1.0, pairs[0].Correlation, 1e-9)
}

func TestFilterByTimeThroughService(t *testing.T) {
	service, _ := newTestService(t, writeServiceFixture(t))

	bars, err := service.FilterByTime(context.Background(), "AAA", "2023-01-01", "2023-01-02")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.True(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Equal(bars[0].Date))
}

func TestFilterBySymbolsThroughService(t *testing.T) {
	service, _ := newTestService(t, writeServiceFixture(t))

	bars, err := service.FilterBySymbols(context.Background(), []string{"BBB"})
	require.NoError(t, err)
	require.Len(t, bars, 3)
	for _, bar := range bars {
		assert.Equal(t, "BBB", bar.Symbol)
	}
}

func TestChartDataThroughService(t *testing.T) {
	service, _ := newTestService(t, writeServiceFixture(t))

	series, err := service.ChartData(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "AAA", series[0].Symbol)
	require.Len(t, series[0].DataPoints, 3)
	assert.Equal(t, "2023-01-01", series[0].DataPoints[0].Label)
	assert.Equal(t, 100.0, series[0].DataPoints[0].Value)
}

func TestLoadSnapshotCancelledContext(t *testing.T) {
	service, _ := newTestService(t, writeServiceFixture(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.LoadSnapshot(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
