package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"findash/internal/analytics"
	"findash/internal/config"
	"findash/internal/dataprocessing"
	"findash/internal/query"
	"findash/pkg/contracts/domain"
)

// DataService owns the loaded record set and answers every query the
// transport layer forwards. The engine packages underneath it stay
// stateless; the only state here is the current snapshot, replaced
// wholesale on each load so concurrent readers always see a
// consistent view of prices, dividends and earnings.
type DataService struct {
	cfg     config.DataConfig
	logger  *slog.Logger
	metrics *Metrics

	mu       sync.RWMutex
	snapshot *domain.Snapshot
}

// NewDataService creates a data service reading from the configured
// workbook. No data is loaded until the first query or an explicit
// LoadSnapshot.
func NewDataService(cfg config.DataConfig, logger *slog.Logger, metrics *Metrics) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "data_service"))

	logger.Info("data service initialized",
		slog.String("workbook", cfg.WorkbookPath),
		slog.String("price_sheet", cfg.PriceSheet))

	return &DataService{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// LoadSnapshot reads every record kind from the workbook into a fresh
// snapshot and installs it as the current one. The four loads run
// concurrently, each on its own workbook handle over the same file,
// so the snapshot reflects a single source state.
func (s *DataService) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	start := time.Now()
	snap := &domain.Snapshot{ID: uuid.New().String()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bars, err := s.loadPriceBars(ctx)
		if err != nil {
			return err
		}
		snap.PriceBars = bars
		return nil
	})
	g.Go(func() error {
		symbols, err := s.loadSymbols(ctx)
		if err != nil {
			return err
		}
		snap.Symbols = symbols
		return nil
	})
	g.Go(func() error {
		dividends, err := s.loadDividends(ctx)
		if err != nil {
			return err
		}
		snap.Dividends = dividends
		return nil
	})
	g.Go(func() error {
		earnings, err := s.loadEarnings(ctx)
		if err != nil {
			return err
		}
		snap.Earnings = earnings
		return nil
	})

	if err := g.Wait(); err != nil {
		if s.metrics != nil {
			s.metrics.SnapshotLoadErrors.Inc()
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	snap.LoadedAt = time.Now()

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	duration := time.Since(start)
	if s.metrics != nil {
		s.metrics.SnapshotLoads.Inc()
		s.metrics.SnapshotLoadDuration.Observe(duration.Seconds())
	}
	s.logger.InfoContext(ctx, "snapshot loaded",
		slog.String("snapshot_id", snap.ID),
		slog.Int("price_bars", len(snap.PriceBars)),
		slog.Int("symbols", len(snap.Symbols)),
		slog.Int("dividends", len(snap.Dividends)),
		slog.Int("earnings", len(snap.Earnings)),
		slog.Duration("duration", duration),
	)
	return snap, nil
}

// current returns the installed snapshot, loading one on first use.
func (s *DataService) current(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	return s.LoadSnapshot(ctx)
}

// Snapshot returns the current snapshot's metadata and record counts.
func (s *DataService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return s.current(ctx)
}

// Symbols returns the distinct symbols of the price sheet in
// first-seen order.
func (s *DataService) Symbols(ctx context.Context) ([]string, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Symbols, nil
}

// PriceBars returns every loaded price bar in sheet row order.
func (s *DataService) PriceBars(ctx context.Context) ([]domain.PriceBar, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.PriceBars, nil
}

// Dividends returns every loaded dividend event.
func (s *DataService) Dividends(ctx context.Context) ([]domain.DividendEvent, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Dividends, nil
}

// Earnings returns every loaded earnings event.
func (s *DataService) Earnings(ctx context.Context) ([]domain.EarningsEvent, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Earnings, nil
}

// Returns computes the period returns for one symbol.
func (s *DataService) Returns(ctx context.Context, symbol string) ([]domain.ReturnPoint, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	s.countAnalytics("returns")
	return analytics.Returns(snap.PriceBars, symbol)
}

// Volatility computes the log-return volatility for one symbol.
func (s *DataService) Volatility(ctx context.Context, symbol string) (float64, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return 0, err
	}
	s.countAnalytics("volatility")
	return analytics.Volatility(snap.PriceBars, symbol)
}

// CorrelationMatrix computes pairwise correlations for the given
// symbols, or for every loaded symbol when the list is empty.
func (s *DataService) CorrelationMatrix(ctx context.Context, symbols []string) ([]domain.CorrelationPair, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		symbols = snap.Symbols
	}
	s.countAnalytics("correlation_matrix")
	return analytics.CorrelationMatrix(snap.PriceBars, symbols)
}

// FilterByTime returns one symbol's bars inside the inclusive
// [start, end] range.
func (s *DataService) FilterByTime(ctx context.Context, symbol, start, end string) ([]domain.PriceBar, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return query.FilterByTime(snap.PriceBars, symbol, start, end), nil
}

// FilterBySymbols returns the bars whose symbol is in the given set.
func (s *DataService) FilterBySymbols(ctx context.Context, symbols []string) ([]domain.PriceBar, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return query.FilterBySymbols(snap.PriceBars, symbols), nil
}

// ChartData projects the loaded bars into chart-ready series.
func (s *DataService) ChartData(ctx context.Context) ([]domain.ChartSeries, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return query.ToChartSeries(snap.PriceBars), nil
}

func (s *DataService) countAnalytics(op string) {
	if s.metrics != nil {
		s.metrics.AnalyticsRequests.WithLabelValues(op).Inc()
	}
}

func (s *DataService) loadPriceBars(ctx context.Context) ([]domain.PriceBar, error) {
	wb, err := s.openWorkbook(ctx)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return dataprocessing.LoadPriceBars(wb, s.cfg.PriceSheet)
}

func (s *DataService) loadSymbols(ctx context.Context) ([]string, error) {
	wb, err := s.openWorkbook(ctx)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return dataprocessing.LoadSymbols(wb, s.cfg.PriceSheet)
}

func (s *DataService) loadDividends(ctx context.Context) ([]domain.DividendEvent, error) {
	wb, err := s.openWorkbook(ctx)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return dataprocessing.LoadDividends(wb, s.cfg.DividendSheet)
}

func (s *DataService) loadEarnings(ctx context.Context) ([]domain.EarningsEvent, error) {
	wb, err := s.openWorkbook(ctx)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return dataprocessing.LoadEarnings(wb, s.cfg.EarningsSheet)
}

func (s *DataService) openWorkbook(ctx context.Context) (*dataprocessing.Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataprocessing.OpenWorkbook(s.cfg.WorkbookPath)
}
