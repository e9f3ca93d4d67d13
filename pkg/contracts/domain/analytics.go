package domain

import (
	"time"
)

// ReturnPoint is a single period return for a symbol, derived from a
// chronologically sorted pair of consecutive price bars. The date is
// the later bar's date. ReturnPoints are computed fresh on every query
// and never persisted.
type ReturnPoint struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return"`
}

// CorrelationPair holds the Pearson correlation coefficient between
// two symbols' simple-return series. Both orderings (A,B) and (B,A)
// are emitted as distinct entries; no pair has SymbolA == SymbolB.
type CorrelationPair struct {
	SymbolA     string  `json:"symbol_a"`
	SymbolB     string  `json:"symbol_b"`
	Correlation float64 `json:"correlation"`
}

// DataPoint is one labeled value in a chart series.
type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a chart-ready projection of one symbol's closing
// prices, labels formatted as "YYYY-MM-DD" in ascending date order.
type ChartSeries struct {
	Symbol     string      `json:"symbol"`
	DataPoints []DataPoint `json:"data_points"`
}

// Snapshot is a consistent view of every record kind loaded from one
// pass over the same workbook. Callers that need prices, dividends and
// earnings to agree load them together into a snapshot rather than
// reading the workbook piecemeal.
type Snapshot struct {
	ID        string          `json:"id"`
	LoadedAt  time.Time       `json:"loaded_at"`
	Symbols   []string        `json:"symbols"`
	PriceBars []PriceBar      `json:"price_bars"`
	Dividends []DividendEvent `json:"dividends"`
	Earnings  []EarningsEvent `json:"earnings"`
}
