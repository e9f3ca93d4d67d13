package exporter

import (
	"fmt"

	"findash/internal/analytics"
	"findash/pkg/contracts/domain"
)

// SummaryHeaders are the columns of a per-symbol analytics summary.
var SummaryHeaders = []string{"symbol", "bars", "returns", "volatility"}

// CorrelationHeaders are the columns of a correlation matrix export.
var CorrelationHeaders = []string{"symbol_a", "symbol_b", "correlation"}

// ChartHeaders are the columns of a chart series export.
var ChartHeaders = []string{"symbol", "date", "close"}

// SummaryRecords computes the per-symbol analytics summary rows.
// Symbols with too few bars for a volatility figure get "n/a" rather
// than failing the whole summary; any other computation error aborts.
func SummaryRecords(bars []domain.PriceBar, symbols []string) ([][]string, error) {
	var records [][]string
	for _, symbol := range symbols {
		points, err := analytics.Returns(bars, symbol)
		if err != nil {
			return nil, fmt.Errorf("returns for %s: %w", symbol, err)
		}

		volatilityCell := "n/a"
		volatility, err := analytics.Volatility(bars, symbol)
		if err == nil {
			volatilityCell = formatFloat(volatility)
		} else if !analytics.IsEmptyInput(err) {
			return nil, fmt.Errorf("volatility for %s: %w", symbol, err)
		}

		count := 0
		for _, bar := range bars {
			if bar.Symbol == symbol {
				count++
			}
		}

		records = append(records, []string{
			symbol,
			formatInt(int64(count)),
			formatInt(int64(len(points))),
			volatilityCell,
		})
	}
	return records, nil
}

// CorrelationRecords converts correlation pairs to CSV rows.
func CorrelationRecords(pairs []domain.CorrelationPair) [][]string {
	var records [][]string
	for _, pair := range pairs {
		records = append(records, []string{
			pair.SymbolA,
			pair.SymbolB,
			formatFloat(pair.Correlation),
		})
	}
	return records
}

// ChartRecords flattens chart series to CSV rows, one per data point.
func ChartRecords(series []domain.ChartSeries) [][]string {
	var records [][]string
	for _, s := range series {
		for _, point := range s.DataPoints {
			records = append(records, []string{
				s.Symbol,
				point.Label,
				formatFloat(point.Value),
			})
		}
	}
	return records
}
