package analytics

import (
	"fmt"
	"math"

	"findash/pkg/contracts/domain"
)

// Volatility computes the population standard deviation of the
// natural-log returns of a symbol's closing prices.
//
// Matching bars are taken in input order and deliberately NOT sorted
// by date, unlike Returns. Upstream loading preserves sheet order, so
// the two agree only when the sheet itself is chronological; the
// asymmetry is long-standing observable behavior and is kept as is.
func Volatility(bars []domain.PriceBar, symbol string) (float64, error) {
	var closes []float64
	for _, bar := range bars {
		if bar.Symbol == symbol {
			closes = append(closes, bar.Close)
		}
	}

	var logReturns []float64
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			return 0, &ComputationError{
				Kind:   KindDivisionByZero,
				Op:     "volatility",
				Detail: fmt.Sprintf("zero close in series for %s", symbol),
			}
		}
		logReturns = append(logReturns, math.Log(closes[i]/closes[i-1]))
	}

	if len(logReturns) == 0 {
		return 0, &ComputationError{
			Kind:   KindEmptyInput,
			Op:     "volatility",
			Detail: fmt.Sprintf("fewer than two bars for %s", symbol),
		}
	}

	mean := 0.0
	for _, r := range logReturns {
		mean += r
	}
	mean /= float64(len(logReturns))

	variance := 0.0
	for _, r := range logReturns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(logReturns))

	return math.Sqrt(variance), nil
}
