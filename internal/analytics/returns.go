package analytics

import (
	"fmt"
	"sort"

	"findash/pkg/contracts/domain"
)

// Returns computes the simple period returns for one symbol. Matching
// bars are sorted ascending by date, then each consecutive pair yields
// one point dated at the later bar. Empty or singleton input yields an
// empty result, not an error; a zero previous close is a
// division-by-zero ComputationError.
func Returns(bars []domain.PriceBar, symbol string) ([]domain.ReturnPoint, error) {
	selected := filterSymbol(bars, symbol)
	sortByDate(selected)

	var points []domain.ReturnPoint
	for i := 1; i < len(selected); i++ {
		prev := selected[i-1].Close
		if prev == 0 {
			return nil, &ComputationError{
				Kind:   KindDivisionByZero,
				Op:     "returns",
				Detail: fmt.Sprintf("zero close for %s at %s", symbol, selected[i-1].Date.Format("2006-01-02")),
			}
		}
		points = append(points, domain.ReturnPoint{
			Date:   selected[i].Date,
			Return: (selected[i].Close - prev) / prev,
		})
	}
	return points, nil
}

// simpleReturns computes the bare simple-return series of a bar list,
// sorted ascending by date. Shared by Correlation so both inputs get
// the same chronological treatment as Returns.
func simpleReturns(bars []domain.PriceBar, op string) ([]float64, error) {
	sorted := make([]domain.PriceBar, len(bars))
	copy(sorted, bars)
	sortByDate(sorted)

	var returns []float64
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1].Close
		if prev == 0 {
			return nil, &ComputationError{
				Kind:   KindDivisionByZero,
				Op:     op,
				Detail: fmt.Sprintf("zero close for %s at %s", sorted[i-1].Symbol, sorted[i-1].Date.Format("2006-01-02")),
			}
		}
		returns = append(returns, (sorted[i].Close-prev)/prev)
	}
	return returns, nil
}

// filterSymbol returns a fresh slice of the bars matching symbol,
// preserving input order. Inputs are never mutated.
func filterSymbol(bars []domain.PriceBar, symbol string) []domain.PriceBar {
	var selected []domain.PriceBar
	for _, bar := range bars {
		if bar.Symbol == symbol {
			selected = append(selected, bar)
		}
	}
	return selected
}

// sortByDate sorts bars ascending by date in place. The stable sort
// keeps duplicate dates in their original relative order.
func sortByDate(bars []domain.PriceBar) {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})
}
