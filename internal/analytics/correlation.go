package analytics

import (
	"fmt"
	"math"

	"findash/pkg/contracts/domain"
)

// Correlation computes the Pearson correlation coefficient between two
// symbols' simple-return series. Each input is sorted by date inside
// the return helper before differencing. Means and squared-deviation
// sums are taken over each full series; the cross products are paired
// positionally and truncated to the shorter series. Zero variance in
// either series is a division-by-zero ComputationError, an empty
// return series an empty-input one.
func Correlation(pricesA, pricesB []domain.PriceBar) (float64, error) {
	returnsA, err := simpleReturns(pricesA, "correlation")
	if err != nil {
		return 0, err
	}
	returnsB, err := simpleReturns(pricesB, "correlation")
	if err != nil {
		return 0, err
	}
	if len(returnsA) == 0 || len(returnsB) == 0 {
		return 0, &ComputationError{
			Kind:   KindEmptyInput,
			Op:     "correlation",
			Detail: "empty return series",
		}
	}

	meanA := mean(returnsA)
	meanB := mean(returnsB)

	n := len(returnsA)
	if len(returnsB) < n {
		n = len(returnsB)
	}
	productSum := 0.0
	for i := 0; i < n; i++ {
		productSum += (returnsA[i] - meanA) * (returnsB[i] - meanB)
	}

	denominator := math.Sqrt(squaredDeviationSum(returnsA, meanA) * squaredDeviationSum(returnsB, meanB))
	if denominator == 0 {
		return 0, &ComputationError{
			Kind:   KindDivisionByZero,
			Op:     "correlation",
			Detail: "zero variance in return series",
		}
	}
	return productSum / denominator, nil
}

// CorrelationMatrix computes Correlation for every ordered pair of
// distinct symbols: k symbols produce k·(k−1) pairs, both orders, no
// diagonal. The symbol list is used as given, so duplicate entries
// produce duplicate pairs. The first failing pair aborts the matrix.
func CorrelationMatrix(bars []domain.PriceBar, symbols []string) ([]domain.CorrelationPair, error) {
	var pairs []domain.CorrelationPair
	for _, symbolA := range symbols {
		for _, symbolB := range symbols {
			if symbolA == symbolB {
				continue
			}
			pricesA := filterSymbol(bars, symbolA)
			sortByDate(pricesA)
			pricesB := filterSymbol(bars, symbolB)
			sortByDate(pricesB)

			correlation, err := Correlation(pricesA, pricesB)
			if err != nil {
				return nil, fmt.Errorf("correlate %s with %s: %w", symbolA, symbolB, err)
			}
			pairs = append(pairs, domain.CorrelationPair{
				SymbolA:     symbolA,
				SymbolB:     symbolB,
				Correlation: correlation,
			})
		}
	}
	return pairs, nil
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func squaredDeviationSum(values []float64, mean float64) float64 {
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum
}
