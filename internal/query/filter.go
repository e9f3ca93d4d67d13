package query

import (
	"findash/internal/dataprocessing"
	"findash/pkg/contracts/domain"
)

// FilterByTime keeps the bars whose symbol matches exactly and whose
// date lies in the inclusive range bounded by the parsed start and end
// strings. The bounds go through dataprocessing.ParseFilterDate, so an
// unparseable bound silently becomes the current time. Input order is
// preserved.
func FilterByTime(bars []domain.PriceBar, symbol, start, end string) []domain.PriceBar {
	startDate := dataprocessing.ParseFilterDate(start)
	endDate := dataprocessing.ParseFilterDate(end)

	var filtered []domain.PriceBar
	for _, bar := range bars {
		if bar.Symbol != symbol {
			continue
		}
		if bar.Date.Before(startDate) || bar.Date.After(endDate) {
			continue
		}
		filtered = append(filtered, bar)
	}
	return filtered
}

// FilterBySymbols keeps the bars whose symbol is a member of the given
// set. Input order is preserved.
func FilterBySymbols(bars []domain.PriceBar, symbols []string) []domain.PriceBar {
	member := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		member[s] = struct{}{}
	}

	var filtered []domain.PriceBar
	for _, bar := range bars {
		if _, ok := member[bar.Symbol]; ok {
			filtered = append(filtered, bar)
		}
	}
	return filtered
}
