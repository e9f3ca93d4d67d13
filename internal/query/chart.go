package query

import (
	"sort"

	"findash/pkg/contracts/domain"
)

// ToChartSeries projects price bars into chart-ready series: one
// series per symbol in first-seen order, each holding (date label,
// closing price) points sorted ascending by date. Labels use the
// "YYYY-MM-DD" form the chart layer expects.
func ToChartSeries(bars []domain.PriceBar) []domain.ChartSeries {
	grouped := make(map[string][]domain.PriceBar)
	var order []string
	for _, bar := range bars {
		if _, ok := grouped[bar.Symbol]; !ok {
			order = append(order, bar.Symbol)
		}
		grouped[bar.Symbol] = append(grouped[bar.Symbol], bar)
	}

	var series []domain.ChartSeries
	for _, symbol := range order {
		group := grouped[symbol]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		points := make([]domain.DataPoint, 0, len(group))
		for _, bar := range group {
			points = append(points, domain.DataPoint{
				Label: bar.Date.Format("2006-01-02"),
				Value: bar.Close,
			})
		}
		series = append(series, domain.ChartSeries{
			Symbol:     symbol,
			DataPoints: points,
		})
	}
	return series
}
