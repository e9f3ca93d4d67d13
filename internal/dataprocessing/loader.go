package dataprocessing

import (
	"findash/pkg/contracts/domain"
)

// Column layout of the price sheet. The layouts are fixed by the
// workbook producer; loaders read positionally rather than by header.
const (
	colSymbol = iota
	colDate
	colOpen
	colHigh
	colLow
	colClose
	colCloseAdjusted
	colVolume
	colSplitCoefficient
)

// Column layout of the dividends sheet.
const (
	colDividendSymbol = iota
	colDividendDate
	colDividendAmount
)

// Column layout of the earnings sheet.
const (
	colEarningsSymbol = iota
	colEarningsDate
	colEarningsQuarter
	colEarningsEPSEstimate
	colEarningsEPS
	colEarningsReleaseTime
)

// defaultSymbol stands in for a blank symbol cell in the record kinds
// that default rather than skip.
const defaultSymbol = "N/A"

// cell returns the raw text of column i, or "" when the row is too
// short. Trailing empty cells are routinely absent from sheet data.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// LoadPriceBars reads the price sheet into validated bars. A row is
// skipped entirely when its raw symbol is empty or its raw date cell
// is empty; presence is checked on the raw values before coercion, so
// a non-empty but unparseable date is still accepted (and becomes the
// current time per ParseSerialDate). Output preserves sheet row order,
// which is not guaranteed chronological.
func LoadPriceBars(src RowSource, sheet string) ([]domain.PriceBar, error) {
	rows, err := src.Rows(sheet)
	if err != nil {
		return nil, err
	}

	var bars []domain.PriceBar
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		symbol := cell(row, colSymbol)
		rawDate := cell(row, colDate)
		if symbol == "" || rawDate == "" {
			continue
		}

		bars = append(bars, domain.PriceBar{
			Symbol:           symbol,
			Date:             ParseSerialDate(rawDate),
			Open:             ParseDecimal(cell(row, colOpen)),
			High:             ParseDecimal(cell(row, colHigh)),
			Low:              ParseDecimal(cell(row, colLow)),
			Close:            ParseDecimal(cell(row, colClose)),
			CloseAdjusted:    ParseDecimal(cell(row, colCloseAdjusted)),
			Volume:           ParseInteger(cell(row, colVolume)),
			SplitCoefficient: ParseDecimal(cell(row, colSplitCoefficient)),
		})
	}
	return bars, nil
}

// LoadSymbols reads only the symbol column of the price sheet and
// returns the distinct symbols in first-seen order. A sheet with no
// data rows yields an empty result.
func LoadSymbols(src RowSource, sheet string) ([]string, error) {
	rows, err := src.Rows(sheet)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var symbols []string
	for i := 1; i < len(rows); i++ {
		symbol := cell(rows[i], colSymbol)
		if symbol == "" {
			continue
		}
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}
	return symbols, nil
}

// LoadDividends reads the dividends sheet. Rows are never skipped:
// every field defaults through the coercion rules, so a fully blank
// row still yields a record with symbol "N/A" and zeroed fields.
func LoadDividends(src RowSource, sheet string) ([]domain.DividendEvent, error) {
	rows, err := src.Rows(sheet)
	if err != nil {
		return nil, err
	}

	var dividends []domain.DividendEvent
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		symbol := cell(row, colDividendSymbol)
		if symbol == "" {
			symbol = defaultSymbol
		}
		dividends = append(dividends, domain.DividendEvent{
			Symbol: symbol,
			Date:   ParseSerialDate(cell(row, colDividendDate)),
			Amount: ParseDecimal(cell(row, colDividendAmount)),
		})
	}
	return dividends, nil
}

// LoadEarnings reads the earnings sheet with the same default-rather-
// than-skip policy as LoadDividends.
func LoadEarnings(src RowSource, sheet string) ([]domain.EarningsEvent, error) {
	rows, err := src.Rows(sheet)
	if err != nil {
		return nil, err
	}

	var earnings []domain.EarningsEvent
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		symbol := cell(row, colEarningsSymbol)
		if symbol == "" {
			symbol = defaultSymbol
		}
		earnings = append(earnings, domain.EarningsEvent{
			Symbol:      symbol,
			Date:        ParseSerialDate(cell(row, colEarningsDate)),
			Quarter:     int(ParseInteger(cell(row, colEarningsQuarter))),
			EPSEstimate: ParseDecimal(cell(row, colEarningsEPSEstimate)),
			EPS:         ParseDecimal(cell(row, colEarningsEPS)),
			ReleaseTime: parseReleaseTime(cell(row, colEarningsReleaseTime)),
		})
	}
	return earnings, nil
}
