// Package dataprocessing turns raw workbook cells into validated
// financial records. It owns the complete normalization pipeline from
// Excel ingestion to clean record sets.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Coercion: converts loosely-typed cell text into decimals and dates
// 2. Workbook: an excelize-backed RowSource over a local .xlsx file
// 3. Loaders: assemble PriceBar, DividendEvent and EarningsEvent records
//
// # Fallback policy
//
// All typed interpretation of cell text happens in the coercion
// functions, which are the single place allowed to define fallback
// behavior. Numeric cells default to zero and date cells default to
// the current time; neither is an error. Loaders apply two distinct
// regimes on top of that: price rows missing a raw symbol or date are
// skipped outright, while dividend and earnings rows are always kept
// and defaulted field by field.
//
// # Usage
//
//	wb, err := dataprocessing.OpenWorkbook("master.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer wb.Close()
//	bars, err := dataprocessing.LoadPriceBars(wb, "stock_prices_latest")
//
// Only the workbook itself being missing or unreadable produces an
// error (SourceUnavailableError); individual malformed rows never do.
package dataprocessing
