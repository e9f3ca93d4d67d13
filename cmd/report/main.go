// Command report loads a master workbook and writes a per-symbol
// analytics summary (bar counts, return counts, volatility) and a
// pairwise correlation matrix as CSV.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"findash/internal/analytics"
	"findash/internal/dataprocessing"
	"findash/internal/exporter"
	"findash/internal/validation"
	"findash/pkg/contracts"
)

func main() {
	workbookPath := flag.String("file", "data/master.xlsx", "path to the master workbook")
	priceSheet := flag.String("sheet", "stock_prices_latest", "name of the price sheet")
	symbolList := flag.String("symbols", "", "comma-separated symbols to report on (defaults to all)")
	summaryOut := flag.String("out", "", "summary CSV path (defaults to stdout)")
	correlationsOut := flag.String("correlations-out", "", "correlation matrix CSV path (omitted when empty)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	validator := validation.NewWorkbookValidator(slog.Default())
	if err := validator.ValidateWorkbookFile(*workbookPath); err != nil {
		slog.Error("workbook validation failed", "error", err)
		os.Exit(1)
	}

	wb, err := dataprocessing.OpenWorkbook(*workbookPath)
	if err != nil {
		slog.Error("failed to open workbook", "error", err)
		os.Exit(1)
	}
	defer wb.Close()

	bars, err := dataprocessing.LoadPriceBars(wb, *priceSheet)
	if err != nil {
		slog.Error("failed to load price bars", "error", err)
		os.Exit(1)
	}

	symbols, err := dataprocessing.LoadSymbols(wb, *priceSheet)
	if err != nil {
		slog.Error("failed to load symbols", "error", err)
		os.Exit(1)
	}
	if *symbolList != "" {
		symbols = strings.Split(*symbolList, ",")
	}

	slog.Info("workbook loaded",
		slog.String("path", *workbookPath),
		slog.Int("price_bars", len(bars)),
		slog.Int("symbols", len(symbols)))

	records, err := exporter.SummaryRecords(bars, symbols)
	if err != nil {
		slog.Error("failed to build summary", "error", err)
		os.Exit(1)
	}

	summary := exporter.WriteOptions{Headers: exporter.SummaryHeaders, Records: records}
	if *summaryOut != "" {
		err = exporter.WriteCSVFile(*summaryOut, summary)
	} else {
		err = exporter.WriteCSV(os.Stdout, summary)
	}
	if err != nil {
		slog.Error("failed to write summary", "error", err)
		os.Exit(1)
	}

	if *correlationsOut == "" {
		return
	}
	pairs, err := analytics.CorrelationMatrix(bars, symbols)
	if err != nil {
		slog.Warn("correlation matrix skipped", "error", err)
		return
	}
	err = exporter.WriteCSVFile(*correlationsOut, exporter.WriteOptions{
		Headers: exporter.CorrelationHeaders,
		Records: exporter.CorrelationRecords(pairs),
	})
	if err != nil {
		slog.Error("failed to write correlations", "error", err)
		os.Exit(1)
	}
}
