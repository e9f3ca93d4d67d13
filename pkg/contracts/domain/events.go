package domain

import (
	"time"
)

// DividendEvent represents a single dividend payment for a symbol.
// Unlike price bars, dividend rows are never skipped during load:
// uncoercible cells default per the coercion rules (amount to 0,
// blank symbol to "N/A").
type DividendEvent struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// EarningsEvent represents a quarterly earnings release for a symbol.
// All fields default rather than causing the row to be dropped;
// ReleaseTime falls back to one hour past midnight when the source
// cell cannot be parsed as a time of day.
type EarningsEvent struct {
	Symbol      string        `json:"symbol"`
	Date        time.Time     `json:"date"`
	Quarter     int           `json:"quarter"`
	EPSEstimate float64       `json:"eps_estimate"`
	EPS         float64       `json:"eps"`
	ReleaseTime time.Duration `json:"release_time"`
}
