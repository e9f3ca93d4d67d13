package domain

import (
	"time"
)

// PriceBar represents one symbol's trading record for a single date.
// A well-formed bar always has all nine fields populated; rows that
// fail required-field checks are dropped at load time and never stored
// as partial records. Duplicate (symbol, date) combinations are
// permitted and simply appear twice in chronological order.
type PriceBar struct {
	Symbol           string    `json:"symbol" validate:"required"`
	Date             time.Time `json:"date"`
	Open             float64   `json:"open" validate:"min=0"`
	High             float64   `json:"high" validate:"min=0"`
	Low              float64   `json:"low" validate:"min=0"`
	Close            float64   `json:"close" validate:"min=0"`
	CloseAdjusted    float64   `json:"close_adjusted" validate:"min=0"`
	Volume           int64     `json:"volume" validate:"min=0"`
	SplitCoefficient float64   `json:"split_coefficient" validate:"min=0"`
}
