package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the spreadsheet date-serial epoch (OLE Automation
// date zero, 1899-12-30). A serial value counts days since the epoch,
// with the fractional part carrying the time of day.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// filterDateLayouts are the calendar-text layouts accepted by
// ParseFilterDate, tried in order.
var filterDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseDecimal converts a raw cell value into a decimal number.
// Absence of a valid number is treated as zero, never as an error;
// this is the single place where numeric fallback policy is defined.
func ParseDecimal(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseInteger converts a raw cell value into an integer, falling back
// to zero on any parse failure. Used for whole-number columns such as
// volume and quarter.
func ParseInteger(raw string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseSerialDate converts a raw cell value holding a spreadsheet
// date-serial number into a calendar date. When the cell does not
// parse as a number the current time is substituted, so a malformed
// or calendar-formatted date silently becomes "now". Downstream
// consumers depend on this exact fallback; changing it changes
// observable output.
func ParseSerialDate(raw string) time.Time {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		serial = timeToSerial(time.Now())
	}
	return serialToTime(serial)
}

// ParseFilterDate converts a calendar-formatted date string into a
// date for range filtering. Unlike ParseSerialDate it does not accept
// serial numbers, but it shares the same fallback: unparseable input
// yields the current time.
func ParseFilterDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	for _, layout := range filterDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// parseReleaseTime converts an "h:mm" or "h:mm:ss" time-of-day cell
// into an offset from midnight, defaulting to one hour when the cell
// cannot be parsed.
func parseReleaseTime(raw string) time.Duration {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Hour
	}
	nums := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return time.Hour
		}
		nums[i] = n
	}
	d := time.Duration(nums[0])*time.Hour + time.Duration(nums[1])*time.Minute
	if len(nums) == 3 {
		d += time.Duration(nums[2]) * time.Second
	}
	return d
}

// serialToTime converts a date-serial number into a time.Time. The
// fractional day is rounded to the nearest second to avoid drift from
// binary representation of decimal fractions.
func serialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	frac := serial - days
	secs := math.Round(frac * 24 * 3600)
	return serialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
}

// timeToSerial converts a time.Time into a date-serial number.
func timeToSerial(t time.Time) float64 {
	return t.Sub(serialEpoch).Hours() / 24
}
