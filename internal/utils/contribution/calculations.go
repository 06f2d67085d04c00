package contribution

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthsCovered returns the number of whole monthly-rate multiples a payment
// amount pays for: floor(amount/rate), clamped to a minimum of one month.
// The remainder is not carried or refunded.
func MonthsCovered(amount, monthlyRate decimal.Decimal) int64 {
	if !monthlyRate.IsPositive() || !amount.IsPositive() {
		return 1
	}
	months := amount.Div(monthlyRate).Floor().IntPart()
	if months < 1 {
		return 1
	}
	return months
}

// AddCalendarMonths adds n calendar months to t, preserving the day-of-month
// and clamping to the last valid day of the target month. Jan 31 + 1 month
// lands on Feb 29 in a leap year and Feb 28 otherwise. Clock time and
// location are preserved.
func AddCalendarMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	// Normalise via the first of the target month so overflow wraps the year.
	first := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RoundAmount normalises a monetary value to two decimal places. Applied at
// write boundaries only; intermediate arithmetic keeps full precision.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// DayOf truncates a timestamp to its UTC calendar day, the key day locks are
// stored under.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
