package contribution_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/parish_ledger_app/internal/utils/contribution"
)

func TestMonthsCovered(t *testing.T) {
	rate := decimal.NewFromInt(75)

	testCases := []struct {
		name     string
		amount   decimal.Decimal
		expected int64
	}{
		{"exact single month", decimal.NewFromInt(75), 1},
		{"exact two months", decimal.NewFromInt(150), 2},
		{"partial amount still covers one month", decimal.NewFromInt(10), 1},
		{"remainder is dropped", decimal.NewFromInt(160), 2},
		{"large multiple", decimal.NewFromInt(900), 12},
		{"fractional rate division floors", decimal.NewFromFloat(149.99), 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, contribution.MonthsCovered(tc.amount, rate))
		})
	}
}

func TestMonthsCoveredGuardsDegenerateInputs(t *testing.T) {
	assert.Equal(t, int64(1), contribution.MonthsCovered(decimal.NewFromInt(100), decimal.Zero))
	assert.Equal(t, int64(1), contribution.MonthsCovered(decimal.Zero, decimal.NewFromInt(75)))
	assert.Equal(t, int64(1), contribution.MonthsCovered(decimal.NewFromInt(-50), decimal.NewFromInt(75)))
}

func TestAddCalendarMonths(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			"plain month step",
			time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 1,
			time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"clamps into leap february",
			time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1,
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			"clamps into non-leap february",
			time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 1,
			time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"day survives after a clamped intermediate month",
			time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 2,
			time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			"wraps across the year boundary",
			time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC), 3,
			time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"multiple months at once",
			time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 6,
			time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.expected.Equal(contribution.AddCalendarMonths(tc.start, tc.months)))
		})
	}
}

func TestAddCalendarMonthsPreservesClockTime(t *testing.T) {
	start := time.Date(2024, 1, 31, 14, 30, 45, 0, time.UTC)
	got := contribution.AddCalendarMonths(start, 1)
	assert.Equal(t, time.Date(2024, 2, 29, 14, 30, 45, 0, time.UTC), got)
}

func TestRoundAmount(t *testing.T) {
	assert.True(t, decimal.RequireFromString("10.57").Equal(contribution.RoundAmount(decimal.RequireFromString("10.565"))))
	assert.True(t, decimal.NewFromInt(75).Equal(contribution.RoundAmount(decimal.NewFromInt(75))))
}

func TestDayOf(t *testing.T) {
	stamp := time.Date(2024, 6, 15, 23, 59, 59, 0, time.FixedZone("UTC+2", 2*3600))
	day := contribution.DayOf(stamp)
	// 23:59 UTC+2 is 21:59 UTC, still the 15th
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), day)

	early := time.Date(2024, 6, 15, 1, 30, 0, 0, time.FixedZone("UTC+2", 2*3600))
	// 01:30 UTC+2 is 23:30 UTC on the 14th
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), contribution.DayOf(early))
}
