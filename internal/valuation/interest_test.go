package valuation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestElapsedMonths(t *testing.T) {
	tests := []struct {
		name     string
		since    time.Time
		asOf     time.Time
		expected int64
	}{
		{"same day", date(2024, 1, 1), date(2024, 1, 1), 0},
		{"29 days is still zero months", date(2024, 1, 1), date(2024, 1, 30), 0},
		{"30 days is one month", date(2024, 1, 1), date(2024, 1, 31), 1},
		{"three 30-day months", date(2024, 1, 1), date(2024, 4, 1), 3},
		{"asOf before since clamps to zero", date(2024, 4, 1), date(2024, 1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ElapsedMonths(tt.since, tt.asOf))
		})
	}
}

func TestAccruedValue(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		since     time.Time
		asOf      time.Time
		expected  decimal.Decimal
	}{
		{
			name:      "1000 at 5% over three months",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromInt(5),
			since:     date(2024, 1, 1),
			asOf:      date(2024, 4, 1),
			expected:  decimal.NewFromInt(1150),
		},
		{
			name:      "no time elapsed means principal only",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromInt(5),
			since:     date(2024, 1, 1),
			asOf:      date(2024, 1, 15),
			expected:  decimal.NewFromInt(1000),
		},
		{
			name:      "zero rate never grows",
			principal: decimal.NewFromInt(750),
			rate:      decimal.Zero,
			since:     date(2023, 1, 1),
			asOf:      date(2024, 1, 1),
			expected:  decimal.NewFromInt(750),
		},
		{
			name:      "evaluation before the loan date clamps to principal",
			principal: decimal.NewFromInt(500),
			rate:      decimal.NewFromInt(10),
			since:     date(2024, 6, 1),
			asOf:      date(2024, 1, 1),
			expected:  decimal.NewFromInt(500),
		},
		{
			name:      "fractional rate rounds to cents",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromFloat(2.5),
			since:     date(2024, 1, 1),
			asOf:      date(2024, 2, 1),
			expected:  decimal.NewFromInt(1025),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccruedValue(tt.principal, tt.rate, tt.since, tt.asOf)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
			assert.True(t, got.GreaterThanOrEqual(tt.principal), "accrued value must never drop below principal")
		})
	}
}

func TestAccruedValue_MonotonicInTime(t *testing.T) {
	principal := decimal.NewFromInt(1200)
	rate := decimal.NewFromFloat(3.5)
	since := date(2024, 1, 1)

	previous := decimal.Zero
	for days := 0; days <= 365; days += 10 {
		asOf := since.AddDate(0, 0, days)
		value := AccruedValue(principal, rate, since, asOf)
		assert.True(t, value.GreaterThanOrEqual(previous),
			"value %s at day %d dropped below %s", value, days, previous)
		previous = value
	}
}

func TestFlatInterest(t *testing.T) {
	got := FlatInterest(decimal.NewFromInt(2000), decimal.NewFromInt(5))
	assert.True(t, decimal.NewFromInt(100).Equal(got), "expected 100, got %s", got)
}

func TestExpectedReturn(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		paid      decimal.Decimal
		rate      decimal.Decimal
		loanDate  time.Time
		dueDate   time.Time
		expected  decimal.Decimal
	}{
		{
			name:      "untouched loan over a two month term",
			principal: decimal.NewFromInt(1000),
			paid:      decimal.Zero,
			rate:      decimal.NewFromInt(5),
			loanDate:  date(2024, 1, 1),
			dueDate:   date(2024, 3, 1),
			expected:  decimal.NewFromInt(1100),
		},
		{
			name:      "partial payment shrinks the base",
			principal: decimal.NewFromInt(1000),
			paid:      decimal.NewFromInt(400),
			rate:      decimal.NewFromInt(5),
			loanDate:  date(2024, 1, 1),
			dueDate:   date(2024, 3, 1),
			expected:  decimal.NewFromInt(660), // 600 + 600*0.05*2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpectedReturn(tt.principal, tt.paid, tt.rate, tt.loanDate, tt.dueDate)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}
