package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/acff/debt-engine/internal/domain"
)

func TestTotalPaid(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(TotalPaid(nil)))

	payments := []*domain.Payment{
		{Amount: decimal.NewFromInt(600)},
		{Amount: decimal.NewFromInt(550)},
	}
	assert.True(t, decimal.NewFromInt(1150).Equal(TotalPaid(payments)))
}

func TestOutstanding(t *testing.T) {
	tests := []struct {
		name     string
		owed     decimal.Decimal
		paid     decimal.Decimal
		expected decimal.Decimal
	}{
		{"nothing paid", decimal.NewFromInt(1150), decimal.Zero, decimal.NewFromInt(1150)},
		{"partially paid", decimal.NewFromInt(1150), decimal.NewFromInt(600), decimal.NewFromInt(550)},
		{"exactly paid", decimal.NewFromInt(1150), decimal.NewFromInt(1150), decimal.Zero},
		{"overpaid clamps to zero", decimal.NewFromInt(1150), decimal.NewFromInt(1300), decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Outstanding(tt.owed, tt.paid)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}
