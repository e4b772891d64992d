package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/acff/debt-engine/internal/domain"
)

// TotalPaid sums the recorded payments of a loan. Zero for no payments.
func TotalPaid(payments []*domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Outstanding is the balance still owed, clamped at zero so report
// consumers never see a negative remainder. The signed difference stays
// available on the snapshot for overpayment detection.
func Outstanding(owed, totalPaid decimal.Decimal) decimal.Decimal {
	remaining := owed.Sub(totalPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
