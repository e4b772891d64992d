package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/acff/debt-engine/internal/domain"
)

// NextStatus derives a loan's lifecycle status from its owed amount,
// cumulative payments and due date. Settlement is checked first: full
// payment always wins, even past the due date. The zero-payment
// not-yet-due case keeps the current status.
//
// The function is idempotent, and it deliberately has no special case
// for a currently settled loan: if a payment correction or deletion
// drops totalPaid below owed again, the loan reverts to ACTIVE or
// OVERDUE on the next evaluation.
func NextStatus(current string, owed, totalPaid decimal.Decimal, dueDate, now time.Time) string {
	switch {
	case totalPaid.GreaterThanOrEqual(owed):
		return domain.LoanStatusSettled
	case dueDate.Before(now):
		return domain.LoanStatusOverdue
	case totalPaid.IsPositive():
		return domain.LoanStatusActive
	default:
		return current
	}
}

// Valuate composes the interest calculator, the ledger view and the
// state machine into one per-loan snapshot at the asOf instant.
// StatusChanged signals the caller that the derived status differs from
// the stored one and must be persisted; persisting an unchanged status
// is a no-op by construction.
func Valuate(loan *domain.Loan, payments []*domain.Payment, asOf time.Time) domain.LoanSnapshot {
	owed := AccruedValue(loan.Principal, loan.MonthlyRate, loan.LoanDate, asOf)
	paid := TotalPaid(payments)
	status := NextStatus(loan.Status, owed, paid, loan.DueDate, asOf)

	return domain.LoanSnapshot{
		Owed:             owed,
		Paid:             paid,
		Remaining:        owed.Sub(paid),
		DisplayRemaining: Outstanding(owed, paid),
		Status:           status,
		StatusChanged:    status != loan.Status,
	}
}
