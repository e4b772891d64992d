package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is a partial (or full) repayment recorded against a loan.
type Payment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	LoanID    uuid.UUID       `json:"loan_id" db:"loan_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	PaidAt    time.Time       `json:"paid_at" db:"paid_at"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type CreatePaymentRequest struct {
	LoanID uuid.UUID       `json:"loan_id" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
	PaidAt *time.Time      `json:"paid_at"`
}

// UpdatePaymentRequest corrects a recorded payment. Only the fields set
// here may change; a nil field leaves the stored value untouched.
type UpdatePaymentRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	PaidAt *time.Time       `json:"paid_at"`
}

// PaymentListResponse carries a loan's payments plus the ledger totals
// derived from them.
type PaymentListResponse struct {
	Payments  []*Payment      `json:"payments"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	Remaining decimal.Decimal `json:"remaining"`
}
