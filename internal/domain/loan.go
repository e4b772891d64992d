package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive  = "ACTIVE"
	LoanStatusOverdue = "OVERDUE"
	LoanStatusSettled = "SETTLED"
)

// Loan represents money lent to a debtor, accruing simple interest
// until the cumulative payments cover the owed amount.
type Loan struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	DebtorID    uuid.UUID       `json:"debtor_id" db:"debtor_id"`
	Principal   decimal.Decimal `json:"principal" db:"principal"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" db:"monthly_rate"` // percent per 30-day month
	LoanDate    time.Time       `json:"loan_date" db:"loan_date"`
	DueDate     time.Time       `json:"due_date" db:"due_date"`
	Status      string          `json:"status" db:"status"`
	Notes       string          `json:"notes" db:"notes"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	UserID      uuid.UUID       `json:"user_id" validate:"required"`
	DebtorID    uuid.UUID       `json:"debtor_id" validate:"required"`
	Principal   decimal.Decimal `json:"principal" validate:"required,gt=0"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" validate:"gte=0"`
	LoanDate    *time.Time      `json:"loan_date"`
	DueDate     time.Time       `json:"due_date" validate:"required"`
	Notes       string          `json:"notes"`
}

// UpdateLoanRequest enumerates the loan fields that may change after
// registration. Principal and rate are fixed at creation.
type UpdateLoanRequest struct {
	DueDate *time.Time `json:"due_date"`
	Notes   *string    `json:"notes"`
}

// LoanResponse is a loan together with its snapshot at evaluation time.
type LoanResponse struct {
	Loan     *Loan        `json:"loan"`
	Snapshot LoanSnapshot `json:"snapshot"`
}
