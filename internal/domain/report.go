package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanSnapshot is the derived financial state of one loan at an
// evaluation instant. It is computed on demand and never persisted.
type LoanSnapshot struct {
	Owed             decimal.Decimal `json:"owed"`
	Paid             decimal.Decimal `json:"paid"`
	Remaining        decimal.Decimal `json:"raw_remaining"` // signed, negative on overpayment
	DisplayRemaining decimal.Decimal `json:"remaining"`     // clamped at zero
	Status           string          `json:"status"`
	StatusChanged    bool            `json:"-"` // true when Status differs from the stored one
}

// PortfolioReport aggregates all of one user's loans into the dashboard
// figures. Derived, never persisted (though it may be cached).
type PortfolioReport struct {
	UserID           uuid.UUID       `json:"user_id"`
	UserName         string          `json:"user_name"`
	GeneratedAt      time.Time       `json:"generated_at"`
	DeclaredCapital  decimal.Decimal `json:"declared_capital"`
	CapitalInvested  decimal.Decimal `json:"capital_invested"`
	CapitalAvailable decimal.Decimal `json:"capital_available"` // may go negative, never clamped
	TotalReceived    decimal.Decimal `json:"total_received"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	TotalPending     decimal.Decimal `json:"total_pending"`
	ExpectedReturn   decimal.Decimal `json:"expected_return"`
	ActiveLoans      int             `json:"active_loans"`
	OverdueLoans     int             `json:"overdue_loans"`
	DueToday         []*LoanResponse `json:"due_today"`
	DueThisWeek      []*LoanResponse `json:"due_this_week"`
	Approaching      []*LoanResponse `json:"approaching"`
}
