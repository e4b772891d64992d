package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acff/debt-engine/internal/domain"
)

// LoanRepository defines the interface for loan data operations.
type LoanRepository interface {
	// Create stores a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// ListByUser retrieves all loans owned by a user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)

	// ListByDebtor retrieves all loans taken by a debtor
	ListByDebtor(ctx context.Context, debtorID uuid.UUID) ([]*domain.Loan, error)

	// ListDueOn retrieves loans in the given statuses whose due date falls on the given day
	ListDueOn(ctx context.Context, day time.Time, statuses []string) ([]*domain.Loan, error)

	// ListDueBefore retrieves loans in the given statuses whose due date precedes the cutoff
	ListDueBefore(ctx context.Context, cutoff time.Time, statuses []string) ([]*domain.Loan, error)

	// Update stores the mutable loan fields
	Update(ctx context.Context, loan *domain.Loan) error

	// UpdateStatus persists a status transition
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// Delete removes a loan and, through the schema, its payments
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment data operations.
type PaymentRepository interface {
	// Create stores a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// ListByLoan retrieves all payments recorded against a loan
	ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error)

	// Update stores a corrected amount or timestamp
	Update(ctx context.Context, payment *domain.Payment) error

	// Delete removes a payment record
	Delete(ctx context.Context, id uuid.UUID) error
}

// DebtorRepository defines the interface for debtor data operations.
type DebtorRepository interface {
	Create(ctx context.Context, debtor *domain.Debtor) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Debtor, error)
	// GetByPhone looks a debtor up by the natural key
	GetByPhone(ctx context.Context, phone string) (*domain.Debtor, error)
	List(ctx context.Context) ([]*domain.Debtor, error)
	Update(ctx context.Context, debtor *domain.Debtor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// UpdateCapital stores a new declared capital figure
	UpdateCapital(ctx context.Context, id uuid.UUID, capital decimal.Decimal) error
}
