package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/acff/debt-engine/internal/domain"
	"github.com/acff/debt-engine/internal/repository"
	"github.com/acff/debt-engine/internal/valuation"
	customError "github.com/acff/debt-engine/pkg/errors"
)

// PaymentService records, corrects and removes payments. Every mutation
// funnels into LoanService.Reevaluate so the status can never drift from
// the ledger.
type PaymentService struct {
	payments repository.PaymentRepository
	loans    *LoanService
	cache    ReportCache
}

func NewPaymentService(payments repository.PaymentRepository, loans *LoanService, cache ReportCache) *PaymentService {
	return &PaymentService{
		payments: payments,
		loans:    loans,
		cache:    cache,
	}
}

// Create records a payment against a loan. Non-positive amounts are
// rejected before anything touches the ledger.
func (s *PaymentService) Create(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.Payment, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidPaymentAmount(request.Amount.String())
	}

	loan, err := s.loans.Find(ctx, request.LoanID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	paidAt := now
	if request.PaidAt != nil {
		paidAt = *request.PaidAt
	}

	payment := &domain.Payment{
		ID:        uuid.New(),
		LoanID:    request.LoanID,
		Amount:    request.Amount,
		PaidAt:    paidAt,
		CreatedAt: now,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if _, err := s.loans.Reevaluate(ctx, loan, now); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, loan.UserID)

	return payment, nil
}

// Get loads a single payment.
func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return payment, nil
}

// ListByLoan returns a loan's payments together with the ledger totals.
func (s *PaymentService) ListByLoan(ctx context.Context, loanID uuid.UUID) (*domain.PaymentListResponse, error) {
	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	owed := valuation.AccruedValue(loan.Principal, loan.MonthlyRate, loan.LoanDate, time.Now())
	totalPaid := valuation.TotalPaid(payments)

	return &domain.PaymentListResponse{
		Payments:  payments,
		TotalPaid: totalPaid,
		Remaining: valuation.Outstanding(owed, totalPaid),
	}, nil
}

// Update corrects a payment's amount or timestamp and re-derives the
// loan status. A correction that drops the total below the owed amount
// reverts a settled loan.
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdatePaymentRequest) (*domain.Payment, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Amount != nil {
		if !request.Amount.IsPositive() {
			return nil, customError.WrapInvalidPaymentAmount(request.Amount.String())
		}
		payment.Amount = *request.Amount
	}
	if request.PaidAt != nil {
		payment.PaidAt = *request.PaidAt
	}

	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err := s.reevaluateLoan(ctx, payment.LoanID); err != nil {
		return nil, err
	}

	return payment, nil
}

// Delete removes a payment and re-derives the loan status from what is
// left in the ledger.
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.payments.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return s.reevaluateLoan(ctx, payment.LoanID)
}

func (s *PaymentService) reevaluateLoan(ctx context.Context, loanID uuid.UUID) error {
	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return err
	}

	if _, err := s.loans.Reevaluate(ctx, loan, time.Now()); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, loan.UserID)

	return nil
}
