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

// LoanService owns loan registration and the one status-persist path.
// Every status write goes through Reevaluate, which re-reads payments
// immediately before computing the status it stores.
type LoanService struct {
	loans    repository.LoanRepository
	payments repository.PaymentRepository
	debtors  repository.DebtorRepository
	users    repository.UserRepository
	cache    ReportCache
}

func NewLoanService(
	loans repository.LoanRepository,
	payments repository.PaymentRepository,
	debtors repository.DebtorRepository,
	users repository.UserRepository,
	cache ReportCache,
) *LoanService {
	return &LoanService{
		loans:    loans,
		payments: payments,
		debtors:  debtors,
		users:    users,
		cache:    cache,
	}
}

// Create registers a new loan after checking that the owning user and
// the debtor exist.
func (s *LoanService) Create(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	if !request.Principal.IsPositive() {
		return nil, customError.WrapInvalidLoanAmount(request.Principal.String())
	}

	if _, err := s.users.GetByID(ctx, request.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvalidReference("user", request.UserID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if _, err := s.debtors.GetByID(ctx, request.DebtorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvalidReference("debtor", request.DebtorID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	now := time.Now()
	loanDate := now
	if request.LoanDate != nil {
		loanDate = *request.LoanDate
	}

	loan := &domain.Loan{
		ID:          uuid.New(),
		UserID:      request.UserID,
		DebtorID:    request.DebtorID,
		Principal:   request.Principal,
		MonthlyRate: request.MonthlyRate,
		LoanDate:    loanDate,
		DueDate:     request.DueDate,
		Status:      domain.LoanStatusActive,
		Notes:       request.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cache.Invalidate(ctx, loan.UserID)

	return loan, nil
}

// Find loads a loan or reports it missing.
func (s *LoanService) Find(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}

// Get valuates a loan at the current instant, persisting any status
// transition the valuation derives.
func (s *LoanService) Get(ctx context.Context, id uuid.UUID) (*domain.LoanResponse, error) {
	loan, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.Reevaluate(ctx, loan, time.Now())
	if err != nil {
		return nil, err
	}

	return &domain.LoanResponse{Loan: loan, Snapshot: snapshot}, nil
}

// ListByUser returns all of a user's loans, each with a fresh snapshot.
func (s *LoanService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LoanResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUserNotFound(userID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	loans, err := s.loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	asOf := time.Now()
	responses := make([]*domain.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		snapshot, err := s.Reevaluate(ctx, loan, asOf)
		if err != nil {
			return nil, err
		}
		responses = append(responses, &domain.LoanResponse{Loan: loan, Snapshot: snapshot})
	}

	return responses, nil
}

// Update changes the mutable loan fields and re-derives the status: an
// extended due date can bring an overdue loan back to active.
func (s *LoanService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdateLoanRequest) (*domain.LoanResponse, error) {
	loan, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.DueDate != nil {
		loan.DueDate = *request.DueDate
	}
	if request.Notes != nil {
		loan.Notes = *request.Notes
	}

	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	snapshot, err := s.Reevaluate(ctx, loan, time.Now())
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, loan.UserID)

	return &domain.LoanResponse{Loan: loan, Snapshot: snapshot}, nil
}

// Delete removes a loan and its payments.
func (s *LoanService) Delete(ctx context.Context, id uuid.UUID) error {
	loan, err := s.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.loans.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.cache.Invalidate(ctx, loan.UserID)

	return nil
}

// Reevaluate recomputes a loan's snapshot from freshly read payments and
// persists the derived status when it differs from the stored one.
// Concurrent payment submissions converge here: whichever write lands
// last still computed its status from the payments present at write
// time, never from a value cached earlier.
func (s *LoanService) Reevaluate(ctx context.Context, loan *domain.Loan, asOf time.Time) (domain.LoanSnapshot, error) {
	payments, err := s.payments.ListByLoan(ctx, loan.ID)
	if err != nil {
		return domain.LoanSnapshot{}, customError.WrapDatabaseError(err)
	}

	snapshot := valuation.Valuate(loan, payments, asOf)

	if snapshot.StatusChanged {
		if err := s.loans.UpdateStatus(ctx, loan.ID, snapshot.Status); err != nil {
			return domain.LoanSnapshot{}, customError.WrapDatabaseError(err)
		}
		loan.Status = snapshot.Status
		s.cache.Invalidate(ctx, loan.UserID)
	}

	return snapshot, nil
}
