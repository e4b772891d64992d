package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/acff/debt-engine/internal/domain"
	"github.com/acff/debt-engine/internal/repository"
	customError "github.com/acff/debt-engine/pkg/errors"
)

// DebtorService manages the debtor registry. Phone numbers are the
// natural key: two debtors never share one.
type DebtorService struct {
	debtors repository.DebtorRepository
	loans   repository.LoanRepository
}

func NewDebtorService(debtors repository.DebtorRepository, loans repository.LoanRepository) *DebtorService {
	return &DebtorService{debtors: debtors, loans: loans}
}

func (s *DebtorService) Create(ctx context.Context, request *domain.CreateDebtorRequest) (*domain.Debtor, error) {
	existing, err := s.debtors.GetByPhone(ctx, request.Phone)
	if err == nil && existing != nil {
		return nil, customError.WrapDebtorAlreadyExists(request.Phone)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	now := time.Now()
	debtor := &domain.Debtor{
		ID:        uuid.New(),
		Name:      request.Name,
		Phone:     request.Phone,
		Address:   request.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.debtors.Create(ctx, debtor); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return debtor, nil
}

func (s *DebtorService) Get(ctx context.Context, id uuid.UUID) (*domain.Debtor, error) {
	debtor, err := s.debtors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDebtorNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return debtor, nil
}

func (s *DebtorService) GetByPhone(ctx context.Context, phone string) (*domain.Debtor, error) {
	debtor, err := s.debtors.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDebtorNotFound(phone)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return debtor, nil
}

func (s *DebtorService) List(ctx context.Context) ([]*domain.Debtor, error) {
	debtors, err := s.debtors.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return debtors, nil
}

func (s *DebtorService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdateDebtorRequest) (*domain.Debtor, error) {
	debtor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		debtor.Name = *request.Name
	}
	if request.Phone != nil {
		debtor.Phone = *request.Phone
	}
	if request.Address != nil {
		debtor.Address = *request.Address
	}

	if err := s.debtors.Update(ctx, debtor); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return debtor, nil
}

func (s *DebtorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.debtors.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// Loans lists every loan taken by one debtor.
func (s *DebtorService) Loans(ctx context.Context, id uuid.UUID) ([]*domain.Loan, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	loans, err := s.loans.ListByDebtor(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return loans, nil
}
