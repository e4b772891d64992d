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

// PortfolioService produces the per-user dashboard report.
type PortfolioService struct {
	users    repository.UserRepository
	loans    repository.LoanRepository
	payments repository.PaymentRepository
	cache    ReportCache
}

func NewPortfolioService(
	users repository.UserRepository,
	loans repository.LoanRepository,
	payments repository.PaymentRepository,
	cache ReportCache,
) *PortfolioService {
	return &PortfolioService{
		users:    users,
		loans:    loans,
		payments: payments,
		cache:    cache,
	}
}

// Report aggregates all of a user's loans into the portfolio figures,
// serving from cache when a recent report is available.
func (s *PortfolioService) Report(ctx context.Context, userID uuid.UUID) (*domain.PortfolioReport, error) {
	if report, ok := s.cache.Get(ctx, userID); ok {
		return report, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUserNotFound(userID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	loans, err := s.loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	paymentsByLoan := make(map[uuid.UUID][]*domain.Payment, len(loans))
	for _, loan := range loans {
		payments, err := s.payments.ListByLoan(ctx, loan.ID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		paymentsByLoan[loan.ID] = payments
	}

	report := valuation.BuildReport(user, loans, paymentsByLoan, time.Now())

	s.cache.Set(ctx, report)

	return report, nil
}
