package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acff/debt-engine/internal/domain"
	"github.com/acff/debt-engine/internal/repository"
	customError "github.com/acff/debt-engine/pkg/errors"
)

// UserService manages lender accounts and their declared capital.
type UserService struct {
	users repository.UserRepository
	cache ReportCache
}

func NewUserService(users repository.UserRepository, cache ReportCache) *UserService {
	return &UserService{users: users, cache: cache}
}

func (s *UserService) Create(ctx context.Context, request *domain.CreateUserRequest) (*domain.User, error) {
	now := time.Now()
	user := &domain.User{
		ID:              uuid.New(),
		Name:            request.Name,
		Email:           request.Email,
		DeclaredCapital: request.DeclaredCapital,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUserNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return user, nil
}

// UpdateCapital changes the capital a user has earmarked for lending and
// drops the cached report built on the old figure.
func (s *UserService) UpdateCapital(ctx context.Context, id uuid.UUID, capital decimal.Decimal) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateCapital(ctx, id, capital); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	user.DeclaredCapital = capital
	s.cache.Invalidate(ctx, id)

	return user, nil
}
