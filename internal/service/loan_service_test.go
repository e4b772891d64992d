package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/acff/debt-engine/internal/domain"
)

type loanServiceMocks struct {
	loans    *MockLoanRepository
	payments *MockPaymentRepository
	debtors  *MockDebtorRepository
	users    *MockUserRepository
	cache    *MockReportCache
}

func newLoanService() (*LoanService, *loanServiceMocks) {
	m := &loanServiceMocks{
		loans:    &MockLoanRepository{},
		payments: &MockPaymentRepository{},
		debtors:  &MockDebtorRepository{},
		users:    &MockUserRepository{},
		cache:    &MockReportCache{},
	}
	m.cache.On("Invalidate", mock.Anything, mock.Anything).Maybe()
	return NewLoanService(m.loans, m.payments, m.debtors, m.users, m.cache), m
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoanService_Create(t *testing.T) {
	userID := uuid.New()
	debtorID := uuid.New()

	tests := []struct {
		name          string
		request       *domain.CreateLoanRequest
		setupMocks    func(*loanServiceMocks)
		expectedError bool
		errorContains string
	}{
		{
			name: "Success - register new loan",
			request: &domain.CreateLoanRequest{
				UserID:      userID,
				DebtorID:    debtorID,
				Principal:   decimal.NewFromInt(1000),
				MonthlyRate: decimal.NewFromInt(5),
				DueDate:     date(2030, 6, 1),
			},
			setupMocks: func(m *loanServiceMocks) {
				m.users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
				m.debtors.On("GetByID", mock.Anything, debtorID).Return(&domain.Debtor{ID: debtorID}, nil)
				m.loans.On("Create", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
					return loan.UserID == userID && loan.Status == domain.LoanStatusActive
				})).Return(nil)
			},
		},
		{
			name: "Failure - non-positive principal",
			request: &domain.CreateLoanRequest{
				UserID:    userID,
				DebtorID:  debtorID,
				Principal: decimal.Zero,
				DueDate:   date(2030, 6, 1),
			},
			setupMocks:    func(m *loanServiceMocks) {},
			expectedError: true,
			errorContains: "INVALID_LOAN_AMOUNT",
		},
		{
			name: "Failure - unknown user",
			request: &domain.CreateLoanRequest{
				UserID:    userID,
				DebtorID:  debtorID,
				Principal: decimal.NewFromInt(1000),
				DueDate:   date(2030, 6, 1),
			},
			setupMocks: func(m *loanServiceMocks) {
				m.users.On("GetByID", mock.Anything, userID).Return(nil, sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "INVALID_REFERENCE",
		},
		{
			name: "Failure - unknown debtor",
			request: &domain.CreateLoanRequest{
				UserID:    userID,
				DebtorID:  debtorID,
				Principal: decimal.NewFromInt(1000),
				DueDate:   date(2030, 6, 1),
			},
			setupMocks: func(m *loanServiceMocks) {
				m.users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
				m.debtors.On("GetByID", mock.Anything, debtorID).Return(nil, sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "INVALID_REFERENCE",
		},
		{
			name: "Failure - database error on insert",
			request: &domain.CreateLoanRequest{
				UserID:    userID,
				DebtorID:  debtorID,
				Principal: decimal.NewFromInt(1000),
				DueDate:   date(2030, 6, 1),
			},
			setupMocks: func(m *loanServiceMocks) {
				m.users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
				m.debtors.On("GetByID", mock.Anything, debtorID).Return(&domain.Debtor{ID: debtorID}, nil)
				m.loans.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
			},
			expectedError: true,
			errorContains: "DATABASE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mocks := newLoanService()
			tt.setupMocks(mocks)

			loan, err := service.Create(context.Background(), tt.request)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, loan)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, loan)
				assert.Equal(t, domain.LoanStatusActive, loan.Status)
			}

			mocks.loans.AssertExpectations(t)
			mocks.users.AssertExpectations(t)
			mocks.debtors.AssertExpectations(t)
		})
	}
}

func TestLoanService_Get_PersistsOverdueTransition(t *testing.T) {
	service, mocks := newLoanService()

	loan := &domain.Loan{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Principal:   decimal.NewFromInt(1000),
		MonthlyRate: decimal.Zero,
		LoanDate:    date(2024, 1, 1),
		DueDate:     date(2024, 3, 1), // long past
		Status:      domain.LoanStatusActive,
	}

	mocks.loans.On("GetByID", mock.Anything, loan.ID).Return(loan, nil)
	mocks.payments.On("ListByLoan", mock.Anything, loan.ID).Return([]*domain.Payment{}, nil)
	mocks.loans.On("UpdateStatus", mock.Anything, loan.ID, domain.LoanStatusOverdue).Return(nil)

	result, err := service.Get(context.Background(), loan.ID)

	assert.NoError(t, err)
	assert.Equal(t, domain.LoanStatusOverdue, result.Snapshot.Status)
	assert.Equal(t, domain.LoanStatusOverdue, result.Loan.Status)
	mocks.loans.AssertExpectations(t)
	mocks.cache.AssertCalled(t, "Invalidate", mock.Anything, loan.UserID)
}

func TestLoanService_Get_NoWriteWhenStatusUnchanged(t *testing.T) {
	service, mocks := newLoanService()

	loan := &domain.Loan{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Principal:   decimal.NewFromInt(1000),
		MonthlyRate: decimal.Zero,
		LoanDate:    date(2024, 1, 1),
		DueDate:     date(2099, 1, 1),
		Status:      domain.LoanStatusActive,
	}

	mocks.loans.On("GetByID", mock.Anything, loan.ID).Return(loan, nil)
	mocks.payments.On("ListByLoan", mock.Anything, loan.ID).Return([]*domain.Payment{}, nil)

	result, err := service.Get(context.Background(), loan.ID)

	assert.NoError(t, err)
	assert.Equal(t, domain.LoanStatusActive, result.Snapshot.Status)
	mocks.loans.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanService_Get_NotFound(t *testing.T) {
	service, mocks := newLoanService()

	id := uuid.New()
	mocks.loans.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

	result, err := service.Get(context.Background(), id)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOAN_NOT_FOUND")
	assert.Nil(t, result)
}

func TestLoanService_Update_ExtendedDueDateRevivesOverdueLoan(t *testing.T) {
	service, mocks := newLoanService()

	loan := &domain.Loan{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Principal:   decimal.NewFromInt(1000),
		MonthlyRate: decimal.Zero,
		LoanDate:    date(2024, 1, 1),
		DueDate:     date(2024, 3, 1),
		Status:      domain.LoanStatusOverdue,
	}
	newDue := date(2099, 1, 1)

	mocks.loans.On("GetByID", mock.Anything, loan.ID).Return(loan, nil)
	mocks.loans.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
		return l.DueDate.Equal(newDue)
	})).Return(nil)
	mocks.payments.On("ListByLoan", mock.Anything, loan.ID).Return([]*domain.Payment{
		{Amount: decimal.NewFromInt(200)},
	}, nil)
	mocks.loans.On("UpdateStatus", mock.Anything, loan.ID, domain.LoanStatusActive).Return(nil)

	result, err := service.Update(context.Background(), loan.ID, &domain.UpdateLoanRequest{DueDate: &newDue})

	assert.NoError(t, err)
	assert.Equal(t, domain.LoanStatusActive, result.Snapshot.Status)
	mocks.loans.AssertExpectations(t)
}

func TestLoanService_Delete(t *testing.T) {
	service, mocks := newLoanService()

	loan := &domain.Loan{ID: uuid.New(), UserID: uuid.New()}

	mocks.loans.On("GetByID", mock.Anything, loan.ID).Return(loan, nil)
	mocks.loans.On("Delete", mock.Anything, loan.ID).Return(nil)

	err := service.Delete(context.Background(), loan.ID)

	assert.NoError(t, err)
	mocks.loans.AssertExpectations(t)
	mocks.cache.AssertCalled(t, "Invalidate", mock.Anything, loan.UserID)
}
