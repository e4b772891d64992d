package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrDebtorNotFound       = errors.New("debtor not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidLoanAmount    = errors.New("invalid loan amount")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrInvalidReference     = errors.New("referenced record does not exist")
	ErrDebtorAlreadyExists  = errors.New("debtor already registered")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound         = "LOAN_NOT_FOUND"
	ErrCodePaymentNotFound      = "PAYMENT_NOT_FOUND"
	ErrCodeDebtorNotFound       = "DEBTOR_NOT_FOUND"
	ErrCodeUserNotFound         = "USER_NOT_FOUND"
	ErrCodeInvalidLoanAmount    = "INVALID_LOAN_AMOUNT"
	ErrCodeInvalidPaymentAmount = "INVALID_PAYMENT_AMOUNT"
	ErrCodeInvalidReference     = "INVALID_REFERENCE"
	ErrCodeDebtorAlreadyExists  = "DEBTOR_ALREADY_EXISTS"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
)

// Wrap common errors with business context
func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapDebtorNotFound(key string) *BusinessError {
	return NewBusinessError(
		ErrCodeDebtorNotFound,
		fmt.Sprintf("Debtor %s not found", key),
		ErrDebtorNotFound,
	)
}

func WrapUserNotFound(userID string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserNotFound,
		fmt.Sprintf("User with ID %s not found", userID),
		ErrUserNotFound,
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Payment amount must be greater than zero, got %s", amount),
		ErrInvalidPaymentAmount,
	)
}

func WrapInvalidLoanAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanAmount,
		fmt.Sprintf("Loan principal must be greater than zero, got %s", amount),
		ErrInvalidLoanAmount,
	)
}

func WrapInvalidReference(kind, id string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidReference,
		fmt.Sprintf("Referenced %s %s does not exist", kind, id),
		ErrInvalidReference,
	)
}

func WrapDebtorAlreadyExists(phone string) *BusinessError {
	return NewBusinessError(
		ErrCodeDebtorAlreadyExists,
		fmt.Sprintf("Debtor with phone %s already registered", phone),
		ErrDebtorAlreadyExists,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}
