package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a lender. DeclaredCapital is the total amount the user has
// earmarked for lending; the portfolio report subtracts the invested
// principal from it.
type User struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Email           string          `json:"email" db:"email"`
	DeclaredCapital decimal.Decimal `json:"declared_capital" db:"declared_capital"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateUserRequest struct {
	Name            string          `json:"name" validate:"required"`
	Email           string          `json:"email" validate:"required,email"`
	DeclaredCapital decimal.Decimal `json:"declared_capital" validate:"gte=0"`
}

type UpdateCapitalRequest struct {
	DeclaredCapital decimal.Decimal `json:"declared_capital" validate:"gte=0"`
}
