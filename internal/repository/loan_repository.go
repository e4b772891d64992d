package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/acff/debt-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, user_id, debtor_id, principal, monthly_rate, loan_date, due_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.UserID,
		loan.DebtorID,
		loan.Principal,
		loan.MonthlyRate,
		loan.LoanDate,
		loan.DueDate,
		loan.Status,
		loan.Notes,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `
		SELECT id, user_id, debtor_id, principal, monthly_rate, loan_date, due_date, status, notes, created_at, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	query := `
		SELECT id, user_id, debtor_id, principal, monthly_rate, loan_date, due_date, status, notes, created_at, updated_at
		FROM loans
		WHERE user_id = $1
		ORDER BY due_date
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, userID); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListByDebtor(ctx context.Context, debtorID uuid.UUID) ([]*domain.Loan, error) {
	query := `
		SELECT id, user_id, debtor_id, principal, monthly_rate, loan_date, due_date, status, notes, created_at, updated_at
		FROM loans
		WHERE debtor_id = $1
		ORDER BY due_date
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, debtorID); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListDueOn(ctx context.Context, day time.Time, statuses []string) ([]*domain.Loan, error) {
	query := `
		SELECT id, user_id, debtor_id, principal, monthly_rate, loan_date, due_date, status, notes, created_at, updated_at
		FROM loans
		WHERE due_date::date = $1::date AND status = ANY($2)
		ORDER BY due_date
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, day, pq.Array(statuses)); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListDueBefore(ctx context.Context, cutoff time.Time, statuses []string) ([]*domain.Loan, error) {
	query := `
		SELECT id, user_id, debtor_id, principal, monthly_rate, loan_date, due_date, status, notes, created_at, updated_at
		FROM loans
		WHERE due_date < $1 AND status = ANY($2)
		ORDER BY due_date
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, cutoff, pq.Array(statuses)); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET due_date = $2, notes = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.DueDate,
		loan.Notes,
		loan.Status,
		time.Now(),
	)

	return err
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE loans
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	return err
}

func (r *loanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	return err
}
