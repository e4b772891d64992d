package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acff/debt-engine/internal/domain"
)

type debtorRepository struct {
	db *sqlx.DB
}

func NewDebtorRepository(db *sqlx.DB) DebtorRepository {
	return &debtorRepository{db: db}
}

func (r *debtorRepository) Create(ctx context.Context, debtor *domain.Debtor) error {
	query := `
		INSERT INTO debtors (id, name, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		debtor.ID,
		debtor.Name,
		debtor.Phone,
		debtor.Address,
		debtor.CreatedAt,
		debtor.UpdatedAt,
	)

	return err
}

func (r *debtorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Debtor, error) {
	query := `
		SELECT id, name, phone, address, created_at, updated_at
		FROM debtors
		WHERE id = $1
	`

	var debtor domain.Debtor
	if err := r.db.GetContext(ctx, &debtor, query, id); err != nil {
		return nil, err
	}

	return &debtor, nil
}

func (r *debtorRepository) GetByPhone(ctx context.Context, phone string) (*domain.Debtor, error) {
	query := `
		SELECT id, name, phone, address, created_at, updated_at
		FROM debtors
		WHERE phone = $1
	`

	var debtor domain.Debtor
	if err := r.db.GetContext(ctx, &debtor, query, phone); err != nil {
		return nil, err
	}

	return &debtor, nil
}

func (r *debtorRepository) List(ctx context.Context) ([]*domain.Debtor, error) {
	query := `
		SELECT id, name, phone, address, created_at, updated_at
		FROM debtors
		ORDER BY name
	`

	var debtors []*domain.Debtor
	if err := r.db.SelectContext(ctx, &debtors, query); err != nil {
		return nil, err
	}

	return debtors, nil
}

func (r *debtorRepository) Update(ctx context.Context, debtor *domain.Debtor) error {
	query := `
		UPDATE debtors
		SET name = $2, phone = $3, address = $4, updated_at = $5
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		debtor.ID,
		debtor.Name,
		debtor.Phone,
		debtor.Address,
		time.Now(),
	)

	return err
}

func (r *debtorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM debtors WHERE id = $1`, id)
	return err
}
