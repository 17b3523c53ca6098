package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renoquote/backend/internal/model"
)

type pgMultipliersRepository struct {
	pool *pgxpool.Pool
}

// NewPgMultipliersRepository returns a PostgreSQL-backed MultipliersRepository.
func NewPgMultipliersRepository(pool *pgxpool.Pool) MultipliersRepository {
	return &pgMultipliersRepository{pool: pool}
}

func (r *pgMultipliersRepository) Get(ctx context.Context) (*model.ProjectMultipliers, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT contingency_rate, pm_fee_rate, condo_uplift_rate, oldhome_uplift_rate, updated_at
		FROM project_multipliers
		WHERE id = 1
	`)

	m := &model.ProjectMultipliers{}
	err := row.Scan(&m.ContingencyRate, &m.PMFeeRate, &m.CondoUpliftRate, &m.OldHomeUpliftRate, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
