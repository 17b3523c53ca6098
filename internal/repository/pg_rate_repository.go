package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renoquote/backend/internal/model"
)

// PgRateRepository は RateRepository の PostgreSQL 実装
type PgRateRepository struct {
	pool *pgxpool.Pool
}

// NewPgRateRepository は PgRateRepository を生成する
func NewPgRateRepository(pool *pgxpool.Pool) *PgRateRepository {
	return &PgRateRepository{pool: pool}
}

const rateColumns = `code, name, base_price, price_per_unit, unit, active, updated_at`

// rateListQuery はフィルタに応じた SELECT 文と引数を組み立てる
func rateListQuery(filter RateFilter) (string, []any) {
	if len(filter.Codes) == 0 {
		return `SELECT ` + rateColumns + ` FROM rate_lines ORDER BY code`, nil
	}
	return `SELECT ` + rateColumns + ` FROM rate_lines WHERE code = ANY($1) ORDER BY code`,
		[]any{filter.Codes}
}

// List は料金行を code 順で返す
func (r *PgRateRepository) List(ctx context.Context, filter RateFilter) ([]*model.RateLine, error) {
	sql, args := rateListQuery(filter)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*model.RateLine
	for rows.Next() {
		var l model.RateLine
		if err := rows.Scan(&l.Code, &l.Name, &l.BasePrice, &l.PricePerUnit, &l.Unit, &l.Active, &l.UpdatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, &l)
	}
	return rates, rows.Err()
}
