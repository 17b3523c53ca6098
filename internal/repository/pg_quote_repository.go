package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renoquote/backend/internal/model"
)

// PgQuoteRepository は QuoteRepository の PostgreSQL 実装
type PgQuoteRepository struct {
	pool *pgxpool.Pool
}

// NewPgQuoteRepository は PgQuoteRepository を生成する
func NewPgQuoteRepository(pool *pgxpool.Pool) *PgQuoteRepository {
	return &PgQuoteRepository{pool: pool}
}

// Create は quotes と quote_line_items を 1 トランザクションで書き込む
func (r *PgQuoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	form, err := json.Marshal(quote.Form)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	t := quote.Totals
	if err := tx.QueryRow(ctx,
		`INSERT INTO quotes (customer_name, customer_email, customer_phone, form,
		   labour_subtotal, contingency, pm_fee, condo_uplift, oldhome_uplift, grand_total)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		quote.Customer.Name, quote.Customer.Email, quote.Customer.Phone, form,
		t.LabourSubtotal, t.Contingency, t.PMFee, t.CondoUplift, t.OldHomeUplift, t.GrandTotal,
	).Scan(&quote.ID, &quote.CreatedAt); err != nil {
		return err
	}

	for i, it := range quote.LineItems {
		if _, err := tx.Exec(ctx,
			`INSERT INTO quote_line_items (quote_id, position, line_code, line_name, quantity,
			   unit_price, base_price, base_applied, extended, unit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			quote.ID, i, it.LineCode, it.LineName, it.Quantity,
			it.UnitPrice, it.BasePrice, it.BaseApplied, it.Extended, it.Unit,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetByID は見積もりを明細付きで取得する
func (r *PgQuoteRepository) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	var (
		q    model.Quote
		form []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, customer_name, customer_email, customer_phone, form,
		   labour_subtotal, contingency, pm_fee, condo_uplift, oldhome_uplift, grand_total, created_at
		 FROM quotes WHERE id = $1`,
		id,
	).Scan(&q.ID, &q.Customer.Name, &q.Customer.Email, &q.Customer.Phone, &form,
		&q.Totals.LabourSubtotal, &q.Totals.Contingency, &q.Totals.PMFee,
		&q.Totals.CondoUplift, &q.Totals.OldHomeUplift, &q.Totals.GrandTotal, &q.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(form, &q.Form); err != nil {
		return nil, fmt.Errorf("decode form: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT line_code, line_name, quantity, unit_price, base_price, base_applied, extended, unit
		 FROM quote_line_items WHERE quote_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	q.LineItems = []model.QuoteLineItem{}
	for rows.Next() {
		var it model.QuoteLineItem
		if err := rows.Scan(&it.LineCode, &it.LineName, &it.Quantity, &it.UnitPrice,
			&it.BasePrice, &it.BaseApplied, &it.Extended, &it.Unit); err != nil {
			return nil, err
		}
		q.LineItems = append(q.LineItems, it)
	}
	return &q, rows.Err()
}
