package repository

import (
	"context"

	"github.com/renoquote/backend/internal/model"
)

// RateFilter は料金カタログ取得の絞り込み条件。空の場合は全件。
type RateFilter struct {
	Codes []string
}

// RateRepository は料金カタログの読み取りインターフェース
type RateRepository interface {
	// List はフィルタに一致する料金行を返す（inactive も含む）
	List(ctx context.Context, filter RateFilter) ([]*model.RateLine, error)
}
