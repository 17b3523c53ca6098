package repository

import (
	"context"

	"github.com/renoquote/backend/internal/model"
)

// QuoteRepository は見積もりの永続化インターフェース
type QuoteRepository interface {
	// Create は見積もりと明細を保存し、quote.ID と CreatedAt を埋める
	Create(ctx context.Context, quote *model.Quote) error
	GetByID(ctx context.Context, id string) (*model.Quote, error)
}
