package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/renoquote/backend/internal/catalog"
	"github.com/renoquote/backend/internal/model"
	"github.com/renoquote/backend/internal/pricing"
	"github.com/renoquote/backend/internal/repository"
)

// QuoteService は見積もり計算と保存のビジネスロジック
type QuoteService interface {
	// Calculate は入力フォームから見積もりを計算する（保存はしない）
	Calculate(ctx context.Context, form *model.QuoteFormData) (*model.QuoteResult, error)
	// Submit は見積もりを計算し、顧客情報とともに保存する
	Submit(ctx context.Context, sub *model.QuoteSubmission) (*model.Quote, error)
	Get(ctx context.Context, id string) (*model.Quote, error)
}

// SnapshotLoader loads the catalog snapshot a calculation runs against.
type SnapshotLoader interface {
	Load(ctx context.Context, filter repository.RateFilter) (*catalog.Snapshot, error)
}

type quoteService struct {
	loader   SnapshotLoader
	quotes   repository.QuoteRepository
	drift    DriftRecorder
	validate *validator.Validate
}

// NewQuoteService は QuoteService を生成する
func NewQuoteService(loader SnapshotLoader, quotes repository.QuoteRepository, drift DriftRecorder) QuoteService {
	return &quoteService{
		loader:   loader,
		quotes:   quotes,
		drift:    drift,
		validate: newValidator(),
	}
}

func (s *quoteService) Calculate(ctx context.Context, form *model.QuoteFormData) (*model.QuoteResult, error) {
	if form == nil {
		return nil, &ValidationError{Violations: []FieldViolation{{Field: "form", Rule: "required"}}}
	}
	if err := validateStruct(s.validate, form); err != nil {
		return nil, err
	}
	return s.price(ctx, form)
}

// price は検証済みフォームを料金スナップショットに対して計算する。
// スナップショットはフォームが参照するコードだけに絞って読み込む。
func (s *quoteService) price(ctx context.Context, form *model.QuoteFormData) (*model.QuoteResult, error) {
	codes := pricing.MapQuantities(form).Codes()

	snap, err := s.loader.Load(ctx, repository.RateFilter{Codes: codes})
	if err != nil {
		return nil, err
	}

	result := pricing.Price(form, snap.Rates, snap.Multipliers)
	for _, d := range result.Drift {
		s.drift.RecordDrift(ctx, d)
	}
	return result, nil
}

func (s *quoteService) Submit(ctx context.Context, sub *model.QuoteSubmission) (*model.Quote, error) {
	if sub == nil {
		return nil, &ValidationError{Violations: []FieldViolation{{Field: "form", Rule: "required"}}}
	}
	if err := validateStruct(s.validate, sub); err != nil {
		return nil, err
	}

	result, err := s.price(ctx, &sub.Form)
	if err != nil {
		return nil, err
	}

	quote := &model.Quote{
		Customer:  sub.Customer,
		Form:      sub.Form,
		LineItems: result.LineItems,
		Totals:    result.Totals,
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) Get(ctx context.Context, id string) (*model.Quote, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// IsRetryable reports whether err is a transient catalog failure.
func IsRetryable(err error) bool {
	return errors.Is(err, catalog.ErrCatalogUnavailable)
}
