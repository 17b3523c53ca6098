package service

import (
	"context"

	"github.com/renoquote/backend/internal/model"
)

// CatalogReader reads the rate catalog for display.
type CatalogReader interface {
	Rates(ctx context.Context) ([]*model.RateLine, error)
	Multipliers(ctx context.Context) (*model.ProjectMultipliers, error)
}

// RateService provides read-only access to the rate catalog and multipliers.
type RateService interface {
	ListRates(ctx context.Context) ([]*model.RateLine, error)
	GetMultipliers(ctx context.Context) (*model.ProjectMultipliers, error)
}

type rateService struct {
	catalog CatalogReader
}

// NewRateService creates a RateService.
func NewRateService(catalog CatalogReader) RateService {
	return &rateService{catalog: catalog}
}

func (s *rateService) ListRates(ctx context.Context) ([]*model.RateLine, error) {
	return s.catalog.Rates(ctx)
}

func (s *rateService) GetMultipliers(ctx context.Context) (*model.ProjectMultipliers, error) {
	return s.catalog.Multipliers(ctx)
}
