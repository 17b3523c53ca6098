// Package catalog loads the rate catalog and project multipliers that one
// pricing run is computed against.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/renoquote/backend/internal/model"
	"github.com/renoquote/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ErrCatalogUnavailable is returned when the rates or multipliers cannot be
// fetched. The calculation must not proceed; callers may retry.
var ErrCatalogUnavailable = errors.New("rate catalog unavailable")

// DefaultFetchTimeout bounds a single catalog load.
const DefaultFetchTimeout = 5 * time.Second

// Snapshot is the immutable input of one pricing run.
type Snapshot struct {
	Rates       model.RateCatalog
	Multipliers model.ProjectMultipliers
}

// Loader reads catalog snapshots from the backing store.
type Loader struct {
	rates       repository.RateRepository
	multipliers repository.MultipliersRepository
	timeout     time.Duration
}

// NewLoader creates a Loader. A non-positive timeout uses DefaultFetchTimeout.
func NewLoader(rates repository.RateRepository, multipliers repository.MultipliersRepository, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Loader{rates: rates, multipliers: multipliers, timeout: timeout}
}

// Load fetches the rates matching filter and the project multipliers in
// parallel.
func (l *Loader) Load(ctx context.Context, filter repository.RateFilter) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var (
		rates []*model.RateLine
		mult  *model.ProjectMultipliers
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rates, err = l.rates.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("list rates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		mult, err = l.multipliers.Get(gctx)
		if err != nil {
			return fmt.Errorf("get multipliers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	return &Snapshot{Rates: index(rates), Multipliers: *mult}, nil
}

// Rates returns the full catalog, inactive rows included.
func (l *Loader) Rates(ctx context.Context) ([]*model.RateLine, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	rates, err := l.rates.List(ctx, repository.RateFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return rates, nil
}

// Multipliers returns the current project multipliers.
func (l *Loader) Multipliers(ctx context.Context) (*model.ProjectMultipliers, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	m, err := l.multipliers.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return m, nil
}

func index(rates []*model.RateLine) model.RateCatalog {
	c := make(model.RateCatalog, len(rates))
	for _, r := range rates {
		if r == nil {
			continue
		}
		line := *r
		c[line.Code] = &line
	}
	return c
}
