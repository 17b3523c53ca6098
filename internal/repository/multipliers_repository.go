package repository

import (
	"context"

	"github.com/renoquote/backend/internal/model"
)

// MultipliersRepository handles persistence for the project_multipliers singleton.
type MultipliersRepository interface {
	Get(ctx context.Context) (*model.ProjectMultipliers, error)
}
