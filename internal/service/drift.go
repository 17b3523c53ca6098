package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/renoquote/backend/internal/model"
)

// DriftRecorder receives rate drift events: quantities the catalog could not
// price.
type DriftRecorder interface {
	RecordDrift(ctx context.Context, d model.RateDrift)
}

// DriftCounter logs each drift event and keeps a running count.
type DriftCounter struct {
	total atomic.Int64
}

// NewDriftCounter creates a DriftCounter.
func NewDriftCounter() *DriftCounter {
	return &DriftCounter{}
}

func (c *DriftCounter) RecordDrift(ctx context.Context, d model.RateDrift) {
	c.total.Add(1)
	slog.WarnContext(ctx, "rate drift",
		"code", d.Code,
		"quantity", d.Quantity.String(),
		"reason", d.Reason,
	)
}

// Total returns the number of drift events recorded since start.
func (c *DriftCounter) Total() int64 {
	return c.total.Load()
}
