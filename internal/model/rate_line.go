package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateUnit is the unit a rate's per-unit price is quoted in.
type RateUnit string

const (
	RateUnitUnit  RateUnit = "unit"
	RateUnitSqft  RateUnit = "sqft"
	RateUnitItem  RateUnit = "item"
	RateUnitPoint RateUnit = "point"
)

// RateLine represents one priced entry of the rate catalog.
type RateLine struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	BasePrice    decimal.Decimal `json:"base_price"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Unit         RateUnit        `json:"unit"`
	Active       bool            `json:"active"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RateCatalog maps a line code to its rate. Inactive rates are included;
// callers filter on Active.
type RateCatalog map[string]*RateLine

// Codes returns the catalog's codes in no particular order.
func (c RateCatalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	return codes
}
