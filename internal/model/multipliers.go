package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectMultipliers is the singleton row of global rates applied to the
// labour subtotal of every quote.
type ProjectMultipliers struct {
	ContingencyRate   decimal.Decimal `json:"contingency_rate"`
	PMFeeRate         decimal.Decimal `json:"pm_fee_rate"`
	CondoUpliftRate   decimal.Decimal `json:"condo_uplift_rate"`
	OldHomeUpliftRate decimal.Decimal `json:"oldhome_uplift_rate"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
