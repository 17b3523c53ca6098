package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteLineItem represents one priced line of a quote.
type QuoteLineItem struct {
	LineCode    string          `json:"line_code"`
	LineName    string          `json:"line_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BaseApplied bool            `json:"base_applied"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Extended    decimal.Decimal `json:"extended"`
	Unit        RateUnit        `json:"unit"`
}

// QuoteTotals is the roll-up of a quote's line items and global multipliers.
type QuoteTotals struct {
	LabourSubtotal decimal.Decimal `json:"labour_subtotal"`
	Contingency    decimal.Decimal `json:"contingency"`
	PMFee          decimal.Decimal `json:"pm_fee"`
	CondoUplift    decimal.Decimal `json:"condo_uplift"`
	OldHomeUplift  decimal.Decimal `json:"oldhome_uplift"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// QuantityEntry is one code/quantity pair of a quantity map.
type QuantityEntry struct {
	Code     string          `json:"code"`
	Quantity decimal.Decimal `json:"quantity"`
}

// RateDrift records a quantity that could not be priced because the catalog
// has no active rate for its code.
type RateDrift struct {
	Code     string          `json:"code"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"` // "missing" | "inactive"
}

// QuoteResult is a fully priced quote ready to be persisted.
type QuoteResult struct {
	Quantities []QuantityEntry `json:"quantities"`
	LineItems  []QuoteLineItem `json:"line_items"`
	Totals     QuoteTotals     `json:"totals"`
	Drift      []RateDrift     `json:"drift,omitempty"`
}

// Customer is the contact a stored quote belongs to.
type Customer struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=320"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=40"`
}

// QuoteSubmission is the request payload for storing a quote.
type QuoteSubmission struct {
	Customer Customer      `json:"customer"`
	Form     QuoteFormData `json:"form"`
}

// Quote is a stored quote record.
type Quote struct {
	ID        string          `json:"id"`
	Customer  Customer        `json:"customer"`
	Form      QuoteFormData   `json:"form"`
	LineItems []QuoteLineItem `json:"line_items"`
	Totals    QuoteTotals     `json:"totals"`
	CreatedAt time.Time       `json:"created_at"`
}
