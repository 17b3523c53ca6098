package pricing

import (
	"github.com/renoquote/backend/internal/model"
	"github.com/shopspring/decimal"
)

// AggregateTotals applies the project multipliers to the summed line items.
// Each component is rounded to cents before the grand total is summed, so the
// components always add up to the grand total exactly.
func AggregateTotals(items []model.QuoteLineItem, m model.ProjectMultipliers, form *model.QuoteFormData) model.QuoteTotals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Extended)
	}
	subtotal = subtotal.Round(centPlaces)

	t := model.QuoteTotals{
		LabourSubtotal: subtotal,
		Contingency:    applyRate(subtotal, m.ContingencyRate),
		PMFee:          applyRate(subtotal, m.PMFeeRate),
		CondoUplift:    decimal.Zero,
		OldHomeUplift:  decimal.Zero,
	}
	if form.BuildingType == model.BuildingCondo {
		t.CondoUplift = applyRate(subtotal, m.CondoUpliftRate)
	}
	if form.YearBuilt == model.YearBuiltPre1980 {
		t.OldHomeUplift = applyRate(subtotal, m.OldHomeUpliftRate)
	}

	t.GrandTotal = t.LabourSubtotal.
		Add(t.Contingency).
		Add(t.PMFee).
		Add(t.CondoUplift).
		Add(t.OldHomeUplift)
	return t
}

func applyRate(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(centPlaces)
}

// Price runs the full pipeline against one catalog snapshot.
func Price(form *model.QuoteFormData, rates model.RateCatalog, m model.ProjectMultipliers) *model.QuoteResult {
	quantities := MapQuantities(form)
	items, drift := CalculateLineItems(quantities, rates)
	return &model.QuoteResult{
		Quantities: quantities.Entries(),
		LineItems:  items,
		Totals:     AggregateTotals(items, m, form),
		Drift:      drift,
	}
}
