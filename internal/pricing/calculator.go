package pricing

import (
	"github.com/renoquote/backend/internal/model"
	"github.com/shopspring/decimal"
)

// Drift reasons.
const (
	DriftMissing  = "missing"
	DriftInactive = "inactive"
)

// centPlaces is the precision money values are rounded to.
const centPlaces = 2

// CalculateLineItems prices every quantity against the catalog, in the
// quantity map's order. Codes without an active rate are left out of the
// result and reported as drift.
func CalculateLineItems(quantities *QuantityMap, rates model.RateCatalog) ([]model.QuoteLineItem, []model.RateDrift) {
	items := make([]model.QuoteLineItem, 0, quantities.Len())
	var drift []model.RateDrift

	for _, e := range quantities.Entries() {
		if !e.Quantity.IsPositive() {
			continue
		}
		rate, ok := rates[e.Code]
		if !ok || rate == nil {
			drift = append(drift, model.RateDrift{Code: e.Code, Quantity: e.Quantity, Reason: DriftMissing})
			continue
		}
		if !rate.Active {
			drift = append(drift, model.RateDrift{Code: e.Code, Quantity: e.Quantity, Reason: DriftInactive})
			continue
		}
		items = append(items, priceLine(rate, e.Quantity))
	}
	return items, drift
}

func priceLine(rate *model.RateLine, quantity decimal.Decimal) model.QuoteLineItem {
	extended := rate.BasePrice.Add(rate.PricePerUnit.Mul(quantity)).Round(centPlaces)
	return model.QuoteLineItem{
		LineCode:    rate.Code,
		LineName:    rate.Name,
		Quantity:    quantity,
		UnitPrice:   rate.PricePerUnit,
		BaseApplied: true,
		BasePrice:   rate.BasePrice,
		Extended:    extended,
		Unit:        rate.Unit,
	}
}
