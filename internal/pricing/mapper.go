package pricing

import "github.com/renoquote/backend/internal/model"

// MapQuantities translates intake answers into line quantities. Unanswered
// questions skip their rule; zero measurements are skipped the same way.
func MapQuantities(form *model.QuoteFormData) *QuantityMap {
	m := NewQuantityMap()

	if code, ok := bathroomBaseCodes[form.BathroomType]; ok {
		m.SetInt(code, 1)
	}

	if sqft, ok := model.Positive(form.FloorSqft); ok {
		m.Set(CodeFloorTile, sqft)
	}

	if form.BathroomType.HasShowerFloor() {
		if sqft, ok := model.Positive(form.ShowerFloorSqft); ok {
			m.Set(CodeShowerFloor, sqft)
		}
	}

	// Powder rooms usually leave wet_wall_sqft unanswered.
	if sqft, ok := model.Positive(form.WetWallSqft); ok {
		m.Set(CodeWetWall, sqft)
	}

	if model.IsSet(form.TileOtherWalls) {
		if sqft, ok := model.Positive(form.TileOtherWallsSqft); ok {
			m.Set(CodeOtherWallTile, sqft)
		}
	}

	if model.IsSet(form.AddAccentFeature) {
		if sqft, ok := model.Positive(form.AccentFeatureSqft); ok {
			m.Set(CodeAccentFeature, sqft)
		}
	}

	// Width only triggers inclusion; it never scales the quantity.
	if _, ok := model.PositiveInt(form.VanityWidthIn); ok {
		m.SetInt(CodeVanity, 1)
	}

	if n, ok := model.PositiveInt(form.ElectricalItems); ok {
		m.SetInt(CodeElectrical, n)
	}

	for _, r := range upgradeRules {
		if model.IsSet(r.flag(&form.Upgrades)) {
			m.SetInt(r.code, 1)
		}
	}

	if form.YearBuilt == model.YearBuiltPre1980 {
		m.SetInt(CodeAsbestosTesting, 1)
	}

	return m
}
