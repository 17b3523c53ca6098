package pricing

import (
	"github.com/renoquote/backend/internal/model"
	"github.com/shopspring/decimal"
)

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(code, base, perUnit string, unit model.RateUnit) *model.RateLine {
	return &model.RateLine{
		Code:         code,
		Name:         code + " line",
		BasePrice:    dec(base),
		PricePerUnit: dec(perUnit),
		Unit:         unit,
		Active:       true,
	}
}

func testCatalog() model.RateCatalog {
	lines := []*model.RateLine{
		rate(CodePowderRoomBase, "1200", "0", model.RateUnitUnit),
		rate(CodeTubShowerBase, "2400", "0", model.RateUnitUnit),
		rate(CodeWalkInRecess, "3100", "0", model.RateUnitUnit),
		rate(CodeFloorTile, "150", "18.50", model.RateUnitSqft),
		rate(CodeShowerFloor, "200", "32", model.RateUnitSqft),
		rate(CodeWetWall, "250", "24", model.RateUnitSqft),
		rate(CodeOtherWallTile, "0", "16", model.RateUnitSqft),
		rate(CodeAccentFeature, "100", "45", model.RateUnitSqft),
		rate(CodeVanity, "450", "0", model.RateUnitItem),
		rate(CodeElectrical, "0", "125", model.RateUnitPoint),
		rate(CodeAsbestosTesting, "650", "0", model.RateUnitUnit),
		rate(CodeHeatedFloors, "900", "0", model.RateUnitUnit),
		rate(CodeHeatedTowelRack, "380", "0", model.RateUnitItem),
		rate(CodeBidetAddon, "300", "0", model.RateUnitItem),
		rate(CodeSmartMirror, "520", "0", model.RateUnitItem),
		rate(CodePremiumExhaustFan, "410", "0", model.RateUnitItem),
		rate(CodeBuiltInNiche, "350", "0", model.RateUnitItem),
		rate(CodeShowerBench, "600", "0", model.RateUnitItem),
		rate(CodeSafetyGrabBars, "180", "0", model.RateUnitItem),
	}
	c := make(model.RateCatalog, len(lines))
	for _, l := range lines {
		c[l.Code] = l
	}
	return c
}

func testMultipliers() model.ProjectMultipliers {
	return model.ProjectMultipliers{
		ContingencyRate:   dec("0.10"),
		PMFeeRate:         dec("0.08"),
		CondoUpliftRate:   dec("0.12"),
		OldHomeUpliftRate: dec("0.15"),
	}
}

func walkInCondoForm() *model.QuoteFormData {
	return &model.QuoteFormData{
		BathroomType:    model.BathroomWalkIn,
		BuildingType:    model.BuildingCondo,
		YearBuilt:       model.YearBuiltPre1980,
		FloorSqft:       decPtr("40"),
		ShowerFloorSqft: decPtr("12"),
		WetWallSqft:     decPtr("60"),
		Upgrades: model.Upgrades{
			HeatedFloors:      boolPtr(true),
			HeatedTowelRack:   boolPtr(false),
			BidetAddon:        boolPtr(false),
			SmartMirror:       boolPtr(false),
			PremiumExhaustFan: boolPtr(false),
			BuiltInNiche:      boolPtr(false),
			ShowerBench:       boolPtr(false),
			SafetyGrabBars:    boolPtr(false),
		},
	}
}
