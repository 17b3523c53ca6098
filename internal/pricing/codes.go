// Package pricing turns intake answers into priced quote lines and totals.
// Everything in this package is a pure function of its inputs.
package pricing

import "github.com/renoquote/backend/internal/model"

// Rate catalog codes referenced by the mapping rules.
const (
	CodePowderRoomBase = "BASE-PWDR"
	CodeTubShowerBase  = "BASE-TUB"
	CodeWalkInRecess   = "RECESS"

	CodeFloorTile       = "FLR-TILE"
	CodeShowerFloor     = "SHWR-FLR"
	CodeWetWall         = "WET-WALL"
	CodeOtherWallTile   = "WALL-TILE"
	CodeAccentFeature   = "ACCENT"
	CodeVanity          = "VANITY"
	CodeElectrical      = "ELEC"
	CodeAsbestosTesting = "ASB-T"

	CodeHeatedFloors      = "HEATED-FLR"
	CodeHeatedTowelRack   = "TOWEL-RACK"
	CodeBidetAddon        = "BIDET"
	CodeSmartMirror       = "SMART-MIRROR"
	CodePremiumExhaustFan = "EXHAUST-FAN"
	CodeBuiltInNiche      = "NICHE"
	CodeShowerBench       = "SHWR-BENCH"
	CodeSafetyGrabBars    = "GRAB-BARS"
)

var bathroomBaseCodes = map[model.BathroomType]string{
	model.BathroomPowderRoom: CodePowderRoomBase,
	model.BathroomTubShower:  CodeTubShowerBase,
	model.BathroomWalkIn:     CodeWalkInRecess,
}

type upgradeRule struct {
	code string
	flag func(u *model.Upgrades) *bool
}

// upgradeRules is evaluated in order; the order is part of the output order.
var upgradeRules = []upgradeRule{
	{CodeHeatedFloors, func(u *model.Upgrades) *bool { return u.HeatedFloors }},
	{CodeHeatedTowelRack, func(u *model.Upgrades) *bool { return u.HeatedTowelRack }},
	{CodeBidetAddon, func(u *model.Upgrades) *bool { return u.BidetAddon }},
	{CodeSmartMirror, func(u *model.Upgrades) *bool { return u.SmartMirror }},
	{CodePremiumExhaustFan, func(u *model.Upgrades) *bool { return u.PremiumExhaustFan }},
	{CodeBuiltInNiche, func(u *model.Upgrades) *bool { return u.BuiltInNiche }},
	{CodeShowerBench, func(u *model.Upgrades) *bool { return u.ShowerBench }},
	{CodeSafetyGrabBars, func(u *model.Upgrades) *bool { return u.SafetyGrabBars }},
}

// UpgradeCodes returns the codes of the eight optional upgrades.
func UpgradeCodes() []string {
	codes := make([]string, len(upgradeRules))
	for i, r := range upgradeRules {
		codes[i] = r.code
	}
	return codes
}
