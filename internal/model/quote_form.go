package model

import "github.com/shopspring/decimal"

// BathroomType is the kind of room being renovated.
type BathroomType string

const (
	BathroomPowderRoom BathroomType = "powder_room"
	BathroomTubShower  BathroomType = "tub_shower"
	BathroomWalkIn     BathroomType = "walk_in"
)

// HasShowerFloor reports whether the room has a shower floor priced
// separately from the main floor.
func (t BathroomType) HasShowerFloor() bool {
	return t == BathroomWalkIn || t == BathroomTubShower
}

// BuildingType is the kind of building the bathroom is in.
type BuildingType string

const (
	BuildingHouse     BuildingType = "house"
	BuildingTownhouse BuildingType = "townhouse"
	BuildingCondo     BuildingType = "condo"
)

// YearBuilt is the construction-era bucket of the building.
type YearBuilt string

const (
	YearBuiltPre1980    YearBuilt = "pre_1980"
	YearBuilt1980To2000 YearBuilt = "1980_to_2000"
	YearBuiltPost2000   YearBuilt = "post_2000"
)

// QuoteFormData is the customer's intake answers. Every optional answer is a
// pointer; nil means the question was not answered and the corresponding
// pricing rule is skipped. Measurements carry at most two decimal places,
// the precision quantities are stored at.
type QuoteFormData struct {
	BathroomType BathroomType `json:"bathroom_type" validate:"required,oneof=powder_room tub_shower walk_in"`
	BuildingType BuildingType `json:"building_type" validate:"required,oneof=house townhouse condo"`
	YearBuilt    YearBuilt    `json:"year_built" validate:"required,oneof=pre_1980 1980_to_2000 post_2000"`

	FloorSqft       *decimal.Decimal `json:"floor_sqft,omitempty" validate:"omitempty,gte=0,lte=10000,maxdp2"`
	ShowerFloorSqft *decimal.Decimal `json:"shower_floor_sqft,omitempty" validate:"omitempty,gte=0,lte=10000,maxdp2"`
	WetWallSqft     *decimal.Decimal `json:"wet_wall_sqft,omitempty" validate:"omitempty,gte=0,lte=10000,maxdp2"`

	TileOtherWalls     *bool            `json:"tile_other_walls,omitempty"`
	TileOtherWallsSqft *decimal.Decimal `json:"tile_other_walls_sqft,omitempty" validate:"omitempty,gte=0,lte=10000,maxdp2"`

	AddAccentFeature  *bool            `json:"add_accent_feature,omitempty"`
	AccentFeatureSqft *decimal.Decimal `json:"accent_feature_sqft,omitempty" validate:"omitempty,gte=0,lte=10000,maxdp2"`

	VanityWidthIn   *int `json:"vanity_width_in,omitempty" validate:"omitempty,gte=0,lte=240"`
	ElectricalItems *int `json:"electrical_items,omitempty" validate:"omitempty,gte=0,lte=100"`

	Upgrades Upgrades `json:"upgrades"`
}

// Upgrades holds the optional add-on selections.
type Upgrades struct {
	HeatedFloors      *bool `json:"heated_floors,omitempty"`
	HeatedTowelRack   *bool `json:"heated_towel_rack,omitempty"`
	BidetAddon        *bool `json:"bidet_addon,omitempty"`
	SmartMirror       *bool `json:"smart_mirror,omitempty"`
	PremiumExhaustFan *bool `json:"premium_exhaust_fan,omitempty"`
	BuiltInNiche      *bool `json:"built_in_niche,omitempty"`
	ShowerBench       *bool `json:"shower_bench,omitempty"`
	SafetyGrabBars    *bool `json:"safety_grab_bars,omitempty"`
}

// IsSet reports whether an optional flag was answered with true.
func IsSet(b *bool) bool {
	return b != nil && *b
}

// Positive returns the value of d and true when d is present and greater
// than zero.
func Positive(d *decimal.Decimal) (decimal.Decimal, bool) {
	if d == nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return *d, true
}

// PositiveInt is Positive for integer answers.
func PositiveInt(n *int) (int, bool) {
	if n == nil || *n <= 0 {
		return 0, false
	}
	return *n, true
}
