// Package model defines the core domain entities for the packaging service.
package model

import (
	"math"
	"strconv"
	"strings"
)

// Fragility is the ordinal fragility class of a product.
type Fragility string

// Fragility classes, in ascending order of care required.
const (
	FragilityLow     Fragility = "LOW"
	FragilityMedium  Fragility = "MEDIUM"
	FragilityHigh    Fragility = "HIGH"
	FragilityExtreme Fragility = "EXTREME"
)

// Fragilities lists every known fragility class in ordinal order.
var Fragilities = []Fragility{FragilityLow, FragilityMedium, FragilityHigh, FragilityExtreme}

// Ordinal returns the model feature value for the fragility class.
// Unknown classes map to 0, the same as LOW.
func (f Fragility) Ordinal() float64 {
	switch f {
	case FragilityMedium:
		return 1
	case FragilityHigh:
		return 2
	case FragilityExtreme:
		return 3
	default:
		return 0
	}
}

// Normalize returns the fragility class, or LOW when the value is not recognized.
func (f Fragility) Normalize() Fragility {
	switch f {
	case FragilityLow, FragilityMedium, FragilityHigh, FragilityExtreme:
		return f
	default:
		return FragilityLow
	}
}

// PackagingType selects the clearance policy and material-profile family.
type PackagingType string

// Known packaging types. Any other value falls into the corrugated profile branch.
const (
	PackagingBox      PackagingType = "Box"
	PackagingMailer   PackagingType = "Mailer"
	PackagingEnvelope PackagingType = "Envelope"
	PackagingTube     PackagingType = "Tube"
)

// PackagingTypes lists the supported packaging types.
var PackagingTypes = []PackagingType{PackagingBox, PackagingMailer, PackagingEnvelope, PackagingTube}

// IsDuplex reports whether the packaging type is built from duplex board.
func (p PackagingType) IsDuplex() bool {
	return p == PackagingMailer || p == PackagingEnvelope
}

// PackagingTarget is the space utilization goal and nominal clearance of a packaging type.
type PackagingTarget struct {
	Utilization float64 `json:"utilization" example:"0.87"`
	Clearance   float64 `json:"clearance" example:"1.8"`
}

var packagingTargets = map[PackagingType]PackagingTarget{
	PackagingBox:      {Utilization: 0.87, Clearance: 1.8},
	PackagingMailer:   {Utilization: 0.82, Clearance: 1.2},
	PackagingEnvelope: {Utilization: 0.78, Clearance: 0.8},
	PackagingTube:     {Utilization: 0.8, Clearance: 1.5},
}

// Target returns the utilization target for the packaging type.
func (p PackagingType) Target() (PackagingTarget, bool) {
	t, ok := packagingTargets[p]
	return t, ok
}

// Product categories. Paper products get a tighter minimum clearance.
const (
	CategoryPlastic   = "Plastic"
	CategoryGlass     = "Glass"
	CategoryMetal     = "Metal"
	CategoryPaper     = "Paper"
	CategoryWood      = "Wood"
	CategoryComposite = "Composite"
)

// ProductCategories lists the known product categories.
var ProductCategories = []string{
	CategoryPlastic, CategoryGlass, CategoryMetal, CategoryPaper, CategoryWood, CategoryComposite,
}

// Product describes the item to be packed. Lengths are centimeters, weight is kilograms.
//
// @Description Product to be packed
type Product struct {
	Width     float64   `json:"width" example:"10"`
	Height    float64   `json:"height" example:"5"`
	Depth     float64   `json:"depth" example:"3"`
	Weight    float64   `json:"weight" example:"0.5"`
	Fragility Fragility `json:"fragility" example:"LOW"`
	Name      string    `json:"name,omitempty" example:"Ceramic mug"`
	Brand     string    `json:"brand,omitempty" example:"Acme"`
} // @name Product

// Sanitized returns a copy with every non-finite numeric field replaced by 0.
func (p Product) Sanitized() Product {
	p.Width = Finite(p.Width)
	p.Height = Finite(p.Height)
	p.Depth = Finite(p.Depth)
	p.Weight = Finite(p.Weight)
	return p
}

// Volume returns width × height × depth.
func (p Product) Volume() float64 {
	return p.Width * p.Height * p.Depth
}

// BoxDimensions are the outer extents of a box, rounded to one decimal.
//
// @Description Box dimensions in centimeters
type BoxDimensions struct {
	Width  float64 `json:"width" example:"13.1"`
	Height float64 `json:"height" example:"8.1"`
	Depth  float64 `json:"depth" example:"6.1"`
} // @name BoxDimensions

// Volume returns width × height × depth.
func (b BoxDimensions) Volume() float64 {
	return b.Width * b.Height * b.Depth
}

// SurfaceArea returns the total area of the six faces.
func (b BoxDimensions) SurfaceArea() float64 {
	w, h, d := Finite(b.Width), Finite(b.Height), Finite(b.Depth)
	return 2 * (w*h + w*d + h*d)
}

// ThicknessSpec is a corrugated board grade.
type ThicknessSpec struct {
	Level int    `json:"level" example:"1"`
	Type  string `json:"type" example:"Single Wall - E Flute"`
} // @name ThicknessSpec

// Board grades, lowest to highest. Index i holds level i+1.
var thicknessCatalog = [...]ThicknessSpec{
	{Level: 1, Type: "Single Wall - E Flute"},
	{Level: 2, Type: "Single Wall - B Flute"},
	{Level: 3, Type: "Single Wall - C Flute"},
	{Level: 4, Type: "Double Wall - BC Flute"},
	{Level: 5, Type: "Double Wall - EB Flute"},
	{Level: 6, Type: "Triple Wall - AAA"},
	{Level: 7, Type: "Heavy Duty Industrial"},
}

const (
	// MinThicknessLevel is the lowest board grade.
	MinThicknessLevel = 1
	// MaxThicknessLevel is the highest board grade.
	MaxThicknessLevel = len(thicknessCatalog)
)

// ThicknessCatalog returns a copy of the board grade catalog.
func ThicknessCatalog() []ThicknessSpec {
	out := make([]ThicknessSpec, len(thicknessCatalog))
	copy(out, thicknessCatalog[:])
	return out
}

// ThicknessForLevel returns the catalog entry for level, clamped to [1,7].
func ThicknessForLevel(level int) ThicknessSpec {
	return thicknessCatalog[ClampLevel(level)-1]
}

// ClampLevel clamps a thickness level to the catalog range.
func ClampLevel(level int) int {
	if level < MinThicknessLevel {
		return MinThicknessLevel
	}
	if level > MaxThicknessLevel {
		return MaxThicknessLevel
	}
	return level
}

// Safety ratings.
const (
	SafetyStandard = "Standard"
	SafetyEnhanced = "Enhanced"
	SafetyMaximum  = "Maximum"
)

// Fill recommendations.
const (
	FillNone       = "No fill needed"
	FillCorrugated = "Corrugated wraps"
	FillBioFoam    = "Bio-foam inserts"
)

// Prediction is the raw output of the dimension model.
//
// @Description Model prediction for a product
type Prediction struct {
	Dimensions      BoxDimensions `json:"dimensions"`
	Thickness       ThicknessSpec `json:"thickness"`
	Utilization     float64       `json:"utilization" example:"23.2"`
	VoidPercent     float64       `json:"void_percent" example:"76.8"`
	SafetyRating    string        `json:"safety_rating" example:"Standard"`
	RecommendedFill string        `json:"recommended_fill" example:"No fill needed"`
} // @name Prediction

// Recommendation is a prediction adjusted for minimum clearance.
//
// @Description Box recommendation with clearance applied
type Recommendation struct {
	Box             BoxDimensions `json:"box"`
	Utilization     float64       `json:"utilization" example:"23.2"`
	VoidPercent     float64       `json:"void_percent" example:"76.8"`
	VoidSpace       float64       `json:"void_space" example:"497.3"`
	RecommendedFill string        `json:"recommended_fill" example:"No fill needed"`
	Thickness       ThicknessSpec `json:"thickness"`
	SafetyRating    string        `json:"safety_rating" example:"Standard"`
} // @name Recommendation

// MaterialProfile is the price and paper weight of a board family.
type MaterialProfile struct {
	Name string  `json:"name" example:"corrugated_thin"`
	Rate float64 `json:"rate" example:"17.5"`
	GSM  float64 `json:"gsm" example:"150"`
} // @name MaterialProfile

// CostBreakdown is the material and filler cost of one box.
//
// @Description Material and filler cost estimate
type CostBreakdown struct {
	MaterialCost  float64 `json:"material_cost" example:"0.1"`
	FillerCost    float64 `json:"filler_cost" example:"0.1"`
	Total         float64 `json:"total" example:"0.2"`
	BoardWeightG  float64 `json:"board_weight_g" example:"7.6"`
	FillerWeightG float64 `json:"filler_weight_g" example:"1"`
} // @name CostBreakdown

// CostComparison compares the recommended box with a naive oversized baseline.
//
// @Description Recommended vs baseline cost
type CostComparison struct {
	AICost       float64       `json:"ai_cost" example:"0.2"`
	BaselineCost float64       `json:"baseline_cost" example:"0.1"`
	Savings      float64       `json:"savings" example:"0"`
	AI           CostBreakdown `json:"ai"`
	Baseline     CostBreakdown `json:"baseline"`
	BaselineBox  BoxDimensions `json:"baseline_box"`
} // @name CostComparison

// Quote is the full result shown to a user for one product.
//
// @Description Recommendation, cost comparison and fit message
type Quote struct {
	Product           Product          `json:"product"`
	PackagingType     PackagingType    `json:"packaging_type" example:"Box"`
	Category          string           `json:"category" example:"Plastic"`
	Recommendation    Recommendation   `json:"recommendation"`
	Cost              CostComparison   `json:"cost"`
	SpaceMessage      string           `json:"space_message" example:"Tighten fit to reduce void"`
	UtilizationTarget *PackagingTarget `json:"utilization_target,omitempty"`
} // @name Quote

// QuoteInput is everything a quote depends on.
type QuoteInput struct {
	Product       Product
	PackagingType PackagingType
	Category      string
}

// CacheKey renders the input as a string key. Name and brand are included because they are echoed back.
func (in QuoteInput) CacheKey() string {
	p := in.Product
	var b strings.Builder
	for _, v := range []float64{p.Width, p.Height, p.Depth, p.Weight} {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('|')
	}
	b.WriteString(string(p.Fragility))
	b.WriteByte('|')
	b.WriteString(string(in.PackagingType))
	b.WriteByte('|')
	b.WriteString(in.Category)
	b.WriteByte('|')
	b.WriteString(p.Name)
	b.WriteByte('|')
	b.WriteString(p.Brand)
	return b.String()
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return Finite(math.Round(v*10) / 10)
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
