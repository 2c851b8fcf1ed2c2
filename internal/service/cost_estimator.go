package service

import (
	"math"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

const (
	// scrapFactor accounts for board lost to flaps, glue lines and die cutting.
	scrapFactor = 1.08
	// fillerDensity is grams of filler per cubic unit of void.
	fillerDensity = 0.002
	// fillerRatePerKg is the price of filler per kilogram.
	fillerRatePerKg = 80.0
	// baselineScale is the per-axis oversize of the naive baseline box.
	baselineScale = 1.2
)

// materialBand is the min/max price and paper weight of a board family.
type materialBand struct {
	name             string
	rateMin, rateMax float64
	gsmMin, gsmMax   float64
}

func (b materialBand) profile() model.MaterialProfile {
	return model.MaterialProfile{
		Name: b.name,
		Rate: model.Round1((b.rateMin + b.rateMax) / 2),
		GSM:  model.Round1((b.gsmMin + b.gsmMax) / 2),
	}
}

var (
	corrugatedThin  = materialBand{name: "corrugated_thin", rateMin: 15, rateMax: 20, gsmMin: 150, gsmMax: 150}
	duplexStandard  = materialBand{name: "duplex_standard", rateMin: 40, rateMax: 50, gsmMin: 200, gsmMax: 330}
	duplexThick     = materialBand{name: "duplex_thick", rateMin: 50, rateMax: 80, gsmMin: 400, gsmMax: 450}
	kraftCorrugated = materialBand{name: "kraft_corrugated", rateMin: 20, rateMax: 35, gsmMin: 100, gsmMax: 200}
)

// CostEstimator prices a box and compares it with the baseline packaging.
type CostEstimator interface {
	EstimateCost(box model.BoxDimensions, packagingType model.PackagingType, thicknessLevel int, voidSpace float64) model.CostBreakdown
	Compare(product model.Product, packagingType model.PackagingType, rec model.Recommendation) model.CostComparison
}

// CostEstimatorService implements CostEstimator with the static material bands.
type CostEstimatorService struct{}

// NewCostEstimatorService creates a CostEstimatorService.
func NewCostEstimatorService() *CostEstimatorService {
	return &CostEstimatorService{}
}

// MaterialProfileFor selects the board family for a packaging type and thickness level.
// A level of 0 or below is treated as 1.
func MaterialProfileFor(packagingType model.PackagingType, level int) model.MaterialProfile {
	if level <= 0 {
		level = 1
	}

	if packagingType.IsDuplex() {
		if level >= 5 {
			return duplexThick.profile()
		}
		return duplexStandard.profile()
	}

	switch {
	case level <= 2:
		return corrugatedThin.profile()
	case level <= 4:
		return kraftCorrugated.profile()
	case level == 5:
		return duplexStandard.profile()
	default:
		return duplexThick.profile()
	}
}

// EstimateCost returns the board and filler cost of one box. Negative void is treated as empty.
func (s *CostEstimatorService) EstimateCost(box model.BoxDimensions, packagingType model.PackagingType, thicknessLevel int, voidSpace float64) model.CostBreakdown {
	profile := MaterialProfileFor(packagingType, thicknessLevel)

	boardWeight := model.Round1(box.SurfaceArea() / 10000 * profile.GSM * scrapFactor)
	materialCost := model.Round1(boardWeight / 1000 * profile.Rate)

	fillerWeight := model.Round1(math.Max(0, model.Finite(voidSpace)) * fillerDensity)
	fillerCost := model.Round1(fillerWeight / 1000 * fillerRatePerKg)

	return model.CostBreakdown{
		MaterialCost:  materialCost,
		FillerCost:    fillerCost,
		Total:         model.Round1(materialCost + fillerCost),
		BoardWeightG:  boardWeight,
		FillerWeightG: fillerWeight,
	}
}

// Compare prices the recommendation against a box 20% larger than the product on every axis,
// one board grade heavier. Savings never go below zero.
func (s *CostEstimatorService) Compare(product model.Product, packagingType model.PackagingType, rec model.Recommendation) model.CostComparison {
	product = product.Sanitized()

	level := rec.Thickness.Level
	if level <= 0 {
		level = 1
	}

	ai := s.EstimateCost(rec.Box, packagingType, level, rec.VoidSpace)

	baselineBox := model.BoxDimensions{
		Width:  product.Width * baselineScale,
		Height: product.Height * baselineScale,
		Depth:  product.Depth * baselineScale,
	}
	baselineVoid := baselineBox.Volume() - product.Volume()
	baseline := s.EstimateCost(baselineBox, packagingType, min(model.MaxThicknessLevel, level+1), baselineVoid)

	return model.CostComparison{
		AICost:       ai.Total,
		BaselineCost: baseline.Total,
		Savings:      model.Round1(math.Max(0, baseline.Total-ai.Total)),
		AI:           ai,
		Baseline:     baseline,
		BaselineBox:  baselineBox,
	}
}
