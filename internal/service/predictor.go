package service

import (
	"math"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

// featureCount is the width of the model input: bias, width, height, depth, weight, fragility.
const featureCount = 6

// modelWeights holds the fixed linear coefficients of the dimension model.
// Rows produce box width, box height, box depth and a continuous thickness score.
var modelWeights = [4][featureCount]float64{
	{3.0, 1.0, 0.0, 0.0, 0.24, 4.0},
	{3.0, 0.0, 1.0, 0.0, 0.24, 4.0},
	{3.0, 0.0, 0.0, 1.0, 0.24, 4.0},
	{1.0, 0.0, 0.0, 0.0, 0.16, 0.6},
}

// Predictor maps a product to a raw packaging prediction.
type Predictor interface {
	Predict(product model.Product, packagingType model.PackagingType) model.Prediction
}

// LinearPredictor implements Predictor with a static linear transform.
// It holds no state and is safe for concurrent use.
type LinearPredictor struct{}

// NewLinearPredictor creates a new LinearPredictor.
func NewLinearPredictor() *LinearPredictor {
	return &LinearPredictor{}
}

// Predict computes box dimensions, board grade, fit and protection for the product.
// The packaging type does not influence the model output.
func (p *LinearPredictor) Predict(product model.Product, _ model.PackagingType) model.Prediction {
	product = product.Sanitized()
	fragility := product.Fragility.Ordinal()

	input := [featureCount]float64{1.0, product.Width, product.Height, product.Depth, product.Weight, fragility}

	var out [len(modelWeights)]float64
	for i, row := range modelWeights {
		out[i] = dot(row, input)
	}

	dims := model.BoxDimensions{
		Width:  model.Round1(out[0]),
		Height: model.Round1(out[1]),
		Depth:  model.Round1(out[2]),
	}

	level := thicknessLevel(out[3])
	utilization := predictedUtilization(product.Volume(), dims.Volume())

	return model.Prediction{
		Dimensions:      dims,
		Thickness:       model.ThicknessForLevel(level),
		Utilization:     utilization,
		VoidPercent:     model.Round1(100 - utilization),
		SafetyRating:    safetyRating(product.Fragility),
		RecommendedFill: recommendedFill(fragility),
	}
}

// dot returns the dot product of a coefficient row and the feature vector.
func dot(row, input [featureCount]float64) float64 {
	var sum float64
	for i, w := range row {
		sum += w * input[i]
	}
	return sum
}

// predictedUtilization returns productVolume/boxVolume as a one-decimal percentage.
// An empty or degenerate box yields 0.
func predictedUtilization(productVolume, boxVolume float64) float64 {
	if boxVolume == 0 {
		return 0
	}
	return model.Finite(math.Round(productVolume/boxVolume*1000) / 10)
}

// thicknessLevel rounds the thickness score and clamps it to the catalog range.
// Clamping happens before the integer conversion so huge scores stay at the top grade.
func thicknessLevel(score float64) int {
	if math.IsNaN(score) {
		return model.MinThicknessLevel
	}
	rounded := math.Round(score)
	rounded = math.Max(float64(model.MinThicknessLevel), math.Min(float64(model.MaxThicknessLevel), rounded))
	return int(rounded)
}

func safetyRating(f model.Fragility) string {
	switch f {
	case model.FragilityExtreme:
		return model.SafetyMaximum
	case model.FragilityHigh:
		return model.SafetyEnhanced
	default:
		return model.SafetyStandard
	}
}

func recommendedFill(fragilityOrdinal float64) string {
	switch {
	case fragilityOrdinal >= 2:
		return model.FillBioFoam
	case fragilityOrdinal >= 1:
		return model.FillCorrugated
	default:
		return model.FillNone
	}
}
