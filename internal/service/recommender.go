package service

import (
	"math"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

const (
	// DefaultMinClearance is the minimum gap kept on every axis between product and box.
	DefaultMinClearance = 1.2
	// PaperMinClearance is the minimum gap for paper products.
	PaperMinClearance = 0.5
)

// Recommender turns a model prediction into a box that respects minimum clearance.
type Recommender interface {
	Recommend(product model.Product, packagingType model.PackagingType, category string) model.Recommendation
}

// RecommenderService implements Recommender on top of a Predictor.
type RecommenderService struct {
	predictor Predictor
}

// NewRecommenderService creates a RecommenderService. A nil predictor uses the linear model.
func NewRecommenderService(predictor Predictor) *RecommenderService {
	if predictor == nil {
		predictor = NewLinearPredictor()
	}
	return &RecommenderService{predictor: predictor}
}

// MinClearance returns the minimum per-axis clearance for a product category.
func MinClearance(category string) float64 {
	if category == model.CategoryPaper {
		return PaperMinClearance
	}
	return DefaultMinClearance
}

// Recommend predicts a box and enlarges any axis that is tighter than product size plus clearance.
func (s *RecommenderService) Recommend(product model.Product, packagingType model.PackagingType, category string) model.Recommendation {
	product = product.Sanitized()
	prediction := s.predictor.Predict(product, packagingType)
	clearance := MinClearance(category)

	box := model.BoxDimensions{
		Width:  clearedAxis(prediction.Dimensions.Width, product.Width+clearance),
		Height: clearedAxis(prediction.Dimensions.Height, product.Height+clearance),
		Depth:  clearedAxis(prediction.Dimensions.Depth, product.Depth+clearance),
	}

	productVolume := product.Volume()
	boxVolume := box.Volume()

	var utilization float64
	if productVolume > 0 && boxVolume != 0 {
		utilization = model.Round1(productVolume / boxVolume * 100)
	}

	return model.Recommendation{
		Box:             box,
		Utilization:     utilization,
		VoidPercent:     model.Round1(100 - utilization),
		VoidSpace:       model.Round1(boxVolume - productVolume),
		RecommendedFill: prediction.RecommendedFill,
		Thickness:       prediction.Thickness,
		SafetyRating:    prediction.SafetyRating,
	}
}

// clearedAxis returns max(predicted, floor) rounded to one decimal.
// When rounding would drop below floor (product sizes with more than one decimal),
// the value is rounded up instead so the clearance always holds.
func clearedAxis(predicted, floor float64) float64 {
	v := model.Round1(math.Max(predicted, floor))
	if v < floor {
		v = math.Ceil(floor*10-1e-9) / 10
		if v < floor {
			v += 0.1
		}
	}
	return v
}
