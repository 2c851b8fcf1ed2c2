package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/mocks"
)

func TestNewQuoteService(t *testing.T) {
	tests := []struct {
		name     string
		options  []QuoteOption
		validate func(*testing.T, *QuoteService)
	}{
		{
			name: "defaults",
			validate: func(t *testing.T, s *QuoteService) {
				assert.NotNil(t, s.recommender)
				assert.NotNil(t, s.estimator)
				assert.Nil(t, s.cache)
				assert.Equal(t, DefaultOptimalFitThreshold, s.optimalFitThreshold)
			},
		},
		{
			name:    "enables cache",
			options: []QuoteOption{WithQuoteCache(100, time.Minute)},
			validate: func(t *testing.T, s *QuoteService) {
				assert.NotNil(t, s.cache)
			},
		},
		{
			name:    "zero capacity keeps cache disabled",
			options: []QuoteOption{WithQuoteCache(0, time.Minute)},
			validate: func(t *testing.T, s *QuoteService) {
				assert.Nil(t, s.cache)
			},
		},
		{
			name:    "custom threshold",
			options: []QuoteOption{WithOptimalFitThreshold(20)},
			validate: func(t *testing.T, s *QuoteService) {
				assert.Equal(t, float64(20), s.optimalFitThreshold)
			},
		},
		{
			name:    "non-positive threshold ignored",
			options: []QuoteOption{WithOptimalFitThreshold(-1)},
			validate: func(t *testing.T, s *QuoteService) {
				assert.Equal(t, DefaultOptimalFitThreshold, s.optimalFitThreshold)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewQuoteService(tt.options...)
			defer s.Stop()
			tt.validate(t, s)
		})
	}
}

func TestSpaceMessage(t *testing.T) {
	assert.Equal(t, "Optimal fit detected", SpaceMessage(85, 85))
	assert.Equal(t, "Optimal fit detected", SpaceMessage(99.9, 85))
	assert.Equal(t, "Tighten fit to reduce void", SpaceMessage(84.9, 85))
	assert.Equal(t, "Tighten fit to reduce void", SpaceMessage(0, 85))
}

func TestQuoteService_Quote(t *testing.T) {
	s := NewQuoteService()

	q := s.Quote(model.QuoteInput{
		Product:       model.Product{Width: 10, Height: 5, Depth: 3, Weight: 0.5, Fragility: model.FragilityLow, Name: "Mug"},
		PackagingType: model.PackagingBox,
		Category:      model.CategoryPlastic,
	})

	assert.Equal(t, model.BoxDimensions{Width: 13.1, Height: 8.1, Depth: 6.1}, q.Recommendation.Box)
	assert.Equal(t, 23.2, q.Recommendation.Utilization)
	assert.Equal(t, 497.3, q.Recommendation.VoidSpace)
	assert.Equal(t, 0.2, q.Cost.AICost)
	assert.Equal(t, 0.1, q.Cost.BaselineCost)
	assert.Equal(t, float64(0), q.Cost.Savings)
	assert.Equal(t, "Tighten fit to reduce void", q.SpaceMessage)
	assert.Equal(t, "Mug", q.Product.Name)
	if assert.NotNil(t, q.UtilizationTarget) {
		assert.Equal(t, 0.87, q.UtilizationTarget.Utilization)
	}
}

func TestQuoteService_OptimalFit(t *testing.T) {
	rec := new(mocks.MockRecommender)
	rec.On("Recommend", mock.Anything, model.PackagingMailer, model.CategoryPaper).Return(model.Recommendation{
		Box:         model.BoxDimensions{Width: 10.5, Height: 5.5, Depth: 3.5},
		Utilization: 90,
		VoidPercent: 10,
		Thickness:   model.ThicknessSpec{Level: 1},
	})

	s := NewQuoteService(WithRecommender(rec))
	q := s.Quote(model.QuoteInput{
		Product:       model.Product{Width: 10, Height: 5, Depth: 3},
		PackagingType: model.PackagingMailer,
		Category:      model.CategoryPaper,
	})

	assert.Equal(t, "Optimal fit detected", q.SpaceMessage)
	assert.Equal(t, 0.82, q.UtilizationTarget.Utilization)
	rec.AssertExpectations(t)
}

func TestQuoteService_UnknownPackagingHasNoTarget(t *testing.T) {
	s := NewQuoteService()

	q := s.Quote(model.QuoteInput{Product: model.Product{Width: 1, Height: 1, Depth: 1}, PackagingType: "Crate"})

	assert.Nil(t, q.UtilizationTarget)
	assert.Equal(t, model.PackagingType("Crate"), q.PackagingType)
}

func TestQuoteService_NormalizesFragility(t *testing.T) {
	s := NewQuoteService()

	q := s.Quote(model.QuoteInput{Product: model.Product{Width: 1, Height: 1, Depth: 1, Fragility: "shaky"}, PackagingType: model.PackagingBox})

	assert.Equal(t, model.FragilityLow, q.Product.Fragility)
}

func TestQuoteService_Cache(t *testing.T) {
	rec := new(mocks.MockRecommender)
	rec.On("Recommend", mock.Anything, model.PackagingBox, model.CategoryGlass).Return(model.Recommendation{
		Box:       model.BoxDimensions{Width: 13.1, Height: 8.1, Depth: 6.1},
		Thickness: model.ThicknessSpec{Level: 1},
	}).Once()

	s := NewQuoteService(WithRecommender(rec), WithQuoteCache(10, time.Minute))
	defer s.Stop()

	in := model.QuoteInput{
		Product:       model.Product{Width: 10, Height: 5, Depth: 3, Weight: 0.5},
		PackagingType: model.PackagingBox,
		Category:      model.CategoryGlass,
	}

	first := s.Quote(in)
	second := s.Quote(in)
	assert.Equal(t, first, second)
	rec.AssertNumberOfCalls(t, "Recommend", 1)

	s.InvalidateCache()
	rec.On("Recommend", mock.Anything, model.PackagingBox, model.CategoryGlass).Return(model.Recommendation{}).Once()
	s.Quote(in)
	rec.AssertNumberOfCalls(t, "Recommend", 2)
}

func TestQuoteService_CacheKeyVariesWithInput(t *testing.T) {
	a := model.QuoteInput{Product: model.Product{Width: 10, Height: 5, Depth: 3, Weight: 0.5, Fragility: model.FragilityLow}, PackagingType: model.PackagingBox, Category: "Glass"}
	b := a
	b.Category = "Paper"
	c := a
	c.Product.Weight = 0.25

	assert.Equal(t, a.CacheKey(), a.CacheKey())
	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}
