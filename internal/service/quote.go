package service

import (
	"time"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/metrics"
	"github.com/guttosm/smartpack-service/internal/service/cache"
)

const (
	// DefaultOptimalFitThreshold is the utilization percentage at which a fit counts as optimal.
	DefaultOptimalFitThreshold = 85.0

	// MessageOptimalFit is shown when utilization reaches the threshold.
	MessageOptimalFit = "Optimal fit detected"
	// MessageTightenFit is shown otherwise.
	MessageTightenFit = "Tighten fit to reduce void"

	quoteCacheName = "quote"
)

// QuoteProvider builds the full result shown for a product.
type QuoteProvider interface {
	Quote(in model.QuoteInput) model.Quote
	// InvalidateCache drops every cached quote.
	InvalidateCache()
}

// QuoteOption configures a QuoteService.
type QuoteOption func(*QuoteService)

// QuoteService combines recommendation, cost estimation and the fit message.
type QuoteService struct {
	recommender         Recommender
	estimator           CostEstimator
	cache               cache.Cache[model.Quote]
	optimalFitThreshold float64
}

// NewQuoteService creates a QuoteService backed by the linear model unless overridden.
func NewQuoteService(opts ...QuoteOption) *QuoteService {
	s := &QuoteService{
		optimalFitThreshold: DefaultOptimalFitThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recommender == nil {
		s.recommender = NewRecommenderService(NewLinearPredictor())
	}
	if s.estimator == nil {
		s.estimator = NewCostEstimatorService()
	}
	return s
}

// WithRecommender sets the recommendation engine.
func WithRecommender(r Recommender) QuoteOption {
	return func(s *QuoteService) {
		s.recommender = r
	}
}

// WithCostEstimator sets the cost estimator.
func WithCostEstimator(e CostEstimator) QuoteOption {
	return func(s *QuoteService) {
		s.estimator = e
	}
}

// WithQuoteCache enables quote caching with the specified capacity and TTL.
func WithQuoteCache(capacity int, ttl time.Duration) QuoteOption {
	return func(s *QuoteService) {
		if capacity > 0 && ttl > 0 {
			s.cache = NewShardedCache[model.Quote](quoteCacheName, capacity, ttl, 16)
		}
	}
}

// WithQuoteCacheInterface allows injecting a custom cache implementation.
func WithQuoteCacheInterface(c cache.Cache[model.Quote]) QuoteOption {
	return func(s *QuoteService) {
		s.cache = c
	}
}

// WithOptimalFitThreshold overrides the utilization percentage for the optimal-fit message.
func WithOptimalFitThreshold(threshold float64) QuoteOption {
	return func(s *QuoteService) {
		if threshold > 0 {
			s.optimalFitThreshold = threshold
		}
	}
}

// SpaceMessage returns the fit message for a utilization percentage.
func SpaceMessage(utilization, threshold float64) string {
	if utilization >= threshold {
		return MessageOptimalFit
	}
	return MessageTightenFit
}

// Quote recommends a box, prices it against the baseline and attaches the fit message.
func (s *QuoteService) Quote(in model.QuoteInput) model.Quote {
	start := time.Now()

	in.Product = in.Product.Sanitized()
	in.Product.Fragility = in.Product.Fragility.Normalize()

	key := in.CacheKey()
	if s.cache != nil {
		if q, ok := s.cache.Get(key); ok {
			metrics.RecordPrediction("quote", time.Since(start), "cached")
			return q
		}
	}

	rec := s.recommender.Recommend(in.Product, in.PackagingType, in.Category)
	cost := s.estimator.Compare(in.Product, in.PackagingType, rec)

	q := model.Quote{
		Product:        in.Product,
		PackagingType:  in.PackagingType,
		Category:       in.Category,
		Recommendation: rec,
		Cost:           cost,
		SpaceMessage:   SpaceMessage(rec.Utilization, s.optimalFitThreshold),
	}
	if target, ok := in.PackagingType.Target(); ok {
		q.UtilizationTarget = &target
	}

	if s.cache != nil {
		s.cache.Set(key, q)
	}

	metrics.RecordPrediction("quote", time.Since(start), "success")
	metrics.RecordSavings(cost.Savings)
	return q
}

// InvalidateCache drops every cached quote.
func (s *QuoteService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Stop releases the cache cleanup goroutines.
func (s *QuoteService) Stop() {
	if s.cache != nil {
		s.cache.Stop()
	}
}
