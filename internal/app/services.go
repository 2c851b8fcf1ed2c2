// Package app provides service initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/service"
)

// ServiceComponents holds the stateless packaging services and the identity verifier.
type ServiceComponents struct {
	Predictor   service.Predictor
	Recommender service.Recommender
	Estimator   service.CostEstimator
	Quotes      *service.QuoteService
	// Identity is nil when no identity secret is configured.
	Identity *service.IdentityService
}

// InitializeServices initializes business logic services.
func InitializeServices(cfg config.Config) *ServiceComponents {
	predictor := service.NewLinearPredictor()
	recommender := service.NewRecommenderService(predictor)
	estimator := service.NewCostEstimatorService()

	opts := []service.QuoteOption{
		service.WithRecommender(recommender),
		service.WithCostEstimator(estimator),
		service.WithOptimalFitThreshold(cfg.Report.OptimalFitThreshold),
	}
	if cfg.Cache.QuoteSize > 0 {
		opts = append(opts, service.WithQuoteCache(cfg.Cache.QuoteSize, cfg.Cache.QuoteTTL))
	}

	components := &ServiceComponents{
		Predictor:   predictor,
		Recommender: recommender,
		Estimator:   estimator,
		Quotes:      service.NewQuoteService(opts...),
	}

	if cfg.Auth.IdentityEnabled() {
		components.Identity = service.NewIdentityService(cfg.Auth.IdentitySecret, cfg.Auth.IdentityIssuer, cfg.Auth.IdentityTokenTTL)
	} else {
		log.Warn().Msg("IDENTITY_JWT_SECRET not set - report endpoints will reject every request")
	}

	return components
}

// IdentityVerifier returns the verifier for the router, or a nil interface when identity
// tokens are disabled.
func (s *ServiceComponents) IdentityVerifier() service.IdentityVerifier {
	if s == nil || s.Identity == nil {
		return nil
	}
	return s.Identity
}

// Stop releases the quote cache.
func (s *ServiceComponents) Stop() {
	if s != nil && s.Quotes != nil {
		s.Quotes.Stop()
	}
}
