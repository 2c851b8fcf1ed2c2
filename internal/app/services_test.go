//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/service"
)

var mug = model.QuoteInput{
	Product:       model.Product{Width: 10, Height: 5, Depth: 3, Weight: 0.5, Fragility: model.FragilityLow, Name: "Mug"},
	PackagingType: model.PackagingBox,
	Category:      "Plastic",
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		validate func(*testing.T, *ServiceComponents)
	}{
		{
			name: "defaults without cache or identity",
			cfg:  config.Config{},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components.Predictor)
				assert.NotNil(t, components.Recommender)
				assert.NotNil(t, components.Estimator)
				assert.NotNil(t, components.Quotes)
				assert.Nil(t, components.Identity)
				assert.Nil(t, components.IdentityVerifier())
			},
		},
		{
			name: "quote cache enabled",
			cfg: config.Config{
				Cache: config.CacheConfig{QuoteSize: 100, QuoteTTL: time.Minute},
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				first := components.Quotes.Quote(mug)
				assert.Equal(t, first, components.Quotes.Quote(mug))
			},
		},
		{
			name: "identity enabled",
			cfg: config.Config{
				Auth: config.AuthConfig{IdentitySecret: "secret", IdentityTokenTTL: time.Hour},
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				require.NotNil(t, components.Identity)
				verifier := components.IdentityVerifier()
				require.NotNil(t, verifier)

				token, err := components.Identity.Issue(model.Identity{Email: "ana@example.com", Name: "Ana"}, time.Hour)
				require.NoError(t, err)
				identity, err := verifier.Verify(token)
				require.NoError(t, err)
				assert.Equal(t, "ana@example.com", identity.Email)
			},
		},
		{
			name: "optimal fit threshold lowered",
			cfg: config.Config{
				Report: config.ReportConfig{OptimalFitThreshold: 20},
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.Equal(t, service.MessageOptimalFit, components.Quotes.Quote(mug).SpaceMessage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeServices(tt.cfg)
			require.NotNil(t, components)
			t.Cleanup(components.Stop)

			tt.validate(t, components)
		})
	}
}

func TestServiceComponents_Quote(t *testing.T) {
	components := InitializeServices(config.Config{})
	defer components.Stop()

	q := components.Quotes.Quote(mug)

	assert.Equal(t, 13.1, q.Recommendation.Box.Width)
	assert.Equal(t, 8.1, q.Recommendation.Box.Height)
	assert.Equal(t, 6.1, q.Recommendation.Box.Depth)
	assert.Equal(t, service.MessageTightenFit, q.SpaceMessage)
	require.NotNil(t, q.UtilizationTarget)
	assert.Equal(t, 0.87, q.UtilizationTarget.Utilization)
}

func TestServiceComponents_NilSafe(t *testing.T) {
	var components *ServiceComponents

	assert.Nil(t, components.IdentityVerifier())
	assert.NotPanics(t, components.Stop)
}
