//go:build contract

package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/middleware"
)

// object asserts that v is a JSON object holding every key and returns it.
func object(t *testing.T, v interface{}, keys ...string) map[string]interface{} {
	t.Helper()
	obj, ok := v.(map[string]interface{})
	require.True(t, ok, "want a JSON object, got %T", v)
	for _, k := range keys {
		assert.Contains(t, obj, k)
	}
	return obj
}

// The envelopes and field names below are what the frontend reads.
func TestContract_SuccessPayloads(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		check  func(t *testing.T, data map[string]interface{})
	}{
		{
			name: "predict", method: http.MethodPost, path: "/api/predict", body: mugBody,
			check: func(t *testing.T, data map[string]interface{}) {
				object(t, data, "dimensions", "thickness", "utilization", "void_percent", "safety_rating", "recommended_fill")
				object(t, data["dimensions"], "width", "height", "depth")
				object(t, data["thickness"], "level", "type")
			},
		},
		{
			name: "recommend", method: http.MethodPost, path: "/api/recommend", body: mugBody,
			check: func(t *testing.T, data map[string]interface{}) {
				object(t, data, "box", "utilization", "void_percent", "void_space", "recommended_fill", "thickness", "safety_rating", "utilization_target")
			},
		},
		{
			name: "estimate cost", method: http.MethodPost, path: "/api/estimate-cost",
			body: `{"box": {"width": 13.1, "height": 8.1, "depth": 6.1}, "packaging_type": "Box", "thickness_level": 1, "void_space": 497.3}`,
			check: func(t *testing.T, data map[string]interface{}) {
				object(t, data, "material_cost", "filler_cost", "total", "board_weight_g", "filler_weight_g")
			},
		},
		{
			name: "quote", method: http.MethodPost, path: "/api/quote", body: mugBody,
			check: func(t *testing.T, data map[string]interface{}) {
				object(t, data, "product", "packaging_type", "category", "recommendation", "cost", "space_message", "utilization_target")
				object(t, data["cost"], "ai_cost", "baseline_cost", "savings", "ai", "baseline", "baseline_box")
			},
		},
		{
			name: "catalog", method: http.MethodGet, path: "/api/catalog",
			check: func(t *testing.T, data map[string]interface{}) {
				object(t, data, "packaging_types", "product_categories", "fragilities", "thickness", "targets")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, tt.method, tt.path, tt.body)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

			var envelope map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
			object(t, envelope, "data", "request_id", "timestamp")
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), envelope["request_id"])

			tt.check(t, object(t, envelope["data"]))
		})
	}
}

func TestContract_Errors(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		status   int
		code     string
		message  string
		withAuth bool
	}{
		{name: "malformed json", method: http.MethodPost, path: "/api/predict", body: `invalid json`, status: http.StatusBadRequest, code: dto.ErrCodeInvalidRequest},
		{name: "cost without a box", method: http.MethodPost, path: "/api/estimate-cost", body: `{"packaging_type": "Box"}`, status: http.StatusBadRequest, code: dto.ErrCodeInvalidRequest},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", status: http.StatusNotFound},
		{name: "reports need a sign in", method: http.MethodGet, path: "/api/reports", status: http.StatusUnauthorized, code: dto.ErrCodeUnauthorized, message: "Sign in to access your reports", withAuth: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var router http.Handler = setupRouter()
			if tt.withAuth {
				router = newReportFixture(t).router
			}

			w := doJSON(router, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
			if tt.code == "" {
				return
			}

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error)
			assert.NotEmpty(t, resp.Message)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.RequestID)
			assert.NotZero(t, resp.Timestamp)
		})
	}
}

func TestContract_Headers(t *testing.T) {
	router := setupRouter()

	api := doJSON(router, http.MethodPost, "/api/quote", mugBody)
	for _, h := range []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"} {
		assert.NotEmpty(t, api.Header().Get(h), h)
	}

	health := doJSON(router, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, health.Header().Get(middleware.RequestIDHeader))
}
