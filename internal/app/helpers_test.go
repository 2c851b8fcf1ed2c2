package app

import (
	"net/http/httptest"
	"strings"
	"time"

	"github.com/guttosm/smartpack-service/config"
)

const mugBody = `{"product": {"width": 10, "height": 5, "depth": 3, "weight": 0.5, "fragility": "LOW", "name": "Mug"}, "packaging_type": "Box", "category": "Plastic"}`

func baseConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{
			QuoteSize:        100,
			QuoteTTL:         time.Minute,
			DeletedReportTTL: time.Minute,
		},
		Log: config.LogConfig{Level: "error"},
	}
}

func serve(app *App, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}
