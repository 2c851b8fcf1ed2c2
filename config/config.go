// Package config provides configuration management for the packaging service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Report   ReportConfig
	Log      LogConfig

	// rejected lists variables whose values could not be parsed.
	rejected []string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	RateLimit       int
	RateWindow      time.Duration
	CORSOrigins     []string
	SwaggerUser     string
	SwaggerPass     string
	RequestTimeout  time.Duration
	// ShutdownTimeout bounds how long in-flight requests may drain on stop.
	ShutdownTimeout time.Duration
}

// CacheConfig sizes the in-memory caches. A zero QuoteSize disables quote caching.
type CacheConfig struct {
	QuoteSize        int
	QuoteTTL         time.Duration
	DeletedReportTTL time.Duration
	// IdempotencyTTL is how long a response can be replayed for the same Idempotency-Key.
	IdempotencyTTL time.Duration
}

// AuthConfig holds API key and identity token configuration.
// Identity tokens are issued by an external provider; the service only verifies them.
type AuthConfig struct {
	Enabled          bool
	APIKeys          map[string]bool
	IdentitySecret   string
	IdentityIssuer   string
	IdentityTokenTTL time.Duration
}

// IdentityEnabled reports whether identity tokens can be verified.
func (a AuthConfig) IdentityEnabled() bool {
	return a.IdentitySecret != ""
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	// LogsMinLevel is the lowest level persisted to the logs collection.
	LogsMinLevel string
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration

	ReportsListLimit   int
	FeedbackBufferSize int
	FeedbackWorkers    int
}

// ReportConfig holds report rendering configuration.
type ReportConfig struct {
	CurrencySymbol      string
	OptimalFitThreshold float64
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// devCORSOrigins are always allowed so the local frontend works out of the box.
var devCORSOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Load reads the configuration from the process environment.
func Load() Config {
	return newLoader(os.LookupEnv).load()
}

// LoadFile reads the configuration from the process environment, falling
// back to the dotenv file at path for variables the environment leaves unset.
func LoadFile(path string) (Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("read env file %s: %w", path, err)
	}

	return newLoader(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}).load(), nil
}

// Validate reports unparsable variables and settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	for _, key := range c.rejected {
		errs = append(errs, fmt.Errorf("%s: invalid value", key))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}
	if c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("RATE_WINDOW must be positive"))
	}
	if c.Cache.QuoteSize < 0 {
		errs = append(errs, errors.New("QUOTE_CACHE_SIZE must not be negative"))
	}
	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, errors.New("AUTH_ENABLED requires API_KEYS"))
	}
	if t := c.Report.OptimalFitThreshold; t > 100 {
		errs = append(errs, fmt.Errorf("OPTIMAL_FIT_THRESHOLD %.1f exceeds 100", t))
	}
	return errors.Join(errs...)
}

type loader struct {
	lookup   func(string) (string, bool)
	rejected []string
}

func newLoader(lookup func(string) (string, bool)) *loader {
	return &loader{lookup: lookup}
}

func (l *loader) load() Config {
	cfg := Config{
		Server: ServerConfig{
			Port:            l.str("PORT", "8080"),
			RateLimit:       l.integer("RATE_LIMIT", 100),
			RateWindow:      l.duration("RATE_WINDOW", time.Minute),
			CORSOrigins:     withDevOrigins(l.list("CORS_ORIGINS")),
			SwaggerUser:     l.str("SWAGGER_USER", ""),
			SwaggerPass:     l.str("SWAGGER_PASS", ""),
			RequestTimeout:  l.duration("REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout: l.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			QuoteSize:        l.integer("QUOTE_CACHE_SIZE", 1000),
			QuoteTTL:         l.duration("QUOTE_CACHE_TTL", 5*time.Minute),
			DeletedReportTTL: l.duration("DELETED_REPORTS_TTL", 10*time.Minute),
			IdempotencyTTL:   l.duration("IDEMPOTENCY_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			Enabled:          l.flag("AUTH_ENABLED", false),
			APIKeys:          keySet(l.list("API_KEYS")),
			IdentitySecret:   l.str("IDENTITY_JWT_SECRET", ""),
			IdentityIssuer:   l.str("IDENTITY_ISSUER", ""),
			IdentityTokenTTL: l.duration("IDENTITY_TOKEN_TTL", time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            l.str("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   l.str("MONGODB_DATABASE", "smartpack"),
			LogsTTL:                        l.duration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			LogsMinLevel:                   strings.ToLower(l.str("MONGODB_LOGS_MIN_LEVEL", "info")),
			Enabled:                        l.flag("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: l.integer("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: l.integer("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          l.duration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
			ReportsListLimit:               l.integer("REPORTS_LIST_LIMIT", 50),
			FeedbackBufferSize:             l.integer("FEEDBACK_BUFFER_SIZE", 500),
			FeedbackWorkers:                l.integer("FEEDBACK_WORKERS", 2),
		},
		Report: ReportConfig{
			CurrencySymbol:      l.str("REPORT_CURRENCY_SYMBOL", "₹"),
			OptimalFitThreshold: l.positiveFloat("OPTIMAL_FIT_THRESHOLD", 85),
		},
		Log: LogConfig{
			Level:  strings.ToLower(l.str("LOG_LEVEL", "info")),
			Pretty: l.flag("LOG_PRETTY", false),
		},
	}
	cfg.rejected = l.rejected
	return cfg
}

// raw returns the trimmed value of key, treating blank as unset.
func (l *loader) raw(key string) (string, bool) {
	v, ok := l.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (l *loader) str(key, def string) string {
	if v, ok := l.raw(key); ok {
		return v
	}
	return def
}

// parse converts the value of key, keeping def and remembering the key when conversion fails.
func parse[T any](l *loader, key string, def T, conv func(string) (T, error)) T {
	v, ok := l.raw(key)
	if !ok {
		return def
	}
	out, err := conv(v)
	if err != nil {
		l.rejected = append(l.rejected, key)
		return def
	}
	return out
}

func (l *loader) integer(key string, def int) int {
	return parse(l, key, def, strconv.Atoi)
}

func (l *loader) flag(key string, def bool) bool {
	return parse(l, key, def, strconv.ParseBool)
}

func (l *loader) duration(key string, def time.Duration) time.Duration {
	return parse(l, key, def, time.ParseDuration)
}

func (l *loader) positiveFloat(key string, def float64) float64 {
	return parse(l, key, def, func(s string) (float64, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && f <= 0 {
			err = fmt.Errorf("%v is not positive", f)
		}
		return f, err
	})
}

// list splits a comma separated value, dropping blanks.
func (l *loader) list(key string) []string {
	v, ok := l.raw(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func keySet(keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func withDevOrigins(extra []string) []string {
	origins := make([]string, 0, len(devCORSOrigins)+len(extra))
	origins = append(origins, devCORSOrigins...)
	return append(origins, extra...)
}
