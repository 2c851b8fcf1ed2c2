package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/smartpack-service/internal/circuitbreaker"
)

const (
	defaultCheckTimeout = 2 * time.Second

	statusOK       = "ok"
	statusDegraded = "degraded"
)

// HealthChecker is a dependency the service needs to be ready, such as MongoDB.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// HealthCheck calls f.
func (f HealthCheckFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

// ReadinessReport is the /readyz body. Checks maps each dependency to "ok"
// or its error, and each circuit breaker (suffixed _circuit) to its state.
type ReadinessReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers     map[string]HealthChecker
	breakers     map[string]*circuitbreaker.CircuitBreaker
	checkTimeout time.Duration
}

// NewHealthHandler returns a handler with nothing registered.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:     make(map[string]HealthChecker),
		breakers:     make(map[string]*circuitbreaker.CircuitBreaker),
		checkTimeout: defaultCheckTimeout,
	}
}

// RegisterChecker adds a dependency pinged by the readiness probe. Nil is ignored.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	if checker != nil {
		h.checkers[name] = checker
	}
}

// RegisterCircuitBreaker adds a breaker whose open state makes the service unready. Nil is ignored.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.breakers[name] = cb
	}
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Pings the registered dependencies and reports the state of each circuit breaker. Any failure or open circuit answers 503.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	report := h.check(c.Request.Context())

	status := http.StatusOK
	if report.Status != statusOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// check pings every dependency concurrently, each bounded by checkTimeout.
func (h *HealthHandler) check(ctx context.Context) ReadinessReport {
	report := ReadinessReport{Status: statusOK, Checks: make(map[string]string)}

	ctx, cancel := context.WithTimeout(ctx, h.checkTimeout)
	defer cancel()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for name, checker := range h.checkers {
		g.Go(func() error {
			result := statusOK
			if err := checker.HealthCheck(gctx); err != nil {
				result = err.Error()
			}

			mu.Lock()
			report.Checks[name] = result
			if result != statusOK {
				report.Status = statusDegraded
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for name, cb := range h.breakers {
		stats := cb.GetStats()
		report.Checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			report.Status = statusDegraded
		}
	}

	if len(report.Checks) == 0 {
		report.Checks["service"] = statusOK
	}
	return report
}
