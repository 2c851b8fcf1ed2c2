// Package circuitbreaker guards MongoDB calls so a failing store is skipped quickly
// instead of stalling every request.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/smartpack-service/internal/logger"
	"github.com/guttosm/smartpack-service/internal/metrics"
)

// ErrCircuitOpen is returned instead of calling the store while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the position of the breaker.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota
	// StateOpen rejects calls until the cool-down has passed.
	StateOpen
	// StateHalfOpen lets probe calls through to find out whether the store is back.
	StateHalfOpen
)

var stateNames = map[State]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Config tunes a breaker. Non-positive values and an empty name take the defaults.
type Config struct {
	// FailureThreshold is how many consecutive failures open the circuit.
	FailureThreshold int
	// SuccessThreshold is how many consecutive probe successes close it again.
	SuccessThreshold int
	// Timeout is the cool-down spent open before probing.
	Timeout time.Duration
	// Name labels log lines and the circuit_breaker_state gauge.
	Name string
}

// DefaultConfig returns five failures to open, two successes to close and a 30s cool-down.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = def.FailureThreshold
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = def.SuccessThreshold
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Name == "" {
		c.Name = def.Name
	}
	return c
}

// CircuitBreaker counts consecutive store failures and short-circuits calls
// once they pile up. It is safe for concurrent use.
type CircuitBreaker struct {
	config Config
	clock  func() time.Time

	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
}

// New builds a closed breaker and publishes its state gauge.
func New(config Config) *CircuitBreaker {
	cb := &CircuitBreaker{
		config: config.withDefaults(),
		clock:  time.Now,
		state:  StateClosed,
	}
	metrics.SetCircuitBreakerState(cb.config.Name, int(StateClosed))
	return cb
}

// Execute calls fn unless the circuit is open. A context that is already done
// is returned without calling fn, and an error caused by the caller's own
// cancellation is not held against the store.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !cb.admit(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	if err != nil && errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return err
	}

	cb.record(ctx, err)
	return err
}

// admit reports whether a call may proceed, moving an open breaker whose
// cool-down has elapsed to half-open.
func (cb *CircuitBreaker) admit(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return true
	}
	if cb.clock().Sub(cb.lastFailure) < cb.config.Timeout {
		return false
	}
	cb.moveTo(ctx, StateHalfOpen, nil)
	return true
}

func (cb *CircuitBreaker) record(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.failures = 0
		if cb.state != StateHalfOpen {
			return
		}
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.moveTo(ctx, StateClosed, nil)
		}
		return
	}

	cb.failures++
	cb.lastFailure = cb.clock()
	switch {
	case cb.state == StateHalfOpen:
		cb.failures = cb.config.FailureThreshold
		cb.moveTo(ctx, StateOpen, err)
	case cb.state == StateClosed && cb.failures >= cb.config.FailureThreshold:
		cb.moveTo(ctx, StateOpen, err)
	}
}

// moveTo changes state, resets the probe count and logs the transition with
// the logger of the request that caused it. mu must be held.
func (cb *CircuitBreaker) moveTo(ctx context.Context, to State, cause error) {
	from := cb.state
	cb.state = to
	cb.successes = 0
	metrics.SetCircuitBreakerState(cb.config.Name, int(to))

	level := zerolog.InfoLevel
	if to == StateOpen {
		level = zerolog.WarnLevel
	}
	logger.FromContext(ctx).WithLevel(level).
		Err(cause).
		Str("circuit_breaker", cb.config.Name).
		Str("from", from.String()).
		Str("to", to.String()).
		Int("failure_count", cb.failures).
		Msg("Circuit breaker state changed")
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen reports whether calls are currently being rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time view of a breaker, served by the health endpoint.
type Stats struct {
	State        string
	FailureCount int
	SuccessCount int
	LastFailure  time.Time
	IsHealthy    bool
}

// GetStats returns the current counters.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state == StateClosed,
	}
}
