//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/smartpack-service/internal/metrics"
)

var errStore = errors.New("store unavailable")

func fail() error    { return errStore }
func succeed() error { return nil }

// breakerAt returns a breaker with a 30s cool-down whose clock the test moves.
func breakerAt(t *testing.T, failures, successes int) (*CircuitBreaker, func(time.Duration)) {
	t.Helper()
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	cb := New(Config{
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          30 * time.Second,
		Name:             t.Name(),
	})
	cb.clock = func() time.Time { return now }
	return cb, func(d time.Duration) { now = now.Add(d) }
}

func trip(t *testing.T, cb *CircuitBreaker) {
	t.Helper()
	for cb.State() != StateOpen {
		require.ErrorIs(t, cb.Execute(context.Background(), fail), errStore)
	}
}

func TestCircuitBreaker_Opens(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		calls     []func() error
		want      State
		failures  int
	}{
		{name: "single success", threshold: 2, calls: []func() error{succeed}, want: StateClosed},
		{name: "below threshold", threshold: 3, calls: []func() error{fail, fail}, want: StateClosed, failures: 2},
		{name: "at threshold", threshold: 2, calls: []func() error{fail, fail}, want: StateOpen, failures: 2},
		{name: "success resets the streak", threshold: 2, calls: []func() error{fail, succeed, fail}, want: StateClosed, failures: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, _ := breakerAt(t, tt.threshold, 1)
			for _, call := range tt.calls {
				_ = cb.Execute(context.Background(), call)
			}

			assert.Equal(t, tt.want, cb.State())
			assert.Equal(t, tt.failures, cb.GetStats().FailureCount)
		})
	}
}

func TestCircuitBreaker_OpenRejectsWithoutCalling(t *testing.T) {
	cb, advance := breakerAt(t, 1, 1)
	trip(t, cb)

	called := false
	err := cb.Execute(context.Background(), func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)

	advance(29 * time.Second)
	assert.ErrorIs(t, cb.Execute(context.Background(), succeed), ErrCircuitOpen, "still cooling down")
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("closes after enough probe successes", func(t *testing.T) {
		cb, advance := breakerAt(t, 2, 2)
		trip(t, cb)
		advance(30 * time.Second)

		require.NoError(t, cb.Execute(ctx, succeed))
		assert.Equal(t, StateHalfOpen, cb.State())
		assert.Equal(t, 1, cb.GetStats().SuccessCount)

		require.NoError(t, cb.Execute(ctx, succeed))
		assert.Equal(t, StateClosed, cb.State())
		assert.Zero(t, cb.GetStats().SuccessCount)
	})

	t.Run("a failed probe reopens at once", func(t *testing.T) {
		cb, advance := breakerAt(t, 3, 2)
		trip(t, cb)
		advance(time.Minute)

		assert.ErrorIs(t, cb.Execute(ctx, fail), errStore)
		assert.Equal(t, StateOpen, cb.State())
		assert.Equal(t, 3, cb.GetStats().FailureCount)
		assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrCircuitOpen, "cool-down restarts")
	})
}

func TestCircuitBreaker_Context(t *testing.T) {
	t.Run("done context never reaches fn", func(t *testing.T) {
		cb, _ := breakerAt(t, 1, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		err := cb.Execute(ctx, func() error {
			called = true
			return nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("cancellation during fn is not a failure", func(t *testing.T) {
		cb, _ := breakerAt(t, 1, 1)
		ctx, cancel := context.WithCancel(context.Background())

		err := cb.Execute(ctx, func() error {
			cancel()
			return fmt.Errorf("find reports: %w", context.Canceled)
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StateClosed, cb.State())
		assert.Zero(t, cb.GetStats().FailureCount)
	})

	t.Run("store-side cancellation still counts", func(t *testing.T) {
		cb, _ := breakerAt(t, 1, 1)

		err := cb.Execute(context.Background(), func() error {
			return context.Canceled
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, cb.IsOpen())
	})
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb, _ := breakerAt(t, 5, 2)

	stats := cb.GetStats()
	assert.Equal(t, Stats{State: "closed", IsHealthy: true}, stats)

	_ = cb.Execute(context.Background(), fail)

	stats = cb.GetStats()
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC), stats.LastFailure)
	assert.True(t, stats.IsHealthy)

	trip(t, cb)
	stats = cb.GetStats()
	assert.Equal(t, "open", stats.State)
	assert.False(t, stats.IsHealthy)
}

func TestCircuitBreaker_StateGauge(t *testing.T) {
	cb, advance := breakerAt(t, 1, 1)
	gauge := metrics.CircuitBreakerState.WithLabelValues(cb.Name())

	assert.Equal(t, float64(StateClosed), testutil.ToFloat64(gauge))

	trip(t, cb)
	assert.Equal(t, float64(StateOpen), testutil.ToFloat64(gauge))

	advance(31 * time.Second)
	require.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, float64(StateClosed), testutil.ToFloat64(gauge))
}

func TestNew_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   Config
	}{
		{
			name:   "zero config",
			config: Config{},
			want:   DefaultConfig(),
		},
		{
			name:   "negative values",
			config: Config{FailureThreshold: -1, SuccessThreshold: -3, Timeout: -time.Second, Name: "mongodb-reports"},
			want:   Config{FailureThreshold: 5, SuccessThreshold: 2, Timeout: 30 * time.Second, Name: "mongodb-reports"},
		},
		{
			name:   "explicit values kept",
			config: Config{FailureThreshold: 3, SuccessThreshold: 1, Timeout: time.Second, Name: "mongodb-logs"},
			want:   Config{FailureThreshold: 3, SuccessThreshold: 1, Timeout: time.Second, Name: "mongodb-logs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New(tt.config)
			assert.Equal(t, tt.want, cb.config)
			assert.Equal(t, tt.want.Name, cb.Name())
		})
	}
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{
		StateClosed:   "closed",
		StateOpen:     "open",
		StateHalfOpen: "half-open",
		State(42):     "unknown",
	} {
		assert.Equal(t, want, state.String())
	}
}
