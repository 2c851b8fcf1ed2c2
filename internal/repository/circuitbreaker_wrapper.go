package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/smartpack-service/internal/circuitbreaker"
	"github.com/guttosm/smartpack-service/internal/domain/model"
)

// call runs op through cb. ErrNotFound is an answer from a healthy store, so
// it is returned to the caller without counting against the breaker.
func call[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, op func() (T, error)) (T, error) {
	var (
		out     T
		missing bool
	)
	err := cb.Execute(ctx, func() error {
		var opErr error
		out, opErr = op()
		if errors.Is(opErr, ErrNotFound) {
			missing = true
			return nil
		}
		return opErr
	})
	if missing {
		return out, ErrNotFound
	}
	return out, err
}

// write runs op through cb for stores the request does not depend on. While
// the circuit is open the write is skipped and reported as done.
func write(ctx context.Context, cb *circuitbreaker.CircuitBreaker, op func() error) error {
	err := cb.Execute(ctx, op)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// ReportsRepositoryWithCircuitBreaker guards the saved-reports store. Report
// calls fail fast with circuitbreaker.ErrCircuitOpen while the circuit is open.
type ReportsRepositoryWithCircuitBreaker struct {
	repo ReportsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

func NewReportsRepositoryWithCircuitBreaker(repo ReportsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ReportsRepositoryWithCircuitBreaker {
	return &ReportsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *ReportsRepositoryWithCircuitBreaker) Create(ctx context.Context, report *model.Report) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Create(ctx, report) })
}

func (r *ReportsRepositoryWithCircuitBreaker) ListByUser(ctx context.Context, userEmail string, limit int) ([]model.Report, error) {
	return call(ctx, r.cb, func() ([]model.Report, error) { return r.repo.ListByUser(ctx, userEmail, limit) })
}

func (r *ReportsRepositoryWithCircuitBreaker) FindByID(ctx context.Context, userEmail string, id primitive.ObjectID) (*model.Report, error) {
	return call(ctx, r.cb, func() (*model.Report, error) { return r.repo.FindByID(ctx, userEmail, id) })
}

func (r *ReportsRepositoryWithCircuitBreaker) Delete(ctx context.Context, userEmail string, id primitive.ObjectID) error {
	_, err := call(ctx, r.cb, func() (struct{}, error) { return struct{}{}, r.repo.Delete(ctx, userEmail, id) })
	return err
}

// Breaker exposes the breaker to health checks.
func (r *ReportsRepositoryWithCircuitBreaker) Breaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// FeedbackRepositoryWithCircuitBreaker guards the feedback store. Events are
// dropped while the circuit is open.
type FeedbackRepositoryWithCircuitBreaker struct {
	repo FeedbackRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

func NewFeedbackRepositoryWithCircuitBreaker(repo FeedbackRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *FeedbackRepositoryWithCircuitBreaker {
	return &FeedbackRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *FeedbackRepositoryWithCircuitBreaker) Create(ctx context.Context, fb *model.Feedback) error {
	return write(ctx, r.cb, func() error { return r.repo.Create(ctx, fb) })
}

func (r *FeedbackRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, events []*model.Feedback) error {
	return write(ctx, r.cb, func() error { return r.repo.CreateMany(ctx, events) })
}

func (r *FeedbackRepositoryWithCircuitBreaker) Breaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// LogsRepositoryWithCircuitBreaker guards the request and audit log store.
// Entries are dropped while the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return write(ctx, r.cb, func() error { return r.repo.Create(ctx, entry) })
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return write(ctx, r.cb, func() error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsRepositoryWithCircuitBreaker) Breaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}
