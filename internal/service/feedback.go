package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/logger"
	"github.com/guttosm/smartpack-service/internal/metrics"
	"github.com/guttosm/smartpack-service/internal/repository"
)

const feedbackKeyPrefix = "ml_fb"

// FeedbackRecorder accepts "confirm and train" events without blocking the caller.
type FeedbackRecorder interface {
	// Record enqueues an event. It returns false when the event was dropped.
	Record(identity model.Identity, product model.Product, box model.BoxDimensions, thicknessLevel int) bool
}

// FeedbackConfig holds configuration for the feedback worker pool.
type FeedbackConfig struct {
	// BufferSize is the capacity of the pending event queue.
	BufferSize int
	// NumWorkers is the number of goroutines writing events.
	NumWorkers int
	// BatchSize is the most events a worker writes in one insert.
	BatchSize int
	// WriteTimeout bounds each insert.
	WriteTimeout time.Duration
}

// DefaultFeedbackConfig returns the default worker pool settings.
func DefaultFeedbackConfig() FeedbackConfig {
	return FeedbackConfig{
		BufferSize:   500,
		NumWorkers:   2,
		BatchSize:    50,
		WriteTimeout: 5 * time.Second,
	}
}

// FeedbackService writes feedback events to the store from a bounded worker pool.
// A nil *FeedbackService drops every event.
type FeedbackService struct {
	repo         repository.FeedbackRepositoryInterface
	eventCh      chan *model.Feedback
	stopCh       chan struct{}
	stopOnce     sync.Once
	// sendMu orders Record's send before Stop closes stopCh.
	sendMu       sync.RWMutex
	stopped      bool
	wg           sync.WaitGroup
	batchSize    int
	writeTimeout time.Duration

	enqueued int64
	dropped  int64
	written  int64
	errors   int64
}

// NewFeedbackService starts the worker pool. It returns nil when repo is nil.
func NewFeedbackService(repo repository.FeedbackRepositoryInterface, cfg FeedbackConfig) *FeedbackService {
	if repo == nil {
		return nil
	}

	def := DefaultFeedbackConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	s := &FeedbackService{
		repo:         repo,
		eventCh:      make(chan *model.Feedback, cfg.BufferSize),
		stopCh:       make(chan struct{}),
		batchSize:    cfg.BatchSize,
		writeTimeout: cfg.WriteTimeout,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

// FeedbackKey identifies the product a feedback event is about:
// ml_fb_<width>_<height>_<depth>_<weight>_<fragility>.
func FeedbackKey(product model.Product) string {
	product = product.Sanitized()
	return strings.Join([]string{
		feedbackKeyPrefix,
		formatNumber(product.Width),
		formatNumber(product.Height),
		formatNumber(product.Depth),
		formatNumber(product.Weight),
		string(product.Fragility.Normalize()),
	}, "_")
}

// Record enqueues a feedback event for the accepted box. A full queue or a stopped
// service drops the event; an accepted event is written before Stop returns.
func (s *FeedbackService) Record(identity model.Identity, product model.Product, box model.BoxDimensions, thicknessLevel int) bool {
	if s == nil {
		return false
	}

	product = product.Sanitized()
	product.Fragility = product.Fragility.Normalize()
	fb := &model.Feedback{
		EventID:        uuid.NewString(),
		Key:            FeedbackKey(product),
		UserEmail:      identity.Email,
		Product:        product,
		Box:            box,
		ThicknessLevel: model.ClampLevel(thicknessLevel),
		CreatedAt:      time.Now().UTC(),
	}

	s.sendMu.RLock()
	defer s.sendMu.RUnlock()
	if s.stopped {
		atomic.AddInt64(&s.dropped, 1)
		metrics.RecordFeedback("dropped")
		return false
	}

	select {
	case s.eventCh <- fb:
		atomic.AddInt64(&s.enqueued, 1)
		metrics.RecordFeedback("enqueued")
		return true
	default:
		atomic.AddInt64(&s.dropped, 1)
		metrics.RecordFeedback("dropped")
		return false
	}
}

func (s *FeedbackService) worker() {
	defer s.wg.Done()

	batch := make([]*model.Feedback, 0, s.batchSize)
	for {
		select {
		case fb := <-s.eventCh:
			batch = append(batch[:0], fb)
			batch = s.fill(batch)
			s.write(batch)
		case <-s.stopCh:
			for {
				batch = s.fill(batch[:0])
				if len(batch) == 0 {
					return
				}
				s.write(batch)
			}
		}
	}
}

// fill appends queued events to batch without blocking.
func (s *FeedbackService) fill(batch []*model.Feedback) []*model.Feedback {
	for len(batch) < s.batchSize {
		select {
		case fb := <-s.eventCh:
			batch = append(batch, fb)
		default:
			return batch
		}
	}
	return batch
}

func (s *FeedbackService) write(batch []*model.Feedback) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	var err error
	if len(batch) == 1 {
		err = s.repo.Create(ctx, batch[0])
	} else {
		err = s.repo.CreateMany(ctx, batch)
	}

	n := int64(len(batch))
	if err != nil {
		atomic.AddInt64(&s.errors, n)
		metrics.RecordFeedback("error")
		log := logger.Logger()
		log.Warn().Err(err).Int("events", len(batch)).Msg("Failed to write feedback events")
		return
	}
	atomic.AddInt64(&s.written, n)
	metrics.RecordFeedback("written")
}

// Stop drains pending events and waits for the workers. Safe to call more than once.
func (s *FeedbackService) Stop() {
	if s == nil {
		return
	}
	s.stopOnce.Do(func() {
		s.sendMu.Lock()
		s.stopped = true
		close(s.stopCh)
		s.sendMu.Unlock()
		s.wg.Wait()
	})
}

// Stats returns the event counters.
func (s *FeedbackService) Stats() (enqueued, dropped, written, errors int64) {
	if s == nil {
		return 0, 0, 0, 0
	}
	return atomic.LoadInt64(&s.enqueued),
		atomic.LoadInt64(&s.dropped),
		atomic.LoadInt64(&s.written),
		atomic.LoadInt64(&s.errors)
}
