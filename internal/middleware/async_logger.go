package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/logger"
	"github.com/guttosm/smartpack-service/internal/metrics"
	"github.com/guttosm/smartpack-service/internal/service"
)

// AsyncLoggerConfig sizes the persistence worker pool. Non-positive fields
// take the value from DefaultAsyncLoggerConfig.
type AsyncLoggerConfig struct {
	BufferSize    int
	NumWorkers    int
	BatchSize     int           // entries per CreateLogs call
	FlushInterval time.Duration // max wait for a partial batch
	WriteTimeout  time.Duration
}

// DefaultAsyncLoggerConfig returns the default worker pool settings.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    2,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

func (cfg AsyncLoggerConfig) withDefaults() AsyncLoggerConfig {
	def := DefaultAsyncLoggerConfig()
	orInt := func(v, d int) int {
		if v > 0 {
			return v
		}
		return d
	}
	orDur := func(v, d time.Duration) time.Duration {
		if v > 0 {
			return v
		}
		return d
	}
	return AsyncLoggerConfig{
		BufferSize:    orInt(cfg.BufferSize, def.BufferSize),
		NumWorkers:    orInt(cfg.NumWorkers, def.NumWorkers),
		BatchSize:     orInt(cfg.BatchSize, def.BatchSize),
		FlushInterval: orDur(cfg.FlushInterval, def.FlushInterval),
		WriteTimeout:  orDur(cfg.WriteTimeout, def.WriteTimeout),
	}
}

// AsyncLogStats counts entries by outcome.
type AsyncLogStats struct {
	Enqueued int64
	Dropped  int64
	Written  int64
	Failed   int64
}

// AsyncLogger persists request and audit entries in batches from a bounded
// worker pool. A full buffer drops entries instead of blocking the request.
type AsyncLogger struct {
	sink     service.LoggingService
	cfg      AsyncLoggerConfig
	queue    chan *model.LogEntry
	quit     chan struct{}
	workers  sync.WaitGroup
	stopOnce sync.Once

	enqueued, dropped, written, failed atomic.Int64
}

// NewAsyncLogger starts the worker pool. It returns nil when sink is nil.
func NewAsyncLogger(sink service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if sink == nil {
		return nil
	}

	cfg = cfg.withDefaults()
	al := &AsyncLogger{
		sink:  sink,
		cfg:   cfg,
		queue: make(chan *model.LogEntry, cfg.BufferSize),
		quit:  make(chan struct{}),
	}
	for range cfg.NumWorkers {
		al.workers.Go(al.run)
	}
	return al
}

// run fills a batch until it is full or the flush interval passes. After
// Stop it drains whatever is still queued.
func (al *AsyncLogger) run() {
	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	add := func(entry *model.LogEntry) {
		batch = append(batch, entry)
		if len(batch) == al.cfg.BatchSize {
			batch = al.write(batch)
		}
	}

	for {
		select {
		case entry := <-al.queue:
			add(entry)
		case <-ticker.C:
			batch = al.write(batch)
		case <-al.quit:
			for {
				select {
				case entry := <-al.queue:
					add(entry)
				default:
					al.write(batch)
					return
				}
			}
		}
	}
}

// write stores the batch and returns an empty one to fill next.
func (al *AsyncLogger) write(batch []*model.LogEntry) []*model.LogEntry {
	if len(batch) == 0 {
		return batch
	}

	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	n := int64(len(batch))
	outcome := "written"
	if err := al.sink.CreateLogs(ctx, batch); err != nil {
		outcome = "error"
		al.failed.Add(n)
		l := logger.Logger()
		l.Warn().Err(err).Int64("entries", n).Msg("Failed to write log batch")
	} else {
		al.written.Add(n)
	}
	metrics.AsyncLogEntriesTotal.WithLabelValues(outcome).Add(float64(n))

	return make([]*model.LogEntry, 0, al.cfg.BatchSize)
}

// Log queues an entry and reports whether it was accepted. Entries are
// refused once the buffer is full or the logger has stopped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil || entry == nil {
		return false
	}

	select {
	case <-al.quit:
	default:
		select {
		case al.queue <- entry:
			al.enqueued.Add(1)
			metrics.RecordAsyncLog("enqueued")
			return true
		default:
		}
	}

	al.dropped.Add(1)
	metrics.RecordAsyncLog("dropped")
	return false
}

// Stop drains pending entries and waits for the workers. Safe to call more than once.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		close(al.quit)
		al.workers.Wait()
	})
}

// Stats returns the counters so far. A nil logger reports zeros.
func (al *AsyncLogger) Stats() AsyncLogStats {
	if al == nil {
		return AsyncLogStats{}
	}
	return AsyncLogStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}

var globalAsyncLogger atomic.Pointer[AsyncLogger]

// InitAsyncLogger starts the process-wide async logger and stops the one it replaces.
func InitAsyncLogger(sink service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLogger.Swap(NewAsyncLogger(sink, cfg)).Stop()
}

// GetAsyncLogger returns the process-wide async logger, or nil.
func GetAsyncLogger() *AsyncLogger {
	return globalAsyncLogger.Load()
}

// StopAsyncLogger drains and clears the process-wide async logger.
func StopAsyncLogger() {
	globalAsyncLogger.Swap(nil).Stop()
}
