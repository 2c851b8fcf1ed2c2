// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/circuitbreaker"
	"github.com/guttosm/smartpack-service/internal/middleware"
	"github.com/guttosm/smartpack-service/internal/repository"
	"github.com/guttosm/smartpack-service/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	LoggingService         service.LoggingService
	Reports                *service.ReportService
	Feedback               *service.FeedbackService
	ReportsCircuitBreaker  *circuitbreaker.CircuitBreaker
	FeedbackCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker     *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the report, feedback and log stores.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig, reportOpts ...service.ReportOption) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	reportsCB := newCircuitBreaker(cfg, "mongodb-reports")
	feedbackCB := newCircuitBreaker(cfg, "mongodb-feedback")
	logsCB := newCircuitBreaker(cfg, "mongodb-logs")

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	loggingService := service.NewLoggingService(logsRepo, service.WithMinLogLevel(cfg.LogsMinLevel))
	middleware.InitAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig())

	reportsRepo := repository.NewReportsRepositoryWithCircuitBreaker(repository.NewReportsRepository(db), reportsCB)
	opts := append([]service.ReportOption{service.WithReportsListLimit(cfg.ReportsListLimit)}, reportOpts...)

	feedbackRepo := repository.NewFeedbackRepositoryWithCircuitBreaker(repository.NewFeedbackRepository(db), feedbackCB)
	feedbackCfg := service.DefaultFeedbackConfig()
	feedbackCfg.BufferSize = cfg.FeedbackBufferSize
	feedbackCfg.NumWorkers = cfg.FeedbackWorkers

	return &DatabaseComponents{
		DB:                     db,
		LoggingService:         loggingService,
		Reports:                service.NewReportService(reportsRepo, opts...),
		Feedback:               service.NewFeedbackService(feedbackRepo, feedbackCfg),
		ReportsCircuitBreaker:  reportsCB,
		FeedbackCircuitBreaker: feedbackCB,
		LogsCircuitBreaker:     logsCB,
	}
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	})
}

// Close drains the feedback queue and disconnects. Safe on a nil receiver.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	d.Feedback.Stop()
	if d.Reports != nil {
		d.Reports.Stop()
	}
	if d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// reportOptions maps the report settings onto ReportService options.
func reportOptions(cfg config.Config) []service.ReportOption {
	return []service.ReportOption{
		service.WithDeletedReportsTTL(cfg.Cache.DeletedReportTTL),
		service.WithCurrencySymbol(cfg.Report.CurrencySymbol),
	}
}
