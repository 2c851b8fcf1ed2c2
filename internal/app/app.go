// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/http"
	"github.com/guttosm/smartpack-service/internal/middleware"
)

// App is the wired service: the router plus everything that must be stopped on shutdown.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
	Routes   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
// The database is optional: without it reports answer 503 and logs stay on stderr.
func InitializeApp(cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	services := InitializeServices(cfg)
	db := InitializeDatabase(cfg.Database, reportOptions(cfg)...)
	routes := InitializeRouter(services, db, cfg)

	return &App{
		Router:   http.NewRouter(routes.Handler, routes.HealthHandler, routes.Config),
		Services: services,
		Database: db,
		Routes:   routes,
	}
}

// Close stops background workers, flushing queued log and feedback writes, then
// disconnects from MongoDB.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.Routes != nil {
		a.Routes.Stop()
	}
	if a.Services != nil {
		a.Services.Stop()
	}
	middleware.StopAsyncLogger()
	if a.Database != nil {
		if err := a.Database.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
