package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/app"
)

const closeTimeout = 15 * time.Second

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the SmartPack HTTP API until SIGINT or SIGTERM.

Configuration comes from the environment (PORT, MONGODB_ENABLED, IDENTITY_JWT_SECRET, ...).
On shutdown queued feedback and request logs are flushed before MongoDB is disconnected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Server.Port = port
			}
			return runServe(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)
	runErr := server.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := application.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("Failed to release resources")
	}

	return runErr
}
