// Package main is the entry point for the smartpack command.
//
// @title           SmartPack API
// @version         1.0.0
// @description     Packaging recommendations for e-commerce products.
//
//	Predicts a shipping box and board grade for a product, prices it against a
//	naive oversized baseline and keeps signed-in users' reports.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/smartpack-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Identity token from the sign-in provider, as "Bearer <token>". Required for reports.
//
// @tag.name        Packaging
// @tag.description Box prediction, recommendation and cost estimation
//
// @tag.name        Reports
// @tag.description Saved reports of the signed-in user
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/guttosm/smartpack-service/docs" // swagger docs

	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/app"
)

func newRootCmd() *cobra.Command {
	var (
		cfg     config.Config
		envFile string
	)

	root := &cobra.Command{
		Use:   "smartpack",
		Short: "AI packaging recommendations",
		Long:  "Recommends shipping boxes for products, estimates their cost against a baseline box and serves the SmartPack API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			cfg = loaded
			app.InitializeLogger(cfg.Log)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file read for variables missing from the environment")

	serve := newServeCmd(&cfg)
	root.RunE = serve.RunE
	root.AddCommand(serve, newQuoteCmd(&cfg), newTokenCmd(&cfg))
	return root
}

func loadConfig(envFile string) (config.Config, error) {
	cfg := config.Load()
	if envFile != "" {
		var err error
		if cfg, err = config.LoadFile(envFile); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
