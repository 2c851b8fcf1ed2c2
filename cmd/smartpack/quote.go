package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/app"
	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/service"
)

type quoteFlags struct {
	width, height, depth, weight float64
	fragility                    string
	packagingType                string
	category                     string
	name, brand                  string
	asJSON                       bool
}

func newQuoteCmd(cfg *config.Config) *cobra.Command {
	var f quoteFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote packaging for a product",
		Long: `Recommend a box for a product and print the packaging report.

Examples:
  # Ceramic mug in a box
  smartpack quote --width 10 --height 5 --depth 3 --weight 0.5 --fragility LOW --name Mug

  # Full quote as JSON
  smartpack quote --width 30 --height 2 --depth 20 --type Envelope --category Paper --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd.OutOrStdout(), *cfg, f)
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&f.width, "width", 0, "product width")
	fl.Float64Var(&f.height, "height", 0, "product height")
	fl.Float64Var(&f.depth, "depth", 0, "product depth")
	fl.Float64Var(&f.weight, "weight", 0, "product weight in kg")
	fl.StringVar(&f.fragility, "fragility", "LOW", "fragility: LOW, MEDIUM, HIGH or EXTREME")
	fl.StringVar(&f.packagingType, "type", "Box", "packaging type: Box, Mailer, Envelope, Tube or any other label")
	fl.StringVar(&f.category, "category", "", "product category, e.g. Plastic or Paper")
	fl.StringVar(&f.name, "name", "", "product name shown in the report")
	fl.StringVar(&f.brand, "brand", "", "product brand shown in the report")
	fl.BoolVar(&f.asJSON, "json", false, "print the full quote as JSON")
	return cmd
}

func runQuote(out io.Writer, cfg config.Config, f quoteFlags) error {
	req := dto.QuoteRequest{
		Product: &dto.ProductInput{
			Width:     dto.Number(f.width),
			Height:    dto.Number(f.height),
			Depth:     dto.Number(f.depth),
			Weight:    dto.Number(f.weight),
			Fragility: f.fragility,
			Name:      f.name,
			Brand:     f.brand,
		},
		PackagingType: f.packagingType,
		Category:      f.category,
	}
	if err := req.Validate(); err != nil {
		return err
	}
	in := req.ToInput()

	// No cache: one quote per process.
	cfg.Cache.QuoteSize = 0
	services := app.InitializeServices(cfg)
	defer services.Stop()

	quote := services.Quotes.Quote(in)

	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(quote)
	}

	reports := service.NewReportService(nil, service.WithCurrencySymbol(cfg.Report.CurrencySymbol))
	defer reports.Stop()

	_, err := fmt.Fprintln(out, reports.BuildPayload(quote.Product, quote.PackagingType, quote).ReportText)
	return err
}
