package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/service"
)

var errNoIdentitySecret = errors.New("IDENTITY_JWT_SECRET is not set")

func newTokenCmd(cfg *config.Config) *cobra.Command {
	var (
		identity model.Identity
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a development identity token",
		Long: `Sign an identity token with IDENTITY_JWT_SECRET so report endpoints can be called
without the sign-in provider. Send it as "Authorization: Bearer <token>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToken(cmd.OutOrStdout(), *cfg, identity, ttl)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&identity.Email, "email", "", "user email (required)")
	fl.StringVar(&identity.Name, "name", "", "display name")
	fl.DurationVar(&ttl, "ttl", 0, "token lifetime (default IDENTITY_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runToken(out io.Writer, cfg config.Config, identity model.Identity, ttl time.Duration) error {
	if !cfg.Auth.IdentityEnabled() {
		return errNoIdentitySecret
	}

	issuer := service.NewIdentityService(cfg.Auth.IdentitySecret, cfg.Auth.IdentityIssuer, cfg.Auth.IdentityTokenTTL)
	token, err := issuer.Issue(identity, ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
