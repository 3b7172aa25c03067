package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotadrafter/draft-client/internal/authority"
	"github.com/dotadrafter/draft-client/internal/config"
	"github.com/dotadrafter/draft-client/internal/draft"
	"github.com/dotadrafter/draft-client/internal/gateway"
	"github.com/dotadrafter/draft-client/internal/roster"
	"github.com/dotadrafter/draft-client/internal/ui"
)

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:           "drafter",
		Short:         "Local web client for a remote hero-draft authority.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	viperCfg := config.Bind(cmd.Flags(), cfg)
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		config.Apply(cmd.Flags(), viperCfg, cfg)
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := buildLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client := authority.NewClient(cfg.Authority, log.Named("authority"))

	var cache *roster.Cache
	if cfg.CachePath != "" {
		cache, err = roster.OpenCache(cfg.CachePath)
		if err != nil {
			log.Warn("roster cache unavailable, continuing without it", zap.Error(err))
			cache = nil
		}
	}

	store := roster.NewStore(client, cache, log.Named("roster"))
	if err := store.Load(ctx); err != nil {
		log.Warn("initial roster load failed", zap.Error(err))
		if cerr := store.LoadCached(); cerr != nil && !errors.Is(cerr, roster.ErrNoCache) {
			log.Warn("roster cache restore failed", zap.Error(cerr))
		}
	}

	session := draft.NewSession()
	gw := gateway.New(client, session, store, log.Named("gateway"))
	loop := ui.NewLoop(ctx, store, session, gw, log.Named("ui"))

	handler := ui.SetupRoutes(loop, log.Named("ws"))
	log.Info("listening", zap.String("addr", cfg.Addr()), zap.String("authority", cfg.Authority))
	return http.ListenAndServe(cfg.Addr(), handler)
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
