package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/bootstrap"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/config"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cli struct {
	v   *viper.Viper
	cfg config.Config
}

// flagKeys maps persistent flags onto config keys so flags, env and defaults share one viper.
var flagKeys = map[string]string{
	"catalog":     "catalog_path",
	"deck-store":  "deck_store",
	"deck-dir":    "deck_dir",
	"s3-bucket":   "s3_bucket",
	"s3-prefix":   "s3_prefix",
	"s3-endpoint": "s3_endpoint",
	"skeleton":    "skeleton_deck",
	"log-level":   "log_level",
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper()}
	root := &cobra.Command{
		Use:           "pitchctl",
		Short:         "Inspect the catalog, preview recommendations and build pitch decks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.String("catalog", "", "catalog file (CATALOG_PATH)")
	pf.String("deck-store", "", "deck store, local or s3 (DECK_STORE)")
	pf.String("deck-dir", "", "deck directory for the local store (DECK_DIR)")
	pf.String("s3-bucket", "", "deck bucket for the s3 store (S3_BUCKET)")
	pf.String("s3-prefix", "", "key prefix inside the bucket (S3_PREFIX)")
	pf.String("s3-endpoint", "", "S3-compatible endpoint URL (S3_ENDPOINT)")
	pf.String("skeleton", "", "skeleton deck name (SKELETON_DECK)")
	pf.String("log-level", "", "log level (LOG_LEVEL)")
	for flag, key := range flagKeys {
		_ = c.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(c.catalogCmd())
	root.AddCommand(c.recommendCmd())
	root.AddCommand(c.generateCmd())
	root.AddCommand(c.decksCmd())
	return root
}

func (c *cli) setup() error {
	config.LoadDotEnv()
	c.cfg = config.FromViper(c.v)
	// stdout carries command output, so logs go to stderr.
	return telemetry.Init(c.cfg.LogLevel, "console", "stderr")
}

func (c *cli) core(ctx context.Context) (*bootstrap.Core, error) {
	return bootstrap.BuildCore(ctx, c.cfg)
}
