// Package cli implements the cryptodigest CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"CryptoDigest/internal/config"
	"CryptoDigest/internal/logging"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "cryptodigest",
	Short: "Curate multi-feed crypto content into a daily digest",
	Long: "cryptodigest scores, classifies, and deduplicates content items gathered " +
		"from several feeds, then selects a bounded, diverse subset and renders it " +
		"into a structured digest report.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: $CRYPTO_DIGEST_CONFIG)")
}

func loadConfig() config.Config {
	if configPath != "" {
		return config.LoadPath(configPath)
	}
	return config.Load()
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(cfg.Logging.Level)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
