// Command unseal decrypts Samsung Pass sealed-archive exports (.spass)
// and writes the stored credentials to CSV, TXT, Markdown, JSON, or
// SQLite.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spass-tools/unseal/internal/client"
	"github.com/spass-tools/unseal/internal/config"
	"github.com/spass-tools/unseal/internal/events"
)

var rootCmd = &cobra.Command{
	Use:   "unseal",
	Short: "Decrypt Samsung Pass sealed-archive exports",
	Long: `Unseal recovers credential records from an encrypted .spass backup
given the account master password, and exports them in a choice of
formats.

The archive format carries no authentication tag, so a wrong password
is detected heuristically through a padding check.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *events.Logger
	app    *client.Client
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default searches ./unseal.{json,yaml} and ~/.config/unseal)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Log format: text, json")

	rootCmd.PersistentPreRunE = setup
}

// setup loads config and builds the client before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}

	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if logFormat != "" {
		loaded.Log.Format = logFormat
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger, err = events.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	app, err = client.New(cfg, logger)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
