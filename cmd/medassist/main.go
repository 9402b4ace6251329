// Package main implements the medassist CLI: knowledge base ingestion and
// grounded question answering over medical documents.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arogyalabs/medassist/internal/config"
	"github.com/arogyalabs/medassist/internal/logging"
	"github.com/arogyalabs/medassist/internal/telemetry"
)

var (
	// configPath is the optional YAML config file.
	configPath string
	// version information
	version = "dev"
)

func main() {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "medassist",
	Short: "Retrieval-augmented medical assistant",
	Long: `medassist answers medical questions from a local knowledge base of
medicines, lab reference ranges, home remedies and disease fact sheets,
and analyzes uploaded lab reports and prescriptions.

Answers are grounded: the model is instructed to use only retrieved or
extracted context, never its own priors.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(prescriptionCmd)
	rootCmd.AddCommand(summarizeCmd)
}

// loadConfig loads configuration, builds the logger and installs the trace
// pipeline. The returned cleanup flushes spans and the logger.
func loadConfig(ctx context.Context) (*config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, err
	}
	traceShutdown, err := telemetry.Setup(ctx, cfg.Telemetry, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = traceShutdown(context.Background())
		_ = logger.Sync()
	}
	return cfg, logger, cleanup, nil
}

// joinArgs joins positional args into a single question string.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
