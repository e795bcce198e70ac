// cmd/insights/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dataset-tools/insights/pkg/config"
)

// version is set at build time via -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Instant orientation for any tabular dataset",
	Long: `insights profiles a tabular dataset (CSV file, or a Postgres/Snowflake
table) and writes human-readable reports and diagnostic plots.

It reports shape, column types, numeric summary statistics, correlations,
and missingness -- including disguised missing-value placeholders such as
"??missing", "n/a" or "---" that would otherwise inflate the apparent
completeness of the data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the insights version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("insights %s\n", version)
	},
}

func main() {
	// Optional .env bootstrap; absence is not an error
	_ = godotenv.Load()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildLogger constructs the zap logger from config
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.LogFormat == "console" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	// Keep stdout clean for the console summary
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
