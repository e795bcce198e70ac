// cmd/insights/analyze.go
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/config"
	"github.com/dataset-tools/insights/pkg/connector"
	"github.com/dataset-tools/insights/pkg/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [csv-path]",
	Short: "Analyze a dataset and write reports plus diagnostic plots",
	Long: `Analyze a dataset and write reports plus diagnostic plots to the
output directory.

The dataset is either a CSV file given as the positional argument, or a
database table selected with --postgres-table / --snowflake-table
(connection parameters come from the environment, see .env support).

Examples:
  # Profile a CSV file into ./reports
  insights analyze data.csv

  # Profile into a custom directory, keeping more audit examples
  insights analyze data.csv --outdir /tmp/profile --max-examples 10

  # Profile a Postgres table (POSTGRES_* env vars required)
  insights analyze --postgres-table public.customers

  # Profile a Snowflake table (SNOWFLAKE_* env vars required)
  insights analyze --snowflake-table ORDERS`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("outdir", "", "directory to write output files (default \"reports\")")
	analyzeCmd.Flags().Int("max-examples", 0, "max distinct raw values kept per column in the cleaning audit (default 5)")
	analyzeCmd.Flags().String("postgres-table", "", "profile this PostgreSQL table instead of a CSV file")
	analyzeCmd.Flags().String("snowflake-table", "", "profile this Snowflake table instead of a CSV file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("outdir")
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	maxExamples, _ := cmd.Flags().GetInt("max-examples")
	if maxExamples > 0 {
		cfg.MaxAuditExamples = maxExamples
	}

	pgTable, _ := cmd.Flags().GetString("postgres-table")
	sfTable, _ := cmd.Flags().GetString("snowflake-table")

	sources := 0
	if len(args) == 1 {
		sources++
	}
	if pgTable != "" {
		sources++
	}
	if sfTable != "" {
		sources++
	}
	if sources != 1 {
		return errors.New("exactly one input is required: a CSV path, --postgres-table, or --snowflake-table")
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	analyzer, err := pipeline.NewAnalyzer(cfg, logger)
	if err != nil {
		return err
	}

	var result *pipeline.Result
	switch {
	case pgTable != "":
		result, err = analyzeDatabaseTable(cmd.Context(), logger, analyzer, pgTable, false)
	case sfTable != "":
		result, err = analyzeDatabaseTable(cmd.Context(), logger, analyzer, sfTable, true)
	default:
		fmt.Printf("Analyzing %s ...\n", args[0])
		result, err = analyzer.AnalyzeFile(args[0])
	}
	if err != nil {
		return err
	}

	printRunSummary(result)
	return nil
}

// analyzeDatabaseTable loads a table through the matching connector and
// runs the pipeline over it
func analyzeDatabaseTable(
	ctx context.Context,
	logger *zap.Logger,
	analyzer *pipeline.Analyzer,
	table string,
	snowflake bool,
) (*pipeline.Result, error) {
	factory := connector.NewSourceFactory(logger)

	var source connector.TableSource
	var err error
	if snowflake {
		source, err = factory.CreateSnowflakeSource(ctx)
	} else {
		source, err = factory.CreatePostgresSource(ctx)
	}
	if err != nil {
		return nil, err
	}
	defer source.Close() //nolint:errcheck

	if err := source.Validate(); err != nil {
		return nil, err
	}

	fmt.Printf("Analyzing table %s ...\n", table)
	loaded, err := source.LoadTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if loaded.NumRows() == 0 || loaded.NumCols() == 0 {
		return nil, fmt.Errorf("table %s is empty", table)
	}

	return analyzer.AnalyzeTable(loaded, table)
}

// printRunSummary prints the report/plot paths and the wrap-up line
func printRunSummary(result *pipeline.Result) {
	fmt.Printf("  %d rows x %d columns\n", result.Metrics.RowsProfiled, result.Metrics.ColumnsProfiled)

	if len(result.Audit) > 0 {
		fmt.Printf("\nSuspicious placeholders coerced to missing in %d column(s):\n", len(result.Audit))
		for _, name := range result.Table.ColumnNames() {
			entry, ok := result.Audit[name]
			if !ok {
				continue
			}
			fmt.Printf("  %s: %d flagged (e.g. %v)\n", name, entry.Count, entry.Examples)
		}
	}

	fmt.Println("\nReports:")
	for _, path := range result.Metrics.ReportFiles {
		fmt.Printf("  %s\n", path)
	}

	fmt.Println("\nPlots:")
	if len(result.Metrics.PlotFiles) == 0 {
		fmt.Println("  (none)")
	}
	for _, path := range result.Metrics.PlotFiles {
		fmt.Printf("  %s\n", path)
	}

	fmt.Println()
	fmt.Println(result.ConsoleSummary())
}
