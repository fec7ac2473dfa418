package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zahnno/visualize-txn/cmd/txnviz/config"
	"github.com/zahnno/visualize-txn/internal/aggregate"
	"github.com/zahnno/visualize-txn/internal/parsers"
	"github.com/zahnno/visualize-txn/internal/reporter"
	"github.com/zahnno/visualize-txn/internal/store"
	"github.com/zahnno/visualize-txn/internal/views"
	"github.com/zahnno/visualize-txn/pkg/logger"
)

// Flags for the report command
var (
	statementFile string
	outputFormat  string
	outputFile    string
	startDate     string
	endDate       string
	counterparty  string
	minWithdrawal string
	minDeposit    string
	minNet        string
	showProgress  bool
	keepArtifact  bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build visualization views from a bank statement export",
	Long: `Report parses a delimited bank statement export and derives the data
behind a statement dashboard: the balance-over-time series, per-counterparty
withdrawal and deposit totals, net totals against a signed threshold, and the
list of counterparties seen in the batch.

Examples:
  # Console report of the whole statement
  txnviz report --statement-file export.csv

  # Restrict the batch to January and focus on one counterparty
  txnviz report --statement-file export.csv \
    --start-date 2024-01-01 --end-date 2024-01-31 \
    --counterparty "ACME Sp. z o.o."

  # Raise the aggregation thresholds and write JSON
  txnviz report --statement-file export.csv \
    --min-withdrawal=-2500 --min-deposit 2500 --min-net 500 \
    --output-format json --output-file views.json

  # Show parse progress on a large export
  txnviz report --statement-file export.csv --progress`,

	PreRunE: validateReportFlags,
	RunE:    runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	// Required flags
	reportCmd.Flags().StringVarP(&statementFile, "statement-file", "s", "", "path to the bank statement export (required)")

	// Output flags
	reportCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	reportCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	// Date filtering flags
	reportCmd.Flags().StringVar(&startDate, "start-date", "", "filter start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&endDate, "end-date", "", "filter end date (YYYY-MM-DD)")

	// View parameter flags
	reportCmd.Flags().StringVarP(&counterparty, "counterparty", "c", "", "restrict the views to one counterparty (exact match)")
	reportCmd.Flags().StringVar(&minWithdrawal, "min-withdrawal", "-1000", "withdrawals count only below this negative threshold")
	reportCmd.Flags().StringVar(&minDeposit, "min-deposit", "1000", "deposits count only above this threshold")
	reportCmd.Flags().StringVar(&minNet, "min-net", "-1000", "signed net total threshold")

	// Parsing flags
	reportCmd.Flags().BoolVar(&keepArtifact, "keep-artifact-row", false, "keep the first data row instead of dropping it as an export artifact")
	reportCmd.Flags().BoolVar(&showProgress, "progress", false, "log parse progress")

	// Mark required flags
	reportCmd.MarkFlagRequired("statement-file")

	// Bind flags to viper
	viper.BindPFlag("statement-file", reportCmd.Flags().Lookup("statement-file"))
	viper.BindPFlag("output-format", reportCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", reportCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("start-date", reportCmd.Flags().Lookup("start-date"))
	viper.BindPFlag("end-date", reportCmd.Flags().Lookup("end-date"))
	viper.BindPFlag("counterparty", reportCmd.Flags().Lookup("counterparty"))
	viper.BindPFlag("min-withdrawal", reportCmd.Flags().Lookup("min-withdrawal"))
	viper.BindPFlag("min-deposit", reportCmd.Flags().Lookup("min-deposit"))
	viper.BindPFlag("min-net", reportCmd.Flags().Lookup("min-net"))
	viper.BindPFlag("keep-artifact-row", reportCmd.Flags().Lookup("keep-artifact-row"))
	viper.BindPFlag("progress", reportCmd.Flags().Lookup("progress"))
}

func validateReportFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	statementFile = viper.GetString("statement-file")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	startDate = viper.GetString("start-date")
	endDate = viper.GetString("end-date")
	counterparty = viper.GetString("counterparty")
	minWithdrawal = viper.GetString("min-withdrawal")
	minDeposit = viper.GetString("min-deposit")
	minNet = viper.GetString("min-net")
	keepArtifact = viper.GetBool("keep-artifact-row")
	showProgress = viper.GetBool("progress")

	// Validate required flags
	if statementFile == "" {
		return fmt.Errorf("statement-file is required")
	}

	if err := validateFileExists(statementFile, "statement file"); err != nil {
		return err
	}

	// Validate output format
	if !reporter.OutputFormat(outputFormat).IsValid() {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv", outputFormat)
	}

	// Validate dates
	if startDate != "" {
		if _, err := time.Parse("2006-01-02", startDate); err != nil {
			return fmt.Errorf("invalid start date format. Use YYYY-MM-DD: %w", err)
		}
	}
	if endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			return fmt.Errorf("invalid end date format. Use YYYY-MM-DD: %w", err)
		}
	}

	// A reversed range is not an error, it simply selects nothing
	if startDate != "" && endDate != "" {
		start, _ := time.Parse("2006-01-02", startDate)
		end, _ := time.Parse("2006-01-02", endDate)
		if start.After(end) {
			fmt.Fprintf(os.Stderr, "Warning: start date is after end date, the filtered view will be empty\n")
		}
	}

	// Validate thresholds early so a typo fails before parsing a large file
	if _, err := config.CreateSplitConfig(minWithdrawal, minDeposit); err != nil {
		return err
	}
	if _, err := config.CreateNetConfig(minNet); err != nil {
		return err
	}

	// Validate output file directory exists if specified
	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	// Check if file is readable
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Building statement views...\n")
		fmt.Fprintf(os.Stderr, "Statement file: %s\n", statementFile)
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		}
	}

	// Create configurations
	statementConfig := config.CreateStatementConfig(keepArtifact)

	splitConfig, err := config.CreateSplitConfig(minWithdrawal, minDeposit)
	if err != nil {
		return fmt.Errorf("failed to create split aggregation config: %w", err)
	}
	netConfig, err := config.CreateNetConfig(minNet)
	if err != nil {
		return fmt.Errorf("failed to create net aggregation config: %w", err)
	}
	bounds, err := config.CreateDateRange(startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to create date filter: %w", err)
	}

	// Parse the statement
	parser, err := parsers.NewStatementParser(statementConfig)
	if err != nil {
		return fmt.Errorf("failed to create statement parser: %w", err)
	}
	if showProgress {
		parser.SetProgressTracker(logger.NewProgressTracker(logger.ProgressConfig{
			Operation: "parse statement",
		}))
	}

	transactions, stats, err := parser.ParseStatementWithContext(ctx, statementFile)
	if err != nil {
		return fmt.Errorf("failed to parse statement: %w", err)
	}
	if stats.HasErrors() && viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Skipped %d malformed rows:\n", stats.ErrorCount)
		for _, parseErr := range stats.GetSampleErrors(5) {
			fmt.Fprintf(os.Stderr, "  %v\n", parseErr)
		}
	}

	// The store holds the normalized batch; every view below derives from it
	batch := store.New()
	batch.Replace(transactions)

	// Derive the views
	filtered := views.FilterByDateRange(batch.Transactions(), bounds, statementConfig.DateFormats)
	counterparties := views.DistinctCounterparties(filtered)
	if counterparty != "" {
		filtered = views.SelectCounterparty(filtered, counterparty)
	}

	view := &reporter.ViewSet{
		Transactions:   filtered,
		Series:         views.BuildBalanceSeries(filtered),
		Split:          aggregate.AggregateSplit(filtered, splitConfig),
		Net:            aggregate.AggregateNet(filtered, netConfig),
		Counterparties: counterparties,
		ParseStats:     stats,
	}

	// Generate report
	reportConfig := config.CreateReportConfig(outputFormat)
	reportGenerator, err := reporter.NewReportGenerator(reportConfig)
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	// Determine output destination
	var output *os.File
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	if err := reportGenerator.Generate(view, output); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	// Show completion message
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nStatement views built successfully.\n")
		fmt.Fprintf(os.Stderr, "Parsed %d transactions (%d rows skipped, %d malformed).\n",
			stats.RecordsValid, stats.RecordsSkipped, stats.ErrorCount)
		fmt.Fprintf(os.Stderr, "View holds %d transactions across %d counterparties.\n",
			len(filtered), len(counterparties))
	}

	return nil
}
