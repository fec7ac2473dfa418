package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahnno/visualize-txn/internal/aggregate"
	"github.com/zahnno/visualize-txn/internal/parsers"
	"github.com/zahnno/visualize-txn/internal/reporter"
	"github.com/zahnno/visualize-txn/internal/views"
)

// CreateStatementConfig creates the statement parser configuration used by the
// CLI. The column layout is the standard bank export layout; only the artifact
// row handling is adjustable from the command line.
func CreateStatementConfig(keepArtifactRow bool) *parsers.StatementConfig {
	config := parsers.DefaultStatementConfig()
	config.DropLeadingArtifactRow = !keepArtifactRow
	return config
}

// CreateSplitConfig builds the split aggregation thresholds from their CLI
// string values. Both are decimals so threshold comparisons stay exact.
func CreateSplitConfig(minWithdrawal, minDeposit string) (*aggregate.SplitConfig, error) {
	config := aggregate.DefaultSplitConfig()

	if minWithdrawal != "" {
		value, err := decimal.NewFromString(minWithdrawal)
		if err != nil {
			return nil, fmt.Errorf("invalid min-withdrawal value %q: %w", minWithdrawal, err)
		}
		config.MinWithdrawal = value
	}
	if minDeposit != "" {
		value, err := decimal.NewFromString(minDeposit)
		if err != nil {
			return nil, fmt.Errorf("invalid min-deposit value %q: %w", minDeposit, err)
		}
		config.MinDeposit = value
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// CreateNetConfig builds the net aggregation threshold from its CLI string
// value. The sign of the threshold selects the comparison direction, so any
// decimal is accepted.
func CreateNetConfig(minNet string) (*aggregate.NetConfig, error) {
	config := aggregate.DefaultNetConfig()

	if minNet != "" {
		value, err := decimal.NewFromString(minNet)
		if err != nil {
			return nil, fmt.Errorf("invalid min-net value %q: %w", minNet, err)
		}
		config.MinAmount = value
	}
	return config, nil
}

// CreateDateRange builds the date filter bounds from the CLI date strings.
// An empty string leaves the corresponding bound unset; the filter only
// applies when both bounds are present.
func CreateDateRange(startDate, endDate string) (views.DateRange, error) {
	var bounds views.DateRange

	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return bounds, fmt.Errorf("invalid start date format, use YYYY-MM-DD: %w", err)
		}
		bounds.Start = &t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return bounds, fmt.Errorf("invalid end date format, use YYYY-MM-DD: %w", err)
		}
		// Set to end of day so the bound is inclusive
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		bounds.End = &t
	}

	return bounds, nil
}

// CreateReportConfig creates a report configuration for the specified output format
func CreateReportConfig(format string) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()

	// Set output format
	switch format {
	case "console":
		config.Format = reporter.FormatConsole
	case "json":
		config.Format = reporter.FormatJSON
		config.IncludeParseStats = true
	case "csv":
		config.Format = reporter.FormatCSV
		config.CSVHeaders = true
		config.CSVDelimiter = ','
		config.IncludeParseStats = false // CSV is for chart data
	}

	return config
}
