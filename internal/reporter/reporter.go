// Package reporter renders the derived transaction views in the formats the
// presentation layer consumes.
//
// Supported output formats:
//   - Console: human-readable tables for terminal display
//   - JSON: one structured document for programmatic consumption
//   - CSV: one block per section for spreadsheet applications
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zahnno/visualize-txn/internal/aggregate"
	"github.com/zahnno/visualize-txn/internal/models"
	"github.com/zahnno/visualize-txn/internal/parsers"
	"github.com/zahnno/visualize-txn/internal/views"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// ViewSet bundles every derived view of one filtered batch. It is the plain
// data handed to the presentation layer; nothing here knows about rendering.
type ViewSet struct {
	Transactions   []*models.Transaction  `json:"transactions"`
	Series         []views.BalancePoint   `json:"balance_series"`
	Split          *aggregate.SplitResult `json:"split_aggregation"`
	Net            *aggregate.NetResult   `json:"net_aggregation"`
	Counterparties []string               `json:"counterparties"`
	ParseStats     *parsers.ParseStats    `json:"-"`
}

// ReportConfig holds configuration options for report generation
type ReportConfig struct {
	Format OutputFormat `json:"format"`

	IncludeSeries         bool `json:"include_series"`
	IncludeSplit          bool `json:"include_split"`
	IncludeNet            bool `json:"include_net"`
	IncludeCounterparties bool `json:"include_counterparties"`
	IncludeTransactions   bool `json:"include_transactions"`
	IncludeParseStats     bool `json:"include_parse_stats"`

	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:                FormatConsole,
		IncludeSeries:         true,
		IncludeSplit:          true,
		IncludeNet:            true,
		IncludeCounterparties: true,
		IncludeTransactions:   true,
		IncludeParseStats:     true,
		CSVDelimiter:          ',',
		CSVHeaders:            true,
	}
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	return nil
}

// ReportGenerator renders a ViewSet in the configured format
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}
	return &ReportGenerator{config: config}, nil
}

// Generate writes the report for the given view set to the writer
func (rg *ReportGenerator) Generate(view *ViewSet, writer io.Writer) error {
	if view == nil {
		return fmt.Errorf("view set cannot be nil")
	}

	switch rg.config.Format {
	case FormatJSON:
		return rg.generateJSON(view, writer)
	case FormatCSV:
		return rg.generateCSV(view, writer)
	default:
		return rg.generateConsole(view, writer)
	}
}

type jsonReport struct {
	TransactionCount int                    `json:"transaction_count"`
	Transactions     []*models.Transaction  `json:"transactions,omitempty"`
	BalanceSeries    []views.BalancePoint   `json:"balance_series,omitempty"`
	SplitAggregation *aggregate.SplitResult `json:"split_aggregation,omitempty"`
	NetAggregation   *aggregate.NetResult   `json:"net_aggregation,omitempty"`
	Counterparties   []string               `json:"counterparties,omitempty"`
	ParseSummary     string                 `json:"parse_summary,omitempty"`
}

func (rg *ReportGenerator) generateJSON(view *ViewSet, writer io.Writer) error {
	report := &jsonReport{
		TransactionCount: len(view.Transactions),
	}

	if rg.config.IncludeTransactions {
		report.Transactions = view.Transactions
	}
	if rg.config.IncludeSeries {
		report.BalanceSeries = view.Series
	}
	if rg.config.IncludeSplit {
		report.SplitAggregation = view.Split
	}
	if rg.config.IncludeNet {
		report.NetAggregation = view.Net
	}
	if rg.config.IncludeCounterparties {
		report.Counterparties = view.Counterparties
	}
	if rg.config.IncludeParseStats && view.ParseStats != nil {
		report.ParseSummary = view.ParseStats.String()
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (rg *ReportGenerator) generateCSV(view *ViewSet, writer io.Writer) error {
	w := csv.NewWriter(writer)
	w.Comma = rg.config.CSVDelimiter
	defer w.Flush()

	writeSection := func(section string, header []string, rows [][]string) error {
		if err := w.Write([]string{"# " + section}); err != nil {
			return err
		}
		if rg.config.CSVHeaders {
			if err := w.Write(header); err != nil {
				return err
			}
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	if rg.config.IncludeSeries {
		rows := make([][]string, 0, len(view.Series))
		for _, point := range view.Series {
			rows = append(rows, []string{
				point.Label,
				point.Balance.String(),
				point.Annotation.Counterparty,
				point.Annotation.Amount.String(),
			})
		}
		if err := writeSection("balance_series", []string{"date", "balance", "counterparty", "amount"}, rows); err != nil {
			return err
		}
	}

	if rg.config.IncludeSplit && view.Split != nil {
		rows := make([][]string, 0, view.Split.Len())
		for i := range view.Split.Labels {
			rows = append(rows, []string{
				view.Split.Labels[i],
				view.Split.Withdrawals[i].String(),
				view.Split.Deposits[i].String(),
			})
		}
		if err := writeSection("split_aggregation", []string{"counterparty", "withdrawals", "deposits"}, rows); err != nil {
			return err
		}
	}

	if rg.config.IncludeNet && view.Net != nil {
		rows := make([][]string, 0, view.Net.Len())
		for i := range view.Net.Labels {
			rows = append(rows, []string{
				view.Net.Labels[i],
				view.Net.Totals[i].String(),
			})
		}
		if err := writeSection("net_aggregation", []string{"counterparty", "net_total"}, rows); err != nil {
			return err
		}
	}

	if rg.config.IncludeCounterparties {
		rows := make([][]string, 0, len(view.Counterparties))
		for _, name := range view.Counterparties {
			rows = append(rows, []string{name})
		}
		if err := writeSection("counterparties", []string{"counterparty"}, rows); err != nil {
			return err
		}
	}

	if rg.config.IncludeTransactions {
		rows := make([][]string, 0, len(view.Transactions))
		for _, tx := range view.Transactions {
			rows = append(rows, []string{
				tx.Date, tx.Counterparty, tx.Title, tx.AccountNumber, tx.Amount, tx.Currency, tx.Balance,
			})
		}
		header := []string{"date", "counterparty", "title", "account_number", "amount", "currency", "balance"}
		if err := writeSection("transactions", header, rows); err != nil {
			return err
		}
	}

	return nil
}

func (rg *ReportGenerator) generateConsole(view *ViewSet, writer io.Writer) error {
	var b strings.Builder

	b.WriteString("TRANSACTION VISUALIZATION REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "Transactions in view: %d\n", len(view.Transactions))
	if rg.config.IncludeParseStats && view.ParseStats != nil {
		fmt.Fprintf(&b, "Parse summary: %s\n", view.ParseStats.String())
	}
	b.WriteString("\n")

	if rg.config.IncludeSeries && len(view.Series) > 0 {
		b.WriteString("BALANCE OVER TIME\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, point := range view.Series {
			fmt.Fprintf(&b, "%-12s  %14s  %s (%s)\n",
				point.Label,
				point.Balance.StringFixed(2),
				point.Annotation.Counterparty,
				point.Annotation.Amount.StringFixed(2))
		}
		b.WriteString("\n")
	}

	if rg.config.IncludeSplit && view.Split != nil && view.Split.Len() > 0 {
		b.WriteString("AMOUNTS BY COUNTERPARTY (WITHDRAWALS / DEPOSITS)\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for i := range view.Split.Labels {
			fmt.Fprintf(&b, "%-30s  %14s  %14s\n",
				truncate(view.Split.Labels[i], 30),
				view.Split.Withdrawals[i].StringFixed(2),
				view.Split.Deposits[i].StringFixed(2))
		}
		b.WriteString("\n")
	}

	if rg.config.IncludeNet && view.Net != nil && view.Net.Len() > 0 {
		b.WriteString("NET TOTAL BY COUNTERPARTY\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for i := range view.Net.Labels {
			fmt.Fprintf(&b, "%-30s  %14s\n",
				truncate(view.Net.Labels[i], 30),
				view.Net.Totals[i].StringFixed(2))
		}
		b.WriteString("\n")
	}

	if rg.config.IncludeCounterparties && len(view.Counterparties) > 0 {
		b.WriteString("COUNTERPARTIES\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, name := range view.Counterparties {
			fmt.Fprintf(&b, "  %s\n", name)
		}
		b.WriteString("\n")
	}

	if rg.config.IncludeTransactions && len(view.Transactions) > 0 {
		b.WriteString("TRANSACTION LIST\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, tx := range view.Transactions {
			fmt.Fprintf(&b, "%-12s  %-30s  %12s %s  bal %s\n",
				tx.Date,
				truncate(tx.Counterparty, 30),
				tx.Amount,
				tx.Currency,
				tx.Balance)
			if tx.Title != "" {
				fmt.Fprintf(&b, "              %s\n", truncate(tx.Title, 46))
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(writer, b.String())
	return err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
