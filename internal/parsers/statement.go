package parsers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/zahnno/visualize-txn/internal/models"
	"github.com/zahnno/visualize-txn/pkg/errors"
	"github.com/zahnno/visualize-txn/pkg/logger"
)

// StatementParser converts a statement export into Transaction records
type StatementParser struct {
	*BaseParser
	config   *StatementConfig
	logger   logger.Logger
	progress *logger.ProgressTracker
}

// NewStatementParser creates a new StatementParser with the given layout.
// A nil config selects the standard export layout.
func NewStatementParser(config *StatementConfig) (*StatementParser, error) {
	if config == nil {
		config = DefaultStatementConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(
			errors.CodeInvalidConfig,
			"statement_config",
			config.Name,
			err,
		).WithSuggestion("Check the statement layout configuration values")
	}

	parseConfig := &ParseConfig{
		HasHeader:        config.HasHeader,
		Delimiter:        config.Delimiter,
		Comment:          0,
		TrimLeadingSpace: true,
		SkipEmptyRows:    true,
		MaxFieldSize:     1000000,
		ValidateEncoding: true,
	}

	log := logger.GetGlobalLogger().WithComponent("statement_parser")
	log.WithFields(logger.Fields{
		"layout":     config.Name,
		"has_header": config.HasHeader,
		"delimiter":  string(config.Delimiter),
	}).Debug("Created statement parser")

	return &StatementParser{
		BaseParser: NewBaseParser(parseConfig),
		config:     config,
		logger:     log,
	}, nil
}

// SetProgressTracker attaches a tracker that is incremented once per data row
func (sp *StatementParser) SetProgressTracker(tracker *logger.ProgressTracker) {
	sp.progress = tracker
}

// ParseStatement parses a statement export file into a transaction batch
func (sp *StatementParser) ParseStatement(filePath string) ([]*models.Transaction, *ParseStats, error) {
	return sp.ParseStatementWithContext(context.Background(), filePath)
}

// ParseStatementWithContext parses a statement file with cancellation support
func (sp *StatementParser) ParseStatementWithContext(ctx context.Context, filePath string) ([]*models.Transaction, *ParseStats, error) {
	sp.logger.WithFields(logger.Fields{
		"file_path": filePath,
		"operation": "parse_statement",
	}).Info("Starting statement parsing")

	file, reader, err := sp.OpenFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	transactions, stats, err := sp.parse(ctx, reader)
	if err != nil {
		return transactions, stats, err
	}

	sp.logger.WithFields(logger.Fields{
		"file_path": filePath,
		"summary":   stats.String(),
	}).Info("Finished statement parsing")

	if stats.HasErrors() {
		sp.logger.WithField("sample_errors", stats.GetSampleErrors(5)).
			Warn("Some rows were excluded due to parse errors")
	}

	return transactions, stats, nil
}

// ParseStatementReader parses statement rows from an io.Reader
func (sp *StatementParser) ParseStatementReader(ctx context.Context, r io.Reader) ([]*models.Transaction, *ParseStats, error) {
	reader := csv.NewReader(r)
	sp.ConfigureReader(reader)
	return sp.parse(ctx, reader)
}

func (sp *StatementParser) parse(ctx context.Context, reader *csv.Reader) ([]*models.Transaction, *ParseStats, error) {
	parseCtx := NewParseContext(ctx)
	stats := NewParseStats()

	if err := sp.ConsumeHeader(reader, parseCtx); err != nil {
		return nil, stats, err
	}

	var transactions []*models.Transaction

	for {
		if parseCtx.IsCancelled() {
			return transactions, stats, errors.InternalError(
				errors.CodeUnexpectedError,
				"statement_parsing",
				fmt.Errorf("parsing cancelled by context"),
			)
		}

		record, err := sp.ReadRecord(reader, parseCtx)
		if err != nil {
			if err == io.EOF {
				break
			}
			stats.AddError(&ParseError{
				Line:    parseCtx.LineNumber,
				Message: "failed to read record",
				Err:     err,
			})
			continue
		}

		stats.RecordsParsed++
		if sp.progress != nil {
			sp.progress.Increment()
		}

		// Header/footer noise rows in this format carry no amount cell.
		// They are not zero-value transactions; drop them silently.
		amountCell, present := FieldAt(record, sp.config.AmountColumn)
		if !present || strings.TrimSpace(amountCell) == "" {
			stats.RecordsSkipped++
			continue
		}

		// Leaked header quirk: the export's true header spans multiple
		// source lines, so the first row surviving the amount filter is a
		// duplicated header fragment, not a transaction. Its amount cell
		// holds header text, so it must go before numeric validation.
		if sp.config.DropLeadingArtifactRow && !stats.ArtifactRowDropped {
			stats.ArtifactRowDropped = true
			stats.RecordsSkipped++
			sp.logger.WithField("line_number", parseCtx.LineNumber).
				Debug("Dropped leading artifact row")
			continue
		}

		transaction, parseErr := sp.transactionFromRecord(record, parseCtx)
		if parseErr != nil {
			stats.AddError(parseErr)
			continue
		}

		transactions = append(transactions, transaction)
		stats.RecordsValid++
	}

	stats.TotalLines = parseCtx.LineNumber
	return transactions, stats, nil
}

// transactionFromRecord maps one surviving row onto a Transaction.
//
// Only the amount and balance cells are validated; every other field passes
// through as raw text since it is display-only.
func (sp *StatementParser) transactionFromRecord(record []string, parseCtx *ParseContext) (*models.Transaction, *ParseError) {
	cell := func(index int) string {
		value, _ := FieldAt(record, index)
		return value
	}

	amount := cell(sp.config.AmountColumn)

	transaction, err := models.NewTransaction(
		cell(sp.config.DateColumn),
		cell(sp.config.CounterpartyColumn),
		cell(sp.config.TitleColumn),
		cell(sp.config.AccountNumberColumn),
		amount,
		cell(sp.config.CurrencyColumn),
		cell(sp.config.BalanceColumn),
	)
	if err != nil {
		sp.logger.WithError(err).WithField("line_number", parseCtx.LineNumber).
			Debug("Excluding row with unparseable numeric field")
		return nil, &ParseError{
			Line:    parseCtx.LineNumber,
			Column:  sp.config.AmountColumn,
			Field:   "amount/balance",
			Value:   amount,
			Message: "row excluded: numeric field did not parse",
			Err:     err,
		}
	}

	return transaction, nil
}
