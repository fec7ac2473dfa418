package parsers

import (
	"fmt"
	"strings"
)

// StatementConfig describes the fixed column layout of a statement export.
//
// The column positions are an external contract fixed by the issuing
// institution, not a design choice. Rows in the export are ragged: cells
// past the last populated column are simply absent.
type StatementConfig struct {
	Name                   string   `json:"name"`
	DateColumn             int      `json:"date_column"`
	CounterpartyColumn     int      `json:"counterparty_column"`
	TitleColumn            int      `json:"title_column"`
	AccountNumberColumn    int      `json:"account_number_column"`
	AmountColumn           int      `json:"amount_column"`
	CurrencyColumn         int      `json:"currency_column"`
	BalanceColumn          int      `json:"balance_column"`
	HasHeader              bool     `json:"has_header"`
	Delimiter              rune     `json:"delimiter"`
	DateFormats            []string `json:"date_formats,omitempty"`
	DropLeadingArtifactRow bool     `json:"drop_leading_artifact_row"`
	Description            string   `json:"description,omitempty"`
}

// Validate checks if the statement configuration is valid
func (sc *StatementConfig) Validate() error {
	if strings.TrimSpace(sc.Name) == "" {
		return fmt.Errorf("statement config name cannot be empty")
	}

	columns := map[string]int{
		"date":           sc.DateColumn,
		"counterparty":   sc.CounterpartyColumn,
		"title":          sc.TitleColumn,
		"account_number": sc.AccountNumberColumn,
		"amount":         sc.AmountColumn,
		"currency":       sc.CurrencyColumn,
		"balance":        sc.BalanceColumn,
	}
	for name, index := range columns {
		if index < 0 {
			return fmt.Errorf("%s column index cannot be negative, got %d", name, index)
		}
	}

	if sc.AmountColumn == sc.BalanceColumn {
		return fmt.Errorf("amount and balance cannot share column %d", sc.AmountColumn)
	}

	return nil
}

// DefaultStatementConfig returns the layout of the supported bank export.
//
// The export's true header spans multiple lines, so the first data row is a
// duplicated header fragment; DropLeadingArtifactRow strips it. See the
// parse loop in statement.go.
func DefaultStatementConfig() *StatementConfig {
	return &StatementConfig{
		Name:                   "Standard",
		DateColumn:             0,
		CounterpartyColumn:     1,
		TitleColumn:            2,
		AccountNumberColumn:    3,
		AmountColumn:           6,
		CurrencyColumn:         7,
		BalanceColumn:          12,
		HasHeader:              true,
		Delimiter:              ',',
		DropLeadingArtifactRow: true,
		Description:            "Delimited export with date, counterparty, title, account, amount, currency and running balance at fixed positions",
	}
}
