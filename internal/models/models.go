// Package models defines the canonical transaction record produced by the
// statement parser and consumed by every derived view.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single normalized bank-statement record.
//
// Amount and Balance keep the source text with the decimal separator
// normalized to a dot, so the listing view can display exactly what the bank
// reported (including trailing zeros the decimal type would drop).
// AmountValue and BalanceValue carry the parsed values used by every
// numeric computation. A Transaction is never mutated after construction.
type Transaction struct {
	Date          string          `json:"transactionDate"`
	Counterparty  string          `json:"counterparty"`
	Title         string          `json:"title"`
	AccountNumber string          `json:"accountNumber"`
	Amount        string          `json:"amount"`
	Currency      string          `json:"currency"`
	Balance       string          `json:"balance"`
	AmountValue   decimal.Decimal `json:"-"`
	BalanceValue  decimal.Decimal `json:"-"`
}

// NewTransaction builds a Transaction from raw statement cells.
//
// The amount and balance cells have their comma decimal separators
// normalized to dots before parsing. An error is returned when either cell
// does not parse as a decimal; callers exclude such rows so that an
// unparseable value can never reach an aggregate. Negative amounts are
// withdrawals, positive amounts are deposits, zero is valid and inert.
func NewTransaction(date, counterparty, title, accountNumber, amount, currency, balance string) (*Transaction, error) {
	normalizedAmount := NormalizeDecimalSeparator(amount)
	amountValue, err := decimal.NewFromString(normalizedAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	normalizedBalance := NormalizeDecimalSeparator(balance)
	balanceValue, err := decimal.NewFromString(normalizedBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance %q: %w", balance, err)
	}

	return &Transaction{
		Date:          date,
		Counterparty:  counterparty,
		Title:         title,
		AccountNumber: accountNumber,
		Amount:        normalizedAmount,
		Currency:      currency,
		Balance:       normalizedBalance,
		AmountValue:   amountValue,
		BalanceValue:  balanceValue,
	}, nil
}

// IsWithdrawal returns true if the transaction amount is negative
func (t *Transaction) IsWithdrawal() bool {
	return t.AmountValue.IsNegative()
}

// IsDeposit returns true if the transaction amount is positive
func (t *Transaction) IsDeposit() bool {
	return t.AmountValue.IsPositive()
}

// TrimmedCounterparty returns the counterparty name with surrounding
// whitespace removed, the uniform grouping key for both aggregations.
func (t *Transaction) TrimmedCounterparty() string {
	return strings.TrimSpace(t.Counterparty)
}

// String returns a string representation of the Transaction
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction{Date: %s, Counterparty: %s, Amount: %s %s, Balance: %s}",
		t.Date, t.Counterparty, t.Amount, t.Currency, t.Balance)
}

// Equals compares two Transaction instances for equality
func (t *Transaction) Equals(other *Transaction) bool {
	if other == nil {
		return false
	}

	return t.Date == other.Date &&
		t.Counterparty == other.Counterparty &&
		t.Title == other.Title &&
		t.AccountNumber == other.AccountNumber &&
		t.Currency == other.Currency &&
		t.AmountValue.Equal(other.AmountValue) &&
		t.BalanceValue.Equal(other.BalanceValue)
}

// NormalizeDecimalSeparator converts a comma decimal separator to a dot.
// The source export uses commas; no thousands separators are handled.
func NormalizeDecimalSeparator(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

// DefaultDateFormats lists the date layouts tried when parsing a statement
// date token, most specific first.
var DefaultDateFormats = []string{
	"2006-01-02",
	"02.01.2006",
	"02-01-2006",
	"2006/01/02",
	"01/02/2006",
}

// ParseDateToken attempts to parse a statement date token using the given
// layouts, falling back to DefaultDateFormats when none are provided.
func ParseDateToken(s string, formats []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date token cannot be empty")
	}

	if len(formats) == 0 {
		formats = DefaultDateFormats
	}

	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date %q: %w", s, lastErr)
}
