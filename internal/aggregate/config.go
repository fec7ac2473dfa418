// Package aggregate implements the two per-counterparty aggregations behind
// the comparative bar view and the distribution view.
//
// Both aggregations group by the whitespace-trimmed counterparty name and
// recompute from the full filtered batch on every call; no state is retained
// between runs.
package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitConfig holds the thresholds for the split withdrawal/deposit view.
// MinWithdrawal selects withdrawals larger in magnitude than the threshold
// (amount < MinWithdrawal); MinDeposit selects deposits strictly above it.
type SplitConfig struct {
	MinWithdrawal decimal.Decimal `json:"min_withdrawal"`
	MinDeposit    decimal.Decimal `json:"min_deposit"`
}

// DefaultSplitConfig returns the thresholds the presentation layer starts
// with: withdrawals under -1000 and deposits over 1000.
func DefaultSplitConfig() *SplitConfig {
	return &SplitConfig{
		MinWithdrawal: decimal.NewFromInt(-1000),
		MinDeposit:    decimal.NewFromInt(1000),
	}
}

// Validate checks that the thresholds carry their conventional signs
func (c *SplitConfig) Validate() error {
	if c.MinWithdrawal.IsPositive() {
		return fmt.Errorf("min withdrawal threshold must be zero or negative, got %s", c.MinWithdrawal)
	}
	if c.MinDeposit.IsNegative() {
		return fmt.Errorf("min deposit threshold must be zero or positive, got %s", c.MinDeposit)
	}
	return nil
}

// NetConfig holds the single signed threshold of the net distribution view.
// A negative threshold selects counterparties whose net total is strictly
// below it; a non-negative threshold selects net totals strictly above it.
type NetConfig struct {
	MinAmount decimal.Decimal `json:"min_amount"`
}

// DefaultNetConfig returns the threshold the presentation layer starts with
func DefaultNetConfig() *NetConfig {
	return &NetConfig{
		MinAmount: decimal.NewFromInt(-1000),
	}
}
