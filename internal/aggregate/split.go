package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/zahnno/visualize-txn/internal/models"
)

// SplitResult holds the split aggregation as parallel sequences aligned by
// index, ready for a two-dataset bar chart.
type SplitResult struct {
	Labels      []string          `json:"labels"`
	Withdrawals []decimal.Decimal `json:"withdrawals"`
	Deposits    []decimal.Decimal `json:"deposits"`
}

// Len returns the number of counterparties in the result
func (r *SplitResult) Len() int {
	return len(r.Labels)
}

type splitTotals struct {
	withdrawals decimal.Decimal
	deposits    decimal.Decimal
}

// AggregateSplit accumulates per-counterparty withdrawal and deposit totals
// bounded by the two independent thresholds.
//
// A withdrawal contributes only when amount < MinWithdrawal (strictly more
// negative, i.e. larger in magnitude); a deposit only when
// amount > MinDeposit. The zero-elimination check runs after every single
// update, not once at the end: a counterparty whose running totals are both
// exactly zero after its most recent update is removed, and re-enters at the
// back of the order if a later transaction touches it again. A counterparty
// therefore appears in the output iff its last-touched update left a nonzero
// combined total.
func AggregateSplit(transactions []*models.Transaction, config *SplitConfig) *SplitResult {
	if config == nil {
		config = DefaultSplitConfig()
	}

	totals := make(map[string]*splitTotals)
	order := make([]string, 0)

	for _, tx := range transactions {
		key := tx.TrimmedCounterparty()

		entry, exists := totals[key]
		if !exists {
			entry = &splitTotals{
				withdrawals: decimal.Zero,
				deposits:    decimal.Zero,
			}
			totals[key] = entry
			order = append(order, key)
		}

		amount := tx.AmountValue
		if amount.IsNegative() && amount.LessThan(config.MinWithdrawal) {
			entry.withdrawals = entry.withdrawals.Add(amount)
		} else if amount.IsPositive() && amount.GreaterThan(config.MinDeposit) {
			entry.deposits = entry.deposits.Add(amount)
		}

		if entry.withdrawals.IsZero() && entry.deposits.IsZero() {
			delete(totals, key)
			order = removeKey(order, key)
		}
	}

	result := &SplitResult{
		Labels:      make([]string, 0, len(order)),
		Withdrawals: make([]decimal.Decimal, 0, len(order)),
		Deposits:    make([]decimal.Decimal, 0, len(order)),
	}
	for _, key := range order {
		entry := totals[key]
		result.Labels = append(result.Labels, key)
		result.Withdrawals = append(result.Withdrawals, entry.withdrawals)
		result.Deposits = append(result.Deposits, entry.deposits)
	}
	return result
}

func removeKey(order []string, key string) []string {
	for i, k := range order {
		if k == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
