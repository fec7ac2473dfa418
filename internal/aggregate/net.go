package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/zahnno/visualize-txn/internal/models"
)

// NetResult holds the net aggregation as parallel sequences aligned by
// index, ready for a distribution (pie) chart.
type NetResult struct {
	Labels []string          `json:"labels"`
	Totals []decimal.Decimal `json:"totals"`
}

// Len returns the number of counterparties in the result
func (r *NetResult) Len() int {
	return len(r.Labels)
}

// AggregateNet sums every amount unconditionally per trimmed counterparty,
// then applies the signed threshold at the output-selection stage only.
//
// A counterparty is emitted iff the threshold is negative and its net total
// is strictly below it, or the threshold is non-negative and its net total
// is strictly above it. Either way a zero net total never survives. Output
// order is the first-insertion order of the grouping.
func AggregateNet(transactions []*models.Transaction, config *NetConfig) *NetResult {
	if config == nil {
		config = DefaultNetConfig()
	}

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, tx := range transactions {
		key := tx.TrimmedCounterparty()
		if _, exists := totals[key]; !exists {
			totals[key] = decimal.Zero
			order = append(order, key)
		}
		totals[key] = totals[key].Add(tx.AmountValue)
	}

	result := &NetResult{
		Labels: make([]string, 0, len(order)),
		Totals: make([]decimal.Decimal, 0, len(order)),
	}

	min := config.MinAmount
	for _, key := range order {
		net := totals[key]
		if (min.IsNegative() && net.LessThan(min)) ||
			(!min.IsNegative() && net.GreaterThan(min)) {
			result.Labels = append(result.Labels, key)
			result.Totals = append(result.Totals, net)
		}
	}
	return result
}
