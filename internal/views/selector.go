package views

import (
	"github.com/zahnno/visualize-txn/internal/models"
)

// DistinctCounterparties returns the distinct counterparty values observed,
// preserving first-seen order. Values are compared raw, exactly as they
// appear in the source field.
func DistinctCounterparties(transactions []*models.Transaction) []string {
	seen := make(map[string]struct{})
	var distinct []string

	for _, tx := range transactions {
		if _, ok := seen[tx.Counterparty]; ok {
			continue
		}
		seen[tx.Counterparty] = struct{}{}
		distinct = append(distinct, tx.Counterparty)
	}

	return distinct
}

// SelectCounterparty filters a batch down to the transactions whose
// counterparty field equals the selected value exactly (no trimming).
// An empty selection is the identity: the full input is returned.
func SelectCounterparty(transactions []*models.Transaction, selected string) []*models.Transaction {
	if selected == "" {
		return transactions
	}

	filtered := make([]*models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Counterparty == selected {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
