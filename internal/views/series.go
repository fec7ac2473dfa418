package views

import (
	"github.com/shopspring/decimal"

	"github.com/zahnno/visualize-txn/internal/models"
)

// PointAnnotation carries the inspection details displayed alongside a
// balance point (tooltip content in the presentation layer).
type PointAnnotation struct {
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

// BalancePoint is one point of the balance trend series
type BalancePoint struct {
	Label      string          `json:"label"`
	Balance    decimal.Decimal `json:"balance"`
	Annotation PointAnnotation `json:"annotation"`
}

// BuildBalanceSeries projects a transaction batch into an ordered
// (date label, balance) series for trend display.
//
// Input order is preserved as given by the source file (assumed
// chronological); no independent sort is performed. The output is
// index-aligned with the input: N transactions yield exactly N points, and a
// date appearing on multiple transactions yields multiple points at that
// label with the literal balance of each.
func BuildBalanceSeries(transactions []*models.Transaction) []BalancePoint {
	series := make([]BalancePoint, 0, len(transactions))

	for _, tx := range transactions {
		series = append(series, BalancePoint{
			Label:   tx.Date,
			Balance: tx.BalanceValue,
			Annotation: PointAnnotation{
				Counterparty: tx.Counterparty,
				Amount:       tx.AmountValue,
				Currency:     tx.Currency,
			},
		})
	}

	return series
}
