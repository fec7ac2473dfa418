// Package views derives the presentation-ready data sets from a transaction
// batch: the date-filtered listing, the balance trend series, and the
// distinct-counterparty selection. Every function here is a pure function of
// its inputs and recomputes from scratch on each call.
package views

import (
	"time"

	"github.com/zahnno/visualize-txn/internal/models"
	"github.com/zahnno/visualize-txn/pkg/logger"
)

// DateRange holds the optional inclusive bounds of a date filter
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsBounded reports whether both bounds are set
func (r DateRange) IsBounded() bool {
	return r.Start != nil && r.End != nil
}

// FilterByDateRange returns the subsequence of transactions whose date falls
// within [Start, End] inclusive.
//
// When either bound is unset the full input is returned unmodified; there is
// no partial filtering on one bound alone. Transactions whose date token
// does not parse are excluded from a bounded result rather than risking an
// undefined comparison. A reversed range yields an empty, non-erroneous
// result.
func FilterByDateRange(transactions []*models.Transaction, bounds DateRange, dateFormats []string) []*models.Transaction {
	if !bounds.IsBounded() {
		return transactions
	}

	log := logger.GetGlobalLogger().WithComponent("date_filter")
	filtered := make([]*models.Transaction, 0, len(transactions))
	excluded := 0

	for _, tx := range transactions {
		date, err := models.ParseDateToken(tx.Date, dateFormats)
		if err != nil {
			excluded++
			continue
		}
		if date.Before(*bounds.Start) || date.After(*bounds.End) {
			continue
		}
		filtered = append(filtered, tx)
	}

	if excluded > 0 {
		log.WithFields(logger.Fields{
			"excluded": excluded,
			"total":    len(transactions),
		}).Warn("Excluded transactions with unparseable dates from filtered view")
	}

	return filtered
}
