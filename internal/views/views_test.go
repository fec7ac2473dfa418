package views

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahnno/visualize-txn/internal/models"
)

func mustTransaction(t *testing.T, date, counterparty, amount, balance string) *models.Transaction {
	t.Helper()
	tx, err := models.NewTransaction(date, counterparty, "", "", amount, "PLN", balance)
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	return tx
}

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("time.Parse(%q) error = %v", value, err)
	}
	return &parsed
}

func TestFilterByDateRange(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "2024-01-15", "A", "-10,00", "90,00"),
		mustTransaction(t, "2024-02-01", "B", "20,00", "110,00"),
	}

	t.Run("bounded range keeps January only", func(t *testing.T) {
		got := FilterByDateRange(batch, DateRange{Start: date(t, "2024-01-01"), End: date(t, "2024-01-31")}, nil)
		if len(got) != 1 || got[0].Counterparty != "A" {
			t.Errorf("got %d transactions, want only the January one", len(got))
		}
	})

	t.Run("boundary dates are inclusive", func(t *testing.T) {
		got := FilterByDateRange(batch, DateRange{Start: date(t, "2024-01-15"), End: date(t, "2024-02-01")}, nil)
		if len(got) != 2 {
			t.Errorf("got %d transactions, want 2 (both on the bounds)", len(got))
		}
	})

	t.Run("unset bound is the identity", func(t *testing.T) {
		if got := FilterByDateRange(batch, DateRange{Start: date(t, "2024-01-01")}, nil); len(got) != len(batch) {
			t.Errorf("start-only filter modified the batch: got %d, want %d", len(got), len(batch))
		}
		if got := FilterByDateRange(batch, DateRange{End: date(t, "2024-01-31")}, nil); len(got) != len(batch) {
			t.Errorf("end-only filter modified the batch: got %d, want %d", len(got), len(batch))
		}
		if got := FilterByDateRange(batch, DateRange{}, nil); len(got) != len(batch) {
			t.Errorf("unbounded filter modified the batch: got %d, want %d", len(got), len(batch))
		}
	})

	t.Run("filtering twice equals filtering once", func(t *testing.T) {
		bounds := DateRange{Start: date(t, "2024-01-01"), End: date(t, "2024-01-31")}
		once := FilterByDateRange(batch, bounds, nil)
		twice := FilterByDateRange(once, bounds, nil)
		if len(once) != len(twice) {
			t.Errorf("filter is not idempotent: %d vs %d", len(once), len(twice))
		}
	})

	t.Run("reversed range yields empty result", func(t *testing.T) {
		got := FilterByDateRange(batch, DateRange{Start: date(t, "2024-02-01"), End: date(t, "2024-01-01")}, nil)
		if len(got) != 0 {
			t.Errorf("got %d transactions, want 0 for reversed bounds", len(got))
		}
	})

	t.Run("unparseable date is excluded from bounded result", func(t *testing.T) {
		withBad := append([]*models.Transaction{
			mustTransaction(t, "not a date", "X", "-5,00", "85,00"),
		}, batch...)
		got := FilterByDateRange(withBad, DateRange{Start: date(t, "2024-01-01"), End: date(t, "2024-12-31")}, nil)
		for _, tx := range got {
			if tx.Counterparty == "X" {
				t.Error("transaction with unparseable date leaked into bounded result")
			}
		}
		if len(got) != 2 {
			t.Errorf("got %d transactions, want 2", len(got))
		}
	})
}

func TestBuildBalanceSeries(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "2024-01-05", "A", "-10,00", "90,00"),
		mustTransaction(t, "2024-01-05", "B", "5,00", "95,00"),
		mustTransaction(t, "2024-01-20", "C", "1,00", "96,00"),
	}

	series := BuildBalanceSeries(batch)

	if len(series) != len(batch) {
		t.Fatalf("got %d points, want %d (length preserved)", len(series), len(batch))
	}

	for i, point := range series {
		if point.Label != batch[i].Date {
			t.Errorf("point %d label = %q, want %q", i, point.Label, batch[i].Date)
		}
		if !point.Balance.Equal(batch[i].BalanceValue) {
			t.Errorf("point %d balance = %s, want %s", i, point.Balance, batch[i].BalanceValue)
		}
		if point.Annotation.Counterparty != batch[i].Counterparty {
			t.Errorf("point %d annotation counterparty = %q", i, point.Annotation.Counterparty)
		}
		if !point.Annotation.Amount.Equal(batch[i].AmountValue) {
			t.Errorf("point %d annotation amount = %s", i, point.Annotation.Amount)
		}
	}

	// Same-date points are not deduplicated
	if series[0].Label != series[1].Label {
		t.Error("expected two points sharing the 2024-01-05 label")
	}
	if series[0].Balance.Equal(series[1].Balance) {
		t.Error("same-date points should keep their literal balances")
	}

	if got := BuildBalanceSeries(nil); len(got) != 0 {
		t.Errorf("empty batch should yield an empty series, got %d points", len(got))
	}

	want := decimal.RequireFromString("96.00")
	if !series[2].Balance.Equal(want) {
		t.Errorf("last balance = %s, want %s", series[2].Balance, want)
	}
}

func TestDistinctCounterparties(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "2024-01-01", "A", "1,00", "1,00"),
		mustTransaction(t, "2024-01-02", "B", "1,00", "2,00"),
		mustTransaction(t, "2024-01-03", "A", "1,00", "3,00"),
	}

	got := DistinctCounterparties(batch)
	want := []string{"A", "B"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("distinct[%d] = %q, want %q (first-seen order)", i, got[i], want[i])
		}
	}
}

func TestSelectCounterparty(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "2024-01-01", "A", "1,00", "1,00"),
		mustTransaction(t, "2024-01-02", "B", "1,00", "2,00"),
		mustTransaction(t, "2024-01-03", "A", "1,00", "3,00"),
	}

	t.Run("exact match returns 1st and 3rd", func(t *testing.T) {
		got := SelectCounterparty(batch, "A")
		if len(got) != 2 {
			t.Fatalf("got %d transactions, want 2", len(got))
		}
		if got[0] != batch[0] || got[1] != batch[2] {
			t.Error("selection should return the 1st and 3rd transactions in order")
		}
	})

	t.Run("no trimming on match", func(t *testing.T) {
		padded := append(batch, mustTransaction(t, "2024-01-04", " A ", "1,00", "4,00"))
		if got := SelectCounterparty(padded, "A"); len(got) != 2 {
			t.Errorf("padded counterparty matched exact selection: got %d, want 2", len(got))
		}
		if got := SelectCounterparty(padded, " A "); len(got) != 1 {
			t.Errorf("exact padded selection: got %d, want 1", len(got))
		}
	})

	t.Run("empty selection is the identity", func(t *testing.T) {
		if got := SelectCounterparty(batch, ""); len(got) != len(batch) {
			t.Errorf("got %d transactions, want %d", len(got), len(batch))
		}
	})
}
