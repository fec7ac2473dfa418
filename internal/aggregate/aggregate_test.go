package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/zahnno/visualize-txn/internal/models"
)

func mustTransaction(t *testing.T, counterparty, amount string) *models.Transaction {
	t.Helper()
	tx, err := models.NewTransaction("2024-01-01", counterparty, "", "", amount, "PLN", "0,00")
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	return tx
}

func splitConfig(t *testing.T, minWithdrawal, minDeposit string) *SplitConfig {
	t.Helper()
	return &SplitConfig{
		MinWithdrawal: decimal.RequireFromString(minWithdrawal),
		MinDeposit:    decimal.RequireFromString(minDeposit),
	}
}

func TestSplitConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		minWithdrawal string
		minDeposit    string
		wantErr       bool
	}{
		{"conventional signs", "-1000", "1000", false},
		{"zero thresholds", "0", "0", false},
		{"positive withdrawal threshold", "5", "1000", true},
		{"negative deposit threshold", "-1000", "-5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := splitConfig(t, tt.minWithdrawal, tt.minDeposit).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAggregateSplit_ThresholdSemantics(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "A", "-500,00"),
		mustTransaction(t, "A", "-1500,00"),
		mustTransaction(t, "B", "2000,00"),
	}

	result := AggregateSplit(batch, splitConfig(t, "-1000", "1000"))

	if result.Len() != 2 {
		t.Fatalf("got %d counterparties, want 2: %v", result.Len(), result.Labels)
	}

	// -500 is not less than -1000, so only the -1500 entry qualifies for A
	if result.Labels[0] != "A" {
		t.Errorf("Labels[0] = %q, want A", result.Labels[0])
	}
	if want := decimal.NewFromInt(-1500); !result.Withdrawals[0].Equal(want) {
		t.Errorf("A withdrawals = %s, want %s", result.Withdrawals[0], want)
	}
	if !result.Deposits[0].IsZero() {
		t.Errorf("A deposits = %s, want 0", result.Deposits[0])
	}

	if result.Labels[1] != "B" {
		t.Errorf("Labels[1] = %q, want B", result.Labels[1])
	}
	if want := decimal.NewFromInt(2000); !result.Deposits[1].Equal(want) {
		t.Errorf("B deposits = %s, want %s", result.Deposits[1], want)
	}
}

func TestAggregateSplit_DropsZeroOnlyCounterparties(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "Quiet", "-500,00"), // below magnitude threshold, never accumulates
		mustTransaction(t, "Loud", "-2000,00"),
	}

	result := AggregateSplit(batch, splitConfig(t, "-1000", "1000"))

	if result.Len() != 1 || result.Labels[0] != "Loud" {
		t.Errorf("Labels = %v, want only Loud (zero-total counterparty dropped)", result.Labels)
	}
}

func TestAggregateSplit_LastTouchedElimination(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "A", "-2000,00"),
		mustTransaction(t, "B", "3000,00"),
	}

	result := AggregateSplit(batch, splitConfig(t, "-1000", "1000"))
	if result.Len() != 2 || result.Labels[0] != "A" || result.Labels[1] != "B" {
		t.Fatalf("Labels = %v, want [A B]", result.Labels)
	}

	// The elimination check runs after every update, so a counterparty that
	// is created and immediately dropped re-enters at the back of the order
	// once a later transaction finally qualifies.
	batch = []*models.Transaction{
		mustTransaction(t, "A", "-500,00"),  // A created, dropped (both totals zero)
		mustTransaction(t, "B", "3000,00"),  // B qualifies, first surviving entry
		mustTransaction(t, "A", "-2000,00"), // A resurrected behind B
	}

	result = AggregateSplit(batch, splitConfig(t, "-1000", "1000"))
	if result.Len() != 2 {
		t.Fatalf("got %d counterparties, want 2: %v", result.Len(), result.Labels)
	}
	if result.Labels[0] != "B" || result.Labels[1] != "A" {
		t.Errorf("Labels = %v, want [B A] (A re-enters at the back)", result.Labels)
	}
}

func TestAggregateSplit_TrimsGroupingKey(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "ACME", "-2000,00"),
		mustTransaction(t, "  ACME  ", "-3000,00"),
	}

	result := AggregateSplit(batch, splitConfig(t, "-1000", "1000"))

	if result.Len() != 1 {
		t.Fatalf("Labels = %v, want the padded and bare names grouped together", result.Labels)
	}
	if want := decimal.NewFromInt(-5000); !result.Withdrawals[0].Equal(want) {
		t.Errorf("withdrawals = %s, want %s", result.Withdrawals[0], want)
	}
}

func TestAggregateSplit_Defaults(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "A", "-1500,00"),
	}
	result := AggregateSplit(batch, nil)
	if result.Len() != 1 {
		t.Errorf("nil config should use defaults (-1000/1000), got %v", result.Labels)
	}
}

func TestAggregateNet_SignedThreshold(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, " X", "10,00"),
		mustTransaction(t, "X ", "-5,00"),
	}

	t.Run("non-negative threshold selects strictly above", func(t *testing.T) {
		result := AggregateNet(batch, &NetConfig{MinAmount: decimal.Zero})
		if result.Len() != 1 || result.Labels[0] != "X" {
			t.Fatalf("Labels = %v, want [X] (trimmed grouping, net 5 > 0)", result.Labels)
		}
		if want := decimal.NewFromInt(5); !result.Totals[0].Equal(want) {
			t.Errorf("net = %s, want %s", result.Totals[0], want)
		}
	})

	t.Run("threshold above the net excludes", func(t *testing.T) {
		result := AggregateNet(batch, &NetConfig{MinAmount: decimal.NewFromInt(100)})
		if result.Len() != 0 {
			t.Errorf("Labels = %v, want empty (5 is not > 100)", result.Labels)
		}
	})

	t.Run("negative threshold selects strictly below", func(t *testing.T) {
		spend := []*models.Transaction{
			mustTransaction(t, "Rent", "-3000,00"),
			mustTransaction(t, "Coffee", "-200,00"),
		}
		result := AggregateNet(spend, &NetConfig{MinAmount: decimal.NewFromInt(-1000)})
		if result.Len() != 1 || result.Labels[0] != "Rent" {
			t.Errorf("Labels = %v, want [Rent]", result.Labels)
		}
	})

	t.Run("zero net total never survives", func(t *testing.T) {
		wash := []*models.Transaction{
			mustTransaction(t, "W", "100,00"),
			mustTransaction(t, "W", "-100,00"),
		}
		result := AggregateNet(wash, &NetConfig{MinAmount: decimal.Zero})
		if result.Len() != 0 {
			t.Errorf("Labels = %v, want empty for a zero net", result.Labels)
		}
	})
}

func TestAggregateNet_FirstInsertionOrder(t *testing.T) {
	batch := []*models.Transaction{
		mustTransaction(t, "B", "500,00"),
		mustTransaction(t, "A", "700,00"),
		mustTransaction(t, "B", "100,00"),
	}

	result := AggregateNet(batch, &NetConfig{MinAmount: decimal.Zero})
	if result.Len() != 2 || result.Labels[0] != "B" || result.Labels[1] != "A" {
		t.Errorf("Labels = %v, want [B A] (first-insertion order)", result.Labels)
	}
}
