package allocation

import (
	"errors"
	"testing"
)

func TestPlanRebalance_Scenario(t *testing.T) {
	holdings := Holdings{holding("AAA", 80, 100), holding("BBB", 40, 50)}
	total := holdings.TotalValue()
	if !total.Equal(USD(10000)) {
		t.Fatalf("TotalValue() = %v, want $10,000", total)
	}

	plan, err := PlanRebalance(holdings, holdings.Weights(), []float64{0.5, 0.5}, total, 0.01)
	if err != nil {
		t.Fatalf("PlanRebalance() error = %v", err)
	}
	want := []struct {
		action Action
		amount Money
		shares Quantity
	}{
		{Sell, USD(3000), Q(30)},
		{Buy, USD(3000), Q(60)},
	}
	for i, w := range want {
		adj := plan.Adjustments[i]
		if adj.Action != w.action {
			t.Errorf("%s action = %v, want %v", adj.Symbol, adj.Action, w.action)
		}
		if !adj.Amount.Equal(w.amount) {
			t.Errorf("%s amount = %v, want %v", adj.Symbol, adj.Amount, w.amount)
		}
		if !adj.Shares.Equal(w.shares) {
			t.Errorf("%s shares = %v, want %v", adj.Symbol, adj.Shares, w.shares)
		}
	}
	if !plan.TotalBuy.Equal(USD(3000)) || !plan.TotalSell.Equal(USD(3000)) {
		t.Errorf("totals = buy %v sell %v, want 3000 each", plan.TotalBuy, plan.TotalSell)
	}
	if !plan.CashRemaining.IsZero() {
		t.Errorf("CashRemaining = %v, want 0", plan.CashRemaining)
	}
}

func TestPlanRebalance_Threshold(t *testing.T) {
	holdings := Holdings{holding("AAA", 1, 100), holding("BBB", 1, 100), holding("CCC", 1, 100)}
	current := []float64{0.5, 0.3, 0.2}
	optimal := []float64{0.505, 0.2, 0.295}

	plan, err := PlanRebalance(holdings, current, optimal, USD(1000), 0.01)
	if err != nil {
		t.Fatalf("PlanRebalance() error = %v", err)
	}
	tests := []struct {
		action Action
		amount Money
		shares Quantity
	}{
		{Hold, USD(5), Q(0.05)},
		{Sell, USD(100), Q(1)},
		{Buy, USD(95), Q(0.95)},
	}
	for i, tt := range tests {
		adj := plan.Adjustments[i]
		if adj.Action != tt.action || !adj.Amount.Equal(tt.amount) || !adj.Shares.Equal(tt.shares) {
			t.Errorf("%s = %v %v %v shares, want %v %v %v shares", adj.Symbol, adj.Action, adj.Amount, adj.Shares, tt.action, tt.amount, tt.shares)
		}
	}
	// held assets do not count in the cash flows.
	if got := plan.CashRemaining; !got.Equal(plan.TotalSell.Sub(plan.TotalBuy)) || !got.Equal(USD(5)) {
		t.Errorf("CashRemaining = %v, want $5.00", got)
	}
	if trades := plan.Trades(); len(trades) != 2 {
		t.Errorf("len(Trades()) = %d, want 2", len(trades))
	}
}

func TestPlanRebalance_Mismatch(t *testing.T) {
	holdings := Holdings{holding("AAA", 1, 100), holding("BBB", 1, 100)}
	_, err := PlanRebalance(holdings, []float64{0.5, 0.5}, []float64{1}, USD(200), 0.01)
	if !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("PlanRebalance() error = %v, want ErrInsufficientInput", err)
	}
}

func TestPlanRebalance_HoldKeepsAmount(t *testing.T) {
	holdings := Holdings{holding("AAA", 50.5, 100), holding("BBB", 99, 50)}
	plan, err := PlanRebalance(holdings, []float64{0.505, 0.495}, []float64{0.5, 0.5}, USD(10000), 0.01)
	if err != nil {
		t.Fatalf("PlanRebalance() error = %v", err)
	}
	tests := []struct {
		symbol string
		shares Quantity
	}{
		{"AAA", Q(0.5)},
		{"BBB", Q(1)},
	}
	for i, tt := range tests {
		adj := plan.Adjustments[i]
		if adj.Symbol != tt.symbol || adj.Action != Hold || !adj.Amount.Equal(USD(50)) || !adj.Shares.Equal(tt.shares) {
			t.Errorf("Adjustments[%d] = %s %v %v %v shares, want %s hold $50.00 %v shares", i, adj.Symbol, adj.Action, adj.Amount, adj.Shares, tt.symbol, tt.shares)
		}
	}
	if !plan.TotalBuy.IsZero() || !plan.TotalSell.IsZero() || !plan.CashRemaining.IsZero() {
		t.Errorf("totals = buy %v sell %v cash %v, want all zero", plan.TotalBuy, plan.TotalSell, plan.CashRemaining)
	}
	if trades := plan.Trades(); len(trades) != 0 {
		t.Errorf("Trades() = %v, want none", trades)
	}
}
