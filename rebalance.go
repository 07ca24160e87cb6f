package allocation

import (
	"fmt"
	"math"
)

// Adjustment is the trade bringing one holding from its current weight to its optimal weight.
type Adjustment struct {
	Symbol        string   `json:"symbol"`
	CurrentWeight float64  `json:"currentWeight"`
	OptimalWeight float64  `json:"optimalWeight"`
	Action        Action   `json:"action"`
	Amount        Money    `json:"amount"` // value to trade rounded to the currency unit, never negative
	Shares        Quantity `json:"shares"` // number of units to trade at the current price
}

// Plan is the list of adjustments of a rebalancing, with its cash flows.
type Plan struct {
	Adjustments   []Adjustment `json:"adjustments"`
	TotalBuy      Money        `json:"totalBuy"`
	TotalSell     Money        `json:"totalSell"`
	CashRemaining Money        `json:"cashRemaining"` // TotalSell - TotalBuy
}

// PlanRebalance computes the trades turning current weights into optimal weights for a
// portfolio worth total. Every adjustment carries the value and shares of its weight change; a
// change of at most threshold is a Hold, and does not count in the totals.
func PlanRebalance(holdings Holdings, current, optimal []float64, total Money, threshold float64) (Plan, error) {
	if len(current) != len(holdings) || len(optimal) != len(holdings) {
		return Plan{}, &InsufficientInputError{Reason: fmt.Sprintf("%d holdings for %d current and %d optimal weights", len(holdings), len(current), len(optimal))}
	}
	zero := M(0, total.Currency())
	plan := Plan{
		Adjustments: make([]Adjustment, len(holdings)),
		TotalBuy:    zero,
		TotalSell:   zero,
	}
	for i, h := range holdings {
		delta := optimal[i] - current[i]
		adj := Adjustment{
			Symbol:        h.Symbol,
			CurrentWeight: current[i],
			OptimalWeight: optimal[i],
			Amount:        total.Scale(math.Abs(delta)).RoundToCurrency(),
		}
		if h.Price.IsPositive() {
			adj.Shares = adj.Amount.DivPrice(h.Price)
		}
		if math.Abs(delta) > threshold {
			if delta > 0 {
				adj.Action = Buy
				plan.TotalBuy = plan.TotalBuy.Add(adj.Amount)
			} else {
				adj.Action = Sell
				plan.TotalSell = plan.TotalSell.Add(adj.Amount)
			}
		}
		plan.Adjustments[i] = adj
	}
	plan.CashRemaining = plan.TotalSell.Sub(plan.TotalBuy)
	return plan, nil
}

// Trades returns the adjustments that are not a Hold.
func (p Plan) Trades() []Adjustment {
	var trades []Adjustment
	for _, a := range p.Adjustments {
		if a.Action != Hold {
			trades = append(trades, a)
		}
	}
	return trades
}
