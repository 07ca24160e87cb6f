package allocation

import (
	"fmt"
	"math"
)

// Holding is a position in a single asset.
type Holding struct {
	Symbol        string
	Quantity      Quantity
	Price         Money // current price of one unit
	PurchasePrice Money // average price paid for one unit
	Class         AssetClass
}

// MarketValue returns the current value of the position.
func (h Holding) MarketValue() Money { return h.Price.Mul(h.Quantity) }

// Cost returns the amount paid for the position.
func (h Holding) Cost() Money { return h.PurchasePrice.Mul(h.Quantity) }

// Gain returns the unrealized gain of the position.
func (h Holding) Gain() Money { return h.MarketValue().Sub(h.Cost()) }

// Validate checks a single holding.
func (h Holding) Validate() error {
	switch {
	case h.Symbol == "":
		return fmt.Errorf("%w: empty symbol", ErrInvalidHolding)
	case h.Quantity.IsNegative():
		return fmt.Errorf("%w: %q has a negative quantity %v", ErrInvalidHolding, h.Symbol, h.Quantity)
	case !h.Price.IsPositive():
		return fmt.Errorf("%w: %q has a non positive price %v", ErrInvalidHolding, h.Symbol, h.Price)
	case !h.PurchasePrice.IsPositive():
		return fmt.Errorf("%w: %q has a non positive purchase price %v", ErrInvalidHolding, h.Symbol, h.PurchasePrice)
	}
	return nil
}

// Holdings is the list of positions of a portfolio. The order of the holdings is the order of
// every vector computed from them.
type Holdings []Holding

// Validate checks every holding, the uniqueness of symbols, and that a single currency is used.
func (hs Holdings) Validate() error {
	seen := make(map[string]bool, len(hs))
	currency := ""
	for _, h := range hs {
		if err := h.Validate(); err != nil {
			return err
		}
		if seen[h.Symbol] {
			return fmt.Errorf("%w: symbol %q is held twice", ErrInvalidHolding, h.Symbol)
		}
		seen[h.Symbol] = true
		for _, m := range []Money{h.Price, h.PurchasePrice} {
			if currency == "" {
				currency = m.Currency()
			}
			if c := m.Currency(); c != "" && c != currency {
				return fmt.Errorf("%w: %q is priced in %s, portfolio is in %s", ErrInvalidHolding, h.Symbol, c, currency)
			}
		}
	}
	return nil
}

// Symbols returns the symbols in holding order.
func (hs Holdings) Symbols() []string {
	symbols := make([]string, len(hs))
	for i, h := range hs {
		symbols[i] = h.Symbol
	}
	return symbols
}

// Index returns the position of symbol in the holdings, or -1.
func (hs Holdings) Index(symbol string) int {
	for i, h := range hs {
		if h.Symbol == symbol {
			return i
		}
	}
	return -1
}

// TotalValue returns the sum of all market values. It panics on mixed currencies, which
// Validate reports as an error.
func (hs Holdings) TotalValue() Money {
	var total Money
	for _, h := range hs {
		total = total.Add(h.MarketValue())
	}
	return total
}

// Weights returns the share of each holding in the total value.
// All weights are zero when the portfolio has no value.
func (hs Holdings) Weights() []float64 {
	weights := make([]float64, len(hs))
	total := hs.TotalValue()
	if !total.IsPositive() {
		return weights
	}
	for i, h := range hs {
		weights[i] = h.MarketValue().Ratio(total)
	}
	return weights
}

// DiversificationScore converts the Herfindahl-Hirschman index of the current weights into a
// score between 0 (a single position) and 100 (equal weights).
func (hs Holdings) DiversificationScore() float64 {
	n := float64(len(hs))
	if n < 2 || !hs.TotalValue().IsPositive() {
		return 0
	}
	hhi := 0.0
	for _, w := range hs.Weights() {
		hhi += w * w
	}
	score := (1 - hhi) / (1 - 1/n) * 100
	return math.Max(0, math.Min(100, score))
}
