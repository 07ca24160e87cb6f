package allocation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/allocation/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// attrOn is the reserved property holding the day of a price line.
const attrOn = "on"

// jholding is the json representation of a Holding.
type jholding struct {
	Symbol   string     `json:"symbol"`
	Quantity Quantity   `json:"quantity"`
	Price    Money      `json:"price"`
	Purchase *Money     `json:"purchase,omitempty"`
	Class    AssetClass `json:"class"`
}

func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", h.Symbol)
	w.Append("quantity", h.Quantity)
	w.Append("price", h.Price)
	w.Append("purchase", h.PurchasePrice)
	w.Optional("class", h.Class)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a holding. The purchase price defaults to the current price.
func (h *Holding) UnmarshalJSON(data []byte) error {
	var j jholding
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*h = Holding{Symbol: j.Symbol, Quantity: j.Quantity, Price: j.Price, PurchasePrice: j.Price, Class: j.Class}
	if j.Purchase != nil {
		h.PurchasePrice = *j.Purchase
	}
	return nil
}

// DecodeHoldings reads holdings in JSONL format, one holding per line. Empty lines are
// ignored. The holdings are validated.
func DecodeHoldings(r io.Reader) (Holdings, error) {
	var holdings Holdings
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var h Holding
		if err := json.Unmarshal(line, &h); err != nil {
			return nil, fmt.Errorf("parse error line %d: %w", i, err)
		}
		holdings = append(holdings, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holdings: %w", err)
	}
	if err := holdings.Validate(); err != nil {
		return nil, err
	}
	return holdings, nil
}

// EncodeHoldings writes holdings in JSONL format.
func EncodeHoldings(w io.Writer, holdings Holdings) error {
	for _, h := range holdings {
		data, err := json.Marshal(h)
		if err != nil {
			return fmt.Errorf("failed to marshal holding %q: %w", h.Symbol, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write holding: %w", err)
		}
	}
	return nil
}

// DecodePrices reads historical prices in JSONL format. Each line holds a day in the "on"
// property and a price per symbol:
//
//	{"on":"2024-01-02","AAA":101.2,"BBB":54.1}
func DecodePrices(r io.Reader) (Prices, error) {
	prices := make(Prices)
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		txt := scanner.Text()
		if strings.TrimSpace(txt) == "" {
			continue
		}
		jobj := make(map[string]any)
		if err := json.Unmarshal([]byte(txt), &jobj); err != nil {
			return nil, fmt.Errorf("parse error line %d: not a correct json: %w", i, err)
		}
		jstring, ok := jobj[attrOn].(string)
		if !ok {
			return nil, fmt.Errorf("parse error line %d: missing the property %q with a date", i, attrOn)
		}
		on, err := date.Parse(jstring)
		if err != nil {
			return nil, fmt.Errorf("parse error line %d: property %q must be a valid date: %w", i, attrOn, err)
		}
		for symbol, price := range jobj {
			if symbol == attrOn {
				continue
			}
			p, ok := price.(float64)
			if !ok {
				return nil, fmt.Errorf("parse error line %d: property %q must be of type 'number'", i, symbol)
			}
			prices.Add(symbol, on, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading prices: %w", err)
	}
	return prices, nil
}

// EncodePrices writes prices in JSONL format, one line per day in chronological order, with
// symbols in alphabetical order.
func EncodePrices(w io.Writer, prices Prices) error {
	symbols := make([]string, 0, len(prices))
	histories := make([]*date.History[float64], 0, len(prices))
	for symbol := range prices {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	for _, symbol := range symbols {
		histories = append(histories, prices[symbol])
	}

	for on := range date.Union(histories...) {
		var line jsonObjectWriter
		line.Append(attrOn, on)
		for i, symbol := range symbols {
			if p, ok := histories[i].Get(on); ok {
				line.Append(symbol, p)
			}
		}
		data, err := line.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal prices on %v: %w", on, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write prices: %w", err)
		}
	}
	return nil
}
