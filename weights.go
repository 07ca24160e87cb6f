package allocation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// weightSumTolerance is how far from 1 the sum of parsed weights may be.
const weightSumTolerance = 1e-6

// ParseWeights parses target weights written as "AAA=0.6,BBB=0.4" into a vector ordered like
// symbols. Symbols left out get a zero weight. Weights must be non negative and sum to 1.
func ParseWeights(s string, symbols []string) ([]float64, error) {
	index := make(map[string]int, len(symbols))
	for i, symbol := range symbols {
		index[symbol] = i
	}
	weights := make([]float64, len(symbols))
	seen := make(map[string]bool)
	sum := 0.0
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		symbol, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q: want <symbol>=<weight>", field)
		}
		symbol = strings.TrimSpace(symbol)
		i, ok := index[symbol]
		if !ok {
			return nil, fmt.Errorf("invalid weight %q: %q is not held", field, symbol)
		}
		if seen[symbol] {
			return nil, fmt.Errorf("invalid weight %q: %q is given twice", field, symbol)
		}
		seen[symbol] = true
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || w < 0 || math.IsInf(w, 0) || math.IsNaN(w) {
			return nil, fmt.Errorf("invalid weight %q: want a non negative number", field)
		}
		weights[i] = w
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return nil, fmt.Errorf("invalid weights %q: they sum to %v instead of 1", s, sum)
	}
	return weights, nil
}
