package allocation

import "fmt"

// Percent is a ratio expressed in percent (12.5 means 12.5%), used for display.
type Percent float64

// Pct converts a ratio (0.125) into a Percent (12.5%).
func Pct(ratio float64) Percent { return Percent(ratio * 100) }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
