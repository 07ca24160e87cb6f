package allocation

import "fmt"

// Alignment defines how price series of different assets are lined up before computing
// their covariance.
type Alignment int

const (
	// AlignPositional pairs returns by index and truncates to the shorter series.
	AlignPositional Alignment = iota
	// AlignForwardFill pairs prices by date, starting on the first day every asset has a
	// price, and fills missing days with the previous known price.
	AlignForwardFill
)

func (a Alignment) String() string {
	switch a {
	case AlignPositional:
		return "positional"
	case AlignForwardFill:
		return "forward-fill"
	default:
		return "unknown"
	}
}

// ParseAlignment parses a string into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "positional":
		return AlignPositional, nil
	case "forward-fill", "ffill":
		return AlignForwardFill, nil
	default:
		return 0, fmt.Errorf("unknown alignment: %q", s)
	}
}

func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Alignment) UnmarshalText(text []byte) (err error) {
	*a, err = ParseAlignment(string(text))
	return err
}
