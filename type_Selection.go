package allocation

import "fmt"

// Selection is the policy used to pick the optimal portfolio out of the efficient frontier.
type Selection int

const (
	// ByTarget takes the weights of the frontier point closest to the target return and
	// risk, but reports the target return, risk and Sharpe ratio.
	ByTarget Selection = iota
	// ByNearest reports the frontier point closest to the target with its own metrics.
	ByNearest
	// BySharpe takes the frontier point with the best Sharpe ratio.
	BySharpe
)

func (s Selection) String() string {
	switch s {
	case ByTarget:
		return "target"
	case ByNearest:
		return "nearest"
	case BySharpe:
		return "sharpe"
	default:
		return "unknown"
	}
}

// ParseSelection parses a string into a Selection.
func ParseSelection(s string) (Selection, error) {
	switch s {
	case "target":
		return ByTarget, nil
	case "nearest":
		return ByNearest, nil
	case "sharpe":
		return BySharpe, nil
	default:
		return 0, fmt.Errorf("unknown selection policy: %q", s)
	}
}

func (s Selection) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Selection) UnmarshalText(text []byte) (err error) {
	*s, err = ParseSelection(string(text))
	return err
}
