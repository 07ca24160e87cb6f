package allocation

import "fmt"

// Method selects the numerical method used to solve each minimum-variance problem of the frontier.
type Method int

const (
	// ActiveSet solves the quadratic program exactly with a primal active-set method.
	ActiveSet Method = iota
	// ProjectedGradient approximates the solution with a penalised projected gradient descent.
	ProjectedGradient
)

func (m Method) String() string {
	switch m {
	case ActiveSet:
		return "exact"
	case ProjectedGradient:
		return "gradient"
	default:
		return "unknown"
	}
}

// ParseMethod parses a string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "exact", "active-set":
		return ActiveSet, nil
	case "gradient":
		return ProjectedGradient, nil
	default:
		return 0, fmt.Errorf("unknown solver method: %q", s)
	}
}

func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Method) UnmarshalText(text []byte) (err error) {
	*m, err = ParseMethod(string(text))
	return err
}

// Solver returns the Solver implementing this method.
func (m Method) Solver(maxIterations int) Solver {
	if m == ProjectedGradient {
		return &GradientSolver{MaxIterations: maxIterations}
	}
	return &ActiveSetSolver{MaxIterations: maxIterations}
}
