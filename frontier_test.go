package allocation

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// checkFrontier checks the properties every frontier must have.
func checkFrontier(t *testing.T, f Frontier) {
	t.Helper()
	for i, p := range f {
		checkWeights(t, p.Weights)
		if p.Risk < 0 || p.Risk > 0.35 || p.Return < 0 || p.Return > 0.35 {
			t.Errorf("point %d = (%v, %v) is outside of the plausible band", i, p.Risk, p.Return)
		}
		if i == 0 {
			continue
		}
		if p.Risk < f[i-1].Risk {
			t.Errorf("risk[%d] = %v < risk[%d] = %v", i, p.Risk, i-1, f[i-1].Risk)
		}
		if p.Return < f[i-1].Return {
			t.Errorf("return[%d] = %v < return[%d] = %v, point is dominated", i, p.Return, i-1, f[i-1].Return)
		}
	}
}

func TestGenerateFrontier_Scenario(t *testing.T) {
	holdings := Holdings{holding("AAA", 10, 100), holding("BBB", 10, 100)}
	stats, err := ComputeStatistics(holdings, scenarioPrices(252), 252, AlignPositional)
	if err != nil {
		t.Fatalf("ComputeStatistics() error = %v", err)
	}

	for _, method := range []Method{ActiveSet, ProjectedGradient} {
		t.Run(method.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Method = method
			f, err := GenerateFrontier(context.Background(), stats.ExpectedReturns, stats.Covariance, opts)
			if err != nil {
				t.Fatalf("GenerateFrontier() error = %v", err)
			}
			checkFrontier(t, f)
			first, last := f[0], f[len(f)-1]
			// the minimum variance mix holds 10% of AAA: risk 0.0474, return 0.046.
			if first.Risk < 0.045 || first.Risk > 0.051 {
				t.Errorf("first risk = %v, want about 0.05", first.Risk)
			}
			if first.Return < 0.04 || first.Return > 0.05 {
				t.Errorf("first return = %v, want about 0.045", first.Return)
			}
			if !near(last.Risk, 0.15, 1e-3) || !near(last.Return, 0.10, 1e-3) {
				t.Errorf("last point = (%v, %v), want (0.15, 0.10)", last.Risk, last.Return)
			}
			if method == ActiveSet && !f.IsConvex(0.1) {
				t.Errorf("IsConvex() = false, want true")
			}
		})
	}
}

func TestGenerateFrontier_Degenerate(t *testing.T) {
	// identical returns and no risk: a single distinct point.
	f, err := GenerateFrontier(context.Background(), []float64{0.05, 0.05}, diagonal(0, 0), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateFrontier() error = %v", err)
	}
	if len(f) != 1 {
		t.Fatalf("len(frontier) = %d, want 1", len(f))
	}
	if !near(f[0].Return, 0.05, 1e-12) || f[0].Risk != 0 {
		t.Errorf("frontier = %+v, want a single riskless point returning 5%%", f)
	}
}

func TestGenerateFrontier_Errors(t *testing.T) {
	tests := []struct {
		name string
		mu   []float64
		cov  mat.Symmetric
		want error
	}{
		{"single asset", []float64{0.1}, diagonal(0.01), ErrInsufficientInput},
		{"mismatch", []float64{0.1, 0.2}, diagonal(0.01, 0.01, 0.01), ErrInsufficientInput},
		// every point is riskier than 35%.
		{"implausible", []float64{0.1, 0.2}, diagonal(1, 1), ErrOptimizationFailure},
		{"not a number", []float64{0.1, 0.05}, mat.NewSymDense(2, []float64{0.01, 0, 0, math.NaN()}), ErrDegenerateCovariance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateFrontier(context.Background(), tt.mu, tt.cov, DefaultOptions())
			if !errors.Is(err, tt.want) {
				t.Errorf("GenerateFrontier() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateFrontier_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mu, cov := fourAssets()
	if _, err := GenerateFrontier(ctx, mu, cov, DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("GenerateFrontier() error = %v, want context.Canceled", err)
	}
}

func TestGenerateFrontier_Deterministic(t *testing.T) {
	mu, cov := fourAssets()
	opts := DefaultOptions()
	opts.Workers = 1
	a, err := GenerateFrontier(context.Background(), mu, cov, opts)
	if err != nil {
		t.Fatalf("GenerateFrontier() error = %v", err)
	}
	opts.Workers = 8
	b, err := GenerateFrontier(context.Background(), mu, cov, opts)
	if err != nil {
		t.Fatalf("GenerateFrontier() error = %v", err)
	}
	checkFrontier(t, a)
	if len(a) != len(b) {
		t.Fatalf("len(frontier) = %d with 1 worker, %d with 8", len(a), len(b))
	}
	for i := range a {
		if a[i].Risk != b[i].Risk || a[i].Return != b[i].Return {
			t.Errorf("point %d = %+v with 1 worker, %+v with 8", i, a[i], b[i])
		}
	}
}

func TestEfficient(t *testing.T) {
	points := []Point{
		{Risk: 0.10, Return: 0.08},
		{Risk: 0.05, Return: 0.04},
		{Risk: 0.04, Return: 0.05}, // dominates the previous one
		{Risk: 0.1000001, Return: 0.09},
		{Risk: 0.20, Return: 0.12},
	}
	f := efficient(points)
	want := []float64{0.04, 0.10, 0.20}
	if len(f) != len(want) {
		t.Fatalf("efficient() = %+v, want risks %v", f, want)
	}
	for i, r := range want {
		if f[i].Risk != r {
			t.Errorf("risk[%d] = %v, want %v", i, f[i].Risk, r)
		}
	}
}

func TestFrontier_IsConvex(t *testing.T) {
	tests := []struct {
		name string
		f    Frontier
		want bool
	}{
		{"short", Frontier{{Risk: 0.1, Return: 0.1}, {Risk: 0.2, Return: 0.3}}, true},
		{"concave curve", Frontier{{Risk: 0.05, Return: 0.04}, {Risk: 0.06, Return: 0.06}, {Risk: 0.08, Return: 0.07}}, true},
		{"slope increases", Frontier{{Risk: 0.05, Return: 0.04}, {Risk: 0.10, Return: 0.045}, {Risk: 0.11, Return: 0.10}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.IsConvex(0.1); got != tt.want {
				t.Errorf("IsConvex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrontier_MinimumRiskAndMaxSharpe(t *testing.T) {
	f := Frontier{
		{Risk: 0.05, Return: 0.05, Sharpe: 0.6},
		{Risk: 0.10, Return: 0.10, Sharpe: 0.8},
		{Risk: 0.20, Return: 0.12, Sharpe: 0.5},
	}
	if p, ok := f.MinimumRisk(); !ok || p.Risk != 0.05 {
		t.Errorf("MinimumRisk() = %+v, %v", p, ok)
	}
	if p, ok := f.MaxSharpe(); !ok || p.Risk != 0.10 {
		t.Errorf("MaxSharpe() = %+v, %v", p, ok)
	}
	if _, ok := Frontier(nil).MinimumRisk(); ok {
		t.Errorf("MinimumRisk() of an empty frontier is ok")
	}
}
