package allocation

import (
	"context"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"golang.org/x/sync/errgroup"
)

// sampleChunk is the number of draws sharing a random source.
const sampleChunk = 256

// Cloud is a set of random long-only portfolios, used to picture the feasible region under
// the efficient frontier.
type Cloud []Point

// SamplePortfolios draws count weight vectors uniformly over the simplex (a flat Dirichlet
// distribution obtained by normalizing unit exponential variates) and evaluates them.
//
// Draws are split in chunks, each with its own PCG source seeded from Options.Seed and the
// chunk index, so the cloud only depends on the seed and not on scheduling. Draws with risk
// outside [0, 0.35] or return outside [-0.05, 0.35] are discarded.
func SamplePortfolios(ctx context.Context, mu []float64, cov mat.Symmetric, count int, opts Options) (Cloud, error) {
	if len(mu) < 2 {
		return nil, &InsufficientInputError{Reason: fmt.Sprintf("at least 2 assets are required, got %d", len(mu))}
	}
	if n := cov.SymmetricDim(); n != len(mu) {
		return nil, &InsufficientInputError{Reason: fmt.Sprintf("%d expected returns for a %dx%d covariance", len(mu), n, n)}
	}
	if count <= 0 {
		return nil, nil
	}

	chunks := make([]Cloud, (count+sampleChunk-1)/sampleChunk)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for c := range chunks {
		g.Go(func() error {
			size := min(sampleChunk, count-c*sampleChunk)
			exp := distuv.Exponential{Rate: 1, Src: rand.NewPCG(opts.Seed, uint64(c))}
			w := make([]float64, len(mu))
			for range size {
				if err := ctx.Err(); err != nil {
					return err
				}
				for i := range w {
					w[i] = exp.Rand()
				}
				sum := floats.Sum(w)
				if sum == 0 {
					continue
				}
				floats.Scale(1/sum, w)
				if p := Metrics(w, mu, cov, opts.RiskFreeRate); p.plausible(0, -0.05, plausibleMax) {
					chunks[c] = append(chunks[c], p)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var cloud Cloud
	for _, chunk := range chunks {
		cloud = append(cloud, chunk...)
	}
	opts.logger().Debug().Int("draws", count).Int("kept", len(cloud)).Msg("portfolios sampled")
	return cloud, nil
}
