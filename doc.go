// Package allocation computes optimal long-only allocations of a portfolio with Modern
// Portfolio Theory.
//
// The core functionalities include:
//   - Statistics: annualized expected returns and covariance of the held assets, computed
//     from their historical prices.
//   - Metrics: expected return, risk and Sharpe ratio of any weight vector.
//   - Efficient frontier: minimum-variance portfolios for a range of target returns, solved
//     exactly with an active-set method or approximately with a projected gradient.
//   - Random portfolios: uniform draws over the simplex picturing the feasible region.
//   - Selection: the frontier portfolio closest to a target risk and return, or the minimum
//     risk portfolio.
//   - Rebalancing: the trades, in exact decimal amounts, turning the current portfolio into
//     the optimal one.
//
// Optimize chains all of them. This package serves as the foundation of the `alloc`
// command-line tool and never reaches out to the network: prices are provided by the caller.
package allocation
