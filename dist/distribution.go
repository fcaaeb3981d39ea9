package dist

import "github.com/pkg/errors"

// DistributionFunction is a univariate probability law on the real line.
type DistributionFunction interface {
	// Density returns the probability density at x.
	Density(x float64) float64
	// Cumulative returns P(X <= x).
	Cumulative(x float64) float64
	// InverseCumulative returns x such that Cumulative(x) ~= p.
	InverseCumulative(p float64) float64
}

// ErrProbabilityOutOfRange is returned by checked inverses for p outside (0,1).
var ErrProbabilityOutOfRange = errors.New("probability outside (0,1)")
