package parameter

import (
	"github.com/pkg/errors"

	"github.com/meenmo/qfmath/config"
	"github.com/meenmo/qfmath/quadrature"
	"github.com/meenmo/qfmath/types"
)

// ErrNoSamples is returned when discrete integration is built from no data.
var ErrNoSamples = errors.New("discrete integration needs at least one sample")

// IntegrationStrategy integrates a time-varying quantity over [t1, t2].
// Strategies do not check t1 < t2; a reversed interval gives the
// sign-flipped result.
type IntegrationStrategy[T types.Real] interface {
	Integrate(t1, t2 types.Time) T
	// Clone returns an independent copy of the strategy.
	Clone() IntegrationStrategy[T]
}

// StrategyFunc adapts an ordinary function to an IntegrationStrategy.
type StrategyFunc[T types.Real] func(t1, t2 types.Time) T

// Integrate calls f(t1, t2).
func (f StrategyFunc[T]) Integrate(t1, t2 types.Time) T { return f(t1, t2) }

// Clone returns f itself; a function value carries no mutable state.
func (f StrategyFunc[T]) Clone() IntegrationStrategy[T] { return f }

// AnalyticIntegration integrates exactly from a known antiderivative.
type AnalyticIntegration[T types.Real] struct {
	antiderivative func(types.Time) T
}

// NewAnalytic builds an analytic strategy from F, an antiderivative of the
// quantity being integrated.
func NewAnalytic[T types.Real](antiderivative func(types.Time) T) *AnalyticIntegration[T] {
	return &AnalyticIntegration[T]{antiderivative: antiderivative}
}

// Integrate returns F(t2) - F(t1).
func (a *AnalyticIntegration[T]) Integrate(t1, t2 types.Time) T {
	return a.antiderivative(t2) - a.antiderivative(t1)
}

func (a *AnalyticIntegration[T]) Clone() IntegrationStrategy[T] {
	return &AnalyticIntegration[T]{antiderivative: a.antiderivative}
}

// NumericIntegration integrates the raw integrand with a quadrature rule.
type NumericIntegration[T types.Real] struct {
	integrand func(types.Time) T
	cfg       config.Config
	rule      quadrature.Rule[T]
}

// NewNumeric builds a numeric strategy bound to the active global
// configuration (see config.GetConfig). Later SetConfig calls do not
// affect it.
func NewNumeric[T types.Real](integrand func(types.Time) T) (*NumericIntegration[T], error) {
	return NewNumericWithConfig(integrand, config.GetConfig())
}

// NewNumericWithConfig builds a numeric strategy using cfg.
func NewNumericWithConfig[T types.Real](integrand func(types.Time) T, cfg config.Config) (*NumericIntegration[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rule, err := quadrature.CreateQuadrature[T](cfg.Formula)
	if err != nil {
		return nil, err
	}
	return &NumericIntegration[T]{integrand: integrand, cfg: cfg, rule: rule}, nil
}

// Config returns the quadrature settings the strategy was built with.
func (n *NumericIntegration[T]) Config() config.Config { return n.cfg }

// Integrate applies the configured rule to the integrand over [t1, t2].
func (n *NumericIntegration[T]) Integrate(t1, t2 types.Time) T {
	return n.rule(t1, t2, n.cfg.Intervals, n.integrand)
}

func (n *NumericIntegration[T]) Clone() IntegrationStrategy[T] {
	c := *n
	return &c
}

// DiscreteDataIntegration approximates the integral from sampled values.
//
// The approximation is ((t2-t1)/N) * sum(samples). Every sample gets the
// same weight and its position in time is ignored, so this is a plain
// average over the interval rather than a quadrature over the sample
// times.
type DiscreteDataIntegration[T types.Real] struct {
	samples []T
}

// NewDiscreteData copies samples into a new discrete strategy.
func NewDiscreteData[T types.Real](samples []T) (*DiscreteDataIntegration[T], error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return &DiscreteDataIntegration[T]{samples: append([]T(nil), samples...)}, nil
}

// Len returns the number of samples held.
func (d *DiscreteDataIntegration[T]) Len() int { return len(d.samples) }

// Integrate returns ((t2-t1)/N) * sum(samples).
func (d *DiscreteDataIntegration[T]) Integrate(t1, t2 types.Time) T {
	var sum float64
	for _, s := range d.samples {
		sum += float64(s)
	}
	weight := (t2 - t1) / float64(len(d.samples))
	return T(weight * sum)
}

func (d *DiscreteDataIntegration[T]) Clone() IntegrationStrategy[T] {
	return &DiscreteDataIntegration[T]{samples: append([]T(nil), d.samples...)}
}
