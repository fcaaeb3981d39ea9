// Package parameter models time-varying quantities that can be integrated
// and averaged over an interval of model time.
package parameter

import (
	"time"

	"github.com/pkg/errors"

	"github.com/meenmo/qfmath/types"
	"github.com/meenmo/qfmath/utils"
)

var (
	// ErrDegenerateInterval is returned by Mean when t1 == t2.
	ErrDegenerateInterval = errors.New("mean over zero-width interval")
	// ErrMovedFrom is returned when a Parameter no longer owns a strategy.
	ErrMovedFrom = errors.New("parameter has been moved from")
)

// noCopy lets go vet's copylocks check flag Parameter values copied by
// assignment. Use Clone or Move instead.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Parameter is a value of type T paired with the strategy that integrates
// it over time. A Parameter exclusively owns its strategy: it is handed
// around by pointer, duplicated only through Clone, and transferred with
// Move or Assign.
type Parameter[T types.Real] struct {
	_ noCopy

	object   T
	strategy IntegrationStrategy[T]
}

// New binds value and strategy into a Parameter. The caller must not keep
// using strategy afterwards.
func New[T types.Real](value T, strategy IntegrationStrategy[T]) *Parameter[T] {
	return &Parameter[T]{object: value, strategy: strategy}
}

// Value returns the parameter's current value.
func (p *Parameter[T]) Value() T { return p.object }

// Valid reports whether p still owns a strategy.
func (p *Parameter[T]) Valid() bool { return p != nil && p.strategy != nil }

// Integrate delegates to the bound strategy. It panics on a moved-from
// Parameter.
func (p *Parameter[T]) Integrate(t1, t2 types.Time) T {
	if !p.Valid() {
		panic("parameter: Integrate on moved-from Parameter")
	}
	return p.strategy.Integrate(t1, t2)
}

// Mean returns Integrate(t1, t2) / (t2 - t1).
func (p *Parameter[T]) Mean(t1, t2 types.Time) (T, error) {
	if !p.Valid() {
		return 0, ErrMovedFrom
	}
	if t1 == t2 {
		return 0, errors.Wrapf(ErrDegenerateInterval, "t=%v", t1)
	}
	return T(float64(p.strategy.Integrate(t1, t2)) / (t2 - t1)), nil
}

// Clone returns an independent deep copy: the value is copied and the
// strategy cloned. Cloning a moved-from Parameter yields another one.
func (p *Parameter[T]) Clone() *Parameter[T] {
	c := &Parameter[T]{object: p.object}
	if p.strategy != nil {
		c.strategy = p.strategy.Clone()
	}
	return c
}

// Move transfers value and strategy into a new Parameter and leaves p
// empty. p may afterwards only be reassigned with Assign or dropped.
func (p *Parameter[T]) Move() *Parameter[T] {
	moved := &Parameter[T]{object: p.object, strategy: p.strategy}
	p.reset()
	return moved
}

// Assign replaces p's value and strategy with src's and leaves src empty.
// Assigning a Parameter to itself does nothing.
func (p *Parameter[T]) Assign(src *Parameter[T]) {
	if p == src {
		return
	}
	p.object, p.strategy = src.object, src.strategy
	src.reset()
}

func (p *Parameter[T]) reset() {
	var zero T
	p.object = zero
	p.strategy = nil
}

// IntegrateDates integrates p between two calendar dates placed on axis.
func (p *Parameter[T]) IntegrateDates(axis utils.TimeAxis, start, end time.Time) T {
	return p.Integrate(axis.At(start), axis.At(end))
}

// MeanDates averages p between two calendar dates placed on axis.
func (p *Parameter[T]) MeanDates(axis utils.TimeAxis, start, end time.Time) (T, error) {
	return p.Mean(axis.At(start), axis.At(end))
}
