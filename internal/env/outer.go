package env

import (
	"errors"
	"fmt"

	"gridverse.ai/internal/repr"
)

// ErrNoRepresentation is returned when a numeric projection is requested
// while no representation of that kind is installed.
var ErrNoRepresentation = errors.New("no representation installed")

// OuterEnv wraps exactly one inner environment and projects its state and
// observation through at most one representation each. Either
// representation may be swapped after construction; installing one
// atomically replaces both the converter and the advertised numeric
// space, which is the only operation that ever changes the advertised
// shapes or bounds.
type OuterEnv struct {
	inner InnerEnv

	stateRep repr.StateRepresentation
	obsRep   repr.ObservationRepresentation

	stateSpace repr.Space
	obsSpace   repr.Space
}

// NewOuterEnv wraps inner. Either representation may be nil, in which
// case the corresponding raw object is simply not exposed numerically.
func NewOuterEnv(inner InnerEnv, stateRep repr.StateRepresentation, obsRep repr.ObservationRepresentation) *OuterEnv {
	e := &OuterEnv{inner: inner}
	e.install(stateRep, obsRep)
	return e
}

func (e *OuterEnv) install(stateRep repr.StateRepresentation, obsRep repr.ObservationRepresentation) {
	e.stateRep = stateRep
	e.obsRep = obsRep
	e.stateSpace = nil
	e.obsSpace = nil
	if stateRep != nil {
		e.stateSpace = stateRep.Space()
	}
	if obsRep != nil {
		e.obsSpace = obsRep.Space()
	}
}

// Inner exposes the wrapped environment for raw-object access. The outer
// env retains exclusive ownership; callers must not reset or step it
// behind the wrapper's back.
func (e *OuterEnv) Inner() InnerEnv { return e.inner }

// NumActions is the size of the external dense integer action range.
func (e *OuterEnv) NumActions() int { return e.inner.Space().Action.NumActions() }

// SetStateRepresentation installs the named state representation, rebuilt
// from the inner environment's state space. The inner environment is not
// touched.
func (e *OuterEnv) SetStateRepresentation(name string) error {
	r, err := repr.NewStateRepresentation(name, e.inner.Space().State)
	if err != nil {
		return err
	}
	e.install(r, e.obsRep)
	return nil
}

// SetObservationRepresentation installs the named observation
// representation, rebuilt from the inner environment's observation space.
func (e *OuterEnv) SetObservationRepresentation(name string) error {
	r, err := repr.NewObservationRepresentation(name, e.inner.Space().Observation)
	if err != nil {
		return err
	}
	e.install(e.stateRep, r)
	return nil
}

// StateSpace is the advertised numeric state space, nil when no state
// representation is installed.
func (e *OuterEnv) StateSpace() repr.Space { return e.stateSpace }

// ObservationSpace is the advertised numeric observation space, nil when
// no observation representation is installed.
func (e *OuterEnv) ObservationSpace() repr.Space { return e.obsSpace }

// Reset resets the inner environment and returns the projected
// observation (nil when no observation representation is installed; use
// Inner().Observation() for the raw object).
func (e *OuterEnv) Reset() (map[string]repr.Array, error) {
	if _, err := e.inner.Reset(); err != nil {
		return nil, err
	}
	if e.obsRep == nil {
		return nil, nil
	}
	return e.Observation()
}

// Step translates the external integer action through the declared
// enumeration order and delegates to the inner environment. Re-read State
// or Observation afterwards for the projected results.
func (e *OuterEnv) Step(action int) (reward float64, done bool, err error) {
	a, err := e.inner.Space().Action.FromInt(action)
	if err != nil {
		return 0, false, err
	}
	return e.inner.Step(a)
}

// State projects the current canonical state through the installed state
// representation.
func (e *OuterEnv) State() (map[string]repr.Array, error) {
	if e.stateRep == nil {
		return nil, fmt.Errorf("state: %w", ErrNoRepresentation)
	}
	s := e.inner.State()
	if s == nil {
		return nil, ErrResetRequired
	}
	return e.stateRep.Convert(s)
}

// Observation projects the last observation through the installed
// observation representation.
func (e *OuterEnv) Observation() (map[string]repr.Array, error) {
	if e.obsRep == nil {
		return nil, fmt.Errorf("observation: %w", ErrNoRepresentation)
	}
	o := e.inner.Observation()
	if o == nil {
		return nil, ErrResetRequired
	}
	return e.obsRep.Convert(o)
}
