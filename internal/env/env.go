// Package env composes pluggable transition, reward and termination rules
// into concrete grid-world environments, and wraps them for consumption by
// learning agents.
//
// An environment's dynamics are a RuleSet: transitions applied in order,
// rewards summed, terminations OR'd, plus one observation function. The
// GridWorld inner environment owns the canonical state and the composed
// step; OuterEnv projects states and observations through swappable
// numeric representations.
package env

import (
	"errors"
	"math/rand"

	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

// ErrResetRequired is returned by Step before the first Reset.
var ErrResetRequired = errors.New("reset required before step")

// ResetFunc samples a fresh initial state. It must produce states of a
// constant grid shape for a given configuration; Reset re-validates every
// sample against the state space.
type ResetFunc func(rng *rand.Rand) (*grid.State, error)

// TransitionFunc advances next in place. It only ever runs on the engine's
// isolated copy of the state, never on the canonical state.
type TransitionFunc func(rng *rand.Rand, next *grid.State, action spaces.Action) error

// RewardFunc scores one step from the (previous, action, next) triple.
// Rewards are combined additively, so each rule scores its own concern
// independently.
type RewardFunc func(prev *grid.State, action spaces.Action, next *grid.State) float64

// TerminationFunc reports whether the step ends the episode. Predicates
// are OR'd and must be side-effect free.
type TerminationFunc func(prev *grid.State, action spaces.Action, next *grid.State) bool

// ObserveFunc computes the observation of a state.
type ObserveFunc func(s *grid.State) (*grid.Observation, error)

// Transition is a named transition rule. The name identifies the rule in
// errors and configs.
type Transition struct {
	Name string
	Fn   TransitionFunc
}

// Reward is a named reward rule.
type Reward struct {
	Name string
	Fn   RewardFunc
}

// Termination is a named termination predicate.
type Termination struct {
	Name string
	Fn   TerminationFunc
}

// RuleSet is the dynamics of one environment. Transition order is
// significant: later rules observe the effects of earlier ones within the
// same step. Reward and termination order is not (sum and OR commute).
type RuleSet struct {
	Transitions  []Transition
	Rewards      []Reward
	Terminations []Termination
	Observe      ObserveFunc
}

// InnerEnv is a raw simulation exposing state, action and observation
// objects directly. Implementations are single-threaded; use one instance
// per goroutine.
type InnerEnv interface {
	Space() spaces.DomainSpace

	// Reset samples a fresh canonical state and returns its observation.
	Reset() (*grid.Observation, error)

	// Step validates the action, runs the composed rule set, replaces the
	// canonical state and returns the step's reward and done signal. The
	// resulting state and observation stay queryable until the next call.
	Step(action spaces.Action) (reward float64, done bool, err error)

	// State returns the canonical state, or nil before the first Reset.
	// Callers must treat it as read-only.
	State() *grid.State

	// Observation returns the last computed observation, or nil before the
	// first Reset.
	Observation() *grid.Observation

	// SetSeed reseeds every stochastic collaborator. Call it before the
	// first Reset for reproducible episodes.
	SetSeed(seed int64)
}
