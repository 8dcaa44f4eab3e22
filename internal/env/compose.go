package env

import (
	"fmt"
	"math/rand"

	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

// StepOutcome is the result of composing one rule-set step.
type StepOutcome struct {
	Next        *grid.State
	Reward      float64
	Done        bool
	Observation *grid.Observation
}

// Step runs the composed step function on an isolated copy of state:
// transitions chained in order, rewards summed, terminations OR'd, then
// the observation of the resulting state. The input state is never
// mutated; on any rule failure the partially evolved copy is discarded
// and the error names the offending rule.
//
// Empty rule lists are legal: no transitions leaves the state unchanged,
// no rewards yields 0, no terminations never ends the episode.
func (rs RuleSet) Step(rng *rand.Rand, state *grid.State, action spaces.Action) (StepOutcome, error) {
	next := state.Clone()
	for _, t := range rs.Transitions {
		if err := t.Fn(rng, next, action); err != nil {
			return StepOutcome{}, fmt.Errorf("transition rule %q on action %s: %w", t.Name, action, err)
		}
	}

	var reward float64
	for _, r := range rs.Rewards {
		reward += r.Fn(state, action, next)
	}

	done := false
	for _, t := range rs.Terminations {
		if t.Fn(state, action, next) {
			done = true
			break
		}
	}

	obs, err := rs.Observe(next)
	if err != nil {
		return StepOutcome{}, fmt.Errorf("observation function: %w", err)
	}

	return StepOutcome{Next: next, Reward: reward, Done: done, Observation: obs}, nil
}
