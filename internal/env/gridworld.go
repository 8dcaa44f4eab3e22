package env

import (
	"fmt"
	"math/rand"

	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

// GridWorld is the standard InnerEnv: a domain space, a reset function and
// a rule set. It owns the canonical state exclusively; rules and
// representations only ever see clones or read-only references.
type GridWorld struct {
	space spaces.DomainSpace
	reset ResetFunc
	rules RuleSet

	rng   *rand.Rand
	state *grid.State
	obs   *grid.Observation
}

// NewGridWorld builds a GridWorld from its collaborators. The rule set
// must carry an observation function; the transition, reward and
// termination lists may each be empty.
func NewGridWorld(space spaces.DomainSpace, reset ResetFunc, rules RuleSet) (*GridWorld, error) {
	if reset == nil {
		return nil, fmt.Errorf("gridworld: nil reset function")
	}
	if rules.Observe == nil {
		return nil, fmt.Errorf("gridworld: rule set has no observation function")
	}
	if space.Action.NumActions() == 0 {
		return nil, fmt.Errorf("gridworld: empty action space")
	}
	return &GridWorld{
		space: space,
		reset: reset,
		rules: rules,
		rng:   rand.New(rand.NewSource(0)),
	}, nil
}

func (w *GridWorld) Space() spaces.DomainSpace { return w.space }

// SetSeed reseeds the RNG shared with the reset function and every
// stochastic rule. Reseeding between episodes is permitted.
func (w *GridWorld) SetSeed(seed int64) {
	w.rng = rand.New(rand.NewSource(seed))
}

func (w *GridWorld) Reset() (*grid.Observation, error) {
	state, err := w.reset(w.rng)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	// Shape inference at construction time assumes the reset function's
	// shape is constant; assert rather than trust it.
	if err := w.space.State.Contains(state); err != nil {
		return nil, fmt.Errorf("reset produced invalid state: %w", err)
	}
	obs, err := w.rules.Observe(state)
	if err != nil {
		return nil, fmt.Errorf("reset: observation function: %w", err)
	}
	if err := w.space.Observation.Contains(obs); err != nil {
		return nil, fmt.Errorf("reset produced invalid observation: %w", err)
	}
	w.state = state
	w.obs = obs
	return obs, nil
}

func (w *GridWorld) Step(action spaces.Action) (float64, bool, error) {
	if w.state == nil {
		return 0, false, ErrResetRequired
	}
	if err := w.space.Action.Contains(action); err != nil {
		return 0, false, err
	}
	out, err := w.rules.Step(w.rng, w.state, action)
	if err != nil {
		return 0, false, err
	}
	if err := w.space.State.Contains(out.Next); err != nil {
		return 0, false, fmt.Errorf("step produced invalid state: %w", err)
	}
	if err := w.space.Observation.Contains(out.Observation); err != nil {
		return 0, false, fmt.Errorf("step produced invalid observation: %w", err)
	}
	// Replace, never mutate: representations holding the old state keep a
	// consistent (stale) view until they re-project.
	w.state = out.Next
	w.obs = out.Observation
	return out.Reward, out.Done, nil
}

func (w *GridWorld) State() *grid.State { return w.state }

func (w *GridWorld) Observation() *grid.Observation { return w.obs }
