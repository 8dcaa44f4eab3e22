// Package rules holds the named transition, reward and termination rules
// and the reset/observation functions the environment builders compose.
// Every rule is addressable by the name an env config uses.
package rules

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"gridverse.ai/internal/env"
	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

const livingReward = -0.01

var transitionFuncs = map[string]env.TransitionFunc{
	"update_agent":          updateAgent,
	"step_moving_obstacles": stepMovingObstacles,
	"actuate_door":          actuateDoor,
	"pickup_mechanics":      pickupMechanics,
}

var rewardFuncs = map[string]env.RewardFunc{
	"reach_goal":           rewardReachGoal,
	"bump_into_wall":       rewardBumpIntoWall,
	"bump_moving_obstacle": rewardBumpMovingObstacle,
	"living_reward":        rewardLiving,
}

var terminationFuncs = map[string]env.TerminationFunc{
	"reach_goal":           terminateReachGoal,
	"bump_into_wall":       terminateBumpIntoWall,
	"bump_moving_obstacle": terminateBumpMovingObstacle,
}

// TransitionByName resolves a named transition rule.
func TransitionByName(name string) (env.Transition, error) {
	fn, ok := transitionFuncs[name]
	if !ok {
		return env.Transition{}, unknownRuleErr("transition", name, transitionNames())
	}
	return env.Transition{Name: name, Fn: fn}, nil
}

// RewardByName resolves a named reward rule.
func RewardByName(name string) (env.Reward, error) {
	fn, ok := rewardFuncs[name]
	if !ok {
		return env.Reward{}, unknownRuleErr("reward", name, rewardNames())
	}
	return env.Reward{Name: name, Fn: fn}, nil
}

// TerminationByName resolves a named termination predicate.
func TerminationByName(name string) (env.Termination, error) {
	fn, ok := terminationFuncs[name]
	if !ok {
		return env.Termination{}, unknownRuleErr("termination", name, terminationNames())
	}
	return env.Termination{Name: name, Fn: fn}, nil
}

func unknownRuleErr(kind, name string, known []string) error {
	return fmt.Errorf("no %s rule named %q (known: %s)", kind, name, strings.Join(known, ", "))
}

func transitionNames() []string  { return sortedKeys(transitionFuncs) }
func rewardNames() []string      { return sortedKeys(rewardFuncs) }
func terminationNames() []string { return sortedKeys(terminationFuncs) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// moveTarget returns the cell a move action aims at, or ok=false for
// non-move actions.
func moveTarget(s *grid.State, action spaces.Action) (grid.Position, bool) {
	var rel grid.Position
	switch action {
	case spaces.MoveForward:
		rel = grid.Position{Y: -1}
	case spaces.MoveBackward:
		rel = grid.Position{Y: 1}
	case spaces.MoveLeft:
		rel = grid.Position{X: -1}
	case spaces.MoveRight:
		rel = grid.Position{X: 1}
	default:
		return grid.Position{}, false
	}
	return s.Agent.Pos.Add(s.Agent.Dir.RelativeToAbsolute(rel)), true
}

// updateAgent applies movement and turning. Moves into blocked or
// out-of-bounds cells leave the agent in place.
func updateAgent(_ *rand.Rand, next *grid.State, action spaces.Action) error {
	switch action {
	case spaces.TurnLeft:
		next.Agent.Dir = next.Agent.Dir.RotateLeft()
		return nil
	case spaces.TurnRight:
		next.Agent.Dir = next.Agent.Dir.RotateRight()
		return nil
	}
	target, ok := moveTarget(next, action)
	if !ok {
		return nil
	}
	if next.Grid.Contains(target) && !next.Grid.Get(target).Blocks() {
		next.Agent.Pos = target
	}
	return nil
}

// stepMovingObstacles moves every obstacle to a uniformly chosen free
// orthogonal neighbor, if it has one. Obstacles never step onto the agent.
func stepMovingObstacles(rng *rand.Rand, next *grid.State, _ spaces.Action) error {
	deltas := []grid.Position{{Y: -1}, {Y: 1}, {X: -1}, {X: 1}}
	for _, pos := range next.Grid.Find(grid.MovingObstacle) {
		var free []grid.Position
		for _, d := range deltas {
			q := pos.Add(d)
			if next.Grid.Contains(q) && !next.Grid.Get(q).Blocks() && q != next.Agent.Pos {
				free = append(free, q)
			}
		}
		if len(free) == 0 {
			continue
		}
		q := free[rng.Intn(len(free))]
		next.Grid.Set(q, next.Grid.Get(pos))
		next.Grid.Set(pos, grid.MakeFloor())
	}
	return nil
}

// actuateDoor opens the door in front of the agent. Closed doors open
// freely; locked doors open only when the held key color matches.
func actuateDoor(_ *rand.Rand, next *grid.State, action spaces.Action) error {
	if action != spaces.Actuate {
		return nil
	}
	front := next.Agent.Pos.Add(next.Agent.Dir.Forward())
	if !next.Grid.Contains(front) {
		return nil
	}
	o := next.Grid.Get(front)
	if o.Type != grid.Door {
		return nil
	}
	switch o.Status {
	case grid.DoorClosed:
		o.Status = grid.DoorOpen
		next.Grid.Set(front, o)
	case grid.DoorLocked:
		held := next.Agent.Held
		if held.Type == grid.Key && held.Color == o.Color {
			o.Status = grid.DoorOpen
			next.Grid.Set(front, o)
		}
	}
	return nil
}

// pickupMechanics swaps the held object with the cell in front: an
// empty-handed agent picks up what is liftable, a loaded agent drops onto
// floor.
func pickupMechanics(_ *rand.Rand, next *grid.State, action spaces.Action) error {
	if action != spaces.PickNDrop {
		return nil
	}
	front := next.Agent.Pos.Add(next.Agent.Dir.Forward())
	if !next.Grid.Contains(front) {
		return nil
	}
	o := next.Grid.Get(front)
	held := next.Agent.Held
	switch {
	case held.IsNone() && o.CanBePickedUp():
		next.Agent.Held = o
		next.Grid.Set(front, grid.MakeFloor())
	case !held.IsNone() && o.Type == grid.Floor:
		next.Grid.Set(front, held)
		next.Agent.Held = grid.Object{}
	}
	return nil
}

func onGoal(s *grid.State) bool {
	return s.Grid.Get(s.Agent.Pos).Type == grid.Goal
}

// bumped reports whether the action aimed at a cell of type t and the
// agent did not move.
func bumped(prev *grid.State, action spaces.Action, next *grid.State, t grid.ObjectType) bool {
	target, ok := moveTarget(prev, action)
	if !ok || next.Agent.Pos != prev.Agent.Pos {
		return false
	}
	return prev.Grid.Contains(target) && prev.Grid.Get(target).Type == t
}

func rewardReachGoal(_ *grid.State, _ spaces.Action, next *grid.State) float64 {
	if onGoal(next) {
		return 1
	}
	return 0
}

func rewardBumpIntoWall(prev *grid.State, action spaces.Action, next *grid.State) float64 {
	if bumped(prev, action, next, grid.Wall) {
		return -1
	}
	return 0
}

func rewardBumpMovingObstacle(prev *grid.State, action spaces.Action, next *grid.State) float64 {
	if bumped(prev, action, next, grid.MovingObstacle) {
		return -1
	}
	return 0
}

func rewardLiving(_ *grid.State, _ spaces.Action, _ *grid.State) float64 {
	return livingReward
}

func terminateReachGoal(_ *grid.State, _ spaces.Action, next *grid.State) bool {
	return onGoal(next)
}

func terminateBumpIntoWall(prev *grid.State, action spaces.Action, next *grid.State) bool {
	return bumped(prev, action, next, grid.Wall)
}

func terminateBumpMovingObstacle(prev *grid.State, action spaces.Action, next *grid.State) bool {
	return bumped(prev, action, next, grid.MovingObstacle)
}
