package registry

import (
	"fmt"
	"math/rand"

	"gridverse.ai/internal/env"
	"gridverse.ai/internal/env/rules"
	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

// Definition declares one environment: a reset function, named rule
// lists and the object/color/observation universe of its spaces.
type Definition struct {
	Reset            env.ResetFunc
	Transitions      []string
	Rewards          []string
	Terminations     []string
	Objects          []grid.ObjectType
	Colors           []grid.Color
	ObservationShape grid.Shape
}

// FromDefinition resolves the named rules, derives the domain space (grid
// shape from the reset function's first sample, action order from
// spaces.DefaultActions) and assembles the inner environment.
func FromDefinition(d Definition) (env.InnerEnv, error) {
	var rs env.RuleSet
	for _, name := range d.Transitions {
		t, err := rules.TransitionByName(name)
		if err != nil {
			return nil, err
		}
		rs.Transitions = append(rs.Transitions, t)
	}
	for _, name := range d.Rewards {
		r, err := rules.RewardByName(name)
		if err != nil {
			return nil, err
		}
		rs.Rewards = append(rs.Rewards, r)
	}
	for _, name := range d.Terminations {
		t, err := rules.TerminationByName(name)
		if err != nil {
			return nil, err
		}
		rs.Terminations = append(rs.Terminations, t)
	}

	observe, err := rules.NewForwardObservation(d.ObservationShape)
	if err != nil {
		return nil, err
	}
	rs.Observe = observe

	// Shape inference: sample once with a throwaway rng. Reset is assumed
	// shape-invariant; GridWorld.Reset asserts it on every sample.
	sample, err := d.Reset(rand.New(rand.NewSource(0)))
	if err != nil {
		return nil, fmt.Errorf("sample reset for grid shape: %w", err)
	}

	space := spaces.DomainSpace{
		State: spaces.StateSpace{
			GridShape:   sample.Grid.Shape(),
			ObjectTypes: d.Objects,
			Colors:      d.Colors,
		},
		Action: spaces.ActionSpace{Actions: spaces.DefaultActions},
		Observation: spaces.ObservationSpace{
			Shape:       d.ObservationShape,
			ObjectTypes: d.Objects,
			Colors:      d.Colors,
		},
	}

	return env.NewGridWorld(space, d.Reset, rs)
}

var defaultObsShape = grid.Shape{Height: 7, Width: 7}

var navigationObjects = []grid.ObjectType{grid.NoneObject, grid.Floor, grid.Wall, grid.Goal}

// Default returns a registry populated with the stock environments.
// Sizes name the floor area; two rows and columns of boundary wall are
// added around it.
func Default() *Registry {
	r := New()

	type entry struct {
		name  string
		build Builder
	}
	entries := []entry{
		{"Empty-5x5", emptyRoomBuilder(5, false)},
		{"Empty-Random-5x5", emptyRoomBuilder(5, true)},
		{"Empty-6x6", emptyRoomBuilder(6, false)},
		{"Empty-Random-6x6", emptyRoomBuilder(6, true)},
		{"Empty-8x8", emptyRoomBuilder(8, false)},
		{"Empty-16x16", emptyRoomBuilder(16, false)},
		{"FourRooms", fourRoomsBuilder(13)},
		{"Dynamic-Obstacles-5x5", dynamicObstaclesBuilder(5, 2, false)},
		{"Dynamic-Obstacles-Random-5x5", dynamicObstaclesBuilder(5, 2, true)},
		{"Dynamic-Obstacles-6x6", dynamicObstaclesBuilder(6, 3, false)},
		{"Dynamic-Obstacles-8x8", dynamicObstaclesBuilder(8, 4, false)},
		{"KeyDoor-5x5", keyDoorBuilder(5)},
		{"KeyDoor-6x6", keyDoorBuilder(6)},
		{"KeyDoor-8x8", keyDoorBuilder(8)},
	}
	for _, e := range entries {
		if err := r.Register(e.name, e.build); err != nil {
			panic(err)
		}
	}
	return r
}

func navigationDefinition(reset env.ResetFunc, objects []grid.ObjectType, colors []grid.Color) Definition {
	return Definition{
		Reset:            reset,
		Transitions:      []string{"update_agent"},
		Rewards:          []string{"reach_goal"},
		Terminations:     []string{"reach_goal"},
		Objects:          objects,
		Colors:           colors,
		ObservationShape: defaultObsShape,
	}
}

func emptyRoomBuilder(size int, randomAgent bool) Builder {
	return func() (env.InnerEnv, error) {
		reset, err := rules.NewEmptyRoom(size+2, size+2, randomAgent)
		if err != nil {
			return nil, err
		}
		return FromDefinition(navigationDefinition(reset, navigationObjects, []grid.Color{grid.NoColor}))
	}
}

func fourRoomsBuilder(size int) Builder {
	return func() (env.InnerEnv, error) {
		reset, err := rules.NewFourRooms(size+2, size+2)
		if err != nil {
			return nil, err
		}
		return FromDefinition(navigationDefinition(reset, navigationObjects, []grid.Color{grid.NoColor}))
	}
}

func dynamicObstaclesBuilder(size, numObstacles int, randomAgent bool) Builder {
	objects := append(append([]grid.ObjectType{}, navigationObjects...), grid.MovingObstacle)
	return func() (env.InnerEnv, error) {
		reset, err := rules.NewDynamicObstacles(size+2, size+2, numObstacles, randomAgent)
		if err != nil {
			return nil, err
		}
		d := navigationDefinition(reset, objects, []grid.Color{grid.NoColor})
		d.Transitions = []string{"update_agent", "step_moving_obstacles"}
		d.Rewards = []string{"reach_goal", "bump_moving_obstacle", "bump_into_wall"}
		d.Terminations = []string{"reach_goal", "bump_moving_obstacle", "bump_into_wall"}
		return FromDefinition(d)
	}
}

func keyDoorBuilder(size int) Builder {
	objects := append(append([]grid.ObjectType{}, navigationObjects...), grid.Door, grid.Key)
	colors := []grid.Color{grid.NoColor, grid.Yellow}
	return func() (env.InnerEnv, error) {
		reset, err := rules.NewKeyDoor(size+2, size+2)
		if err != nil {
			return nil, err
		}
		d := navigationDefinition(reset, objects, colors)
		d.Transitions = []string{"update_agent", "actuate_door", "pickup_mechanics"}
		return FromDefinition(d)
	}
}
