package spaces

import "fmt"

// Action is one of the discrete moves an agent can request.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	TurnLeft
	TurnRight
	Actuate
	PickNDrop
)

var actionNames = map[Action]string{
	MoveForward:  "move_forward",
	MoveBackward: "move_backward",
	MoveLeft:     "move_left",
	MoveRight:    "move_right",
	TurnLeft:     "turn_left",
	TurnRight:    "turn_right",
	Actuate:      "actuate",
	PickNDrop:    "pick_n_drop",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// DefaultActions is the canonical external enumeration order: integer
// action i (as seen by a learning agent, or on the wire) maps to
// DefaultActions[i]. This order is part of the external contract; append
// new actions, never reorder.
var DefaultActions = []Action{
	MoveForward,
	MoveBackward,
	MoveLeft,
	MoveRight,
	TurnLeft,
	TurnRight,
	Actuate,
	PickNDrop,
}

// ActionByName resolves a lowercase action name, e.g. from an env config.
func ActionByName(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}
