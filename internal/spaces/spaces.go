// Package spaces defines the space contracts every state, action and
// observation produced by an environment must satisfy. A contract
// violation is a configuration or programming bug, never a transient
// condition; validation errors identify the contract and field that
// failed.
package spaces

import (
	"fmt"

	"gridverse.ai/internal/grid"
)

// ContractError reports a value rejected by a space contract.
type ContractError struct {
	Contract string // "state", "action" or "observation"
	Field    string
	Detail   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s space: %s: %s", e.Contract, e.Field, e.Detail)
}

func contractErrf(contract, field, format string, args ...any) error {
	return &ContractError{
		Contract: contract,
		Field:    field,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// StateSpace is the legal universe of states: a fixed grid shape plus the
// permitted object types and colors.
type StateSpace struct {
	GridShape   grid.Shape
	ObjectTypes []grid.ObjectType
	Colors      []grid.Color
}

// Contains returns nil iff s is a legal state.
func (sp StateSpace) Contains(s *grid.State) error {
	if s == nil || s.Grid == nil {
		return contractErrf("state", "state", "nil state")
	}
	if got := s.Grid.Shape(); got != sp.GridShape {
		return contractErrf("state", "grid.shape", "got %s, want %s", got, sp.GridShape)
	}
	if err := checkCells("state", sp.ObjectTypes, sp.Colors, s.Grid); err != nil {
		return err
	}
	if !s.Grid.Contains(s.Agent.Pos) {
		return contractErrf("state", "agent.pos", "%s outside %s", s.Agent.Pos, sp.GridShape)
	}
	if !s.Agent.Held.IsNone() && !typeListed(sp.ObjectTypes, s.Agent.Held.Type) {
		return contractErrf("state", "agent.held", "object type %s not in space", s.Agent.Held.Type)
	}
	return nil
}

// ObservationSpace is the legal universe of observations: a fixed window
// shape plus permitted object types and colors. Hidden is always legal in
// observations, listed or not.
type ObservationSpace struct {
	Shape       grid.Shape
	ObjectTypes []grid.ObjectType
	Colors      []grid.Color
}

// Contains returns nil iff o is a legal observation.
func (sp ObservationSpace) Contains(o *grid.Observation) error {
	if o == nil || o.Grid == nil {
		return contractErrf("observation", "observation", "nil observation")
	}
	if got := o.Grid.Shape(); got != sp.Shape {
		return contractErrf("observation", "grid.shape", "got %s, want %s", got, sp.Shape)
	}
	types := sp.ObjectTypes
	if !typeListed(types, grid.Hidden) {
		types = append(append([]grid.ObjectType{}, types...), grid.Hidden)
	}
	return checkCells("observation", types, sp.Colors, o.Grid)
}

// ActionSpace is the declared, ordered action enumeration. The slice order
// defines the external integer encoding.
type ActionSpace struct {
	Actions []Action
}

func (sp ActionSpace) NumActions() int { return len(sp.Actions) }

// Contains returns nil iff a is one of the declared actions.
func (sp ActionSpace) Contains(a Action) error {
	for _, b := range sp.Actions {
		if a == b {
			return nil
		}
	}
	return contractErrf("action", "action", "%s not in declared action set", a)
}

// FromInt maps an external dense integer onto the declared action in
// enumeration order.
func (sp ActionSpace) FromInt(i int) (Action, error) {
	if i < 0 || i >= len(sp.Actions) {
		return 0, contractErrf("action", "int", "%d outside legal range [0,%d)", i, len(sp.Actions))
	}
	return sp.Actions[i], nil
}

// ToInt is the inverse of FromInt.
func (sp ActionSpace) ToInt(a Action) (int, error) {
	for i, b := range sp.Actions {
		if a == b {
			return i, nil
		}
	}
	return 0, contractErrf("action", "action", "%s not in declared action set", a)
}

// DomainSpace binds the three contracts of one environment. Immutable once
// the inner environment is constructed.
type DomainSpace struct {
	State       StateSpace
	Action      ActionSpace
	Observation ObservationSpace
}

func checkCells(contract string, types []grid.ObjectType, colors []grid.Color, g *grid.Grid) error {
	sh := g.Shape()
	for y := 0; y < sh.Height; y++ {
		for x := 0; x < sh.Width; x++ {
			p := grid.Position{Y: y, X: x}
			o := g.Get(p)
			if !typeListed(types, o.Type) {
				return contractErrf(contract, "grid.cell", "object type %s at %s not in space", o.Type, p)
			}
			if !colorListed(colors, o.Color) {
				return contractErrf(contract, "grid.cell", "color %s at %s not in space", o.Color, p)
			}
			if o.Status < 0 || o.Status > grid.MaxStatus {
				return contractErrf(contract, "grid.cell", "status %d at %s outside [0,%d]", o.Status, p, grid.MaxStatus)
			}
		}
	}
	return nil
}

func typeListed(types []grid.ObjectType, t grid.ObjectType) bool {
	for _, u := range types {
		if t == u {
			return true
		}
	}
	return false
}

func colorListed(colors []grid.Color, c grid.Color) bool {
	if len(colors) == 0 && c == grid.NoColor {
		return true
	}
	for _, d := range colors {
		if c == d {
			return true
		}
	}
	return false
}

// MaxObjectType returns the largest type index a space admits; the numeric
// representations use it as the type-channel upper bound.
func MaxObjectType(types []grid.ObjectType) int {
	max := 0
	for _, t := range types {
		if int(t) > max {
			max = int(t)
		}
	}
	return max
}

// MaxColor returns the largest color index a space admits.
func MaxColor(colors []grid.Color) int {
	max := 0
	for _, c := range colors {
		if int(c) > max {
			max = int(c)
		}
	}
	return max
}
