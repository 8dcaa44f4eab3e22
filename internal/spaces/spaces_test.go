package spaces

import (
	"errors"
	"strings"
	"testing"

	"gridverse.ai/internal/grid"
)

func navigationStateSpace() StateSpace {
	return StateSpace{
		GridShape:   grid.Shape{Height: 4, Width: 4},
		ObjectTypes: []grid.ObjectType{grid.NoneObject, grid.Floor, grid.Wall, grid.Goal},
		Colors:      []grid.Color{grid.NoColor},
	}
}

func validState() *grid.State {
	g := grid.NewGrid(4, 4)
	g.Set(grid.Position{Y: 2, X: 2}, grid.MakeGoal())
	return &grid.State{Grid: g, Agent: grid.Agent{Pos: grid.Position{Y: 1, X: 1}, Dir: grid.North}}
}

func TestStateSpaceContains(t *testing.T) {
	sp := navigationStateSpace()
	if err := sp.Contains(validState()); err != nil {
		t.Fatalf("valid state rejected: %v", err)
	}
}

func TestStateSpaceRejectsWrongShape(t *testing.T) {
	sp := navigationStateSpace()
	s := &grid.State{Grid: grid.NewGrid(3, 4)}
	err := sp.Contains(s)
	if err == nil {
		t.Fatalf("expected shape violation")
	}
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ContractError, got %T", err)
	}
	if ce.Contract != "state" || ce.Field != "grid.shape" {
		t.Fatalf("error should name contract and field, got %+v", ce)
	}
}

func TestStateSpaceRejectsUnknownObject(t *testing.T) {
	sp := navigationStateSpace()
	s := validState()
	s.Grid.Set(grid.Position{Y: 1, X: 2}, grid.MakeKey(grid.Red))
	err := sp.Contains(s)
	if err == nil {
		t.Fatalf("expected object-type violation")
	}
	if !strings.Contains(err.Error(), "key") {
		t.Fatalf("error should name the offending type: %v", err)
	}
}

func TestStateSpaceRejectsAgentOutside(t *testing.T) {
	sp := navigationStateSpace()
	s := validState()
	s.Agent.Pos = grid.Position{Y: 9, X: 0}
	if err := sp.Contains(s); err == nil {
		t.Fatalf("expected agent position violation")
	}
}

func TestObservationSpaceAllowsHidden(t *testing.T) {
	sp := ObservationSpace{
		Shape:       grid.Shape{Height: 2, Width: 3},
		ObjectTypes: []grid.ObjectType{grid.Floor, grid.Wall},
		Colors:      []grid.Color{grid.NoColor},
	}
	g := grid.NewGrid(2, 3)
	g.Set(grid.Position{Y: 0, X: 0}, grid.MakeHidden())
	o := &grid.Observation{Grid: g}
	if err := sp.Contains(o); err != nil {
		t.Fatalf("hidden cells must always be legal in observations: %v", err)
	}
}

func TestActionSpaceIntMapping(t *testing.T) {
	sp := ActionSpace{Actions: DefaultActions}
	if sp.NumActions() != len(DefaultActions) {
		t.Fatalf("got %d actions, want %d", sp.NumActions(), len(DefaultActions))
	}
	for i, want := range DefaultActions {
		got, err := sp.FromInt(i)
		if err != nil {
			t.Fatalf("FromInt(%d): %v", i, err)
		}
		if got != want {
			t.Fatalf("FromInt(%d): got %s, want %s", i, got, want)
		}
		back, err := sp.ToInt(got)
		if err != nil || back != i {
			t.Fatalf("ToInt(%s): got %d (%v), want %d", got, back, err, i)
		}
	}
}

func TestActionSpaceRejectsOutOfRangeInt(t *testing.T) {
	sp := ActionSpace{Actions: DefaultActions}
	for _, i := range []int{-1, len(DefaultActions), 99} {
		_, err := sp.FromInt(i)
		if err == nil {
			t.Fatalf("FromInt(%d) should fail", i)
		}
		if !strings.Contains(err.Error(), "[0,8)") {
			t.Fatalf("error should name the legal range: %v", err)
		}
	}
}

func TestActionSpaceContainsDeclaredOnly(t *testing.T) {
	sp := ActionSpace{Actions: []Action{MoveForward, TurnLeft}}
	if err := sp.Contains(MoveForward); err != nil {
		t.Fatalf("declared action rejected: %v", err)
	}
	if err := sp.Contains(PickNDrop); err == nil {
		t.Fatalf("undeclared action accepted")
	}
}
