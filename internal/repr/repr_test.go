package repr

import (
	"strings"
	"testing"

	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

func keyDoorStateSpace() spaces.StateSpace {
	return spaces.StateSpace{
		GridShape: grid.Shape{Height: 3, Width: 3},
		ObjectTypes: []grid.ObjectType{
			grid.NoneObject, grid.Floor, grid.Wall, grid.Goal, grid.Door, grid.Key,
		},
		Colors: []grid.Color{grid.NoColor, grid.Red, grid.Yellow},
	}
}

func keyDoorState() *grid.State {
	g := grid.NewGrid(3, 3)
	g.Set(grid.Position{Y: 0, X: 0}, grid.MakeWall())
	g.Set(grid.Position{Y: 0, X: 1}, grid.MakeDoor(grid.DoorLocked, grid.Yellow))
	g.Set(grid.Position{Y: 2, X: 2}, grid.MakeGoal())
	return &grid.State{
		Grid: g,
		Agent: grid.Agent{
			Pos:  grid.Position{Y: 1, X: 1},
			Dir:  grid.East,
			Held: grid.MakeKey(grid.Red),
		},
	}
}

func TestDefaultStateConvert(t *testing.T) {
	rep, err := NewStateRepresentation(NameDefault, keyDoorStateSpace())
	if err != nil {
		t.Fatalf("new representation: %v", err)
	}
	arrays, err := rep.Convert(keyDoorState())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	ga := arrays["grid"]
	if !intsEqual(ga.Shape, []int{3, 3, 3}) {
		t.Fatalf("grid array shape %v", ga.Shape)
	}
	// Cell (0,1) holds the locked yellow door.
	i := (0*3 + 1) * cellChannels
	if ga.Data[i] != int(grid.Door) || ga.Data[i+1] != grid.DoorLocked || ga.Data[i+2] != int(grid.Yellow) {
		t.Fatalf("door cell triple %v", ga.Data[i:i+3])
	}

	if pose := arrays["agent"].Data; pose[0] != 1 || pose[1] != 1 || pose[2] != int(grid.East) {
		t.Fatalf("agent pose %v", pose)
	}
	if item := arrays["item"].Data; item[0] != int(grid.Key) || item[1] != 0 || item[2] != int(grid.Red) {
		t.Fatalf("item triple %v", item)
	}
}

func TestDefaultStateSpaceBounds(t *testing.T) {
	rep, err := NewStateRepresentation(NameDefault, keyDoorStateSpace())
	if err != nil {
		t.Fatalf("new representation: %v", err)
	}
	sp := rep.Space()
	gb, ok := sp["grid"]
	if !ok {
		t.Fatalf("advertised space missing %q", "grid")
	}
	if gb.High[0] != int(grid.Key) || gb.High[1] != grid.MaxStatus || gb.High[2] != int(grid.Yellow) {
		t.Fatalf("grid cell highs %v", gb.High[:3])
	}
	ab := sp["agent"]
	if !intsEqual(ab.High, []int{2, 2, int(grid.West)}) {
		t.Fatalf("agent highs %v", ab.High)
	}
}

func TestDefaultStateInvertRoundTrip(t *testing.T) {
	rep, err := NewStateRepresentation(NameDefault, keyDoorStateSpace())
	if err != nil {
		t.Fatalf("new representation: %v", err)
	}
	inv, ok := rep.(*DefaultStateRep)
	if !ok {
		t.Fatalf("default state representation should define an inverse")
	}

	s := keyDoorState()
	arrays, err := rep.Convert(s)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	back, err := inv.Invert(arrays)
	if err != nil {
		t.Fatalf("invert: %v", err)
	}
	if !back.Equal(s) {
		t.Fatalf("project-then-invert must reproduce an equal state")
	}
}

func TestDefaultStateInvertRejectsBadArrays(t *testing.T) {
	rep := newDefaultStateRep(keyDoorStateSpace())
	if _, err := rep.Invert(map[string]Array{}); err == nil {
		t.Fatalf("missing arrays accepted")
	}
	arrays, err := rep.Convert(keyDoorState())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	ga := arrays["grid"]
	ga.Shape = []int{2, 2, 3}
	arrays["grid"] = ga
	if _, err := rep.Invert(arrays); err == nil {
		t.Fatalf("mismatched grid array shape accepted")
	}
}

func TestConvertRejectsStateOutsideSpace(t *testing.T) {
	rep, err := NewStateRepresentation(NameDefault, keyDoorStateSpace())
	if err != nil {
		t.Fatalf("new representation: %v", err)
	}
	s := keyDoorState()
	s.Grid.Set(grid.Position{Y: 1, X: 0}, grid.MakeObstacle())
	if _, err := rep.Convert(s); err == nil {
		t.Fatalf("undeclared object type accepted")
	}
}

func TestCompactChannelsDoNotOverlap(t *testing.T) {
	rep, err := NewStateRepresentation(NameCompact, keyDoorStateSpace())
	if err != nil {
		t.Fatalf("new representation: %v", err)
	}
	gb := rep.Space()["grid"]
	typeHigh, statusLow := gb.High[0], gb.Low[1]
	statusHigh, colorLow := gb.High[1], gb.Low[2]
	if statusLow <= typeHigh {
		t.Fatalf("status range [%d,%d] overlaps type range [0,%d]", statusLow, statusHigh, typeHigh)
	}
	if colorLow <= statusHigh {
		t.Fatalf("color range starting at %d overlaps status range [%d,%d]", colorLow, statusLow, statusHigh)
	}
}

func TestCompactConvertShiftsChannels(t *testing.T) {
	def, err := NewStateRepresentation(NameDefault, keyDoorStateSpace())
	if err != nil {
		t.Fatalf("new representation: %v", err)
	}
	com, err := NewStateRepresentation(NameCompact, keyDoorStateSpace())
	if err != nil {
		t.Fatalf("new representation: %v", err)
	}

	s := keyDoorState()
	da, err := def.Convert(s)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	ca, err := com.Convert(s)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	off := offsetsFor(spaces.MaxObjectType(keyDoorStateSpace().ObjectTypes))
	dg, cg := da["grid"].Data, ca["grid"].Data
	for i := 0; i < len(dg); i += cellChannels {
		if cg[i] != dg[i] {
			t.Fatalf("type channel must not shift, cell %d: %d vs %d", i/cellChannels, cg[i], dg[i])
		}
		if cg[i+1] != dg[i+1]+off.status || cg[i+2] != dg[i+2]+off.color {
			t.Fatalf("cell %d channels not offset: %v vs %v", i/cellChannels, cg[i:i+3], dg[i:i+3])
		}
	}
	// The agent pose is positional, never offset.
	if !intsEqual(ca["agent"].Data, da["agent"].Data) {
		t.Fatalf("agent pose should match across representations")
	}
	if ci, di := ca["item"].Data, da["item"].Data; ci[1] != di[1]+off.status || ci[2] != di[2]+off.color {
		t.Fatalf("item channels not offset: %v vs %v", ci, di)
	}
}

func TestObservationRepAdmitsHidden(t *testing.T) {
	sp := spaces.ObservationSpace{
		Shape:       grid.Shape{Height: 2, Width: 3},
		ObjectTypes: []grid.ObjectType{grid.NoneObject, grid.Floor},
		Colors:      []grid.Color{grid.NoColor},
	}
	rep, err := NewObservationRepresentation(NameDefault, sp)
	if err != nil {
		t.Fatalf("new representation: %v", err)
	}
	// Hidden is legal in every observation, so the advertised type bound
	// must cover it even when the space does not list it.
	if high := rep.Space()["grid"].High[0]; high < int(grid.Hidden) {
		t.Fatalf("type bound %d does not cover hidden cells", high)
	}

	g := grid.NewGrid(2, 3)
	g.Set(grid.Position{Y: 0, X: 0}, grid.MakeHidden())
	if _, err := rep.Convert(&grid.Observation{Grid: g}); err != nil {
		t.Fatalf("hidden cell rejected: %v", err)
	}
}

func TestUnknownRepresentationName(t *testing.T) {
	_, err := NewStateRepresentation("onehot", keyDoorStateSpace())
	if err == nil {
		t.Fatalf("unknown name accepted")
	}
	for _, want := range []string{"onehot", NameDefault, NameCompact} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error should mention %q: %v", want, err)
		}
	}
	if _, err := NewObservationRepresentation("onehot", spaces.ObservationSpace{}); err == nil {
		t.Fatalf("unknown observation representation accepted")
	}
}
