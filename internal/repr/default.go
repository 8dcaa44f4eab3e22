package repr

import (
	"fmt"

	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

// The default representation lays a grid out as an HxWx3 array of
// (type, status, color) cell triples, the agent pose as [row, col,
// orientation] and the held object as one (type, status, color) triple.
// It is lossless, so the state variant defines an inverse.

const cellChannels = 3

func gridBounds(sh grid.Shape, maxType, maxColor int) Bounds {
	n := sh.Height * sh.Width
	b := Bounds{
		Shape: []int{sh.Height, sh.Width, cellChannels},
		Low:   make([]int, n*cellChannels),
		High:  make([]int, n*cellChannels),
	}
	for i := 0; i < n; i++ {
		b.High[i*cellChannels+0] = maxType
		b.High[i*cellChannels+1] = grid.MaxStatus
		b.High[i*cellChannels+2] = maxColor
	}
	return b
}

func itemBounds(maxType, maxColor int) Bounds {
	return Bounds{
		Shape: []int{cellChannels},
		Low:   []int{0, 0, 0},
		High:  []int{maxType, grid.MaxStatus, maxColor},
	}
}

func agentBounds(sh grid.Shape) Bounds {
	return Bounds{
		Shape: []int{3},
		Low:   []int{0, 0, 0},
		High:  []int{sh.Height - 1, sh.Width - 1, int(grid.West)},
	}
}

func convertGrid(g *grid.Grid) Array {
	sh := g.Shape()
	a := Array{
		Shape: []int{sh.Height, sh.Width, cellChannels},
		Data:  make([]int, sh.Height*sh.Width*cellChannels),
	}
	i := 0
	for y := 0; y < sh.Height; y++ {
		for x := 0; x < sh.Width; x++ {
			o := g.Get(grid.Position{Y: y, X: x})
			a.Data[i+0] = int(o.Type)
			a.Data[i+1] = o.Status
			a.Data[i+2] = int(o.Color)
			i += cellChannels
		}
	}
	return a
}

func convertAgent(a grid.Agent) (pose, item Array) {
	pose = Array{Shape: []int{3}, Data: []int{a.Pos.Y, a.Pos.X, int(a.Dir)}}
	item = Array{Shape: []int{cellChannels}, Data: []int{int(a.Held.Type), a.Held.Status, int(a.Held.Color)}}
	return pose, item
}

// DefaultStateRep is the "default" state representation.
type DefaultStateRep struct {
	space     spaces.StateSpace
	advertise Space
}

func newDefaultStateRep(sp spaces.StateSpace) *DefaultStateRep {
	maxType := spaces.MaxObjectType(sp.ObjectTypes)
	maxColor := spaces.MaxColor(sp.Colors)
	return &DefaultStateRep{
		space: sp,
		advertise: Space{
			"grid":  gridBounds(sp.GridShape, maxType, maxColor),
			"agent": agentBounds(sp.GridShape),
			"item":  itemBounds(maxType, maxColor),
		},
	}
}

func (r *DefaultStateRep) Space() Space { return r.advertise }

func (r *DefaultStateRep) Convert(s *grid.State) (map[string]Array, error) {
	if err := r.space.Contains(s); err != nil {
		return nil, err
	}
	pose, item := convertAgent(s.Agent)
	return map[string]Array{
		"grid":  convertGrid(s.Grid),
		"agent": pose,
		"item":  item,
	}, nil
}

// Invert reconstructs a state from its default projection. Projection
// then inversion reproduces a state equal to the original.
func (r *DefaultStateRep) Invert(arrays map[string]Array) (*grid.State, error) {
	ga, ok := arrays["grid"]
	if !ok {
		return nil, fmt.Errorf("invert: missing %q array", "grid")
	}
	pose, ok := arrays["agent"]
	if !ok {
		return nil, fmt.Errorf("invert: missing %q array", "agent")
	}
	item, ok := arrays["item"]
	if !ok {
		return nil, fmt.Errorf("invert: missing %q array", "item")
	}
	sh := r.space.GridShape
	if !intsEqual(ga.Shape, []int{sh.Height, sh.Width, cellChannels}) {
		return nil, fmt.Errorf("invert: grid array shape %v does not match %s", ga.Shape, sh)
	}
	if len(pose.Data) != 3 || len(item.Data) != cellChannels {
		return nil, fmt.Errorf("invert: bad agent/item array length")
	}
	g := grid.NewGrid(sh.Height, sh.Width)
	i := 0
	for y := 0; y < sh.Height; y++ {
		for x := 0; x < sh.Width; x++ {
			g.Set(grid.Position{Y: y, X: x}, grid.Object{
				Type:   grid.ObjectType(ga.Data[i+0]),
				Status: ga.Data[i+1],
				Color:  grid.Color(ga.Data[i+2]),
			})
			i += cellChannels
		}
	}
	st := &grid.State{
		Grid: g,
		Agent: grid.Agent{
			Pos:  grid.Position{Y: pose.Data[0], X: pose.Data[1]},
			Dir:  grid.Orientation(pose.Data[2]),
			Held: grid.Object{Type: grid.ObjectType(item.Data[0]), Status: item.Data[1], Color: grid.Color(item.Data[2])},
		},
	}
	if err := r.space.Contains(st); err != nil {
		return nil, fmt.Errorf("invert: %w", err)
	}
	return st, nil
}

// DefaultObservationRep is the "default" observation representation.
type DefaultObservationRep struct {
	space     spaces.ObservationSpace
	advertise Space
}

func newDefaultObservationRep(sp spaces.ObservationSpace) *DefaultObservationRep {
	maxType := spaces.MaxObjectType(sp.ObjectTypes)
	if int(grid.Hidden) > maxType {
		maxType = int(grid.Hidden)
	}
	maxColor := spaces.MaxColor(sp.Colors)
	return &DefaultObservationRep{
		space: sp,
		advertise: Space{
			"grid":  gridBounds(sp.Shape, maxType, maxColor),
			"agent": agentBounds(sp.Shape),
			"item":  itemBounds(maxType, maxColor),
		},
	}
}

func (r *DefaultObservationRep) Space() Space { return r.advertise }

func (r *DefaultObservationRep) Convert(o *grid.Observation) (map[string]Array, error) {
	if err := r.space.Contains(o); err != nil {
		return nil, err
	}
	pose, item := convertAgent(o.Agent)
	return map[string]Array{
		"grid":  convertGrid(o.Grid),
		"agent": pose,
		"item":  item,
	}, nil
}
