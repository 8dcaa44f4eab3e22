package repr

import (
	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

// The compact representation uses the same array names and shapes as the
// default one but offsets each channel into a non-overlapping index range:
// types in [0, maxType], statuses in (maxType, maxType+1+MaxStatus],
// colors above both. A flat embedding of the values then never aliases a
// type with a status or color. No inverse is defined for this layout.

type compactOffsets struct {
	status int
	color  int
}

func offsetsFor(maxType int) compactOffsets {
	return compactOffsets{
		status: maxType + 1,
		color:  maxType + 1 + grid.MaxStatus + 1,
	}
}

func compactGridBounds(sh grid.Shape, maxType, maxColor int, off compactOffsets) Bounds {
	n := sh.Height * sh.Width
	b := Bounds{
		Shape: []int{sh.Height, sh.Width, cellChannels},
		Low:   make([]int, n*cellChannels),
		High:  make([]int, n*cellChannels),
	}
	for i := 0; i < n; i++ {
		b.Low[i*cellChannels+1] = off.status
		b.Low[i*cellChannels+2] = off.color
		b.High[i*cellChannels+0] = maxType
		b.High[i*cellChannels+1] = off.status + grid.MaxStatus
		b.High[i*cellChannels+2] = off.color + maxColor
	}
	return b
}

func compactItemBounds(maxType, maxColor int, off compactOffsets) Bounds {
	return Bounds{
		Shape: []int{cellChannels},
		Low:   []int{0, off.status, off.color},
		High:  []int{maxType, off.status + grid.MaxStatus, off.color + maxColor},
	}
}

func compactConvertGrid(g *grid.Grid, off compactOffsets) Array {
	a := convertGrid(g)
	for i := 0; i < len(a.Data); i += cellChannels {
		a.Data[i+1] += off.status
		a.Data[i+2] += off.color
	}
	return a
}

func compactConvertAgent(ag grid.Agent, off compactOffsets) (pose, item Array) {
	pose, item = convertAgent(ag)
	item.Data[1] += off.status
	item.Data[2] += off.color
	return pose, item
}

// CompactStateRep is the "compact" state representation.
type CompactStateRep struct {
	space     spaces.StateSpace
	off       compactOffsets
	advertise Space
}

func newCompactStateRep(sp spaces.StateSpace) *CompactStateRep {
	maxType := spaces.MaxObjectType(sp.ObjectTypes)
	maxColor := spaces.MaxColor(sp.Colors)
	off := offsetsFor(maxType)
	return &CompactStateRep{
		space: sp,
		off:   off,
		advertise: Space{
			"grid":  compactGridBounds(sp.GridShape, maxType, maxColor, off),
			"agent": agentBounds(sp.GridShape),
			"item":  compactItemBounds(maxType, maxColor, off),
		},
	}
}

func (r *CompactStateRep) Space() Space { return r.advertise }

func (r *CompactStateRep) Convert(s *grid.State) (map[string]Array, error) {
	if err := r.space.Contains(s); err != nil {
		return nil, err
	}
	pose, item := compactConvertAgent(s.Agent, r.off)
	return map[string]Array{
		"grid":  compactConvertGrid(s.Grid, r.off),
		"agent": pose,
		"item":  item,
	}, nil
}

// CompactObservationRep is the "compact" observation representation.
type CompactObservationRep struct {
	space     spaces.ObservationSpace
	off       compactOffsets
	advertise Space
}

func newCompactObservationRep(sp spaces.ObservationSpace) *CompactObservationRep {
	maxType := spaces.MaxObjectType(sp.ObjectTypes)
	if int(grid.Hidden) > maxType {
		maxType = int(grid.Hidden)
	}
	maxColor := spaces.MaxColor(sp.Colors)
	off := offsetsFor(maxType)
	return &CompactObservationRep{
		space: sp,
		off:   off,
		advertise: Space{
			"grid":  compactGridBounds(sp.Shape, maxType, maxColor, off),
			"agent": agentBounds(sp.Shape),
			"item":  compactItemBounds(maxType, maxColor, off),
		},
	}
}

func (r *CompactObservationRep) Space() Space { return r.advertise }

func (r *CompactObservationRep) Convert(o *grid.Observation) (map[string]Array, error) {
	if err := r.space.Contains(o); err != nil {
		return nil, err
	}
	pose, item := compactConvertAgent(o.Agent, r.off)
	return map[string]Array{
		"grid":  compactConvertGrid(o.Grid, r.off),
		"agent": pose,
		"item":  item,
	}, nil
}
