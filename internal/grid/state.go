package grid

// Agent is the controllable actor: a position, a heading and an optional
// held object (NoneObject when empty-handed).
type Agent struct {
	Pos  Position
	Dir  Orientation
	Held Object
}

// State is the full simulation state. The inner environment owns the
// canonical instance; everything else works on clones.
type State struct {
	Grid  *Grid
	Agent Agent
}

func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	return &State{Grid: s.Grid.Clone(), Agent: s.Agent}
}

func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Agent == other.Agent && s.Grid.Equal(other.Grid)
}

// Observation is a partial, agent-centric view of a state. The grid is the
// observation window in the agent frame; Agent holds the in-window pose and
// the held object.
type Observation struct {
	Grid  *Grid
	Agent Agent
}

func (o *Observation) Clone() *Observation {
	if o == nil {
		return nil
	}
	return &Observation{Grid: o.Grid.Clone(), Agent: o.Agent}
}

func (o *Observation) Equal(other *Observation) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.Agent == other.Agent && o.Grid.Equal(other.Grid)
}
