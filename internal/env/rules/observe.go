package rules

import (
	"fmt"

	"gridverse.ai/internal/env"
	"gridverse.ai/internal/grid"
)

// NewForwardObservation returns the standard partially observable
// observation function: a shape-sized window in front of the agent,
// rotated into the agent frame so the agent sits on the bottom row's
// center cell facing up. Cells outside the grid read as hidden.
//
// The window width must be odd so the agent column is centered.
func NewForwardObservation(shape grid.Shape) (env.ObserveFunc, error) {
	if shape.Height < 1 || shape.Width < 1 {
		return nil, fmt.Errorf("forward observation: non-positive shape %s", shape)
	}
	if shape.Width%2 == 0 {
		return nil, fmt.Errorf("forward observation: width must be odd, got %d", shape.Width)
	}
	anchor := grid.Position{Y: shape.Height - 1, X: shape.Width / 2}

	return func(s *grid.State) (*grid.Observation, error) {
		win := grid.NewGrid(shape.Height, shape.Width)
		for y := 0; y < shape.Height; y++ {
			for x := 0; x < shape.Width; x++ {
				rel := grid.Position{Y: y - anchor.Y, X: x - anchor.X}
				world := s.Agent.Pos.Add(s.Agent.Dir.RelativeToAbsolute(rel))
				cell := grid.MakeHidden()
				if s.Grid.Contains(world) {
					cell = s.Grid.Get(world)
				}
				win.Set(grid.Position{Y: y, X: x}, cell)
			}
		}
		return &grid.Observation{
			Grid: win,
			Agent: grid.Agent{
				Pos:  anchor,
				Dir:  grid.North,
				Held: s.Agent.Held,
			},
		}, nil
	}, nil
}
