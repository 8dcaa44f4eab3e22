package rules

import (
	"fmt"
	"math/rand"

	"gridverse.ai/internal/env"
	"gridverse.ai/internal/grid"
)

const minRoomSize = 4

// walledRoom returns a grid with a wall border and floor inside.
func walledRoom(height, width int) *grid.Grid {
	g := grid.NewGrid(height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				g.Set(grid.Position{Y: y, X: x}, grid.MakeWall())
			}
		}
	}
	return g
}

func randomFloor(rng *rand.Rand, g *grid.Grid) grid.Position {
	floors := g.Find(grid.Floor)
	return floors[rng.Intn(len(floors))]
}

func randomOrientation(rng *rand.Rand) grid.Orientation {
	return grid.Orientation(rng.Intn(int(grid.West) + 1))
}

func checkRoomSize(height, width int) error {
	if height < minRoomSize || width < minRoomSize {
		return fmt.Errorf("room %dx%d smaller than %dx%d", height, width, minRoomSize, minRoomSize)
	}
	return nil
}

// NewEmptyRoom builds a reset function for a walled empty room with the
// goal in the bottom-right corner. With randomAgent the agent spawns on a
// uniform floor cell with a uniform heading, otherwise at the top-left
// corner facing the goal.
func NewEmptyRoom(height, width int, randomAgent bool) (env.ResetFunc, error) {
	if err := checkRoomSize(height, width); err != nil {
		return nil, fmt.Errorf("empty room: %w", err)
	}
	return func(rng *rand.Rand) (*grid.State, error) {
		g := walledRoom(height, width)
		g.Set(grid.Position{Y: height - 2, X: width - 2}, grid.MakeGoal())
		agent := grid.Agent{Pos: grid.Position{Y: 1, X: 1}, Dir: grid.South}
		if randomAgent {
			agent.Pos = randomFloor(rng, g)
			agent.Dir = randomOrientation(rng)
		}
		return &grid.State{Grid: g, Agent: agent}, nil
	}, nil
}

// NewFourRooms builds a reset function for the classic four-rooms layout:
// a walled room split by a cross wall with one opening per arm, goal
// bottom-right, agent spawning randomly in the top-left room.
func NewFourRooms(height, width int) (env.ResetFunc, error) {
	if height < 2*minRoomSize-1 || width < 2*minRoomSize-1 {
		return nil, fmt.Errorf("four rooms: %dx%d too small for four rooms", height, width)
	}
	midY := height / 2
	midX := width / 2
	return func(rng *rand.Rand) (*grid.State, error) {
		g := walledRoom(height, width)
		for x := 1; x < width-1; x++ {
			g.Set(grid.Position{Y: midY, X: x}, grid.MakeWall())
		}
		for y := 1; y < height-1; y++ {
			g.Set(grid.Position{Y: y, X: midX}, grid.MakeWall())
		}
		// One passage per arm, at the middle of the arm.
		g.Set(grid.Position{Y: midY, X: midX / 2}, grid.MakeFloor())
		g.Set(grid.Position{Y: midY, X: midX + (width-midX)/2}, grid.MakeFloor())
		g.Set(grid.Position{Y: midY / 2, X: midX}, grid.MakeFloor())
		g.Set(grid.Position{Y: midY + (height-midY)/2, X: midX}, grid.MakeFloor())

		g.Set(grid.Position{Y: height - 2, X: width - 2}, grid.MakeGoal())

		var spawn []grid.Position
		for y := 1; y < midY; y++ {
			for x := 1; x < midX; x++ {
				p := grid.Position{Y: y, X: x}
				if g.Get(p).Type == grid.Floor {
					spawn = append(spawn, p)
				}
			}
		}
		agent := grid.Agent{
			Pos: spawn[rng.Intn(len(spawn))],
			Dir: randomOrientation(rng),
		}
		return &grid.State{Grid: g, Agent: agent}, nil
	}, nil
}

// NewKeyDoor builds a reset function for the key-door task: a dividing
// wall with a locked yellow door, the matching key and the agent on the
// left side, the goal on the right.
func NewKeyDoor(height, width int) (env.ResetFunc, error) {
	if height < minRoomSize || width < minRoomSize+2 {
		return nil, fmt.Errorf("key door: %dx%d too small for a divided room", height, width)
	}
	return func(rng *rand.Rand) (*grid.State, error) {
		g := walledRoom(height, width)
		wallX := 2 + rng.Intn(width-4)
		for y := 1; y < height-1; y++ {
			g.Set(grid.Position{Y: y, X: wallX}, grid.MakeWall())
		}
		doorY := 1 + rng.Intn(height-2)
		g.Set(grid.Position{Y: doorY, X: wallX}, grid.MakeDoor(grid.DoorLocked, grid.Yellow))

		var left []grid.Position
		for y := 1; y < height-1; y++ {
			for x := 1; x < wallX; x++ {
				left = append(left, grid.Position{Y: y, X: x})
			}
		}
		rng.Shuffle(len(left), func(i, j int) { left[i], left[j] = left[j], left[i] })
		g.Set(left[0], grid.MakeKey(grid.Yellow))
		agent := grid.Agent{Pos: left[1], Dir: randomOrientation(rng)}

		g.Set(grid.Position{Y: height - 2, X: width - 2}, grid.MakeGoal())
		return &grid.State{Grid: g, Agent: agent}, nil
	}, nil
}

// NewDynamicObstacles builds a reset function for an empty room with
// moving obstacles scattered on random floor cells.
func NewDynamicObstacles(height, width, numObstacles int, randomAgent bool) (env.ResetFunc, error) {
	if err := checkRoomSize(height, width); err != nil {
		return nil, fmt.Errorf("dynamic obstacles: %w", err)
	}
	if numObstacles < 0 || numObstacles > (height-2)*(width-2)-2 {
		return nil, fmt.Errorf("dynamic obstacles: %d obstacles do not fit %dx%d", numObstacles, height, width)
	}
	base, err := NewEmptyRoom(height, width, randomAgent)
	if err != nil {
		return nil, err
	}
	return func(rng *rand.Rand) (*grid.State, error) {
		s, err := base(rng)
		if err != nil {
			return nil, err
		}
		for i := 0; i < numObstacles; i++ {
			var spots []grid.Position
			for _, p := range s.Grid.Find(grid.Floor) {
				if p != s.Agent.Pos {
					spots = append(spots, p)
				}
			}
			s.Grid.Set(spots[rng.Intn(len(spots))], grid.MakeObstacle())
		}
		return s, nil
	}, nil
}
