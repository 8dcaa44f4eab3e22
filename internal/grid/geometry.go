package grid

import "fmt"

// Position is a (row, col) cell coordinate. Row 0 is the top row.
type Position struct {
	Y int
	X int
}

func (p Position) Add(q Position) Position {
	return Position{Y: p.Y + q.Y, X: p.X + q.X}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Y, p.X)
}

// Shape is the (rows, cols) extent of a grid or observation window.
type Shape struct {
	Height int
	Width  int
}

func (s Shape) Contains(p Position) bool {
	return p.Y >= 0 && p.Y < s.Height && p.X >= 0 && p.X < s.Width
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Height, s.Width)
}

// Orientation is one of the four cardinal headings.
type Orientation int

const (
	North Orientation = iota
	South
	East
	West
)

var orientationNames = map[Orientation]string{
	North: "N",
	South: "S",
	East:  "E",
	West:  "W",
}

func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Forward returns the unit position delta one step ahead.
func (o Orientation) Forward() Position {
	switch o {
	case North:
		return Position{Y: -1}
	case South:
		return Position{Y: 1}
	case East:
		return Position{X: 1}
	case West:
		return Position{X: -1}
	}
	return Position{}
}

// RotateLeft turns 90 degrees counterclockwise.
func (o Orientation) RotateLeft() Orientation {
	switch o {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	}
	return o
}

// RotateRight turns 90 degrees clockwise.
func (o Orientation) RotateRight() Orientation {
	switch o {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	}
	return o
}

// RotateBack turns 180 degrees.
func (o Orientation) RotateBack() Orientation {
	return o.RotateLeft().RotateLeft()
}

// RelativeToAbsolute maps a delta expressed in the agent frame (facing
// North) into the world frame for heading o.
func (o Orientation) RelativeToAbsolute(d Position) Position {
	switch o {
	case North:
		return d
	case South:
		return Position{Y: -d.Y, X: -d.X}
	case East:
		return Position{Y: d.X, X: -d.Y}
	case West:
		return Position{Y: -d.X, X: d.Y}
	}
	return d
}
