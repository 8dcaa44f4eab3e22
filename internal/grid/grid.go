package grid

import "fmt"

// Grid is a dense row-major board of objects.
type Grid struct {
	shape Shape
	cells []Object
}

// NewGrid returns a grid of the given shape filled with floor.
func NewGrid(height, width int) *Grid {
	if height <= 0 || width <= 0 {
		panic(fmt.Sprintf("grid: non-positive shape %dx%d", height, width))
	}
	g := &Grid{
		shape: Shape{Height: height, Width: width},
		cells: make([]Object, height*width),
	}
	for i := range g.cells {
		g.cells[i] = MakeFloor()
	}
	return g
}

func (g *Grid) Shape() Shape { return g.shape }

func (g *Grid) Contains(p Position) bool { return g.shape.Contains(p) }

func (g *Grid) Get(p Position) Object {
	g.check(p)
	return g.cells[p.Y*g.shape.Width+p.X]
}

func (g *Grid) Set(p Position, o Object) {
	g.check(p)
	g.cells[p.Y*g.shape.Width+p.X] = o
}

func (g *Grid) check(p Position) {
	if !g.shape.Contains(p) {
		panic(fmt.Sprintf("grid: position %s outside %s", p, g.shape))
	}
}

// Find returns the positions of every object of type t, in row-major order.
func (g *Grid) Find(t ObjectType) []Position {
	var out []Position
	for y := 0; y < g.shape.Height; y++ {
		for x := 0; x < g.shape.Width; x++ {
			p := Position{Y: y, X: x}
			if g.Get(p).Type == t {
				out = append(out, p)
			}
		}
	}
	return out
}

func (g *Grid) Clone() *Grid {
	c := &Grid{shape: g.shape, cells: make([]Object, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.shape != other.shape {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
