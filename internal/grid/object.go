package grid

import "fmt"

// ObjectType identifies a kind of grid object. The integer values are the
// canonical type indices used by the numeric representations and by the
// wire protocol; do not reorder.
type ObjectType int

const (
	NoneObject ObjectType = iota
	Hidden
	Floor
	Wall
	Goal
	Door
	Key
	MovingObstacle
)

var objectTypeNames = map[ObjectType]string{
	NoneObject:     "none",
	Hidden:         "hidden",
	Floor:          "floor",
	Wall:           "wall",
	Goal:           "goal",
	Door:           "door",
	Key:            "key",
	MovingObstacle: "moving_obstacle",
}

func (t ObjectType) String() string {
	if s, ok := objectTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

// ObjectTypeByName resolves a lowercase type name, e.g. from an env config.
func ObjectTypeByName(name string) (ObjectType, error) {
	for t, n := range objectTypeNames {
		if n == name {
			return t, nil
		}
	}
	return NoneObject, fmt.Errorf("unknown object type %q", name)
}

// Color is an object attribute, used e.g. to match keys to doors.
type Color int

const (
	NoColor Color = iota
	Red
	Green
	Blue
	Yellow
)

var colorNames = map[Color]string{
	NoColor: "none",
	Red:     "red",
	Green:   "green",
	Blue:    "blue",
	Yellow:  "yellow",
}

func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

func ColorByName(name string) (Color, error) {
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", name)
}

// Door status values. Other object types keep status 0.
const (
	DoorOpen = iota
	DoorClosed
	DoorLocked
)

// MaxStatus is the largest status value any object type uses. Numeric
// representations derive their status-channel upper bound from it.
const MaxStatus = DoorLocked

// Object is one cell content: a type plus a small status and a color.
// The zero value is NoneObject.
type Object struct {
	Type   ObjectType
	Status int
	Color  Color
}

func MakeFloor() Object          { return Object{Type: Floor} }
func MakeWall() Object           { return Object{Type: Wall} }
func MakeGoal() Object           { return Object{Type: Goal} }
func MakeKey(c Color) Object     { return Object{Type: Key, Color: c} }
func MakeHidden() Object         { return Object{Type: Hidden} }
func MakeObstacle() Object       { return Object{Type: MovingObstacle} }
func MakeDoor(status int, c Color) Object {
	return Object{Type: Door, Status: status, Color: c}
}

// Blocks reports whether an agent or obstacle may not enter the cell.
func (o Object) Blocks() bool {
	switch o.Type {
	case Wall, MovingObstacle:
		return true
	case Door:
		return o.Status != DoorOpen
	}
	return false
}

// Transparent reports whether the cell can be seen through.
func (o Object) Transparent() bool {
	switch o.Type {
	case Wall, Hidden:
		return false
	case Door:
		return o.Status == DoorOpen
	}
	return true
}

// CanBePickedUp reports whether PickNDrop may lift the object.
func (o Object) CanBePickedUp() bool {
	return o.Type == Key
}

func (o Object) IsNone() bool { return o.Type == NoneObject }

func (o Object) String() string {
	return fmt.Sprintf("%s{status:%d color:%s}", o.Type, o.Status, o.Color)
}
