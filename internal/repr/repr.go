// Package repr projects states and observations into named fixed-shape
// integer arrays, and advertises the matching bounds to learning-agent
// callers. Representations are pure reconstructions from a space
// contract: swapping one never carries state over.
package repr

import (
	"fmt"
	"strings"

	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/spaces"
)

// Array is a row-major integer array with an explicit shape.
type Array struct {
	Shape []int `json:"shape"`
	Data  []int `json:"data"`
}

// Bounds describes one advertised array: its shape and elementwise
// inclusive lower/upper bounds, flattened row-major like Array.Data.
type Bounds struct {
	Shape []int `json:"shape"`
	Low   []int `json:"low"`
	High  []int `json:"high"`
}

// Space is the advertised numeric space: one Bounds per array name. This
// is the only data format exposed to a learning-agent caller.
type Space map[string]Bounds

// Equal reports whether two advertised spaces are identical.
func (s Space) Equal(other Space) bool {
	if len(s) != len(other) {
		return false
	}
	for name, b := range s {
		o, ok := other[name]
		if !ok || !intsEqual(b.Shape, o.Shape) || !intsEqual(b.Low, o.Low) || !intsEqual(b.High, o.High) {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// StateRepresentation converts states into named arrays. The space
// descriptor is derived from the StateSpace alone at construction time.
type StateRepresentation interface {
	Space() Space
	Convert(s *grid.State) (map[string]Array, error)
}

// ObservationRepresentation converts observations into named arrays.
type ObservationRepresentation interface {
	Space() Space
	Convert(o *grid.Observation) (map[string]Array, error)
}

// Representation names, in registration order.
const (
	NameDefault = "default"
	NameCompact = "compact"
)

var knownNames = []string{NameDefault, NameCompact}

// KnownNames lists the registered representation names.
func KnownNames() []string {
	return append([]string{}, knownNames...)
}

// NewStateRepresentation builds a state representation by name.
func NewStateRepresentation(name string, sp spaces.StateSpace) (StateRepresentation, error) {
	switch name {
	case NameDefault:
		return newDefaultStateRep(sp), nil
	case NameCompact:
		return newCompactStateRep(sp), nil
	}
	return nil, unknownNameErr("state representation", name)
}

// NewObservationRepresentation builds an observation representation by name.
func NewObservationRepresentation(name string, sp spaces.ObservationSpace) (ObservationRepresentation, error) {
	switch name {
	case NameDefault:
		return newDefaultObservationRep(sp), nil
	case NameCompact:
		return newCompactObservationRep(sp), nil
	}
	return nil, unknownNameErr("observation representation", name)
}

func unknownNameErr(kind, name string) error {
	return fmt.Errorf("no %s named %q (known: %s)", kind, name, strings.Join(knownNames, ", "))
}
