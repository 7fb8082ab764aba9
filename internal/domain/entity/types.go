package entity

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// EntityID is a unique identifier for an entity.
// Entities are compared by id, never by value.
type EntityID uint32

// Variant selects the contact policy that applies to an entity
type Variant int

const (
	VariantBlocking Variant = iota
	VariantPushable
	VariantDoor
	VariantChair
	VariantMover
)

// ErrUnknownVariant is returned when a variant name cannot be parsed
var ErrUnknownVariant = errors.New("unknown variant")

// String returns the string representation of the variant
func (v Variant) String() string {
	switch v {
	case VariantBlocking:
		return "blocking"
	case VariantPushable:
		return "pushable"
	case VariantDoor:
		return "door"
	case VariantChair:
		return "chair"
	case VariantMover:
		return "mover"
	default:
		return "unknown"
	}
}

// ParseVariant maps a config name to a Variant. An empty name is Blocking.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "", "blocking", "object":
		return VariantBlocking, nil
	case "pushable":
		return VariantPushable, nil
	case "door":
		return VariantDoor, nil
	case "chair":
		return VariantChair, nil
	case "mover", "player", "enemy":
		return VariantMover, nil
	}
	return VariantBlocking, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Axis is one of the two movement axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Orientation is the axis a door is fixed on.
// A horizontal door blocks along X and swings along Y; a vertical door
// blocks along Y and swings along X.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ParseOrientation maps a config name to an Orientation. Empty is Horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "", "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown orientation %q", s)
}

// FixedAxis returns the axis along which the door does not swing
func (o Orientation) FixedAxis() Axis {
	if o == Vertical {
		return AxisY
	}
	return AxisX
}

// Sign returns -1, 0 or 1 for the sign of v.
// It never divides, so a zero component is safe.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Steps returns the number of unit substeps for a velocity component.
// Halves round to even.
func Steps(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.RoundToEven(math.Abs(v)))
}
