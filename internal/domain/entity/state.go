package entity

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMaxSwing is the default cap on door rotation steps per call
const DefaultMaxSwing = 15

// DefaultMaxSpeed is the default mover speed in pixels per frame
const DefaultMaxSpeed = 5

// DefaultAcceleration is the per-frame speed change of a facing mover
const DefaultAcceleration = 0.3

// Control selects how a mover's velocity is produced each frame
type Control int

const (
	// ControlKeys moves along the pressed directions at MaxSpeed
	ControlKeys Control = iota
	// ControlFacing turns toward the cursor and drives forward or back
	ControlFacing
	// ControlChase steps toward a target at Speed on each axis
	ControlChase
	// ControlNone leaves velocity alone
	ControlNone
)

func (c Control) String() string {
	switch c {
	case ControlKeys:
		return "keys"
	case ControlFacing:
		return "facing"
	case ControlChase:
		return "chase"
	case ControlNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseControl maps a config name to a Control. Empty is ControlKeys.
func ParseControl(s string) (Control, error) {
	switch strings.ToLower(s) {
	case "", "keys":
		return ControlKeys, nil
	case "facing":
		return ControlFacing, nil
	case "chase":
		return ControlChase, nil
	case "none":
		return ControlNone, nil
	}
	return ControlNone, fmt.Errorf("unknown control %q", s)
}

// DoorState is the auxiliary state of a Door entity
type DoorState struct {
	Orientation     Orientation
	SwingIterations int
	MaxSwing        int
}

// MoverState is the auxiliary state of a Mover entity.
// Sitting is driven by input handling outside the resolver and read by
// the Chair policy.
type MoverState struct {
	Control    Control
	MaxSpeed   float64
	IsShifting bool

	// Speed is the current forward speed of a facing mover, or the fixed
	// per-axis speed of a chasing one.
	Speed           float64
	Acceleration    float64
	CorrectionAngle float64 // degrees that turn the sprite to face up

	IsSitting     bool
	SatUp         bool
	SatUpAt       time.Time
	SatUpCooldown time.Duration
}

// Sit marks the mover as wanting to sit
func (m *MoverState) Sit() {
	m.IsSitting = true
	m.SatUp = false
}

// StandUp marks the mover as having just stood up at now
func (m *MoverState) StandUp(now time.Time) {
	m.IsSitting = false
	m.SatUp = true
	m.SatUpAt = now
}

// CooldownElapsed reports whether more than SatUpCooldown has passed
// since the mover last stood up.
func (m *MoverState) CooldownElapsed(now time.Time) bool {
	return now.Sub(m.SatUpAt) > m.SatUpCooldown
}

// Settle clears SatUp once the mover is no longer inside any chair. The
// cooldown only gates re-seating, so a mover that waits in the chair after
// standing up is still ejected when it moves.
func (m *MoverState) Settle(insideChair bool) {
	if m.SatUp && !insideChair {
		m.SatUp = false
	}
}
