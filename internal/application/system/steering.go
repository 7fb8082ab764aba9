package system

import (
	"image"
	"math"

	"github.com/younwookim/topdown/internal/domain/entity"
)

// speedDeadzone is the speed below which an idle facing mover stops outright
const speedDeadzone = 0.5

// SteeringSystem derives velocity for movers that are not driven directly
// by the movement keys.
type SteeringSystem struct{}

// NewSteeringSystem creates a new steering system
func NewSteeringSystem() *SteeringSystem {
	return &SteeringSystem{}
}

// Chase points mover at target. Each axis moves at the mover's Speed
// toward the target's top-left corner, or not at all once aligned.
func (s *SteeringSystem) Chase(mover, target *entity.Entity) {
	state := mover.Mover
	if state == nil || target == nil {
		return
	}
	dx := entity.Sign(float64(target.X - mover.X))
	dy := entity.Sign(float64(target.Y - mover.Y))
	mover.SetVelocity(float64(dx)*state.Speed, float64(dy)*state.Speed)
}

// Face turns mover toward cursor and drives it along its heading.
//
// Up accelerates and Down reverses by Acceleration per frame. With neither
// held, speed decays by one per frame and snaps to zero inside the
// deadzone. Speed is clamped to MaxSpeed in both directions.
func (s *SteeringSystem) Face(mover *entity.Entity, input InputState, cursor image.Point) {
	state := mover.Mover
	if state == nil {
		return
	}

	switch {
	case input.Up:
		state.Speed += state.Acceleration
	case input.Down:
		state.Speed -= state.Acceleration
	case state.Speed > -speedDeadzone && state.Speed < speedDeadzone:
		state.Speed = 0
	case state.Speed < 0:
		state.Speed++
	case state.Speed > 0:
		state.Speed--
	}
	state.Speed = clamp(state.Speed, -state.MaxSpeed, state.MaxSpeed)

	// Screen y grows downward; flip it so the heading is counter-clockwise.
	center := mover.Center()
	dx := float64(cursor.X - center.X)
	dy := float64(center.Y - cursor.Y)
	heading := degrees(math.Atan2(dy, dx)) - 90

	mover.SetAngle(heading - state.CorrectionAngle)

	rad := radians(heading - 180)
	mover.SetVelocity(math.Sin(rad)*state.Speed, math.Cos(rad)*state.Speed)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func radians(deg float64) float64 { return deg * math.Pi / 180 }
