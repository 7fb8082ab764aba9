package system

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/topdown/internal/domain/entity"
)

// InputSystem turns the frame's input into mover velocity and sitting state
type InputSystem struct {
	now func() time.Time
}

// NewInputSystem creates a new input system. now stamps stand-up times.
func NewInputSystem(now func() time.Time) *InputSystem {
	if now == nil {
		now = time.Now
	}
	return &InputSystem{now: now}
}

// InputState holds the current input state
type InputState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Shift bool
	// Sit toggles between sitting and standing; it is edge triggered
	Sit        bool
	MouseX     int
	MouseY     int
	MouseClick bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	return InputState{
		Up:         ebiten.IsKeyPressed(ebiten.KeyW),
		Down:       ebiten.IsKeyPressed(ebiten.KeyS),
		Left:       ebiten.IsKeyPressed(ebiten.KeyA),
		Right:      ebiten.IsKeyPressed(ebiten.KeyD),
		Shift:      ebiten.IsKeyPressed(ebiten.KeyShiftLeft),
		Sit:        inpututil.IsKeyJustPressed(ebiten.KeyE),
		MouseX:     mx,
		MouseY:     my,
		MouseClick: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

// UpdateMover applies input to a keyboard-driven mover. Velocity is
// recomputed from scratch every frame: opposing keys cancel out.
func (s *InputSystem) UpdateMover(mover *entity.Entity, input InputState) {
	state := mover.Mover
	if state == nil {
		return
	}
	now := s.now()

	s.handleSitting(state, input, now)
	state.IsShifting = input.Shift

	vx, vy := 0.0, 0.0
	if input.Up {
		vy -= state.MaxSpeed
	}
	if input.Left {
		vx -= state.MaxSpeed
	}
	if input.Down {
		vy += state.MaxSpeed
	}
	if input.Right {
		vx += state.MaxSpeed
	}
	mover.SetVelocity(vx, vy)
}

// handleSitting toggles sitting
func (s *InputSystem) handleSitting(state *entity.MoverState, input InputState, now time.Time) {
	if input.Sit {
		if state.IsSitting {
			state.StandUp(now)
		} else {
			state.Sit()
		}
	}
}
