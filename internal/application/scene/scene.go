// Package scene defines the Scene interface for screens driven by the
// window loop.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from Update to end the loop without reporting a
// failure
var ErrQuit = errors.New("quit")

// Scene represents one screen of the demo.
//
// The loop calls Update once per simulated frame and Draw once per
// rendered frame. Transitions happen by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by one frame.
	// Returns the next scene if a transition is needed, nil to stay.
	// Returns ErrQuit to stop, any other error to terminate with it.
	Update() (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, including on quit.
	OnExit()
}
