package replay

import (
	"image"

	"github.com/younwookim/topdown/internal/application/world"
	"github.com/younwookim/topdown/internal/domain/entity"
)

// Result summarizes a headless replay
type Result struct {
	Frames int
	// Contacts counts every recorded contact per mover over the run
	Contacts map[entity.EntityID]int
	// Final is every entity's top-left corner after the last frame
	Final map[entity.EntityID]image.Point
}

// Simulate steps w once per remaining replay frame
func Simulate(w *world.World, r *Replayer) Result {
	result := Result{Contacts: make(map[entity.EntityID]int)}

	for {
		input, ok := r.GetInput()
		if !ok {
			break
		}
		for id, struck := range w.Step(input) {
			result.Contacts[id] += len(struck)
		}
		result.Frames++
	}

	result.Final = make(map[entity.EntityID]image.Point, w.Len())
	for _, e := range w.Entities() {
		result.Final[e.ID()] = image.Pt(e.X, e.Y)
	}
	return result
}
