// Package world owns the live entities of a room and advances them one
// frame at a time.
package world

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"time"

	"github.com/younwookim/topdown/internal/application/system"
	"github.com/younwookim/topdown/internal/domain/entity"
)

// ErrNoSuchEntity is returned when an id or name does not resolve to a
// live entity
var ErrNoSuchEntity = errors.New("no such entity")

// epoch is the simulation time of frame zero
var epoch = time.Unix(0, 0).UTC()

// Contacts maps each mover id to the entities it struck during a frame,
// in the order contact happened.
type Contacts map[entity.EntityID][]*entity.Entity

// Options configures a World
type Options struct {
	// Framerate is the number of frames per simulated second. Zero means 60.
	Framerate int
	// MaxSteps caps the unit steps a mover takes per axis per frame.
	// Zero means no cap.
	MaxSteps int
}

// World holds every entity in spawn order and the next entity ID
type World struct {
	nextID   entity.EntityID
	entities map[entity.EntityID]*entity.Entity
	order    []entity.EntityID
	names    map[string]entity.EntityID
	targets  map[entity.EntityID]entity.EntityID

	assets  entity.AssetSource
	builder entity.MaskBuilder

	frame     int
	frameTime time.Duration

	collision *system.CollisionSystem
	input     *system.InputSystem
	steering  *system.SteeringSystem
}

// New creates a new empty world
func New(assets entity.AssetSource, builder entity.MaskBuilder, opts Options) *World {
	fps := opts.Framerate
	if fps <= 0 {
		fps = 60
	}

	w := &World{
		nextID:    1, // 0 is "nil"
		entities:  make(map[entity.EntityID]*entity.Entity),
		names:     make(map[string]entity.EntityID),
		targets:   make(map[entity.EntityID]entity.EntityID),
		assets:    assets,
		builder:   builder,
		frameTime: time.Second / time.Duration(fps),
		steering:  system.NewSteeringSystem(),
	}
	w.collision = system.NewCollisionSystem(w.Now)
	w.collision.SetMaxSteps(opts.MaxSteps)
	w.input = system.NewInputSystem(w.Now)
	return w
}

// Now returns the simulation time. It advances by one frame per Step, so
// cooldowns replay identically regardless of wall-clock speed.
func (w *World) Now() time.Time {
	return epoch.Add(time.Duration(w.frame) * w.frameTime)
}

// Frame returns the number of frames stepped so far
func (w *World) Frame() int {
	return w.frame
}

// Spawn creates an entity from spec and returns it. IDs are never recycled.
func (w *World) Spawn(spec entity.Spec) (*entity.Entity, error) {
	e, err := entity.New(w.nextID, spec, w.assets, w.builder)
	if err != nil {
		return nil, err
	}
	w.nextID++

	w.entities[e.ID()] = e
	w.order = append(w.order, e.ID())
	return e, nil
}

// SpawnNamed spawns an entity reachable through Named
func (w *World) SpawnNamed(name string, spec entity.Spec) (*entity.Entity, error) {
	if _, taken := w.names[name]; taken {
		return nil, fmt.Errorf("entity name %q already in use", name)
	}
	e, err := w.Spawn(spec)
	if err != nil {
		return nil, err
	}
	w.names[name] = e.ID()
	return e, nil
}

// Despawn removes an entity, its name and every chase targeting it
func (w *World) Despawn(id entity.EntityID) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}

	delete(w.entities, id)
	delete(w.targets, id)
	w.order = slices.DeleteFunc(w.order, func(other entity.EntityID) bool { return other == id })
	for name, other := range w.names {
		if other == id {
			delete(w.names, name)
		}
	}
	for chaser, target := range w.targets {
		if target == id {
			delete(w.targets, chaser)
		}
	}
	return true
}

// Get returns the entity with id
func (w *World) Get(id entity.EntityID) (*entity.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Named returns the entity spawned under name
func (w *World) Named(name string) (*entity.Entity, bool) {
	id, ok := w.names[name]
	if !ok {
		return nil, false
	}
	return w.Get(id)
}

// Len returns the number of live entities
func (w *World) Len() int {
	return len(w.order)
}

// Entities returns every live entity in spawn order
func (w *World) Entities() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

// Movers returns every live mover in spawn order
func (w *World) Movers() []*entity.Entity {
	var out []*entity.Entity
	for _, id := range w.order {
		if e := w.entities[id]; e.Variant() == entity.VariantMover {
			out = append(out, e)
		}
	}
	return out
}

// SetTarget makes chaser follow target
func (w *World) SetTarget(chaser, target entity.EntityID) error {
	if _, ok := w.entities[chaser]; !ok {
		return fmt.Errorf("%w: chaser %d", ErrNoSuchEntity, chaser)
	}
	if _, ok := w.entities[target]; !ok {
		return fmt.Errorf("%w: target %d", ErrNoSuchEntity, target)
	}
	w.targets[chaser] = target
	return nil
}

// Target returns the entity chaser follows
func (w *World) Target(chaser entity.EntityID) (*entity.Entity, bool) {
	id, ok := w.targets[chaser]
	if !ok {
		return nil, false
	}
	return w.Get(id)
}

// Step advances the simulation by one frame: every mover derives its
// velocity from input or steering, then Tick resolves movement.
func (w *World) Step(input system.InputState) Contacts {
	w.frame++

	for _, mover := range w.Movers() {
		w.drive(mover, input)
	}
	return w.Tick()
}

func (w *World) drive(mover *entity.Entity, input system.InputState) {
	if mover.Mover == nil {
		return
	}

	switch mover.Mover.Control {
	case entity.ControlKeys:
		w.input.UpdateMover(mover, input)
	case entity.ControlFacing:
		w.steering.Face(mover, input, image.Pt(input.MouseX, input.MouseY))
	case entity.ControlChase:
		target, ok := w.Target(mover.ID())
		if !ok {
			mover.SetVelocity(0, 0)
			return
		}
		w.steering.Chase(mover, target)
	}
}

// Tick resolves the current velocity of every mover against every entity,
// one mover at a time in spawn order. Movers with nothing to report are
// left out of the result.
func (w *World) Tick() Contacts {
	contacts := make(Contacts)
	all := w.Entities()

	for _, mover := range w.Movers() {
		if struck := w.collision.ResolveMovement(mover, all); len(struck) > 0 {
			contacts[mover.ID()] = struck
		}
		if mover.Mover != nil {
			mover.Mover.Settle(insideChair(mover, all))
		}
	}
	return contacts
}

// insideChair reports whether mover's bounds overlap any chair's bounds
func insideChair(mover *entity.Entity, all []*entity.Entity) bool {
	b := mover.Bounds()
	for _, e := range all {
		if e.Variant() == entity.VariantChair && b.Overlaps(e.Bounds()) {
			return true
		}
	}
	return false
}

// Pick returns the topmost entity occupying the world point (x, y). Later
// spawns are drawn over earlier ones, so they win.
func (w *World) Pick(x, y int) (*entity.Entity, bool) {
	for i := len(w.order) - 1; i >= 0; i-- {
		e := w.entities[w.order[i]]
		if !image.Pt(x, y).In(e.Bounds()) {
			continue
		}
		if e.ContainsPoint(x, y) {
			return e, true
		}
	}
	return nil, false
}
