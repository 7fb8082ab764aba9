package system

import (
	"time"

	"github.com/younwookim/topdown/internal/domain/contact"
	"github.com/younwookim/topdown/internal/domain/entity"
)

// CollisionSystem advances movers one unit at a time and lets every other
// entity's contact policy resolve the overlap after each unit.
type CollisionSystem struct {
	policies contact.Set
	maxSteps int
}

// NewCollisionSystem creates a collision system with the default policies,
// checking chair cooldowns against now.
func NewCollisionSystem(now func() time.Time) *CollisionSystem {
	return NewCollisionSystemWithPolicies(contact.DefaultSet(now))
}

// NewCollisionSystemWithPolicies creates a collision system with a custom
// policy set
func NewCollisionSystemWithPolicies(policies contact.Set) *CollisionSystem {
	return &CollisionSystem{policies: policies}
}

// SetMaxSteps caps the unit steps taken per axis per call. Velocity beyond
// the cap is dropped rather than carried over. Zero or less removes the cap.
func (s *CollisionSystem) SetMaxSteps(n int) {
	s.maxSteps = max(n, 0)
}

// ResolveMovement moves mover by its velocity and returns every entity that
// reported contact, in the order contacts happened. An entity appears once
// per unit step it was in contact, so repeats are expected.
//
// The X pass runs to completion before the Y pass starts. Within a step,
// collidables are evaluated in list order and none short-circuits the
// rest. The mover itself is skipped by id.
func (s *CollisionSystem) ResolveMovement(mover *entity.Entity, collidables []*entity.Entity) []*entity.Entity {
	var struck []*entity.Entity
	struck = s.pass(mover, collidables, entity.AxisX, struck)
	struck = s.pass(mover, collidables, entity.AxisY, struck)
	return struck
}

func (s *CollisionSystem) pass(mover *entity.Entity, collidables []*entity.Entity, axis entity.Axis, struck []*entity.Entity) []*entity.Entity {
	steps := entity.Steps(mover.Velocity(axis))
	if s.maxSteps > 0 {
		steps = min(steps, s.maxSteps)
	}
	if steps == 0 {
		return struck
	}

	step := mover.VelocitySign(axis)
	for i := 0; i < steps; i++ {
		mover.ApplyUnitStep(axis, step)

		for _, other := range collidables {
			if other == nil || other.ID() == mover.ID() {
				continue
			}
			policy := s.policies.For(other.Variant())
			if contact.Resolve(policy, axis, mover, other) {
				struck = append(struck, other)
			}
		}
	}
	return struck
}
