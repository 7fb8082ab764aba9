// Package contact implements the per-variant rules that decide how an
// overlap between a moving entity and a stationary one is resolved.
//
// Every policy is called after the mover has already been displaced by one
// unit along the axis being resolved. The boolean result reports that
// contact occurred; any correction has already been applied by then.
package contact

import (
	"time"

	"github.com/younwookim/topdown/internal/domain/entity"
)

// Policy resolves contact along one axis at a time
type Policy interface {
	ResolveX(mover, self *entity.Entity) bool
	ResolveY(mover, self *entity.Entity) bool
}

// Resolve dispatches to the policy method for axis
func Resolve(p Policy, axis entity.Axis, mover, self *entity.Entity) bool {
	if axis == entity.AxisY {
		return p.ResolveY(mover, self)
	}
	return p.ResolveX(mover, self)
}

// Set maps each variant to its policy
type Set map[entity.Variant]Policy

// DefaultSet returns the standard policy for every variant.
// now is the clock the Chair policy checks cooldowns against.
func DefaultSet(now func() time.Time) Set {
	return Set{
		entity.VariantBlocking: Blocking{},
		entity.VariantPushable: Pushable{},
		entity.VariantDoor:     Door{},
		entity.VariantChair:    Chair{Now: now},
		entity.VariantMover:    Sensor{},
	}
}

// For returns the policy for v, falling back to Blocking
func (s Set) For(v entity.Variant) Policy {
	if p, ok := s[v]; ok {
		return p
	}
	return Blocking{}
}

// Blocking is a plain solid object: it undoes the mover's last step.
type Blocking struct{}

func (Blocking) ResolveX(mover, self *entity.Entity) bool { return block(mover, self, entity.AxisX) }
func (Blocking) ResolveY(mover, self *entity.Entity) bool { return block(mover, self, entity.AxisY) }

func block(mover, self *entity.Entity, axis entity.Axis) bool {
	if !entity.Overlaps(self, mover) {
		return false
	}
	mover.ApplyUnitStep(axis, -mover.VelocitySign(axis))
	return true
}

// Pushable never blocks; it is carried one unit along with the mover.
type Pushable struct{}

func (Pushable) ResolveX(mover, self *entity.Entity) bool { return push(mover, self, entity.AxisX) }
func (Pushable) ResolveY(mover, self *entity.Entity) bool { return push(mover, self, entity.AxisY) }

func push(mover, self *entity.Entity, axis entity.Axis) bool {
	if !entity.Overlaps(self, mover) {
		return false
	}
	self.ApplyUnitStep(axis, mover.VelocitySign(axis))
	return true
}

// Sensor reports overlap without resolving it. Movers use it, so that a
// player running into an enemy is recorded as contact and nothing moves.
type Sensor struct{}

func (Sensor) ResolveX(mover, self *entity.Entity) bool { return entity.Overlaps(self, mover) }
func (Sensor) ResolveY(mover, self *entity.Entity) bool { return entity.Overlaps(self, mover) }
