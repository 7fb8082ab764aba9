package contact

import "github.com/younwookim/topdown/internal/domain/entity"

// Door is a hinged door. Along its fixed axis it blocks; along the free
// axis it swings away from the mover one degree at a time while the two
// still overlap, at most MaxSwing degrees per call. It never stops the
// mover on the free axis, and reports contact if the mover touched it.
type Door struct{}

func (d Door) ResolveX(mover, self *entity.Entity) bool { return d.resolve(mover, self, entity.AxisX) }
func (d Door) ResolveY(mover, self *entity.Entity) bool { return d.resolve(mover, self, entity.AxisY) }

func (Door) resolve(mover, self *entity.Entity, axis entity.Axis) bool {
	state := self.Door
	if state == nil || axis == state.Orientation.FixedAxis() {
		return block(mover, self, axis)
	}

	touched := entity.Overlaps(self, mover)
	for touched && state.SwingIterations < state.MaxSwing && entity.Overlaps(self, mover) {
		sign := mover.VelocitySign(axis)
		if sign == 0 {
			break
		}
		self.Rotate(float64(-sign))
		state.SwingIterations++
	}
	state.SwingIterations = 0

	return touched
}
