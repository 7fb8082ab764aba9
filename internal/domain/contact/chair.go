package contact

import (
	"time"

	"github.com/younwookim/topdown/internal/domain/entity"
)

// Chair seats a sitting mover and otherwise behaves as Blocking.
//
// Checks run in order:
//  1. a mover that just stood up and is still inside the chair's bounds is
//     moved out past the chair edge it is heading toward, whether or not
//     the masks overlap, so it cannot fall straight back into the seat;
//  2. no mask overlap means no contact;
//  3. a sitting mover whose stand-up cooldown has elapsed is centered on
//     the chair;
//  4. anything else is blocked.
type Chair struct {
	Now func() time.Time
}

func (c Chair) ResolveX(mover, self *entity.Entity) bool { return c.resolve(mover, self, entity.AxisX) }
func (c Chair) ResolveY(mover, self *entity.Entity) bool { return c.resolve(mover, self, entity.AxisY) }

func (c Chair) resolve(mover, self *entity.Entity, axis entity.Axis) bool {
	state := mover.Mover

	if state != nil && state.SatUp && mover.Bounds().Overlaps(self.Bounds()) {
		eject(mover, self, axis)
	}

	if !entity.Overlaps(self, mover) {
		return false
	}

	if state != nil && state.IsSitting && state.CooldownElapsed(c.now()) {
		mover.SetCenter(self.Center())
		return true
	}

	return block(mover, self, axis)
}

func (c Chair) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// eject pins the mover's trailing edge to the chair's leading edge along
// axis. With no vertical velocity the mover is placed above the chair; with
// no horizontal velocity it is left where it is.
func eject(mover, self *entity.Entity, axis entity.Axis) {
	sign := mover.VelocitySign(axis)

	if axis == entity.AxisX {
		switch sign {
		case 1:
			mover.SetLeft(self.Right())
		case -1:
			mover.SetRight(self.Left())
		}
		return
	}

	if sign > 0 {
		mover.SetTop(self.Bottom())
	} else {
		mover.SetBottom(self.Top())
	}
}
