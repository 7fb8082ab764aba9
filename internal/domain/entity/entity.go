package entity

import (
	"errors"
	"fmt"
	"image"

	"github.com/younwookim/topdown/internal/infrastructure/mask"
)

// ErrInvalidPose is returned for a negative size or a non-positive scale
var ErrInvalidPose = errors.New("invalid pose")

// AssetSource resolves asset names to source images
type AssetSource interface {
	Image(name string) (image.Image, error)
}

// MaskBuilder derives a collision mask and a render surface from a pose
type MaskBuilder interface {
	Build(src image.Image, s mask.Shape) (*mask.Mask, *image.NRGBA)
}

// Pose is a snapshot of an entity's placement
type Pose struct {
	X, Y  int         // top-left of the collision bounds
	Size  image.Point // before scaling
	Scale float64
	Angle float64 // degrees
}

// Spec describes an entity to construct
type Spec struct {
	Variant Variant
	Asset   string
	X, Y    int             // top-left of the initial collision bounds
	Size    image.Point     // zero means the asset's native size
	Scale   float64         // zero means 1
	Angle   float64         // degrees
	Hitbox  image.Rectangle // optional fixed hitbox, see mask.Shape

	Door    *DoorState
	Mover   *MoverState
	Payload any
}

// Entity is anything that takes part in contact resolution.
//
// X and Y are the top-left of the current collision bounds and are
// authoritative for simulation. Size, scale and angle are private because
// changing them invalidates the mask; the mask is rebuilt lazily, keeping
// the bounds' center fixed, before it is next read.
type Entity struct {
	X, Y   int
	VX, VY float64

	Door    *DoorState
	Mover   *MoverState
	Payload any

	id      EntityID
	variant Variant
	asset   string
	source  image.Image
	builder MaskBuilder

	size   image.Point
	scale  float64
	angle  float64
	hitbox image.Rectangle

	mask    *mask.Mask
	surface *image.NRGBA
	bounds  image.Point
	built   bool
	dirty   bool
}

// New creates an entity. A missing asset or an invalid pose is a
// configuration error.
func New(id EntityID, spec Spec, assets AssetSource, builder MaskBuilder) (*Entity, error) {
	src, err := assets.Image(spec.Asset)
	if err != nil {
		return nil, fmt.Errorf("entity %d: %w", id, err)
	}

	size := spec.Size
	if size == (image.Point{}) {
		size = src.Bounds().Size()
	}
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	if size.X < 0 || size.Y < 0 {
		return nil, fmt.Errorf("entity %d: %w: size %v", id, ErrInvalidPose, size)
	}
	if !(scale > 0) {
		return nil, fmt.Errorf("entity %d: %w: scale %v", id, ErrInvalidPose, scale)
	}

	e := &Entity{
		X:       spec.X,
		Y:       spec.Y,
		Door:    spec.Door,
		Mover:   spec.Mover,
		Payload: spec.Payload,
		id:      id,
		variant: spec.Variant,
		asset:   spec.Asset,
		source:  src,
		builder: builder,
		size:    size,
		scale:   scale,
		angle:   spec.Angle,
		hitbox:  spec.Hitbox,
		dirty:   true,
	}

	switch e.variant {
	case VariantDoor:
		if e.Door == nil {
			e.Door = &DoorState{Orientation: Horizontal, MaxSwing: DefaultMaxSwing}
		}
	case VariantMover:
		if e.Mover == nil {
			e.Mover = &MoverState{MaxSpeed: DefaultMaxSpeed, Acceleration: DefaultAcceleration}
		}
	}

	e.ensure()
	return e, nil
}

// ID returns the entity's identity
func (e *Entity) ID() EntityID { return e.id }

// Variant returns the entity's variant
func (e *Entity) Variant() Variant { return e.variant }

// Asset returns the asset name the entity was built from
func (e *Entity) Asset() string { return e.asset }

// Pose returns the current pose
func (e *Entity) Pose() Pose {
	e.ensure()
	return Pose{X: e.X, Y: e.Y, Size: e.size, Scale: e.scale, Angle: e.angle}
}

// Mask returns the collision mask for the current pose
func (e *Entity) Mask() *mask.Mask {
	e.ensure()
	return e.mask
}

// Surface returns the transformed image for the current pose
func (e *Entity) Surface() *image.NRGBA {
	e.ensure()
	return e.surface
}

// Release drops the cached mask and surface. They are rebuilt on next use.
func (e *Entity) Release() {
	e.mask = nil
	e.surface = nil
	e.dirty = true
}

func (e *Entity) ensure() {
	if !e.dirty {
		return
	}

	m, surface := e.builder.Build(e.source, mask.Shape{
		Size:   e.size,
		Scale:  e.scale,
		Angle:  e.angle,
		Hitbox: e.hitbox,
	})

	if e.built {
		cx, cy := e.X+e.bounds.X/2, e.Y+e.bounds.Y/2
		e.X = cx - m.Width()/2
		e.Y = cy - m.Height()/2
	}

	e.mask = m
	e.surface = surface
	e.bounds = m.Size()
	e.built = true
	e.dirty = false
}

// SetVelocity sets the velocity for the next resolution pass
func (e *Entity) SetVelocity(vx, vy float64) {
	e.VX, e.VY = vx, vy
}

// Velocity returns the velocity component along axis
func (e *Entity) Velocity(axis Axis) float64 {
	if axis == AxisY {
		return e.VY
	}
	return e.VX
}

// VelocitySign returns the sign of the velocity component along axis
func (e *Entity) VelocitySign(axis Axis) int {
	return Sign(e.Velocity(axis))
}

// ApplyUnitStep moves the entity exactly one unit along axis in the
// direction of sign. A zero sign is a no-op.
func (e *Entity) ApplyUnitStep(axis Axis, sign int) {
	switch {
	case sign > 0:
		sign = 1
	case sign < 0:
		sign = -1
	default:
		return
	}
	if axis == AxisY {
		e.Y += sign
	} else {
		e.X += sign
	}
}

// Translate moves the entity by (dx, dy)
func (e *Entity) Translate(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// Angle returns the rotation in degrees
func (e *Entity) Angle() float64 { return e.angle }

// SetAngle sets the rotation in degrees
func (e *Entity) SetAngle(deg float64) {
	if deg == e.angle {
		return
	}
	e.angle = deg
	e.dirty = true
}

// Rotate adds delta degrees to the rotation
func (e *Entity) Rotate(delta float64) {
	e.SetAngle(e.angle + delta)
}

// Scale returns the scale multiplier
func (e *Entity) Scale() float64 { return e.scale }

// SetScale sets the scale multiplier
func (e *Entity) SetScale(scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("%w: scale %v", ErrInvalidPose, scale)
	}
	if scale != e.scale {
		e.scale = scale
		e.dirty = true
	}
	return nil
}

// Size returns the unscaled size
func (e *Entity) Size() image.Point { return e.size }

// SetSize sets the unscaled size
func (e *Entity) SetSize(w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidPose, w, h)
	}
	if p := image.Pt(w, h); p != e.size {
		e.size = p
		e.dirty = true
	}
	return nil
}

// ResetSize restores the asset's native size
func (e *Entity) ResetSize() {
	s := e.source.Bounds().Size()
	_ = e.SetSize(s.X, s.Y)
}

// Bounds returns the collision bounds in world space
func (e *Entity) Bounds() image.Rectangle {
	e.ensure()
	return image.Rect(e.X, e.Y, e.X+e.bounds.X, e.Y+e.bounds.Y)
}

// Left returns the x of the left edge
func (e *Entity) Left() int { return e.Bounds().Min.X }

// Right returns the x just past the right edge
func (e *Entity) Right() int { return e.Bounds().Max.X }

// Top returns the y of the top edge
func (e *Entity) Top() int { return e.Bounds().Min.Y }

// Bottom returns the y just past the bottom edge
func (e *Entity) Bottom() int { return e.Bounds().Max.Y }

// SetLeft moves the entity so its left edge is at x
func (e *Entity) SetLeft(x int) {
	e.ensure()
	e.X = x
}

// SetRight moves the entity so its right edge is at x
func (e *Entity) SetRight(x int) {
	e.ensure()
	e.X = x - e.bounds.X
}

// SetTop moves the entity so its top edge is at y
func (e *Entity) SetTop(y int) {
	e.ensure()
	e.Y = y
}

// SetBottom moves the entity so its bottom edge is at y
func (e *Entity) SetBottom(y int) {
	e.ensure()
	e.Y = y - e.bounds.Y
}

// Center returns the center of the collision bounds
func (e *Entity) Center() image.Point {
	e.ensure()
	return image.Pt(e.X+e.bounds.X/2, e.Y+e.bounds.Y/2)
}

// SetCenter moves the entity so its bounds are centered on p
func (e *Entity) SetCenter(p image.Point) {
	e.ensure()
	e.X = p.X - e.bounds.X/2
	e.Y = p.Y - e.bounds.Y/2
}

// ContainsPoint reports whether the world point (x, y) is occupied
func (e *Entity) ContainsPoint(x, y int) bool {
	m := e.Mask()
	return m.Get(x-e.X, y-e.Y)
}

// Overlaps reports whether the masks of a and b share an occupied pixel
// at their current positions. An entity never overlaps itself.
func Overlaps(a, b *Entity) bool {
	if a == nil || b == nil || a.id == b.id {
		return false
	}
	ma, mb := a.Mask(), b.Mask()
	return ma.Overlaps(mb, b.X-a.X, b.Y-a.Y)
}
