package world

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"time"

	"github.com/younwookim/topdown/internal/domain/entity"
	"github.com/younwookim/topdown/internal/infrastructure/asset"
	"github.com/younwookim/topdown/internal/infrastructure/config"
)

// ErrBadScene is returned for scene files that cannot be turned into a world
var ErrBadScene = errors.New("bad scene")

// LoadAssets registers every asset a scene defines. PNG paths are read
// from fsys.
func LoadAssets(cfg *config.SceneConfig, fsys fs.FS) (*asset.Registry, error) {
	r := asset.NewRegistry()

	for name, a := range cfg.Assets {
		switch a.Shape {
		case "png":
			if err := r.LoadPNG(fsys, name, a.Path); err != nil {
				return nil, err
			}
		case "rect", "ellipse":
			if a.Width <= 0 || a.Height <= 0 {
				return nil, fmt.Errorf("%w: asset %q has size %dx%d", ErrBadScene, name, a.Width, a.Height)
			}
			c, err := ParseHexColor(a.Color)
			if err != nil {
				return nil, fmt.Errorf("asset %q: %w", name, err)
			}
			if a.Shape == "rect" {
				r.Add(name, asset.Rect(a.Width, a.Height, c))
			} else {
				r.Add(name, asset.Ellipse(a.Width, a.Height, c))
			}
		default:
			return nil, fmt.Errorf("%w: asset %q has unknown shape %q", ErrBadScene, name, a.Shape)
		}
	}

	return r, nil
}

// FromScene builds a world from a scene: layout tiles first in row-major
// order, then the listed entities. Chase targets are bound once every
// entity exists, so a mover may follow one listed after it.
func FromScene(cfg *config.SceneConfig, assets entity.AssetSource, builder entity.MaskBuilder, opts Options) (*World, error) {
	w := New(assets, builder, opts)

	if err := w.spawnLayout(cfg.Layout); err != nil {
		return nil, err
	}

	chasers := make(map[entity.EntityID]string)
	for i, ec := range cfg.Entities {
		spec, err := SpecFromConfig(ec)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}

		var e *entity.Entity
		if ec.Name != "" {
			e, err = w.SpawnNamed(ec.Name, spec)
		} else {
			e, err = w.Spawn(spec)
		}
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}

		if ec.Mover != nil && ec.Mover.Target != "" {
			chasers[e.ID()] = ec.Mover.Target
		}
	}

	for id, name := range chasers {
		target, ok := w.Named(name)
		if !ok {
			return nil, fmt.Errorf("%w: chase target %q", ErrNoSuchEntity, name)
		}
		if err := w.SetTarget(id, target.ID()); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *World) spawnLayout(layout config.LayoutConfig) error {
	if len(layout.Rows) == 0 {
		return nil
	}
	if layout.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrBadScene, layout.TileSize)
	}

	for row, line := range layout.Rows {
		for col, ch := range []rune(line) {
			if ch == '.' || ch == ' ' {
				continue
			}
			tile, ok := layout.Legend[string(ch)]
			if !ok {
				return fmt.Errorf("%w: no legend entry for %q at row %d col %d", ErrBadScene, ch, row, col)
			}
			variant, err := entity.ParseVariant(tile.Type)
			if err != nil {
				return err
			}
			spec := entity.Spec{
				Variant: variant,
				Asset:   tile.Asset,
				X:       col * layout.TileSize,
				Y:       row * layout.TileSize,
			}
			if _, err := w.Spawn(spec); err != nil {
				return fmt.Errorf("tile at row %d col %d: %w", row, col, err)
			}
		}
	}
	return nil
}

// SpecFromConfig converts an entity config to a Spec, applying defaults
// for omitted door and mover parameters.
func SpecFromConfig(ec config.EntityConfig) (entity.Spec, error) {
	variant, err := entity.ParseVariant(ec.Type)
	if err != nil {
		return entity.Spec{}, err
	}

	spec := entity.Spec{
		Variant: variant,
		Asset:   ec.Asset,
		X:       ec.X,
		Y:       ec.Y,
		Size:    image.Pt(ec.Width, ec.Height),
		Scale:   ec.Scale,
		Angle:   ec.Angle,
	}
	if ec.Hitbox != nil {
		h := ec.Hitbox
		spec.Hitbox = image.Rect(h.X, h.Y, h.X+h.W, h.Y+h.H)
	}

	switch variant {
	case entity.VariantDoor:
		door := &entity.DoorState{MaxSwing: entity.DefaultMaxSwing}
		if ec.Door != nil {
			if door.Orientation, err = entity.ParseOrientation(ec.Door.Orientation); err != nil {
				return entity.Spec{}, err
			}
			if ec.Door.MaxSwing > 0 {
				door.MaxSwing = ec.Door.MaxSwing
			}
		}
		spec.Door = door

	case entity.VariantMover:
		mover := &entity.MoverState{
			MaxSpeed:     entity.DefaultMaxSpeed,
			Speed:        1,
			Acceleration: entity.DefaultAcceleration,
		}
		if mc := ec.Mover; mc != nil {
			if mover.Control, err = entity.ParseControl(mc.Control); err != nil {
				return entity.Spec{}, err
			}
			if mc.MaxSpeed > 0 {
				mover.MaxSpeed = mc.MaxSpeed
			}
			if mc.Speed > 0 {
				mover.Speed = mc.Speed
			}
			if mc.Acceleration > 0 {
				mover.Acceleration = mc.Acceleration
			}
			mover.CorrectionAngle = mc.CorrectionAngle
			mover.SatUpCooldown = time.Duration(mc.SatUpCooldownMs) * time.Millisecond
		}
		if mover.Control == entity.ControlFacing {
			// A facing mover starts at rest; Speed is its current speed.
			mover.Speed = 0
		}
		spec.Mover = mover
	}

	return spec, nil
}

// ParseHexColor parses "#rrggbb" into an opaque color. Empty is white.
func ParseHexColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{255, 255, 255, 255}, nil
	}
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrBadScene, s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrBadScene, s)
	}
	return color.NRGBA{r, g, b, 255}, nil
}
