package world

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/topdown/internal/domain/entity"
	"github.com/younwookim/topdown/internal/infrastructure/asset"
	"github.com/younwookim/topdown/internal/infrastructure/config"
	"github.com/younwookim/topdown/internal/infrastructure/mask"
)

const demoConfigs = "../../../cmd/demo/configs"

func loadDemoScene(t *testing.T, name string) (*World, *config.SceneConfig) {
	t.Helper()
	loader := config.NewLoader(demoConfigs)
	cfg, err := loader.LoadScene(name)
	require.NoError(t, err)

	assets, err := LoadAssets(cfg, loader.FS())
	require.NoError(t, err)

	w, err := FromScene(cfg, assets, mask.Builder{}, Options{})
	require.NoError(t, err)
	return w, cfg
}

func TestFromScene_Demo(t *testing.T) {
	w, _ := loadDemoScene(t, "demo")

	assert.Equal(t, 89, w.Len(), "86 layout tiles and 3 entities")
	require.Len(t, w.Movers(), 2)

	player, ok := w.Named("player")
	require.True(t, ok)
	assert.Equal(t, entity.ControlKeys, player.Mover.Control)
	assert.Equal(t, 500*time.Millisecond, player.Mover.SatUpCooldown)
	assert.Equal(t, 2.0, player.Mover.MaxSpeed)

	enemy := w.Movers()[1]
	assert.Equal(t, entity.ControlChase, enemy.Mover.Control)
	target, ok := w.Target(enemy.ID())
	require.True(t, ok)
	assert.Same(t, player, target)

	first := w.Entities()[0]
	assert.Equal(t, entity.VariantBlocking, first.Variant())
	assert.Equal(t, image.Rect(0, 0, 16, 16), first.Bounds())
}

func TestFromScene_DemoStartsClear(t *testing.T) {
	w, _ := loadDemoScene(t, "demo")

	for _, mover := range w.Movers() {
		for _, other := range w.Entities() {
			assert.False(t, entity.Overlaps(mover, other), "mover %d starts inside %d", mover.ID(), other.ID())
		}
	}
}

func TestFromScene_Arena(t *testing.T) {
	w, _ := loadDemoScene(t, "arena")

	assert.Equal(t, 72, w.Len())
	player, ok := w.Named("player")
	require.True(t, ok)
	assert.Equal(t, entity.ControlFacing, player.Mover.Control)
	assert.Equal(t, 0.0, player.Mover.Speed, "facing movers start at rest")
	assert.Equal(t, image.Pt(10, 16), player.Mask().Size())
	assert.Equal(t, 8*10, player.Mask().Count(), "only the hitbox is solid")
}

func TestFromScene_Errors(t *testing.T) {
	assets := asset.NewRegistry()
	assets.Add("box", asset.Rect(4, 4, color.NRGBA{A: 255}))

	tests := []struct {
		name string
		cfg  config.SceneConfig
		want error
	}{
		{
			name: "unknown layout character",
			cfg: config.SceneConfig{Layout: config.LayoutConfig{
				TileSize: 4,
				Rows:     []string{"#?"},
				Legend:   map[string]config.TileConfig{"#": {Type: "blocking", Asset: "box"}},
			}},
			want: ErrBadScene,
		},
		{
			name: "zero tile size",
			cfg:  config.SceneConfig{Layout: config.LayoutConfig{Rows: []string{"#"}}},
			want: ErrBadScene,
		},
		{
			name: "unknown variant",
			cfg:  config.SceneConfig{Entities: []config.EntityConfig{{Type: "ghost", Asset: "box"}}},
			want: entity.ErrUnknownVariant,
		},
		{
			name: "missing asset",
			cfg:  config.SceneConfig{Entities: []config.EntityConfig{{Type: "chair", Asset: "throne"}}},
			want: asset.ErrNotFound,
		},
		{
			name: "missing chase target",
			cfg: config.SceneConfig{Entities: []config.EntityConfig{{
				Type:  "enemy",
				Asset: "box",
				Mover: &config.MoverConfig{Control: "chase", Target: "nobody"},
			}}},
			want: ErrNoSuchEntity,
		},
		{
			name: "negative size",
			cfg:  config.SceneConfig{Entities: []config.EntityConfig{{Asset: "box", Width: -1, Height: 4}}},
			want: entity.ErrInvalidPose,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromScene(&tt.cfg, assets, mask.Builder{}, Options{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSpecFromConfig(t *testing.T) {
	t.Run("door defaults", func(t *testing.T) {
		spec, err := SpecFromConfig(config.EntityConfig{Type: "door", Asset: "door"})
		require.NoError(t, err)
		require.NotNil(t, spec.Door)
		assert.Equal(t, entity.Horizontal, spec.Door.Orientation)
		assert.Equal(t, entity.DefaultMaxSwing, spec.Door.MaxSwing)
	})

	t.Run("vertical door", func(t *testing.T) {
		spec, err := SpecFromConfig(config.EntityConfig{
			Type:  "door",
			Asset: "door",
			Door:  &config.DoorConfig{Orientation: "vertical", MaxSwing: 30},
		})
		require.NoError(t, err)
		assert.Equal(t, entity.Vertical, spec.Door.Orientation)
		assert.Equal(t, 30, spec.Door.MaxSwing)
	})

	t.Run("bad orientation", func(t *testing.T) {
		_, err := SpecFromConfig(config.EntityConfig{
			Type: "door",
			Door: &config.DoorConfig{Orientation: "diagonal"},
		})
		assert.Error(t, err)
	})

	t.Run("mover defaults", func(t *testing.T) {
		spec, err := SpecFromConfig(config.EntityConfig{Type: "player", Asset: "p"})
		require.NoError(t, err)
		require.NotNil(t, spec.Mover)
		assert.Equal(t, entity.ControlKeys, spec.Mover.Control)
		assert.Equal(t, float64(entity.DefaultMaxSpeed), spec.Mover.MaxSpeed)
		assert.Equal(t, entity.DefaultAcceleration, spec.Mover.Acceleration)
		assert.Equal(t, time.Duration(0), spec.Mover.SatUpCooldown)
	})

	t.Run("pose and hitbox", func(t *testing.T) {
		spec, err := SpecFromConfig(config.EntityConfig{
			Asset:  "crate",
			X:      3,
			Y:      4,
			Width:  8,
			Height: 6,
			Scale:  2,
			Angle:  45,
			Hitbox: &config.RectConfig{X: 1, Y: 1, W: 6, H: 4},
		})
		require.NoError(t, err)
		assert.Equal(t, entity.VariantBlocking, spec.Variant)
		assert.Equal(t, image.Pt(8, 6), spec.Size)
		assert.Equal(t, 2.0, spec.Scale)
		assert.Equal(t, 45.0, spec.Angle)
		assert.Equal(t, image.Rect(1, 1, 7, 5), spec.Hitbox)
		assert.Nil(t, spec.Door)
		assert.Nil(t, spec.Mover)
	})
}

func TestLoadAssets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, asset.Rect(3, 2, color.NRGBA{R: 255, A: 255})))
	fsys := fstest.MapFS{"art/ember.png": {Data: buf.Bytes()}}

	cfg := &config.SceneConfig{Assets: map[string]config.AssetConfig{
		"wall":  {Shape: "rect", Width: 16, Height: 8, Color: "#50506e"},
		"ball":  {Shape: "ellipse", Width: 10, Height: 10},
		"ember": {Shape: "png", Path: "art/ember.png"},
	}}

	r, err := LoadAssets(cfg, fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"ball", "ember", "wall"}, r.Names())

	size, err := r.Size("ember")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(3, 2), size)

	wall, err := r.Image("wall")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0x50, 0x50, 0x6e, 255}, wall.At(0, 0))

	t.Run("errors", func(t *testing.T) {
		for name, a := range map[string]config.AssetConfig{
			"unknown shape": {Shape: "star", Width: 1, Height: 1},
			"zero size":     {Shape: "rect"},
			"bad color":     {Shape: "rect", Width: 1, Height: 1, Color: "red"},
			"missing png":   {Shape: "png", Path: "nope.png"},
		} {
			_, err := LoadAssets(&config.SceneConfig{Assets: map[string]config.AssetConfig{"x": a}}, fsys)
			assert.Error(t, err, name)
		}
	})
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"", color.NRGBA{255, 255, 255, 255}, false},
		{"#000000", color.NRGBA{0, 0, 0, 255}, false},
		{"#a0522D", color.NRGBA{0xa0, 0x52, 0x2d, 255}, false},
		{"a0522d", color.NRGBA{}, true},
		{"#a052", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadScene)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
