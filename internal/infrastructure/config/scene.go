package config

// SceneConfig is the root config for scene JSON files
type SceneConfig struct {
	ID       string                 `json:"id" jsonschema:"title=Scene id,pattern=^[a-z0-9\-]+$,minLength=1,required"`
	Name     string                 `json:"name" jsonschema:"description=Human readable scene title"`
	Assets   map[string]AssetConfig `json:"assets" jsonschema:"description=Source images keyed by the name entities refer to"`
	Layout   LayoutConfig           `json:"layout" jsonschema:"description=Tile grid of static entities"`
	Entities []EntityConfig         `json:"entities" jsonschema:"description=Free standing entities in spawn order"`
}

// AssetConfig describes one source image. Procedural shapes are drawn at
// load time; png assets are read from Path relative to the config root.
type AssetConfig struct {
	Shape  string `json:"shape" jsonschema:"enum=rect,enum=ellipse,enum=png,required"`
	Width  int    `json:"width,omitempty" jsonschema:"minimum=1"`
	Height int    `json:"height,omitempty" jsonschema:"minimum=1"`
	Color  string `json:"color,omitempty" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
	Path   string `json:"path,omitempty"`
}

// LayoutConfig places one entity per non-blank cell of Rows
type LayoutConfig struct {
	TileSize int                   `json:"tileSize" jsonschema:"minimum=1"`
	Rows     []string              `json:"rows"`
	Legend   map[string]TileConfig `json:"legend" jsonschema:"description=Single character keys mapped to the entity spawned there"`
}

// TileConfig is the entity a layout character stands for
type TileConfig struct {
	Type  string `json:"type" jsonschema:"enum=blocking,enum=pushable,enum=door,enum=chair"`
	Asset string `json:"asset" jsonschema:"required"`
}

// EntityConfig describes one entity. Width and Height of zero use the
// asset's native size; a Scale of zero means 1.
type EntityConfig struct {
	Name   string      `json:"name,omitempty" jsonschema:"description=Optional handle other entities refer to"`
	Type   string      `json:"type" jsonschema:"enum=blocking,enum=object,enum=pushable,enum=door,enum=chair,enum=mover,enum=player,enum=enemy"`
	Asset  string      `json:"asset" jsonschema:"required"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Width  int         `json:"width,omitempty" jsonschema:"minimum=0"`
	Height int         `json:"height,omitempty" jsonschema:"minimum=0"`
	Scale  float64     `json:"scale,omitempty" jsonschema:"minimum=0"`
	Angle  float64     `json:"angle,omitempty" jsonschema:"description=Degrees counter-clockwise"`
	Hitbox *RectConfig `json:"hitbox,omitempty" jsonschema:"description=Fixed collision rectangle in unscaled asset pixels"`

	Door  *DoorConfig  `json:"door,omitempty"`
	Mover *MoverConfig `json:"mover,omitempty"`
}

// RectConfig is a rectangle given by its top-left corner and size
type RectConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w" jsonschema:"minimum=1"`
	H int `json:"h" jsonschema:"minimum=1"`
}

// DoorConfig holds door parameters
type DoorConfig struct {
	Orientation string `json:"orientation" jsonschema:"enum=horizontal,enum=vertical"`
	MaxSwing    int    `json:"maxSwing,omitempty" jsonschema:"minimum=0,description=Degrees the door may swing per contact"`
}

// MoverConfig holds mover parameters. Speeds are pixels per frame.
type MoverConfig struct {
	Control         string  `json:"control" jsonschema:"enum=keys,enum=facing,enum=chase,enum=none"`
	MaxSpeed        float64 `json:"maxSpeed,omitempty" jsonschema:"minimum=0"`
	Speed           float64 `json:"speed,omitempty" jsonschema:"minimum=0,description=Per axis speed of a chasing mover"`
	Acceleration    float64 `json:"acceleration,omitempty" jsonschema:"minimum=0"`
	CorrectionAngle float64 `json:"correctionAngle,omitempty" jsonschema:"description=Degrees that turn the sprite to face up"`
	SatUpCooldownMs int     `json:"satUpCooldownMs,omitempty" jsonschema:"minimum=0"`
	Target          string  `json:"target,omitempty" jsonschema:"description=Name of the entity a chasing mover follows"`
}
