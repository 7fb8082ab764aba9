package config

// DisplayConfig is the root config for display.json
type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Framerate    int    `json:"framerate"`
	Background   string `json:"background"` // #rrggbb
	// MaxSteps caps the substeps a mover may take per axis per frame.
	// Zero means no cap.
	MaxSteps int `json:"maxSteps"`
}
