package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// Loader loads configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from. Asset paths in scene
// files are resolved against it.
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadDisplay loads display.json
func (l *Loader) LoadDisplay() (*DisplayConfig, error) {
	var cfg DisplayConfig
	if err := l.decode("display.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadScene loads a scene JSON file
func (l *Loader) LoadScene(name string) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := l.decode("scenes/"+name+".json", &cfg); err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return &cfg, nil
}

func (l *Loader) decode(path string, v any) error {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
