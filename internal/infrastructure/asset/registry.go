// Package asset holds the named source images entities are built from.
//
// A Registry is passed explicitly to whoever constructs entities, so that
// simulation code and tests never depend on a process-wide image table.
package asset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"sort"
)

// ErrNotFound is returned when a named asset is not registered
var ErrNotFound = errors.New("asset not found")

// Registry maps asset names to source images
type Registry struct {
	images map[string]image.Image
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{images: make(map[string]image.Image)}
}

// Add registers img under name, replacing any previous image
func (r *Registry) Add(name string, img image.Image) {
	r.images[name] = img
}

// Image returns the image registered under name
func (r *Registry) Image(name string) (image.Image, error) {
	img, ok := r.images[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return img, nil
}

// Size returns the native size of the named image
func (r *Registry) Size(name string) (image.Point, error) {
	img, err := r.Image(name)
	if err != nil {
		return image.Point{}, err
	}
	return img.Bounds().Size(), nil
}

// Names returns all registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.images))
	for name := range r.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPNG decodes the PNG at path in fsys and registers it under name
func (r *Registry) LoadPNG(fsys fs.FS, name, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open asset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode asset %s: %w", path, err)
	}

	r.Add(name, img)
	return nil
}

// Rect returns a w x h image filled with c
func Rect(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Ellipse returns a w x h image with an ellipse inscribed in c and a
// transparent background.
func Ellipse(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rx, ry := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - rx) / rx
			dy := (float64(y) + 0.5 - ry) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}
