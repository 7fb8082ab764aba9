package mask

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Shape describes the pose-dependent parameters of a raster
type Shape struct {
	Size  image.Point // size before scaling
	Scale float64
	Angle float64 // degrees, counter-clockwise on screen

	// Hitbox, when non-empty, replaces the pixel-derived mask with a
	// filled rectangle given in unscaled Size coordinates. A hitbox mask
	// scales with the shape but never rotates.
	Hitbox image.Rectangle
}

// Builder turns a source image and a shape into a mask and its surface.
type Builder struct{}

// Build resizes src to s.Size, scales it by s.Scale and rotates it by
// s.Angle, expanding the bounds to fit. It returns the collision mask and
// the transformed surface used for rendering.
func (Builder) Build(src image.Image, s Shape) (*Mask, *image.NRGBA) {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}

	morphed := resize(src, s.Size)
	scaledSize := image.Pt(
		int(math.Round(float64(s.Size.X)*scale)),
		int(math.Round(float64(s.Size.Y)*scale)),
	)
	scaled := resize(morphed, scaledSize)
	surface := Rotate(scaled, s.Angle)

	if s.Hitbox.Empty() {
		return FromImage(surface), surface
	}

	hb := image.Rect(
		int(math.Round(float64(s.Hitbox.Min.X)*scale)),
		int(math.Round(float64(s.Hitbox.Min.Y)*scale)),
		int(math.Round(float64(s.Hitbox.Max.X)*scale)),
		int(math.Round(float64(s.Hitbox.Max.Y)*scale)),
	)
	m := New(scaledSize.X, scaledSize.Y)
	m.Fill(hb)
	return m, surface
}

// resize returns a copy of src stretched to size using nearest-neighbour
// sampling, so that occupancy edges stay crisp.
func resize(src image.Image, size image.Point) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, max(size.X, 0), max(size.Y, 0)))
	if dst.Rect.Empty() || src == nil || src.Bounds().Empty() {
		return dst
	}
	if src.Bounds().Size() == size {
		draw.Draw(dst, dst.Rect, src, src.Bounds().Min, draw.Src)
		return dst
	}
	draw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
	return dst
}

// Rotate returns img rotated counter-clockwise by deg degrees about its
// center. The result is the smallest axis-aligned image that holds the
// rotated pixels. Quarter turns are exact.
func Rotate(img *image.NRGBA, deg float64) *image.NRGBA {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	switch deg {
	case 0:
		return img
	case 90, 180, 270:
		return rotateQuarter(img, int(deg)/90)
	}

	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	nw := int(math.Ceil(math.Abs(float64(w)*c) + math.Abs(float64(h)*s) - 1e-9))
	nh := int(math.Ceil(math.Abs(float64(w)*s) + math.Abs(float64(h)*c) - 1e-9))
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	if w == 0 || h == 0 {
		return dst
	}

	// Screen space is y-down, so a counter-clockwise turn maps
	// (x, y) -> (x*c + y*s, -x*s + y*c) around the centers.
	csx, csy := float64(w)/2, float64(h)/2
	cdx, cdy := float64(nw)/2, float64(nh)/2
	s2d := f64.Aff3{
		c, s, cdx - c*csx - s*csy,
		-s, c, cdy + s*csx - c*csy,
	}
	draw.NearestNeighbor.Transform(dst, s2d, img, img.Rect, draw.Src, nil)
	return dst
}

func rotateQuarter(img *image.NRGBA, turns int) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	var dst *image.NRGBA
	if turns == 2 {
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, h, w))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var nx, ny int
			switch turns {
			case 1:
				nx, ny = y, w-1-x
			case 2:
				nx, ny = w-1-x, h-1-y
			default:
				nx, ny = h-1-y, x
			}
			si := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			di := dst.PixOffset(nx, ny)
			copy(dst.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return dst
}
