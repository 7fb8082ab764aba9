// Package mask provides pixel-accurate occupancy bitmaps used for contact
// testing, and the raster transforms that derive them from a pose.
package mask

import (
	"image"
	"math/bits"
)

// AlphaThreshold is the minimum alpha (0-255) a pixel needs to be occupied.
const AlphaThreshold = 127

// Mask is a row-major occupancy bitmap.
type Mask struct {
	w, h  int
	words int // uint64 words per row
	bits  []uint64
}

// New returns an empty mask of the given dimensions.
// Negative dimensions are treated as zero.
func New(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	words := (w + 63) / 64
	return &Mask{
		w:     w,
		h:     h,
		words: words,
		bits:  make([]uint64, words*h),
	}
}

// FromImage builds a mask from the alpha channel of img.
// Pixel (0,0) of the mask is img.Bounds().Min.
func FromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < m.h; y++ {
			row := nrgba.Pix[(b.Min.Y+y-nrgba.Rect.Min.Y)*nrgba.Stride:]
			for x := 0; x < m.w; x++ {
				if row[(b.Min.X+x-nrgba.Rect.Min.X)*4+3] > AlphaThreshold {
					m.Set(x, y)
				}
			}
		}
		return m
	}

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a>>8 > AlphaThreshold {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Width returns the mask width in pixels
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels
func (m *Mask) Height() int { return m.h }

// Size returns the mask dimensions
func (m *Mask) Size() image.Point { return image.Pt(m.w, m.h) }

// Set marks (x, y) as occupied. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.bits[y*m.words+x/64] |= 1 << uint(x%64)
}

// Get reports whether (x, y) is occupied.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.words+x/64]&(1<<uint(x%64)) != 0
}

// Fill marks every pixel of r (clipped to the mask) as occupied
func (m *Mask) Fill(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, m.w, m.h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y)
		}
	}
}

// Count returns the number of occupied pixels
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Overlaps reports whether any occupied pixel of m coincides with an
// occupied pixel of other, when other's origin sits at (dx, dy) in m's
// coordinate space.
func (m *Mask) Overlaps(other *Mask, dx, dy int) bool {
	if m == nil || other == nil {
		return false
	}

	x0, x1 := max(0, dx), min(m.w, dx+other.w)
	y0, y1 := max(0, dy), min(m.h, dy+other.h)
	if x0 >= x1 || y0 >= y1 {
		return false
	}

	// Bits past either mask's width are never set, so whole words can be
	// ANDed without clipping to [x0, x1).
	for y := y0; y < y1; y++ {
		row := m.bits[y*m.words : (y+1)*m.words]
		for k := x0 / 64; k <= (x1-1)/64; k++ {
			if row[k]&other.bitsAt(y-dy, k*64-dx) != 0 {
				return true
			}
		}
	}
	return false
}

// bitsAt returns the 64 pixels of row y starting at column col, with bit i
// holding column col+i. Columns outside the mask read as empty.
func (m *Mask) bitsAt(y, col int) uint64 {
	if col <= -64 || col >= m.w {
		return 0
	}
	if col < 0 {
		return m.bitsAt(y, 0) << uint(-col)
	}

	row := m.bits[y*m.words : (y+1)*m.words]
	q, r := col/64, uint(col%64)
	w := row[q] >> r
	if r != 0 && q+1 < len(row) {
		w |= row[q+1] << (64 - r)
	}
	return w
}
