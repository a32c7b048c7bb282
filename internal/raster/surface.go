// Package raster defines the fixed-size pixel buffer the sketch pad draws
// into, its gg-backed implementation and a call recorder.
package raster

import "errors"

// ErrSnapshotMismatch is returned when a snapshot no longer fits the buffer,
// typically after the host resized it.
var ErrSnapshotMismatch = errors.New("snapshot does not match surface")

// LineCap is the shape drawn at the ends of a stroked segment.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return "butt"
}

// Snapshot is a full copy of a surface's pixels, 4 bytes (RGBA) per pixel.
type Snapshot struct {
	Width  int
	Height int
	Pix    []uint8
}

// AlphaAt returns the alpha byte of pixel (x, y), or 0 outside the snapshot.
func (s Snapshot) AlphaAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0
	}
	return s.Pix[(y*s.Width+x)*4+3]
}

// Blank reports whether every pixel is fully transparent.
func (s Snapshot) Blank() bool {
	for _, b := range s.Pix {
		if b != 0 {
			return false
		}
	}
	return true
}

// Surface is a 2D raster buffer with an immediate-mode path API.
// The current path survives Stroke and is only discarded by BeginPath.
type Surface interface {
	Width() int
	Height() int

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke() error

	SetStrokeColor(hex string)
	SetLineWidth(w float64)
	LineWidth() float64
	SetLineCap(c LineCap)

	ClearRect(x, y, w, h int)
	Snapshot() Snapshot
	Restore(s Snapshot) error
}
