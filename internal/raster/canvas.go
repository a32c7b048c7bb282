package raster

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/gg"
)

// Canvas is a Surface rendered by gg's software rasterizer.
type Canvas struct {
	dc *gg.Context
}

var _ Surface = (*Canvas)(nil)

func NewCanvas(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

func (c *Canvas) Width() int  { return c.dc.Width() }
func (c *Canvas) Height() int { return c.dc.Height() }

func (c *Canvas) BeginPath() {
	c.dc.ClearPath()
}

func (c *Canvas) MoveTo(x, y float64) {
	c.dc.MoveTo(x, y)
}

func (c *Canvas) LineTo(x, y float64) {
	c.dc.LineTo(x, y)
}

func (c *Canvas) Stroke() error {
	return c.dc.StrokePreserve()
}

func (c *Canvas) SetStrokeColor(hex string) {
	c.dc.SetHexColor(hex)
}

func (c *Canvas) SetLineWidth(w float64) {
	c.dc.SetLineWidth(w)
}

func (c *Canvas) LineWidth() float64 {
	return c.dc.GetStroke().Width
}

func (c *Canvas) SetLineCap(lc LineCap) {
	switch lc {
	case CapRound:
		c.dc.SetLineCap(gg.LineCapRound)
	case CapSquare:
		c.dc.SetLineCap(gg.LineCapSquare)
	default:
		c.dc.SetLineCap(gg.LineCapButt)
	}
}

// ClearRect makes the rectangle fully transparent. It is clipped to the buffer.
func (c *Canvas) ClearRect(x, y, w, h int) {
	pm := c.dc.ResizeTarget()
	r := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, pm.Width(), pm.Height()))
	if r.Empty() {
		return
	}
	data := pm.Data()
	stride := pm.Width() * 4
	for row := r.Min.Y; row < r.Max.Y; row++ {
		clear(data[row*stride+r.Min.X*4 : row*stride+r.Max.X*4])
	}
}

func (c *Canvas) Snapshot() Snapshot {
	_ = c.dc.FlushGPU()
	pm := c.dc.ResizeTarget()
	return Snapshot{
		Width:  pm.Width(),
		Height: pm.Height(),
		Pix:    slices.Clone(pm.Data()),
	}
}

func (c *Canvas) Restore(s Snapshot) error {
	pm := c.dc.ResizeTarget()
	if s.Width != pm.Width() || s.Height != pm.Height() || len(s.Pix) != len(pm.Data()) {
		return fmt.Errorf("%w: snapshot %dx%d, surface %dx%d",
			ErrSnapshotMismatch, s.Width, s.Height, pm.Width(), pm.Height())
	}
	copy(pm.Data(), s.Pix)
	return nil
}

// Image returns a copy of the current pixels for display.
func (c *Canvas) Image() image.Image {
	_ = c.dc.FlushGPU()
	return c.dc.Image()
}

// Resize reallocates the buffer. Only the hosting view calls this; existing
// pixels are lost and outstanding snapshots stop matching.
func (c *Canvas) Resize(width, height int) error {
	return c.dc.Resize(width, height)
}

func (c *Canvas) Close() error {
	return c.dc.Close()
}
