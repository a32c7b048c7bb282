// Package drawing turns pointer gestures into pixels on a raster surface.
//
// A Surface is driven by pointer-down, pointer-move and pointer-up (or leave)
// events in surface-local coordinates. In freehand mode every move commits a
// short segment. In line mode the buffer is snapshotted at pointer-down and
// every move restores it before drawing a single rubber-band segment, so the
// preview never leaves trailing pixels.
//
// All methods run on the UI goroutine; a Surface is not safe for concurrent use.
package drawing

import (
	"fmt"
	"io"

	"MyLocalSketch/internal/logging"
	"MyLocalSketch/internal/raster"
	"MyLocalSketch/internal/state"
)

// stroke is the transient per-gesture state.
type stroke struct {
	active   bool
	id       state.GestureID
	mode     state.Mode
	start    *state.Point
	snapshot *raster.Snapshot
}

type Surface struct {
	canvas   raster.Surface
	settings state.Settings
	stroke   stroke
	clock    *state.GestureClock
}

// Option configures a Surface at construction.
type Option func(*Surface)

// WithSettings replaces the default drawing settings. Invalid fields are
// ignored and keep their defaults.
func WithSettings(s state.Settings) Option {
	return func(d *Surface) {
		if c, err := state.ParseColor(s.Color); err == nil {
			d.settings.Color = c
		}
		if state.ValidStrokeWidth(s.StrokeWidth) {
			d.settings.StrokeWidth = s.StrokeWidth
		}
		if s.Mode.Valid() {
			d.settings.Mode = s.Mode
		}
	}
}

func New(opts ...Option) *Surface {
	d := &Surface{
		settings: state.DefaultSettings(),
		clock:    state.NewGestureClock(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Attach binds the raster surface. It must be called exactly once, once the
// hosting view has a buffer, before any drawing operation.
func (d *Surface) Attach(s raster.Surface) error {
	if s == nil {
		return ErrNilSurface
	}
	if d.canvas != nil {
		return ErrAlreadyAttached
	}
	d.canvas = s
	d.canvas.SetLineWidth(float64(d.settings.StrokeWidth))
	d.canvas.SetLineCap(raster.CapRound)
	d.canvas.SetStrokeColor(d.settings.Color)
	logging.Logger().Debug("surface attached",
		"session", d.clock.Session(), "width", s.Width(), "height", s.Height())
	return nil
}

// Detach drops any gesture in flight and releases the raster surface.
func (d *Surface) Detach() error {
	if d.canvas == nil {
		return ErrNotInitialized
	}
	d.resetStroke()
	c := d.canvas
	d.canvas = nil
	logging.Logger().Debug("surface detached", "session", d.clock.Session())
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (d *Surface) Attached() bool  { return d.canvas != nil }
func (d *Surface) IsDrawing() bool { return d.stroke.active }

func (d *Surface) Settings() state.Settings { return d.settings }

// BeginStroke starts a gesture at p. Nothing is drawn yet.
func (d *Surface) BeginStroke(p state.Point) error {
	if d.canvas == nil {
		return ErrNotInitialized
	}
	if d.stroke.active {
		logging.Logger().Debug("gesture restarted without end", "gesture", d.stroke.id)
		d.resetStroke()
	}

	d.stroke.active = true
	d.stroke.id = d.clock.Next()
	d.stroke.mode = d.settings.Mode

	switch d.stroke.mode {
	case state.Line:
		snap := d.canvas.Snapshot()
		start := p
		d.stroke.start = &start
		d.stroke.snapshot = &snap
	default:
		d.canvas.BeginPath()
		d.canvas.MoveTo(p.X, p.Y)
	}
	logging.Logger().Debug("gesture begin",
		"gesture", d.stroke.id, "mode", d.stroke.mode, "x", p.X, "y", p.Y)
	return nil
}

// ContinueStroke extends the active gesture to p. It never touches the
// raster when no gesture is active.
func (d *Surface) ContinueStroke(p state.Point) error {
	if d.canvas == nil {
		return ErrNotInitialized
	}
	if !d.stroke.active {
		return nil
	}
	if d.stroke.mode == state.Line {
		return d.drawLineTo(p)
	}

	d.applyPen()
	d.canvas.LineTo(p.X, p.Y)
	err := d.canvas.Stroke()
	d.canvas.BeginPath()
	d.canvas.MoveTo(p.X, p.Y)
	if err != nil {
		return fmt.Errorf("stroke segment: %w", err)
	}
	return nil
}

// EndStroke finishes the active gesture at p. Pointer release and the
// pointer leaving the surface both end here; in line mode the committed
// segment always ends at p.
func (d *Surface) EndStroke(p state.Point) error {
	if d.canvas == nil {
		return ErrNotInitialized
	}
	if !d.stroke.active {
		return nil
	}

	id, mode := d.stroke.id, d.stroke.mode
	var err error
	if mode == state.Line {
		err = d.drawLineTo(p)
	} else {
		d.canvas.BeginPath()
	}
	d.resetStroke()
	logging.Logger().Debug("gesture end", "gesture", id, "mode", mode, "x", p.X, "y", p.Y)
	return err
}

// drawLineTo replaces the previous preview with a single segment from the
// anchor to p. A snapshot that no longer fits the buffer aborts the gesture.
func (d *Surface) drawLineTo(p state.Point) error {
	if d.stroke.start == nil || d.stroke.snapshot == nil {
		// The anchor was dropped by Clear.
		return nil
	}
	if err := d.canvas.Restore(*d.stroke.snapshot); err != nil {
		logging.Logger().Warn("line gesture aborted", "gesture", d.stroke.id, "err", err)
		d.resetStroke()
		return fmt.Errorf("restore line preview: %w", err)
	}
	d.canvas.BeginPath()
	d.canvas.MoveTo(d.stroke.start.X, d.stroke.start.Y)
	d.canvas.LineTo(p.X, p.Y)
	d.applyPen()
	if err := d.canvas.Stroke(); err != nil {
		return fmt.Errorf("stroke line: %w", err)
	}
	return nil
}

// applyPen pushes the current colour and width; they are read per draw call
// so changes made mid-gesture show up on the next segment.
func (d *Surface) applyPen() {
	d.canvas.SetStrokeColor(d.settings.Color)
	d.canvas.SetLineWidth(float64(d.settings.StrokeWidth))
}

func (d *Surface) resetStroke() {
	d.stroke = stroke{}
}

// SetColor stores a "#RRGGBB" colour for subsequent draw calls.
func (d *Surface) SetColor(value string) error {
	c, err := state.ParseColor(value)
	if err != nil {
		return err
	}
	d.settings.Color = c
	return nil
}

// SetStrokeWidth stores a width in [state.MinStrokeWidth, state.MaxStrokeWidth]
// and applies it to the raster at once. Out-of-range widths are rejected.
func (d *Surface) SetStrokeWidth(value int) error {
	if !state.ValidStrokeWidth(value) {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			ErrWidthOutOfRange, value, state.MinStrokeWidth, state.MaxStrokeWidth)
	}
	d.settings.StrokeWidth = value
	if d.canvas != nil {
		d.canvas.SetLineWidth(float64(value))
	}
	return nil
}

// SetMode selects the mode for the next gesture. A gesture already in flight
// keeps the mode it started with.
func (d *Surface) SetMode(mode state.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %v", state.ErrInvalidMode, mode)
	}
	d.settings.Mode = mode
	return nil
}

// Clear wipes the whole buffer and drops any line anchor. The drawing flag
// and the settings are left alone.
func (d *Surface) Clear() error {
	if d.canvas == nil {
		return ErrNotInitialized
	}
	d.canvas.ClearRect(0, 0, d.canvas.Width(), d.canvas.Height())
	d.stroke.start = nil
	d.stroke.snapshot = nil
	logging.Logger().Debug("surface cleared", "session", d.clock.Session())
	return nil
}
