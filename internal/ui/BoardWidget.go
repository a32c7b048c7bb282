package ui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"MyLocalSketch/internal/config"
	"MyLocalSketch/internal/drawing"
	"MyLocalSketch/internal/input"
	"MyLocalSketch/internal/logging"
	"MyLocalSketch/internal/raster"
	"MyLocalSketch/internal/state"
)

// BoardWidget hosts the drawing surface: it shows the raster buffer and
// feeds mouse events through the input dispatcher.
type BoardWidget struct {
	widget.BaseWidget

	canvas  *raster.Canvas
	surface *drawing.Surface
	input   *input.Dispatcher
	display *canvas.Raster
	status  *widget.Label

	// lastPos is the last absolute pointer position, used when the
	// pointer leaves the board.
	lastPos fyne.Position
	// origin returns the board's absolute top-left corner.
	origin func() fyne.Position
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(cfg config.Config) (*BoardWidget, error) {
	b := &BoardWidget{
		canvas:  raster.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height),
		surface: drawing.New(drawing.WithSettings(cfg.Settings())),
		status:  widget.NewLabel("Ready"),
	}
	b.origin = func() fyne.Position {
		return fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	}

	var target raster.Surface = b.canvas
	if cfg.Log.Trace {
		rec := raster.NewRecorder(b.canvas)
		rec.Passthrough = true
		rec.OnCall = func(c raster.Call) {
			logging.Logger().Debug("raster call", "call", c.String())
		}
		target = rec
	}
	if err := b.surface.Attach(target); err != nil {
		return nil, fmt.Errorf("attach drawing surface: %w", err)
	}
	b.input = input.NewDispatcher(b.surface, b.bounds)

	b.display = canvas.NewRaster(func(w, h int) image.Image {
		return b.canvas.Image()
	})
	b.display.SetMinSize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))

	b.ExtendBaseWidget(b)
	return b, nil
}

func (b *BoardWidget) bounds() input.Rect {
	pos := b.origin()
	size := b.Size()
	return input.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Settings returns the current drawing settings.
func (b *BoardWidget) Settings() state.Settings {
	return b.surface.Settings()
}

// StatusBar is the label the board reports problems on.
func (b *BoardWidget) StatusBar() *widget.Label {
	return b.status
}

func (b *BoardWidget) SetStatus(text string) {
	b.status.SetText(text)
}

func (b *BoardWidget) pointer(kind input.PointerKind, pos fyne.Position) {
	wasDrawing := b.surface.IsDrawing()
	b.lastPos = pos
	if err := b.input.Pointer(input.PointerEvent{Kind: kind, X: pos.X, Y: pos.Y}); err != nil {
		logging.Logger().Warn("pointer event failed", "event", kind, "err", err)
		b.SetStatus("Stroke did not render")
	}
	if wasDrawing || b.surface.IsDrawing() {
		b.display.Refresh()
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointer(input.PointerDown, e.AbsolutePosition)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointer(input.PointerUp, e.AbsolutePosition)
	}
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.pointer(input.PointerMove, e.AbsolutePosition)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

// MouseOut ends any gesture at the last position seen over the board.
func (b *BoardWidget) MouseOut() {
	b.pointer(input.PointerLeave, b.lastPos)
}

func (b *BoardWidget) SetColor(hex string) {
	if err := b.input.ColorChanged(hex); err != nil {
		b.SetStatus(fmt.Sprintf("Invalid color %q", hex))
		return
	}
	b.SetStatus("Color " + b.surface.Settings().Color)
}

func (b *BoardWidget) SetStrokeWidth(value float64) {
	if err := b.input.WidthValue(value); err != nil {
		logging.Logger().Warn("stroke width rejected", "value", value, "err", err)
		b.SetStatus("Invalid stroke width")
	}
}

func (b *BoardWidget) UseFreehand() {
	if err := b.input.UseFreehand(); err != nil {
		logging.Logger().Warn("mode change failed", "err", err)
	}
}

func (b *BoardWidget) UseLine() {
	if err := b.input.UseLine(); err != nil {
		logging.Logger().Warn("mode change failed", "err", err)
	}
}

// Clear wipes the board.
func (b *BoardWidget) Clear() {
	if err := b.input.Clear(); err != nil {
		logging.Logger().Warn("clear failed", "err", err)
		b.SetStatus("Clear failed")
		return
	}
	b.display.Refresh()
	b.SetStatus("Cleared")
}

// Close detaches the drawing surface and releases the raster buffer.
// It is safe to call more than once.
func (b *BoardWidget) Close() {
	if !b.surface.Attached() {
		return
	}
	if err := b.surface.Detach(); err != nil {
		logging.Logger().Warn("detach failed", "err", err)
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.display)
}
