package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"MyLocalSketch/internal/logging"
	"MyLocalSketch/internal/state"
)

// ErrInvalidWidth is returned for stroke width text that is not a number.
var ErrInvalidWidth = errors.New("invalid stroke width")

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	}
	return fmt.Sprintf("PointerKind(%d)", int(k))
}

// PointerEvent carries absolute screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float32
}

// Target receives normalized input. *drawing.Surface implements it.
type Target interface {
	BeginStroke(p state.Point) error
	ContinueStroke(p state.Point) error
	EndStroke(p state.Point) error
	SetColor(value string) error
	SetStrokeWidth(value int) error
	SetMode(mode state.Mode) error
	Clear() error
}

// Dispatcher maps raw events onto a Target. Coordinates are converted once,
// here, using the bounds reported at the time of each event.
type Dispatcher struct {
	target Target
	bounds func() Rect
}

func NewDispatcher(target Target, bounds func() Rect) *Dispatcher {
	return &Dispatcher{target: target, bounds: bounds}
}

func (d *Dispatcher) Pointer(ev PointerEvent) error {
	p := d.bounds().Local(ev.X, ev.Y)
	switch ev.Kind {
	case PointerDown:
		return d.target.BeginStroke(p)
	case PointerMove:
		return d.target.ContinueStroke(p)
	case PointerUp, PointerLeave:
		return d.target.EndStroke(p)
	}
	return fmt.Errorf("unknown pointer event %v", ev.Kind)
}

// ColorChanged handles a colour picker value. Surrounding blanks are dropped
// and a missing '#' is added; anything still malformed is rejected.
func (d *Dispatcher) ColorChanged(value string) error {
	v := strings.TrimSpace(value)
	if v != "" && !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	if _, err := state.ParseColor(v); err != nil {
		logging.Logger().Warn("color input rejected", "value", value)
		return err
	}
	return d.target.SetColor(v)
}

// WidthValue handles a range input. The value is rounded and clamped into
// the allowed width range before it reaches the surface.
func (d *Dispatcher) WidthValue(value float64) error {
	if math.IsNaN(value) {
		return fmt.Errorf("%w: NaN", ErrInvalidWidth)
	}
	w := state.ClampStrokeWidth(int(math.Round(max(min(value, math.MaxInt32), math.MinInt32))))
	return d.target.SetStrokeWidth(w)
}

// WidthText handles a typed width. Non-numeric text is rejected.
func (d *Dispatcher) WidthText(value string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		logging.Logger().Warn("width input rejected", "value", value)
		return fmt.Errorf("%w: %q", ErrInvalidWidth, value)
	}
	return d.WidthValue(f)
}

func (d *Dispatcher) UseFreehand() error {
	return d.target.SetMode(state.Freehand)
}

func (d *Dispatcher) UseLine() error {
	return d.target.SetMode(state.Line)
}

func (d *Dispatcher) Clear() error {
	return d.target.Clear()
}
