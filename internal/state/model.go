package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

const (
	DefaultColor       = "#000000"
	DefaultStrokeWidth = 2
	MinStrokeWidth     = 1
	MaxStrokeWidth     = 20
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidMode  = errors.New("invalid drawing mode")
)

// Point is a position in surface-local coordinates.
type Point struct{ X, Y float64 }

// Mode selects how a gesture is turned into pixels.
type Mode int

const (
	Freehand Mode = iota
	Line
)

func (m Mode) String() string {
	switch m {
	case Freehand:
		return "freehand"
	case Line:
		return "line"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == Freehand || m == Line
}

// ParseMode accepts "freehand" or "line" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freehand":
		return Freehand, nil
	case "line":
		return Line, nil
	}
	return Freehand, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Settings are the drawing settings that persist across strokes.
type Settings struct {
	Color       string
	StrokeWidth int
	Mode        Mode
}

func DefaultSettings() Settings {
	return Settings{
		Color:       DefaultColor,
		StrokeWidth: DefaultStrokeWidth,
		Mode:        Freehand,
	}
}

// ParseColor accepts exactly "#RRGGBB" and returns it lower-cased.
func ParseColor(s string) (string, error) {
	if len(s) != 7 || s[0] != '#' {
		return "", fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidColor, s)
	}
	if _, err := gg.ParseHex(s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return strings.ToLower(s), nil
}

func ValidStrokeWidth(w int) bool {
	return w >= MinStrokeWidth && w <= MaxStrokeWidth
}

func ClampStrokeWidth(w int) int {
	return min(max(w, MinStrokeWidth), MaxStrokeWidth)
}
