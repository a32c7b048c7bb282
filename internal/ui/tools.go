package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"

	"MyLocalSketch/internal/state"
)

const (
	modeFreehand = "Freehand"
	modeLine     = "Line"
)

// palette holds the swatch colours, black first.
var palette = []string{"#000000", "#ff0000", "#00ff00", "#0000ff", "#ffff00"}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(gg.Hex(s.Hex).Color())
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget) fyne.CanvasObject {
	settings := board.Settings()

	// --- Mode ---
	mode := widget.NewRadioGroup([]string{modeFreehand, modeLine}, nil)
	mode.Horizontal = true
	mode.Required = true
	if settings.Mode == state.Line {
		mode.SetSelected(modeLine)
	} else {
		mode.SetSelected(modeFreehand)
	}
	mode.OnChanged = func(selected string) {
		switch selected {
		case modeFreehand:
			board.UseFreehand()
		case modeLine:
			board.UseLine()
		}
	}

	// --- Color Palette ---
	hexEntry := widget.NewEntry()
	hexEntry.SetText(settings.Color)
	hexEntry.SetPlaceHolder("#rrggbb")
	hexEntry.OnSubmitted = func(value string) {
		board.SetColor(value)
		hexEntry.SetText(board.Settings().Color)
	}
	onColorTapped := func(hex string) {
		board.SetColor(hex)
		hexEntry.SetText(board.Settings().Color)
	}
	colorBox := container.NewHBox()
	for _, hex := range palette {
		colorBox.Add(newColorSwatch(hex, onColorTapped))
	}
	entryContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(100, 35)), hexEntry)

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(state.MinStrokeWidth, state.MaxStrokeWidth)
	strokeSlider.Step = 1
	strokeSlider.SetValue(float64(settings.StrokeWidth))
	strokeSlider.OnChanged = board.SetStrokeWidth
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	clearButton := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), board.Clear)

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Mode:"),
		mode,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		entryContainer,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
		clearButton,
	)
}
