package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// NewWindow lays out the toolbar, the board and its status line. Closing the
// window releases the board's drawing surface.
func NewWindow(a fyne.App, board *BoardWidget) fyne.Window {
	myWindow := a.NewWindow("Local Sketch")

	// Create the toolbar and pass it a reference to the board
	toolbar := NewToolbar(board)

	// The board keeps its fixed raster size, centred in the window
	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, container.NewCenter(board))

	myWindow.SetContent(content)
	myWindow.SetOnClosed(board.Close)
	return myWindow
}

func RunApp(a fyne.App, board *BoardWidget) {
	NewWindow(a, board).ShowAndRun()
}
