package drawing

import "errors"

var (
	// ErrNotInitialized is returned by drawing operations before Attach.
	ErrNotInitialized  = errors.New("drawing surface not attached")
	ErrAlreadyAttached = errors.New("drawing surface already attached")
	ErrNilSurface      = errors.New("nil raster surface")
	ErrWidthOutOfRange = errors.New("stroke width out of range")
)
