package textrun

import "errors"

// Sentinel errors for textrun package.
var (
	// ErrInvalidFontSize is returned when the font size is not a finite
	// positive number.
	ErrInvalidFontSize = errors.New("textrun: font size must be finite and positive")

	// ErrFontAttributeKey is returned by New when the layout service cannot
	// provide its font attribute key.
	ErrFontAttributeKey = errors.New("textrun: font attribute key unavailable")

	// ErrNilService is returned by New when the layout service is nil.
	ErrNilService = errors.New("textrun: layout service is nil")

	// ErrNilEngine is returned by New when the shaping engine is nil.
	ErrNilEngine = errors.New("textrun: shaping engine is nil")
)
