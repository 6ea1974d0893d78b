package fallback

import "errors"

// Sentinel errors for fallback package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fallback: empty font data")

	// ErrUnnamedFont is returned when a font has neither a PostScript nor a
	// full name.
	ErrUnnamedFont = errors.New("fallback: font has no name")

	// ErrNilSource is returned when a service is created without a system
	// source.
	ErrNilSource = errors.New("fallback: system source is nil")

	// ErrInvalidSize is returned for non-positive or non-finite sizes.
	ErrInvalidSize = errors.New("fallback: invalid font size")

	// ErrForeignFont is returned when an attributed string carries a font
	// that was not created by this package.
	ErrForeignFont = errors.New("fallback: font not created by this service")

	// ErrReleasedFont is returned when a font is used after its last
	// reference was released.
	ErrReleasedFont = errors.New("fallback: font already released")

	// ErrEmptyBounds is returned when a frame is requested for an area with
	// no width or height.
	ErrEmptyBounds = errors.New("fallback: empty frame bounds")
)
