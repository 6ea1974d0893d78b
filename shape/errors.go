package shape

import "errors"

// Sentinel errors for shape package.
var (
	// ErrNilFont is returned when a run has no live font.
	ErrNilFont = errors.New("shape: nil font")

	// ErrFontUnavailable is returned when the engine cannot build a font.
	ErrFontUnavailable = errors.New("shape: cannot create shaping font")

	// ErrBufferUnavailable is returned when the engine cannot build a buffer.
	ErrBufferUnavailable = errors.New("shape: cannot create shaping buffer")

	// ErrEncoding is returned when the text contains NUL bytes or invalid
	// UTF-8.
	ErrEncoding = errors.New("shape: text cannot be encoded")

	// ErrNoGlyphs is returned when shaping produced no usable glyphs.
	// Some bitmap and emoji fonts end up here.
	ErrNoGlyphs = errors.New("shape: no glyphs")
)

// Error reports where in the shaping sequence a run failed.
type Error struct {
	// State is the last state reached before the failure.
	State State
	Err   error
}

func (e *Error) Error() string {
	return "shape: failed after " + e.State.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// State is a step of shaping a single run.
type State int

const (
	// StateStart is before anything is acquired.
	StateStart State = iota
	// StateFontBound means the engine font exists.
	StateFontBound
	// StateBufferReady means the buffer exists.
	StateBufferReady
	// StateTextLoaded means the text is in the buffer.
	StateTextLoaded
	// StateShaped means shaping ran.
	StateShaped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateFontBound:
		return "FontBound"
	case StateBufferReady:
		return "BufferReady"
	case StateTextLoaded:
		return "TextLoaded"
	case StateShaped:
		return "Shaped"
	default:
		return "Unknown"
	}
}
