package platform

import "math"

// AttributeKey names an entry in a run's attribute set.
type AttributeKey string

// Attributes is the attribute set attached to a run.
// The font attribute holds a BorrowedFont.
type Attributes map[AttributeKey]any

// Font returns the borrowed font stored under key.
func (a Attributes) Font(key AttributeKey) (BorrowedFont, bool) {
	v, ok := a[key]
	if !ok {
		return BorrowedFont{}, false
	}
	bf, ok := v.(BorrowedFont)
	if !ok || bf.font == nil {
		return BorrowedFont{}, false
	}
	return bf, true
}

// Range is a span of UTF-16 code units.
type Range struct {
	Location int
	Length   int
}

// End returns the first unit past the range.
func (r Range) End() int {
	return r.Location + r.Length
}

// Within reports whether r is non-negative and ends at or before n.
func (r Range) Within(n int) bool {
	return r.Location >= 0 && r.Length >= 0 && r.Location <= n-r.Length
}

// Rect is the area a frame is laid out in.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Unbounded is a rectangle large enough that no line wraps for width.
var Unbounded = Rect{Width: math.MaxFloat64, Height: math.MaxFloat64}

// Empty reports whether the rectangle has no usable area.
func (r Rect) Empty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Service lays text out into frames.
type Service interface {
	// FontAttributeKey returns the key under which fonts are stored in
	// attribute sets. It is resolved once per client.
	FontAttributeKey() (AttributeKey, error)

	// SystemFont returns the default system font at size. The caller owns
	// the returned reference.
	SystemFont(size float64) (Font, error)

	// NewFrame lays out s inside bounds. The frame retains whatever it
	// needs from s; s may be closed once NewFrame returns.
	NewFrame(s *AttributedString, bounds Rect) (Frame, error)
}

// Frame is a laid-out block of text.
type Frame interface {
	// Lines returns the lines in document order.
	Lines() []Line

	// Close releases the frame. Fonts borrowed from its runs become invalid.
	Close() error
}

// Line is one laid-out line of a frame.
type Line interface {
	// Runs returns the glyph runs of the line in the service's order.
	Runs() []GlyphRun
}

// GlyphRun is a span of a line drawn with one set of attributes.
type GlyphRun interface {
	// StringRange returns the UTF-16 range of the source string.
	StringRange() Range

	// Attributes returns the run's attribute set.
	Attributes() Attributes
}
