package shape

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"

	"github.com/gogpu/textrun/platform"
)

// Engine creates the objects a shaping call needs.
// Objects returned by an Engine are not safe for concurrent use.
type Engine interface {
	// NewFont builds an engine font from a platform font. The engine must
	// not keep f past the returned Font's Destroy.
	NewFont(f platform.Font) (Font, error)

	// NewBuffer creates an empty shaping buffer.
	NewBuffer() (Buffer, error)
}

// Font is an engine-side font object.
type Font interface {
	Destroy()
}

// Buffer holds text before shaping and glyphs after it.
type Buffer interface {
	// AddUTF8 appends text to the buffer.
	AddUTF8(text string) error

	SetDirection(d di.Direction)
	SetScript(s language.Script)
	SetLanguage(l language.Language)

	// Shape replaces the buffer's text with glyphs, using default features.
	Shape(f Font) error

	// GlyphInfos returns glyph ids and clusters, or nil before Shape.
	GlyphInfos() []GlyphInfo

	// GlyphPositions returns glyph advances and offsets, or nil before Shape.
	GlyphPositions() []GlyphPosition

	Destroy()
}

// GlyphInfo identifies one output glyph.
type GlyphInfo struct {
	// GlyphID is the glyph index in the font.
	GlyphID uint32

	// Cluster is the UTF-8 byte offset in the buffer text of the first
	// character the glyph was shaped from.
	Cluster uint32
}

// GlyphPosition places one output glyph. Values are 26.6 fixed-point
// pixels.
type GlyphPosition struct {
	XAdvance int32
	YAdvance int32
	XOffset  int32
	YOffset  int32
}
