// Package shape turns a single font run into glyph data.
//
// The Adapter drives an Engine through a fixed sequence: bind the font,
// create a buffer, load the text, shape, and copy the glyphs out. Every
// resource acquired along the way is released before Shape returns,
// whether it succeeds or not.
package shape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"

	"github.com/gogpu/textrun/platform"
)

// Result is the glyph data for one run. The four slices have GlyphCount
// entries each; index i across them describes one glyph.
type Result struct {
	RunText  string
	FontName string

	GlyphCount int
	GlyphIDs   []uint32

	// Clusters holds UTF-8 byte offsets into RunText.
	Clusters []uint32

	// XAdvances and YAdvances are 26.6 fixed-point pixels.
	XAdvances []int32
	YAdvances []int32
}

// Advance returns the total horizontal advance in 26.6 fixed-point pixels.
func (r *Result) Advance() int32 {
	var sum int32
	for _, a := range r.XAdvances {
		sum += a
	}
	return sum
}

// Option configures an Adapter.
type Option func(*adapterConfig)

type adapterConfig struct {
	language language.Language
}

// WithLanguage sets the language tag passed to the engine. The default is
// English.
func WithLanguage(lang language.Language) Option {
	return func(c *adapterConfig) {
		c.language = lang
	}
}

// Adapter shapes runs with an Engine.
// An Adapter holds no per-call state and may be shared.
type Adapter struct {
	engine   Engine
	language language.Language
}

// NewAdapter creates an Adapter for engine.
func NewAdapter(engine Engine, opts ...Option) *Adapter {
	config := adapterConfig{language: language.NewLanguage("en")}
	for _, opt := range opts {
		opt(&config)
	}
	return &Adapter{engine: engine, language: config.language}
}

// Shape shapes text with font and returns its glyphs.
//
// Shape takes ownership of font and releases it before returning. On
// failure the error is an *Error wrapping one of the package sentinels and
// no partial result is returned.
func (a *Adapter) Shape(text, fontName string, font *platform.OwnedFont) (*Result, error) {
	defer font.Release()

	state := StateStart
	fail := func(err error) (*Result, error) {
		return nil, &Error{State: state, Err: err}
	}

	pf := font.Font()
	if pf == nil {
		return fail(ErrNilFont)
	}

	hbFont, err := a.engine.NewFont(pf)
	if err != nil || hbFont == nil {
		return fail(joinCause(ErrFontUnavailable, err))
	}
	defer hbFont.Destroy()
	state = StateFontBound

	buf, err := a.engine.NewBuffer()
	if err != nil || buf == nil {
		return fail(joinCause(ErrBufferUnavailable, err))
	}
	defer buf.Destroy()
	state = StateBufferReady

	if strings.IndexByte(text, 0) >= 0 || !utf8.ValidString(text) {
		return fail(ErrEncoding)
	}
	if err := buf.AddUTF8(text); err != nil {
		return fail(joinCause(ErrEncoding, err))
	}
	state = StateTextLoaded

	buf.SetDirection(di.DirectionLTR)
	buf.SetScript(ScriptForFont(fontName))
	buf.SetLanguage(a.language)
	if err := buf.Shape(hbFont); err != nil {
		return fail(joinCause(ErrNoGlyphs, err))
	}
	state = StateShaped

	infos := buf.GlyphInfos()
	positions := buf.GlyphPositions()
	if infos == nil || positions == nil || len(infos) == 0 || len(infos) != len(positions) {
		return fail(ErrNoGlyphs)
	}

	n := len(infos)
	res := &Result{
		RunText:    text,
		FontName:   fontName,
		GlyphCount: n,
		GlyphIDs:   make([]uint32, n),
		Clusters:   make([]uint32, n),
		XAdvances:  make([]int32, n),
		YAdvances:  make([]int32, n),
	}
	for i := range infos {
		res.GlyphIDs[i] = infos[i].GlyphID
		res.Clusters[i] = infos[i].Cluster
		res.XAdvances[i] = positions[i].XAdvance
		res.YAdvances[i] = positions[i].YAdvance
	}
	return res, nil
}

// joinCause wraps sentinel with the engine's own error, if any.
func joinCause(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
