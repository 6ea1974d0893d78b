package gotext

import (
	"errors"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textrun/shape"
)

var errDestroyed = errors.New("gotext: buffer already destroyed")

// buffer implements shape.Buffer on top of shaping.HarfbuzzShaper.
// HarfbuzzShaper has internal mutable state and is NOT safe for concurrent
// use, so each buffer owns one.
type buffer struct {
	text   string
	dir    di.Direction
	script language.Script
	lang   language.Language

	shaper shaping.HarfbuzzShaper

	infos     []shape.GlyphInfo
	positions []shape.GlyphPosition
	destroyed bool
}

var _ shape.Buffer = (*buffer)(nil)

func newBuffer() *buffer {
	return &buffer{
		dir:    di.DirectionLTR,
		script: language.Latin,
		lang:   language.NewLanguage("en"),
	}
}

// AddUTF8 implements shape.Buffer.
func (b *buffer) AddUTF8(text string) error {
	if b.destroyed {
		return errDestroyed
	}
	b.text += text
	return nil
}

// SetDirection implements shape.Buffer.
func (b *buffer) SetDirection(d di.Direction) { b.dir = d }

// SetScript implements shape.Buffer.
func (b *buffer) SetScript(s language.Script) { b.script = s }

// SetLanguage implements shape.Buffer.
func (b *buffer) SetLanguage(l language.Language) { b.lang = l }

// Shape implements shape.Buffer.
func (b *buffer) Shape(f shape.Font) error {
	if b.destroyed {
		return errDestroyed
	}
	hf, ok := f.(*hbFont)
	if !ok || hf.face == nil {
		return fmt.Errorf("gotext: font %T not created by this engine", f)
	}

	runes := []rune(b.text)
	offsets := byteOffsets(b.text, len(runes))

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: b.dir,
		Face:      hf.face,
		Size:      floatToFixed(hf.size),
		Script:    b.script,
		Language:  b.lang,
	}
	output := b.shaper.Shape(input)

	b.infos = make([]shape.GlyphInfo, len(output.Glyphs))
	b.positions = make([]shape.GlyphPosition, len(output.Glyphs))
	for i, g := range output.Glyphs {
		cluster := 0
		if g.ClusterIndex >= 0 && g.ClusterIndex < len(offsets) {
			cluster = offsets[g.ClusterIndex]
		}
		b.infos[i] = shape.GlyphInfo{
			GlyphID: uint32(g.GlyphID),
			Cluster: uint32(cluster), //nolint:gosec // byte offsets of a Go string fit in uint32 for any shapeable run
		}
		b.positions[i] = shape.GlyphPosition{
			XAdvance: int32(g.XAdvance),
			YAdvance: int32(g.YAdvance),
			XOffset:  int32(g.XOffset),
			YOffset:  int32(g.YOffset),
		}
	}
	return nil
}

// GlyphInfos implements shape.Buffer.
func (b *buffer) GlyphInfos() []shape.GlyphInfo { return b.infos }

// GlyphPositions implements shape.Buffer.
func (b *buffer) GlyphPositions() []shape.GlyphPosition { return b.positions }

// Destroy implements shape.Buffer.
func (b *buffer) Destroy() {
	b.destroyed = true
	b.text = ""
	b.infos = nil
	b.positions = nil
}

// byteOffsets maps rune indices of s to UTF-8 byte offsets. The extra
// final entry is len(s).
func byteOffsets(s string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}
