package fallback

import (
	"fmt"
	"sync"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gogpu/textrun/platform"
)

// frame implements platform.Frame.
// The frame holds one reference to every font its runs point at.
type frame struct {
	service *Service
	lease   *platform.Lease
	lines   []platform.Line
	fonts   map[fontKey]*Font

	closeOnce sync.Once
}

type fontKey struct {
	source *Source
	size   float64
}

type line struct {
	runs []platform.GlyphRun
}

// Runs implements platform.Line.
func (l *line) Runs() []platform.GlyphRun { return l.runs }

type glyphRun struct {
	rng   platform.Range
	attrs platform.Attributes
}

// StringRange implements platform.GlyphRun.
func (r *glyphRun) StringRange() platform.Range { return r.rng }

// Attributes implements platform.GlyphRun.
func (r *glyphRun) Attributes() platform.Attributes { return r.attrs }

// pendingRun is a run being built for one line.
type pendingRun struct {
	start  int
	length int
	source *Source
	size   float64
	level  int
}

func newFrame(s *Service) *frame {
	return &frame{
		service: s,
		lease:   platform.NewLease(),
		fonts:   make(map[fontKey]*Font),
	}
}

// Lines implements platform.Frame.
func (f *frame) Lines() []platform.Line {
	return f.lines
}

// Close implements platform.Frame.
func (f *frame) Close() error {
	f.closeOnce.Do(func() {
		f.lease.End()
		for _, font := range f.fonts {
			font.Release()
		}
		f.fonts = nil
		f.lines = nil
	})
	return nil
}

// layout splits str into lines and runs.
func (f *frame) layout(str *platform.AttributedString) error {
	unit := 0
	for _, text := range splitLines(str.String()) {
		ln, err := f.layoutLine(str, text, unit)
		if err != nil {
			return err
		}
		f.lines = append(f.lines, ln)
		unit += platform.UnitLen(text)
	}
	return nil
}

func (f *frame) layoutLine(str *platform.AttributedString, text string, unit int) (*line, error) {
	runes := []rune(text)
	content := trimTerminator(text)
	contentLen := utf8.RuneCountInString(content)
	levels := bidiLevels(content, len(runes))

	var (
		pending []pendingRun
		cur     *pendingRun
	)

	for i, r := range runes {
		requested, size, err := f.requestedSource(str, unit)
		if err != nil {
			return nil, err
		}

		if i >= contentLen && i > 0 {
			// The terminator stays at the level of the character before it.
			levels[i] = levels[i-1]
		}
		level := levels[i]

		src := f.service.pickSource(r, requested, cur)
		if cur == nil || cur.source != src || cur.size != size || cur.level != level {
			pending = append(pending, pendingRun{start: unit, source: src, size: size, level: level})
			cur = &pending[len(pending)-1]
		}

		n := utf16.RuneLen(r)
		cur.length += n
		unit += n
	}

	ln := &line{runs: make([]platform.GlyphRun, 0, len(pending))}
	for _, p := range pending {
		font := f.fontFor(p.source, p.size, str, p.start)
		ln.runs = append(ln.runs, &glyphRun{
			rng: platform.Range{Location: p.start, Length: p.length},
			attrs: platform.Attributes{
				FontAttribute:  platform.Borrow(font, f.lease),
				LevelAttribute: p.level,
			},
		})
	}
	return ln, nil
}

// requestedSource returns the source and size the attributed string asks
// for at unit.
func (f *frame) requestedSource(str *platform.AttributedString, unit int) (*Source, float64, error) {
	v, ok := str.Value(FontAttribute, unit)
	if !ok {
		return f.service.system, f.service.defaultSize, nil
	}
	font, ok := v.(*Font)
	if !ok || font == nil {
		return nil, 0, fmt.Errorf("%w: %T", ErrForeignFont, v)
	}
	return font.source, font.size, nil
}

// fontFor returns the frame's font for source at size, creating it on
// first use. The attributed font itself is reused when it matches.
func (f *frame) fontFor(source *Source, size float64, str *platform.AttributedString, unit int) *Font {
	key := fontKey{source: source, size: size}
	if font, ok := f.fonts[key]; ok {
		return font
	}

	var font *Font
	if v, ok := str.Value(FontAttribute, unit); ok {
		if attributed, ok := v.(*Font); ok && attributed.source == source && attributed.size == size {
			attributed.Retain()
			font = attributed
		}
	}
	if font == nil {
		font = newFont(source, size, &f.service.live)
	}
	f.fonts[key] = font
	return font
}

// pickSource chooses the source that draws r.
func (s *Service) pickSource(r rune, requested *Source, cur *pendingRun) *Source {
	if cur != nil && sticksToPrevious(r) {
		return cur.source
	}
	if requested.HasGlyph(r) {
		return requested
	}
	if cur != nil && cur.source.HasGlyph(r) {
		return cur.source
	}
	for _, fb := range s.fallbacks {
		if fb.HasGlyph(r) {
			return fb
		}
	}
	if requested != s.system && s.system.HasGlyph(r) {
		return s.system
	}
	// Nobody has it; the requested font draws its .notdef glyph.
	return requested
}

// sticksToPrevious reports whether r must be drawn with the font of the
// character before it. Splitting there would break a cluster.
func sticksToPrevious(r rune) bool {
	switch {
	case isLineTerminator(r):
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // emoji skin tone modifiers
		return true
	case r >= 0xE0020 && r <= 0xE007F: // emoji tag sequence
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc,
		unicode.Variation_Selector, unicode.Join_Control)
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// splitLines splits text after each hard line break. Terminators stay on
// the line they end; "\r\n" counts as one.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		end := i + size
		if isLineTerminator(r) {
			if r == '\r' && end < len(text) && text[end] == '\n' {
				end++
			}
			lines = append(lines, text[start:end])
			start = end
		}
		i = end
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// trimTerminator removes the line break ending text, if any.
func trimTerminator(text string) string {
	if len(text) >= 2 && text[len(text)-2:] == "\r\n" {
		return text[:len(text)-2]
	}
	r, size := utf8.DecodeLastRuneInString(text)
	if size > 0 && isLineTerminator(r) {
		return text[:len(text)-size]
	}
	return text
}
