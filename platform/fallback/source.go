package fallback

import (
	"fmt"
	"os"
	"unicode"

	"golang.org/x/image/font/sfnt"
)

// Source is a parsed font file. One Source creates Font instances at any
// size. Source is safe for concurrent use.
// Source must not be copied after creation (enforced by copyCheck).
type Source struct {
	// addr points to the Source itself for copy detection.
	addr *Source

	data     []byte
	font     *sfnt.Font
	name     string
	coverage []*unicode.RangeTable
}

// SourceOption configures Source creation.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	coverage []*unicode.RangeTable
	name     string
}

// WithCoverage restricts the characters the source claims to those in
// tables, on top of the font's own character map. It works like a CSS
// unicode-range descriptor.
func WithCoverage(tables ...*unicode.RangeTable) SourceOption {
	return func(c *sourceConfig) {
		c.coverage = append(c.coverage, tables...)
	}
}

// WithName overrides the PostScript name read from the font.
func WithName(name string) SourceOption {
	return func(c *sourceConfig) {
		c.name = name
	}
}

// NewSource parses TrueType or OpenType data.
// The data slice is copied internally and can be reused after this call.
func NewSource(data []byte, opts ...SourceOption) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	var config sourceConfig
	for _, opt := range opts {
		opt(&config)
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	f, err := sfnt.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("fallback: failed to parse font: %w", err)
	}

	name := config.name
	if name == "" {
		name = extractPostScriptName(f)
	}
	if name == "" {
		return nil, ErrUnnamedFont
	}

	s := &Source{
		data:     dataCopy,
		font:     f,
		name:     name,
		coverage: config.coverage,
	}
	s.addr = s
	return s, nil
}

// NewSourceFromFile loads a Source from a font file path.
func NewSourceFromFile(path string, opts ...SourceOption) (*Source, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fallback: failed to read font file: %w", err)
	}
	return NewSource(data, opts...)
}

// Name returns the PostScript name.
func (s *Source) Name() string {
	s.copyCheck()
	return s.name
}

// Data returns the raw font data. The slice must not be modified.
func (s *Source) Data() []byte {
	s.copyCheck()
	return s.data
}

// HasGlyph reports whether the source claims r.
func (s *Source) HasGlyph(r rune) bool {
	s.copyCheck()
	if len(s.coverage) > 0 && !unicode.IsOneOf(s.coverage, r) {
		return false
	}
	var buf sfnt.Buffer
	gid, err := s.font.GlyphIndex(&buf, r)
	return err == nil && gid != 0
}

// copyCheck panics if Source was copied by value.
func (s *Source) copyCheck() {
	if s.addr != s {
		panic("fallback: Source must not be copied by value")
	}
}

// extractPostScriptName reads the PostScript name, falling back to the
// full name with spaces removed.
func extractPostScriptName(f *sfnt.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDPostScript); err == nil && name != "" {
		return name
	}
	if full, err := f.Name(&buf, sfnt.NameIDFull); err == nil && full != "" {
		out := make([]rune, 0, len(full))
		for _, r := range full {
			if !unicode.IsSpace(r) {
				out = append(out, r)
			}
		}
		return string(out)
	}
	return ""
}
