package platform

import (
	"fmt"
	"unicode/utf16"
)

// AttributedString is a mutable string with attribute spans.
// Lengths and ranges are in UTF-16 code units.
//
// Font values set on the string are retained until Close.
type AttributedString struct {
	text  string
	units int
	spans []attributeSpan
}

type attributeSpan struct {
	r     Range
	key   AttributeKey
	value any
}

// NewAttributedString returns a string with no attributes.
func NewAttributedString(text string) *AttributedString {
	return &AttributedString{text: text, units: UnitLen(text)}
}

// UnitLen returns the length of s in UTF-16 code units.
func UnitLen(s string) int {
	n := 0
	for _, r := range s {
		// Invalid UTF-8 decodes to U+FFFD, a single unit.
		n += utf16.RuneLen(r)
	}
	return n
}

// String returns the text.
func (s *AttributedString) String() string {
	return s.text
}

// Len returns the UTF-16 length of the text.
func (s *AttributedString) Len() int {
	return s.units
}

// SetAttribute sets key to value over r. Later calls win where spans
// overlap. A Font value is retained.
func (s *AttributedString) SetAttribute(r Range, key AttributeKey, value any) error {
	if !r.Within(s.units) {
		return fmt.Errorf("%w: %d+%d of %d", ErrInvalidRange, r.Location, r.Length, s.units)
	}
	if r.Length == 0 {
		return nil
	}
	if value == nil {
		return fmt.Errorf("platform: nil value for attribute %q", key)
	}
	if f, ok := value.(Font); ok {
		f.Retain()
	}
	s.spans = append(s.spans, attributeSpan{r: r, key: key, value: value})
	return nil
}

// Value returns the value of key at the given unit offset.
func (s *AttributedString) Value(key AttributeKey, unit int) (any, bool) {
	for i := len(s.spans) - 1; i >= 0; i-- {
		sp := s.spans[i]
		if sp.key == key && unit >= sp.r.Location && unit < sp.r.End() {
			return sp.value, true
		}
	}
	return nil, false
}

// Close releases retained font values.
func (s *AttributedString) Close() {
	for _, sp := range s.spans {
		if f, ok := sp.value.(Font); ok {
			f.Release()
		}
	}
	s.spans = nil
}
