package textrun

import (
	"unicode/utf16"
)

// unitIndex maps UTF-16 ranges reported by a layout service back onto the
// source string. The source is encoded once and sliced per run.
type unitIndex struct {
	units []uint16
}

func newUnitIndex(s string) unitIndex {
	return unitIndex{units: utf16.Encode([]rune(s))}
}

// Len returns the number of UTF-16 units in the source.
func (x unitIndex) Len() int {
	return len(x.units)
}

// slice returns the source text covering [start, start+length).
// It returns "" when the range is out of bounds or cuts a surrogate pair.
func (x unitIndex) slice(start, length int) string {
	if start < 0 || length < 0 || start > len(x.units)-length {
		return ""
	}
	if length == 0 {
		return ""
	}
	end := start + length
	if isLowSurrogate(x.units[start]) {
		return ""
	}
	if isHighSurrogate(x.units[end-1]) {
		return ""
	}
	return string(utf16.Decode(x.units[start:end]))
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u < 0xDC00 }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u < 0xE000 }
