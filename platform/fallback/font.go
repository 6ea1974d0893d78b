package fallback

import (
	"sync/atomic"

	"github.com/gogpu/textrun/platform"
)

// Font is a Source at a specific size. It implements platform.Font.
//
// Fonts are reference counted. A new Font starts with one reference held
// by whoever created it. Retaining a released font or releasing it past
// zero panics, since either means a lifetime bug in the caller.
type Font struct {
	source *Source
	size   float64
	refs   atomic.Int32
	live   *atomic.Int64
}

var _ platform.Font = (*Font)(nil)

func newFont(source *Source, size float64, live *atomic.Int64) *Font {
	f := &Font{source: source, size: size, live: live}
	f.refs.Store(1)
	live.Add(1)
	return f
}

// PostScriptName implements platform.Font.
func (f *Font) PostScriptName() (string, error) {
	if f.refs.Load() <= 0 {
		return "", ErrReleasedFont
	}
	return f.source.Name(), nil
}

// Size implements platform.Font.
func (f *Font) Size() float64 {
	return f.size
}

// Source returns the font's source.
func (f *Font) Source() *Source {
	return f.source
}

// FontData returns the raw font file. Shaping engines use it to build their
// own font objects.
func (f *Font) FontData() []byte {
	return f.source.Data()
}

// Retain implements platform.Font.
func (f *Font) Retain() {
	if f.refs.Add(1) <= 1 {
		panic("fallback: retain of released font")
	}
}

// Release implements platform.Font.
func (f *Font) Release() {
	switch n := f.refs.Add(-1); {
	case n == 0:
		f.live.Add(-1)
	case n < 0:
		panic("fallback: font released too many times")
	}
}

// RefCount returns the current reference count.
func (f *Font) RefCount() int {
	return int(f.refs.Load())
}
