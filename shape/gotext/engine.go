// Package gotext implements shape.Engine with go-text/typesetting's
// HarfBuzz port.
//
// Platform fonts are accepted when they expose their font file through
// FontData, as fonts from platform/fallback do. Parsed fonts are cached by
// their data so each font file is parsed once per Engine.
package gotext

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/textrun/platform"
	"github.com/gogpu/textrun/shape"
)

// ErrUnsupportedFont is returned for platform fonts that do not expose
// their font data.
var ErrUnsupportedFont = errors.New("gotext: platform font does not expose font data")

// DataFont is a platform font backed by an in-memory font file.
type DataFont interface {
	platform.Font
	FontData() []byte
}

// Engine implements shape.Engine.
//
// Engine is safe for concurrent use. It caches parsed font.Font objects
// (which are read-only) and creates a font.Face per NewFont call, since
// font.Face is NOT safe for concurrent use.
type Engine struct {
	// mu protects the font cache.
	mu        sync.RWMutex
	fontCache map[*byte]*font.Font
}

var _ shape.Engine = (*Engine)(nil)

// New creates an Engine.
func New() *Engine {
	return &Engine{fontCache: make(map[*byte]*font.Font)}
}

// NewFont implements shape.Engine.
func (e *Engine) NewFont(f platform.Font) (shape.Font, error) {
	df, ok := f.(DataFont)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFont, f)
	}
	data := df.FontData()
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrUnsupportedFont)
	}

	parsed, err := e.getOrCreateFont(data)
	if err != nil {
		return nil, err
	}
	return &hbFont{face: font.NewFace(parsed), size: f.Size()}, nil
}

// NewBuffer implements shape.Engine.
func (e *Engine) NewBuffer() (shape.Buffer, error) {
	return newBuffer(), nil
}

// getOrCreateFont returns a cached font.Font for data, parsing it on the
// first request.
func (e *Engine) getOrCreateFont(data []byte) (*font.Font, error) {
	key := &data[0]

	e.mu.RLock()
	if f, ok := e.fontCache[key]; ok {
		e.mu.RUnlock()
		return f, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if f, ok := e.fontCache[key]; ok {
		return f, nil
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gotext: failed to parse font: %w", err)
	}

	e.fontCache[key] = face.Font
	return face.Font, nil
}

// ClearCache removes all cached parsed fonts.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fontCache = make(map[*byte]*font.Font)
}

// cacheLen returns the number of cached fonts.
func (e *Engine) cacheLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.fontCache)
}

// hbFont implements shape.Font.
type hbFont struct {
	face *font.Face
	size float64
}

// Destroy implements shape.Font.
func (f *hbFont) Destroy() {
	f.face = nil
}
