package textrun

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"

	"github.com/gogpu/textrun/platform"
	"github.com/gogpu/textrun/shape"
)

const mockKey platform.AttributeKey = "MockFont"

var errMock = errors.New("mock failure")

// mockFont counts references on its service.
type mockFont struct {
	name    string
	nameErr error
	svc     *mockService
}

func (f *mockFont) PostScriptName() (string, error) { return f.name, f.nameErr }
func (f *mockFont) Size() float64                   { return 12 }
func (f *mockFont) Retain()                         { f.svc.live++ }

func (f *mockFont) Release() {
	f.svc.live--
	if f.svc.live < 0 {
		panic("mockFont: reference count below zero")
	}
}

// mockRun describes one run a mockService frame reports.
type mockRun struct {
	rng     platform.Range
	font    string
	noFont  bool
	nameErr bool
	foreign bool
}

// mockService is a layout service with scripted output. live counts font
// references not yet released and frames counts frames not yet closed.
type mockService struct {
	keyErr         error
	emptyKey       bool
	failSystemFont bool
	failFrame      bool
	nilFrame       bool

	// layout returns the lines of runs for text. When nil the whole text
	// is one run in the system font.
	layout func(text string, units int) [][]mockRun

	live       int
	frames     int
	frameCalls int
	bounds     platform.Rect
	lastText   string
}

func (s *mockService) FontAttributeKey() (platform.AttributeKey, error) {
	if s.keyErr != nil {
		return "", s.keyErr
	}
	if s.emptyKey {
		return "", nil
	}
	return mockKey, nil
}

func (s *mockService) SystemFont(float64) (platform.Font, error) {
	if s.failSystemFont {
		return nil, errMock
	}
	s.live++
	return &mockFont{name: "System", svc: s}, nil
}

func (s *mockService) NewFrame(str *platform.AttributedString, bounds platform.Rect) (platform.Frame, error) {
	s.frameCalls++
	s.bounds = bounds
	s.lastText = str.String()
	if s.failFrame {
		return nil, errMock
	}
	if s.nilFrame {
		return nil, nil
	}

	layout := s.layout
	if layout == nil {
		layout = func(_ string, units int) [][]mockRun {
			return [][]mockRun{{{rng: platform.Range{Location: 0, Length: units}, font: "System"}}}
		}
	}

	fr := &mockFrame{svc: s, lease: platform.NewLease()}
	for _, lineRuns := range layout(str.String(), str.Len()) {
		ln := &mockLine{}
		for _, mr := range lineRuns {
			attrs := platform.Attributes{}
			switch {
			case mr.foreign:
				attrs[mockKey] = mr.font
			case !mr.noFont:
				f := &mockFont{name: mr.font, svc: s}
				if mr.nameErr {
					f.nameErr = errMock
				}
				f.Retain()
				fr.held = append(fr.held, f)
				attrs[mockKey] = platform.Borrow(f, fr.lease)
			}
			ln.runs = append(ln.runs, &mockGlyphRun{rng: mr.rng, attrs: attrs})
		}
		fr.lines = append(fr.lines, ln)
	}
	s.frames++
	return fr, nil
}

type mockFrame struct {
	svc    *mockService
	lease  *platform.Lease
	lines  []platform.Line
	held   []*mockFont
	closed bool
}

func (f *mockFrame) Lines() []platform.Line { return f.lines }

func (f *mockFrame) Close() error {
	if f.closed {
		panic("mockFrame: closed twice")
	}
	f.closed = true
	f.lease.End()
	for _, font := range f.held {
		font.Release()
	}
	f.svc.frames--
	return nil
}

type mockLine struct {
	runs []platform.GlyphRun
}

func (l *mockLine) Runs() []platform.GlyphRun { return l.runs }

type mockGlyphRun struct {
	rng   platform.Range
	attrs platform.Attributes
}

func (r *mockGlyphRun) StringRange() platform.Range     { return r.rng }
func (r *mockGlyphRun) Attributes() platform.Attributes { return r.attrs }

// scriptLayout splits text into a "Latin" run and a "CJK" run wherever the
// script of consecutive runes changes.
func scriptLayout(text string, _ int) [][]mockRun {
	var runs []mockRun
	unit := 0
	for _, r := range text {
		name := "Latin"
		if r >= 0x2E80 {
			name = "CJK"
		}
		n := platform.UnitLen(string(r))
		if len(runs) > 0 && runs[len(runs)-1].font == name {
			runs[len(runs)-1].rng.Length += n
		} else {
			runs = append(runs, mockRun{rng: platform.Range{Location: unit, Length: n}, font: name})
		}
		unit += n
	}
	return [][]mockRun{runs}
}

// mockEngine is a shaping engine producing one glyph per rune.
type mockEngine struct {
	failFont   bool
	failBuffer bool
	zeroGlyphs bool

	fonts   int
	buffers int
	shaped  int
}

type mockShapeFont struct{ e *mockEngine }

func (f *mockShapeFont) Destroy() { f.e.fonts-- }

func (e *mockEngine) NewFont(platform.Font) (shape.Font, error) {
	if e.failFont {
		return nil, errMock
	}
	e.fonts++
	return &mockShapeFont{e: e}, nil
}

func (e *mockEngine) NewBuffer() (shape.Buffer, error) {
	if e.failBuffer {
		return nil, errMock
	}
	e.buffers++
	return &mockBuffer{e: e}, nil
}

type mockBuffer struct {
	e    *mockEngine
	text string
}

func (b *mockBuffer) AddUTF8(text string) error     { b.text += text; return nil }
func (b *mockBuffer) SetDirection(di.Direction)     {}
func (b *mockBuffer) SetScript(language.Script)     {}
func (b *mockBuffer) SetLanguage(language.Language) {}
func (b *mockBuffer) Shape(shape.Font) error        { b.e.shaped++; return nil }
func (b *mockBuffer) Destroy()                      { b.e.buffers-- }

func (b *mockBuffer) GlyphInfos() []shape.GlyphInfo {
	if b.e.zeroGlyphs {
		return nil
	}
	infos := make([]shape.GlyphInfo, 0, utf8.RuneCountInString(b.text))
	for i, r := range b.text {
		infos = append(infos, shape.GlyphInfo{GlyphID: uint32(r), Cluster: uint32(i)})
	}
	return infos
}

func (b *mockBuffer) GlyphPositions() []shape.GlyphPosition {
	if b.e.zeroGlyphs {
		return nil
	}
	pos := make([]shape.GlyphPosition, utf8.RuneCountInString(b.text))
	for i := range pos {
		pos[i].XAdvance = 10 << 6
	}
	return pos
}

func newTestSplitter(t *testing.T, svc *mockService, engine *mockEngine, opts ...Option) *Splitter {
	t.Helper()

	s, err := New(svc, engine, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		assertBalanced(t, svc, engine)
	})
	return s
}

// assertBalanced checks that every resource acquired from svc and engine
// has been released.
func assertBalanced(t *testing.T, svc *mockService, engine *mockEngine) {
	t.Helper()

	if svc.live != 0 {
		t.Errorf("font references outstanding = %d, want 0", svc.live)
	}
	if svc.frames != 0 {
		t.Errorf("open frames = %d, want 0", svc.frames)
	}
	if engine.fonts != 0 {
		t.Errorf("shaping fonts outstanding = %d, want 0", engine.fonts)
	}
	if engine.buffers != 0 {
		t.Errorf("shaping buffers outstanding = %d, want 0", engine.buffers)
	}
}
