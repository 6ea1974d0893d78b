package textrun

import (
	"fmt"

	"github.com/gogpu/textrun/shape"
)

// ShapingResult is the glyph data of one shaped run.
type ShapingResult = shape.Result

// Run is a contiguous span of text drawn with a single font.
// Start and Length are in UTF-16 code units of the source string.
type Run struct {
	Text     string
	FontName string
	Start    int
	Length   int
}

// End returns the first UTF-16 unit past the run.
func (r Run) End() int {
	return r.Start + r.Length
}

// String implements fmt.Stringer.
func (r Run) String() string {
	return fmt.Sprintf("[%d,%d) %s %q", r.Start, r.End(), r.FontName, r.Text)
}

// Result pairs a run with its shaping outcome.
//
// Shaping is nil when the run could not be shaped; Err then holds the
// reason, usually a *shape.Error.
type Result struct {
	Run     Run
	Shaping *ShapingResult
	Err     error
}

// OK reports whether the run was shaped.
func (r Result) OK() bool {
	return r.Shaping != nil
}
