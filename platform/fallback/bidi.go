package fallback

import "golang.org/x/text/unicode/bidi"

// bidiLevels returns one embedding level per rune of a line of n runes,
// computed over content (the line without its terminator). Levels are 0
// for left-to-right and 1 for right-to-left. Runes past content get 0.
//
// Runs are split where the level changes. They are not reordered.
func bidiLevels(content string, n int) []int {
	levels := make([]int, n)
	if content == "" {
		return levels
	}

	p := bidi.Paragraph{}
	if _, err := p.SetString(content, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return levels
	}

	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	// run.Pos() returns RUNE indices (start, end inclusive)
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := 0
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := max(start, 0); j <= end && j < n; j++ {
			levels[j] = level
		}
	}
	return levels
}
