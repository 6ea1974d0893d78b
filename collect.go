package textrun

import (
	"github.com/gogpu/textrun/platform"
)

// collectedRun is a run read out of a frame together with an owned font
// reference that stays valid after the frame closes.
type collectedRun struct {
	rng  platform.Range
	name string
	font *platform.OwnedFont
}

// collectRuns walks frame in line and run order. Runs with a bad range, a
// missing font or an unreadable font name are dropped. Every returned run
// holds a font reference the caller must release.
func collectRuns(frame platform.Frame, key platform.AttributeKey, totalUnits int) []collectedRun {
	log := Logger()
	var runs []collectedRun

	for li, line := range frame.Lines() {
		if line == nil {
			continue
		}
		for ri, gr := range line.Runs() {
			if gr == nil {
				continue
			}
			rng := gr.StringRange()
			if !rng.Within(totalUnits) || rng.Length == 0 {
				log.Debug("textrun: dropped run", "line", li, "run", ri,
					"reason", "range", "location", rng.Location, "length", rng.Length, "units", totalUnits)
				continue
			}

			borrowed, ok := gr.Attributes().Font(key)
			if !ok {
				log.Debug("textrun: dropped run", "line", li, "run", ri, "reason", "no font")
				continue
			}
			owned, err := borrowed.Extend()
			if err != nil {
				log.Debug("textrun: dropped run", "line", li, "run", ri, "reason", "extend", "err", err)
				continue
			}

			name, err := owned.PostScriptName()
			if err != nil || name == "" {
				owned.Release()
				log.Debug("textrun: dropped run", "line", li, "run", ri, "reason", "font name", "err", err)
				continue
			}

			runs = append(runs, collectedRun{rng: rng, name: name, font: owned})
		}
	}
	return runs
}

// releaseRuns drops every font reference still held by runs.
func releaseRuns(runs []collectedRun) {
	for i := range runs {
		runs[i].font.Release()
	}
}
