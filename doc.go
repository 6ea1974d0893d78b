// Package textrun splits text into font runs and shapes each run.
//
// # Overview
//
// A layout service decides which font draws each part of a string. When
// the requested font lacks a character, the service substitutes a fallback
// font, so one string can end up as several runs. textrun asks the service
// for those runs and shapes every run with the font the service chose.
//
// # Quick Start
//
//	source, _ := fallback.NewSource(goregular.TTF)
//	service, _ := fallback.NewService(source, fallback.WithFallback(cjk))
//
//	s, err := textrun.New(service, gotext.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := s.SplitAndShape("Hello 世界", 16)
//	for _, r := range results {
//	    if !r.OK() {
//	        continue // shaping failed for this run
//	    }
//	    fmt.Println(r.Run.FontName, r.Shaping.GlyphIDs)
//	}
//
// # Architecture
//
// The pipeline runs synchronously:
//   - frame building: system font, attributed string, frame over an unbounded area
//   - run collection: validated UTF-16 ranges and owned font references
//   - index mapping: UTF-16 ranges back to substrings of the source
//   - shaping: one shape.Adapter call per run
//
// The layout service and shaping engine are interfaces (packages platform
// and shape). platform/fallback and shape/gotext are pure Go
// implementations of them.
//
// # Resources
//
// Every frame, font reference and shaping buffer acquired during a call is
// released before the call returns, on success and on failure.
package textrun
