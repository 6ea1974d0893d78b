// Command textrun prints the font runs of a string and, optionally, the
// glyphs each run shapes to.
//
// Usage:
//
//	textrun [-size 16] [-shape] [-font file.ttf ...] [-lang en] [-v] text...
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textrun"
	"github.com/gogpu/textrun/platform/fallback"
	"github.com/gogpu/textrun/shape/gotext"
)

// fontList collects repeated -font flags.
type fontList []string

func (f *fontList) String() string { return strings.Join(*f, ",") }

func (f *fontList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var fonts fontList
	var (
		size    = flag.Float64("size", 16, "font size in points")
		doShape = flag.Bool("shape", false, "shape each run and print its glyphs")
		lang    = flag.String("lang", "en", "language tag used for shaping")
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Var(&fonts, "font", "fallback font file (repeatable)")
	flag.Parse()

	if *verbose {
		textrun.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		flag.Usage()
		os.Exit(2)
	}

	system, err := fallback.NewSource(goregular.TTF)
	if err != nil {
		log.Fatalf("Failed to load system font: %v", err)
	}
	fallbacks := make([]*fallback.Source, 0, len(fonts))
	for _, path := range fonts {
		src, err := fallback.NewSourceFromFile(path)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", path, err)
		}
		fallbacks = append(fallbacks, src)
	}

	service, err := fallback.NewService(system, fallback.WithFallback(fallbacks...))
	if err != nil {
		log.Fatalf("Failed to create layout service: %v", err)
	}
	splitter, err := textrun.New(service, gotext.New(), textrun.WithLanguage(language.NewLanguage(*lang)))
	if err != nil {
		log.Fatalf("Failed to create splitter: %v", err)
	}

	if !*doShape {
		runs, err := splitter.SplitIntoRuns(text, *size)
		if err != nil {
			log.Fatalf("Failed to split: %v", err)
		}
		for _, r := range runs {
			fmt.Println(r)
		}
		return
	}

	results, err := splitter.SplitAndShape(text, *size)
	if err != nil {
		log.Fatalf("Failed to shape: %v", err)
	}
	for _, r := range results {
		fmt.Println(r.Run)
		if !r.OK() {
			fmt.Printf("  shaping failed: %v\n", r.Err)
			continue
		}
		printGlyphs(r.Shaping)
	}
}

func printGlyphs(s *textrun.ShapingResult) {
	fmt.Printf("  %d glyphs, advance %s\n", s.GlyphCount, fixed.Int26_6(s.Advance()))
	for i := 0; i < s.GlyphCount; i++ {
		fmt.Printf("  glyph %-5d cluster %-3d x %-8s y %s\n",
			s.GlyphIDs[i], s.Clusters[i],
			fixed.Int26_6(s.XAdvances[i]), fixed.Int26_6(s.YAdvances[i]))
	}
}
