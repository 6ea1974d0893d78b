package textrun

import (
	"fmt"
	"math"

	"github.com/gogpu/textrun/platform"
	"github.com/gogpu/textrun/shape"
)

// Splitter splits text into font runs and shapes them.
//
// A Splitter holds no per-call state and is safe for concurrent use when
// its service and engine are.
type Splitter struct {
	service platform.Service
	fontKey platform.AttributeKey
	adapter *shape.Adapter
	bounds  platform.Rect
}

// New creates a Splitter. The service's font attribute key is resolved
// here, once; if it is unavailable New fails with ErrFontAttributeKey.
func New(service platform.Service, engine shape.Engine, opts ...Option) (*Splitter, error) {
	if service == nil {
		return nil, ErrNilService
	}
	if engine == nil {
		return nil, ErrNilEngine
	}

	config := defaultSplitterConfig()
	for _, opt := range opts {
		opt(&config)
	}

	key, err := service.FontAttributeKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontAttributeKey, err)
	}
	if key == "" {
		return nil, ErrFontAttributeKey
	}

	return &Splitter{
		service: service,
		fontKey: key,
		adapter: shape.NewAdapter(engine, config.shapingOpts...),
		bounds:  config.bounds,
	}, nil
}

// SplitIntoRuns returns the font runs of text at size, in document order.
//
// A layout failure yields no runs and no error. The only error is
// ErrInvalidFontSize.
func (s *Splitter) SplitIntoRuns(text string, size float64) ([]Run, error) {
	collected, index, err := s.split(text, size)
	if err != nil {
		return nil, err
	}
	defer releaseRuns(collected)

	runs := make([]Run, 0, len(collected))
	for _, cr := range collected {
		runs = append(runs, s.toRun(index, cr))
	}
	return runs, nil
}

// SplitAndShape splits text into runs and shapes each one. The result has
// one entry per run, in run order; a run that could not be shaped has a nil
// Shaping field.
func (s *Splitter) SplitAndShape(text string, size float64) ([]Result, error) {
	collected, index, err := s.split(text, size)
	if err != nil {
		return nil, err
	}
	defer releaseRuns(collected)

	log := Logger()
	results := make([]Result, 0, len(collected))
	for _, cr := range collected {
		run := s.toRun(index, cr)
		shaped, err := s.adapter.Shape(run.Text, run.FontName, cr.font)
		if err != nil {
			log.Debug("textrun: shaping failed", "run", run.String(), "err", err)
		}
		results = append(results, Result{Run: run, Shaping: shaped, Err: err})
	}
	return results, nil
}

// split builds and collects the frame for text. The frame is closed before
// split returns; the collected runs hold their own font references.
func (s *Splitter) split(text string, size float64) ([]collectedRun, unitIndex, error) {
	if !validSize(size) {
		return nil, unitIndex{}, fmt.Errorf("%w: %v", ErrInvalidFontSize, size)
	}
	if text == "" {
		return nil, unitIndex{}, nil
	}

	index := newUnitIndex(text)

	frame, err := s.buildFrame(text, size)
	if err != nil {
		Logger().Warn("textrun: layout failed", "size", size, "err", err)
		return nil, index, nil
	}
	defer func() {
		if err := frame.Close(); err != nil {
			Logger().Warn("textrun: closing frame", "err", err)
		}
	}()

	return collectRuns(frame, s.fontKey, index.Len()), index, nil
}

func (s *Splitter) toRun(index unitIndex, cr collectedRun) Run {
	return Run{
		Text:     index.slice(cr.rng.Location, cr.rng.Length),
		FontName: cr.name,
		Start:    cr.rng.Location,
		Length:   cr.rng.Length,
	}
}

func validSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 0)
}
