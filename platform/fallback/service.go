package fallback

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gogpu/textrun/platform"
)

// FontAttribute is the attribute key fonts are stored under.
const FontAttribute platform.AttributeKey = "NSFont"

// LevelAttribute holds the bidi embedding level of a run as an int.
const LevelAttribute platform.AttributeKey = "BidiLevel"

// defaultFontSize is used for text that carries no font attribute.
const defaultFontSize = 12

// Service is a pure Go layout service with per-character font fallback.
//
// The system source is used for SystemFont and for text without a font
// attribute. Characters the requested font cannot draw are assigned to
// the first fallback source that can.
//
// Service is safe for concurrent use. Frames and fonts it returns are not.
type Service struct {
	system      *Source
	fallbacks   []*Source
	defaultSize float64

	// live counts fonts with a non-zero reference count.
	live atomic.Int64
}

var _ platform.Service = (*Service)(nil)

// Option configures a Service.
type Option func(*serviceConfig)

type serviceConfig struct {
	fallbacks   []*Source
	defaultSize float64
}

// WithFallback appends fallback sources, tried in order.
func WithFallback(sources ...*Source) Option {
	return func(c *serviceConfig) {
		for _, s := range sources {
			if s != nil {
				c.fallbacks = append(c.fallbacks, s)
			}
		}
	}
}

// WithDefaultSize sets the size used for text without a font attribute.
func WithDefaultSize(size float64) Option {
	return func(c *serviceConfig) {
		c.defaultSize = size
	}
}

// NewService creates a service with system as its default font.
func NewService(system *Source, opts ...Option) (*Service, error) {
	if system == nil {
		return nil, ErrNilSource
	}
	config := serviceConfig{defaultSize: defaultFontSize}
	for _, opt := range opts {
		opt(&config)
	}
	if !validSize(config.defaultSize) {
		return nil, fmt.Errorf("%w: default size %v", ErrInvalidSize, config.defaultSize)
	}
	return &Service{
		system:      system,
		fallbacks:   config.fallbacks,
		defaultSize: config.defaultSize,
	}, nil
}

// FontAttributeKey implements platform.Service.
func (s *Service) FontAttributeKey() (platform.AttributeKey, error) {
	return FontAttribute, nil
}

// SystemFont implements platform.Service.
func (s *Service) SystemFont(size float64) (platform.Font, error) {
	if !validSize(size) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return newFont(s.system, size, &s.live), nil
}

// NewFont returns a font for source at size with one reference owned by the
// caller.
func (s *Service) NewFont(source *Source, size float64) (*Font, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if !validSize(size) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return newFont(source, size, &s.live), nil
}

// LiveFonts returns the number of fonts created by the service that still
// hold references. It is zero once every frame is closed and every
// reference handed out is released.
func (s *Service) LiveFonts() int {
	return int(s.live.Load())
}

// NewFrame implements platform.Service.
func (s *Service) NewFrame(str *platform.AttributedString, bounds platform.Rect) (platform.Frame, error) {
	if bounds.Empty() {
		return nil, ErrEmptyBounds
	}

	f := newFrame(s)
	if str == nil {
		return f, nil
	}
	if err := f.layout(str); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func validSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 0)
}
