package textrun

import (
	"github.com/go-text/typesetting/language"

	"github.com/gogpu/textrun/platform"
	"github.com/gogpu/textrun/shape"
)

// Option configures a Splitter.
type Option func(*splitterConfig)

// splitterConfig holds configuration for Splitter.
type splitterConfig struct {
	bounds      platform.Rect
	shapingOpts []shape.Option
}

// defaultSplitterConfig returns the default configuration.
func defaultSplitterConfig() splitterConfig {
	return splitterConfig{
		bounds: platform.Unbounded,
	}
}

// WithBounds sets the area frames are laid out in. The default is
// platform.Unbounded, so lines never wrap for width.
func WithBounds(r platform.Rect) Option {
	return func(c *splitterConfig) {
		c.bounds = r
	}
}

// WithLanguage sets the language tag used for shaping (default "en").
func WithLanguage(lang language.Language) Option {
	return func(c *splitterConfig) {
		c.shapingOpts = append(c.shapingOpts, shape.WithLanguage(lang))
	}
}
