package textrun

import (
	"errors"
	"fmt"

	"github.com/gogpu/textrun/platform"
)

// buildFrame lays text out with the system font at size over the whole
// string. The caller must close the returned frame.
func (s *Splitter) buildFrame(text string, size float64) (platform.Frame, error) {
	sf, err := s.service.SystemFont(size)
	if err != nil {
		return nil, fmt.Errorf("system font: %w", err)
	}
	font := platform.Adopt(sf)
	if font == nil {
		return nil, fmt.Errorf("system font: %w", platform.ErrNilFont)
	}
	defer font.Release()

	attr := platform.NewAttributedString(text)
	defer attr.Close()

	if err := attr.SetAttribute(platform.Range{Location: 0, Length: attr.Len()}, s.fontKey, font.Font()); err != nil {
		return nil, fmt.Errorf("apply font: %w", err)
	}

	frame, err := s.service.NewFrame(attr, s.bounds)
	if err != nil {
		return nil, fmt.Errorf("new frame: %w", err)
	}
	if frame == nil {
		return nil, errors.New("new frame: no frame returned")
	}
	return frame, nil
}
