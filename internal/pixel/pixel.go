// Package pixel reads and formats screen colors.
package pixel

import (
	"fmt"
	"log/slog"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/mouse"
)

// Color is a GDI COLORREF: 0x00BBGGRR.
type Color uint32

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
}

func (c Color) R() uint8 { return uint8(c) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c >> 16) }

// SwapRB exchanges the red and blue bytes.
func SwapRB(c Color) Color {
	return Color(uint32(c.B()) | uint32(c.G())<<8 | uint32(c.R())<<16)
}

// Format renders c as "0xBBGGRR", or as "0xRRGGBB" when rgb is set.
func Format(c Color, rgb bool) string {
	if rgb {
		c = SwapRB(c)
	}

	return fmt.Sprintf("0x%06X", uint32(c)&0xFFFFFF)
}

// Source reads a pixel at screen coordinates.
type Source interface {
	PixelAt(x, y int) (Color, error)
	ForegroundOrigin() (x, y int, ok bool)
}

// Sampler reads pixels honoring a coordinate mode.
type Sampler struct {
	src  Source
	mode mouse.CoordMode
	log  logger.LoggerInterface
}

// NewSampler creates a Sampler. In mouse.CoordWindow mode coordinates are
// relative to the foreground window.
func NewSampler(src Source, mode mouse.CoordMode, log logger.LoggerInterface) *Sampler {
	return &Sampler{src: src, mode: mode, log: log}
}

// At returns the color at (x, y).
func (s *Sampler) At(x, y int) (Color, error) {
	if s.mode == mouse.CoordWindow {
		if wx, wy, ok := s.src.ForegroundOrigin(); ok {
			x += wx
			y += wy
		}
	}

	c, err := s.src.PixelAt(x, y)
	if err != nil {
		return 0, fmt.Errorf("failed to read pixel at %d,%d: %w", x, y, err)
	}

	s.log.Trace("Read pixel", slog.Int("x", x), slog.Int("y", y), slog.String("color", Format(c, false)))

	return c, nil
}
