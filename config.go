package scratchcard

import (
	"errors"
	"fmt"
	"math"
)

// Defaults match the stand-alone card used on the promo page.
const (
	DefaultWidth         = 300
	DefaultHeight        = 300
	DefaultFinishPercent = 50.0
	DefaultBrushSize     = 20.0
	DefaultCoverColor    = "#E0E0E0"
)

// Sentinel errors returned by Config.Validate, always wrapped with detail.
var (
	ErrInvalidSize          = errors.New("scratchcard: width and height must be positive")
	ErrInvalidFinishPercent = errors.New("scratchcard: finish percent must be within [0, 100]")
	ErrInvalidBrushSize     = errors.New("scratchcard: brush size must be positive")
	ErrInvalidZone          = errors.New("scratchcard: check zone must have finite, non-negative size")
)

// Zone is a rectangle in layout units.
type Zone struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether the zone covers no area.
func (z Zone) Empty() bool {
	return z.Width <= 0 || z.Height <= 0
}

// Scale returns the zone multiplied by k, used to move from layout units
// into device pixels.
func (z Zone) Scale(k float64) Zone {
	return Zone{X: z.X * k, Y: z.Y * k, Width: z.Width * k, Height: z.Height * k}
}

// Cover describes how the scratch layer is painted before any erasing.
type Cover struct {
	// Color is a hex colour ("#RGB", "#RRGGBB", "#RRGGBBAA"). Empty means
	// DefaultCoverColor.
	Color string

	// Texture is an optional image source (file path or http(s) URL)
	// composited over the colour once it has loaded.
	Texture string
}

// Content is what the host renders underneath the scratch layer.
// The engine never draws it; it travels with the config so hosts can.
type Content struct {
	// Image is an image source. When empty the host draws its own content.
	Image string

	// Label is host text shown when no image is set.
	Label string
}

// Config describes one scratch card. A Card copies it at construction.
type Config struct {
	// Width and Height are the surface size in layout units.
	Width, Height int

	// FinishPercent is the cleared share, in percent, that reveals the card.
	FinishPercent float64

	// BrushSize is the erase disc radius in layout units.
	BrushSize float64

	Cover Cover

	// CheckZone restricts coverage sampling to a sub-rectangle.
	// Nil samples the whole surface.
	CheckZone *Zone

	// FadeOnComplete fades the cover out after completion.
	FadeOnComplete bool

	Content Content
}

// DefaultConfig returns the configuration of the stand-alone promo card.
func DefaultConfig() Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		FinishPercent:  DefaultFinishPercent,
		BrushSize:      DefaultBrushSize,
		Cover:          Cover{Color: DefaultCoverColor},
		FadeOnComplete: true,
	}
}

// Validate checks that c can back a surface.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if math.IsNaN(c.FinishPercent) || c.FinishPercent < 0 || c.FinishPercent > 100 {
		return fmt.Errorf("%w: got %v", ErrInvalidFinishPercent, c.FinishPercent)
	}
	if math.IsNaN(c.BrushSize) || math.IsInf(c.BrushSize, 0) || c.BrushSize <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidBrushSize, c.BrushSize)
	}
	if z := c.CheckZone; z != nil {
		for _, v := range []float64{z.X, z.Y, z.Width, z.Height} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: got %+v", ErrInvalidZone, *z)
			}
		}
		if z.Width < 0 || z.Height < 0 {
			return fmt.Errorf("%w: got %+v", ErrInvalidZone, *z)
		}
	}
	return nil
}

// coverColor returns the configured cover colour or the default.
func (c Config) coverColor() string {
	if c.Cover.Color == "" {
		return DefaultCoverColor
	}
	return c.Cover.Color
}

// sameSurface reports whether a and b produce the same painted surface.
// Any difference in size or cover forces a new surface and resets progress.
func sameSurface(a, b Config) bool {
	return a.Width == b.Width &&
		a.Height == b.Height &&
		a.coverColor() == b.coverColor() &&
		a.Cover.Texture == b.Cover.Texture
}
