// Package preview flattens a card into a single image: the content the
// card hides, with the scratch surface laid over it at the card's current
// opacity. Headless hosts write it to disk; windowed hosts upload it.
package preview

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/internal/composite"
)

// Content is what sits under the scratch surface.
type Content struct {
	// Background fills the content area. Empty means DefaultBackground.
	Background string

	// Image, when set, is scaled to fill the content area.
	Image image.Image

	// Label is drawn centred when there is no image.
	Label string

	// LabelColor is the label colour. Empty means DefaultLabelColor.
	LabelColor string
}

// Default content colours, taken from the promo card's gold gradient.
const (
	DefaultBackground = "#FACC15"
	DefaultLabelColor = "#FFFFFF"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func labelFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// Render composes c at its current opacity. It returns nil for a closed card.
func Render(c *scratchcard.Card, content Content) (*image.NRGBA, error) {
	s := c.Surface()
	if s == nil {
		return nil, nil
	}
	pm, err := Underlay(s, content)
	if err != nil {
		return nil, err
	}
	Overlay(pm, s, c.Opacity())
	return toNRGBA(pm), nil
}

// Underlay paints content into a pixmap the size of s's buffer.
func Underlay(s *scratchcard.Surface, content Content) (*gg.Pixmap, error) {
	w, h := s.PixelSize()
	pm := gg.NewPixmap(w, h)
	bg := content.Background
	if bg == "" {
		bg = DefaultBackground
	}
	pm.Clear(gg.Hex(bg))

	dc := gg.NewContext(w, h, gg.WithPixmap(pm))
	defer func() {
		_ = dc.Close()
	}()

	switch {
	case content.Image != nil:
		dc.DrawImageEx(gg.ImageBufFromImage(content.Image), gg.DrawImageOptions{
			DstWidth:  float64(w),
			DstHeight: float64(h),
		})
	case content.Label != "":
		src, err := labelFont()
		if err != nil {
			return nil, fmt.Errorf("preview: label font: %w", err)
		}
		fg := content.LabelColor
		if fg == "" {
			fg = DefaultLabelColor
		}
		dc.SetFont(src.Face(float64(h) / 6))
		dc.SetHexColor(fg)
		dc.DrawStringAnchored(content.Label, float64(w)/2, float64(h)/2, 0.5, 0.5)
	}
	return pm, nil
}

// Overlay lays s over pm at the given opacity in [0, 1].
func Overlay(pm *gg.Pixmap, s *scratchcard.Surface, opacity float64) {
	a := math.Round(math.Max(0, math.Min(1, opacity)) * 255)
	if a == 0 {
		return
	}
	composite.SourceOver(pm.Data(), s.Image().Pix, byte(a))
}

func toNRGBA(pm *gg.Pixmap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, pm.Width(), pm.Height()))
	copy(img.Pix, pm.Data())
	return img
}
