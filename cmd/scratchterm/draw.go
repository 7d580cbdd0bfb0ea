package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/gogpu/scratchcard/internal/preview"
)

const halfBlock = '▀'

// frame is the last composed card, kept until the surface or opacity
// changes.
type frame struct {
	img     *image.NRGBA
	version uint64
	opacity float64
}

func (f *frame) stale(version uint64, opacity float64) bool {
	return f.img == nil || f.version != version || f.opacity != opacity
}

// render recomposes the card when needed and reports whether it did.
func (h *host) render(f *frame, content preview.Content) (bool, error) {
	s := h.card.Surface()
	if s == nil {
		return false, nil
	}
	v, op := s.Version(), h.card.Opacity()
	if !f.stale(v, op) {
		return false, nil
	}
	img, err := preview.Render(h.card, content)
	if err != nil {
		return false, err
	}
	f.img, f.version, f.opacity = img, v, op
	return true, nil
}

// pixel samples the frame at the centre of a half block.
func pixel(img *image.NRGBA, l layout, col, half int) tcell.Color {
	b := img.Bounds()
	x := b.Min.X + (2*col+1)*b.Dx()/(2*l.width)
	y := b.Min.Y + (2*half+1)*b.Dy()/(4*l.height)
	c := img.NRGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// draw paints the card as half blocks and the status rows below it.
func draw(screen tcell.Screen, h *host, f *frame) {
	screen.Clear()
	l := h.layout
	if f.img != nil {
		for row := 0; row < l.height; row++ {
			for col := 0; col < l.width; col++ {
				top := pixel(f.img, l, col, row*2)
				bottom := pixel(f.img, l, col, row*2+1)
				style := tcell.StyleDefault.Foreground(top).Background(bottom)
				screen.SetContent(l.x+col, l.y+row, halfBlock, nil, style)
			}
		}
	}

	w, _ := screen.Size()
	for i, line := range h.status() {
		drawCentered(screen, w, l.y+l.height+1+i, line, tcell.StyleDefault)
	}
	screen.Show()
}

func drawCentered(screen tcell.Screen, w, y int, s string, style tcell.Style) {
	x := max((w-runewidth.StringWidth(s))/2, 0)
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
