package main

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/message"

	"github.com/gogpu/scratchcard"
	"github.com/gogpu/scratchcard/internal/preview"
	"github.com/gogpu/scratchcard/internal/promo"
)

var backdrop = color.NRGBA{0x1F, 0x29, 0x37, 0xFF}

// statusSize is the status text size in layout units.
const statusSize = 18

type game struct {
	card    *scratchcard.Card
	router  *router
	round   *promo.Round
	printer *message.Printer
	content preview.Content
	dpr     float64

	// Screen size and card origin in device pixels, set by Layout.
	screenW, screenH int
	originX, originY int

	cardImg *ebiten.Image
	pix     []byte
	version uint64
	opacity float64

	face     *text.GoTextFace
	touchBuf []ebiten.TouchID
	touches  []touch
}

func newGame(cfg scratchcard.Config, content preview.Content, round *promo.Round, printer *message.Printer, dpr float64) (*game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	g := &game{
		round:   round,
		printer: printer,
		content: content,
		dpr:     dpr,
		opacity: -1,
		face:    &text.GoTextFace{Source: src, Size: statusSize * dpr},
	}
	g.router = newRouter(g.cardRect)
	g.card, err = scratchcard.New(cfg,
		scratchcard.WithDevicePixelRatio(dpr),
		scratchcard.WithPlacement(scratchcard.PlacementFunc(g.cardRect)),
		scratchcard.WithEventBinder(g.router),
		scratchcard.WithOnProgress(round.Progress),
		scratchcard.WithOnComplete(round.Reveal),
	)
	if err != nil {
		return nil, err
	}
	g.router.card = g.card
	return g, nil
}

// cardRect is where the card sits on the logical screen, in device pixels.
func (g *game) cardRect() scratchcard.Rect {
	s := g.card.Surface()
	if s == nil {
		return scratchcard.Rect{}
	}
	w, h := s.PixelSize()
	return scratchcard.Rect{X: float64(g.originX), Y: float64(g.originY), Width: float64(w), Height: float64(h)}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.round.Revealed && (inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeySpace)) {
		g.round.Reset()
		if err := g.card.Reset(); err != nil {
			return err
		}
	}

	g.card.Update()
	g.touchBuf = ebiten.AppendTouchIDs(g.touchBuf[:0])
	in := poll(g.touchBuf, g.touches)
	g.touches = in.touches
	g.router.step(in)
	return g.refresh()
}

// refresh recomposes the card texture when the surface or its opacity
// changed since the last upload.
func (g *game) refresh() error {
	s := g.card.Surface()
	if s == nil {
		return nil
	}
	v, op := s.Version(), g.card.Opacity()
	if g.cardImg != nil && v == g.version && op == g.opacity {
		return nil
	}
	img, err := preview.Render(g.card, g.content)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if g.cardImg == nil || g.cardImg.Bounds().Size() != b.Size() {
		if g.cardImg != nil {
			g.cardImg.Deallocate()
		}
		g.cardImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.pix = premultiply(g.pix, img)
	g.cardImg.WritePixels(g.pix)
	g.version, g.opacity = v, op
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backdrop)
	if g.cardImg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(g.originX), float64(g.originY))
		screen.DrawImage(g.cardImg, op)
	}

	lines := g.round.Status(g.printer)
	if g.round.Revealed {
		lines = append(lines, "[R] "+g.printer.Sprintf(promo.MsgPlayAgain))
	}
	r := g.cardRect()
	y := r.Y + r.Height + g.face.Size
	for _, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(g.screenW)/2, y)
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, printable(line), g.face, op)
		y += g.face.Size * 1.4
	}
}

// Layout keeps the logical screen at device resolution so the surface is
// drawn one texel per device pixel.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW = int(float64(outsideWidth) * g.dpr)
	g.screenH = int(float64(outsideHeight) * g.dpr)
	if s := g.card.Surface(); s != nil {
		w, h := s.PixelSize()
		g.originX = (g.screenW - w) / 2
		g.originY = max((g.screenH-h)/2-int(2*g.face.Size), 0)
	}
	return g.screenW, g.screenH
}

// premultiply converts straight-alpha pixels into the premultiplied
// layout WritePixels expects, reusing dst when it is large enough.
func premultiply(dst []byte, img *image.NRGBA) []byte {
	b := img.Bounds()
	n := b.Dx() * b.Dy() * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx()*4; x += 4 {
			a := uint32(row[x+3])
			dst[i+0] = byte((uint32(row[x+0])*a + 127) / 255)
			dst[i+1] = byte((uint32(row[x+1])*a + 127) / 255)
			dst[i+2] = byte((uint32(row[x+2])*a + 127) / 255)
			dst[i+3] = byte(a)
			i += 4
		}
	}
	return dst
}

// printable drops pictographs the status font has no glyphs for.
func printable(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.So, r) || unicode.Is(unicode.Variation_Selector, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
