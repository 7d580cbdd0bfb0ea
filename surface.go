package scratchcard

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/google/uuid"

	"github.com/gogpu/scratchcard/internal/composite"
)

// Surface is the erasable raster overlay of a card.
//
// The buffer is Width*dpr x Height*dpr device pixels of straight RGBA.
// It is painted once with the cover, then only ever loses alpha through
// erase strokes. Hosts read it through Image, AlphaAt and Version; only the
// owning Card writes to it.
type Surface struct {
	id     uuid.UUID
	width  int
	height int
	dpr    float64

	pixmap *gg.Pixmap
	mode   composite.Op
	stamp  *brushStamp

	version uint64
}

// newSurface allocates and paints a surface for cfg.
func newSurface(cfg Config, dpr float64) *Surface {
	pw := max(1, int(float64(cfg.Width)*dpr))
	ph := max(1, int(float64(cfg.Height)*dpr))

	s := &Surface{
		id:     uuid.New(),
		width:  cfg.Width,
		height: cfg.Height,
		dpr:    dpr,
		pixmap: gg.NewPixmap(pw, ph),
		mode:   composite.OpSourceOver,
	}
	s.pixmap.Clear(gg.Hex(cfg.coverColor()))
	s.mode = composite.OpDestinationOut
	s.version++

	Logger().Debug("scratchcard: surface allocated",
		"id", s.id, "width", pw, "height", ph, "dpr", dpr)
	return s
}

// ID returns the surface handle.
func (s *Surface) ID() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.id
}

// Size returns the surface size in layout units.
func (s *Surface) Size() (width, height int) {
	if s == nil {
		return 0, 0
	}
	return s.width, s.height
}

// PixelSize returns the buffer size in device pixels.
func (s *Surface) PixelSize() (width, height int) {
	if s == nil {
		return 0, 0
	}
	return s.pixmap.Width(), s.pixmap.Height()
}

// DevicePixelRatio returns the layout-to-pixel scale of the buffer.
func (s *Surface) DevicePixelRatio() float64 {
	if s == nil {
		return 1
	}
	return s.dpr
}

// Erasing reports whether strokes remove cover from the buffer.
func (s *Surface) Erasing() bool {
	return s != nil && s.mode == composite.OpDestinationOut
}

// Version increases every time the buffer changes.
// Hosts compare it between frames to skip re-uploading pixels.
func (s *Surface) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

// AlphaAt returns the alpha of the pixel at (x, y) in device pixels,
// or 0 outside the buffer.
func (s *Surface) AlphaAt(x, y int) uint8 {
	if s == nil {
		return 0
	}
	w, h := s.pixmap.Width(), s.pixmap.Height()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	return s.pixmap.Data()[(y*w+x)*4+3]
}

// Image returns a copy of the buffer.
func (s *Surface) Image() *image.NRGBA {
	if s == nil {
		return image.NewNRGBA(image.Rectangle{})
	}
	img := image.NewNRGBA(image.Rect(0, 0, s.pixmap.Width(), s.pixmap.Height()))
	copy(img.Pix, s.pixmap.Data())
	return img
}

// pixels returns the live buffer for read-only scans.
func (s *Surface) pixels() []uint8 {
	return s.pixmap.Data()
}

// erase removes a disc of the given radius centred at (x, y).
// Coordinates and radius are layout units; the buffer is pre-scaled by dpr.
func (s *Surface) erase(x, y, radius float64) {
	if s == nil || s.mode != composite.OpDestinationOut {
		return
	}
	r := radius * s.dpr
	if s.stamp == nil || s.stamp.radius != r {
		s.stamp.close()
		s.stamp = newBrushStamp(r)
	}

	ox, oy := s.stamp.render(x*s.dpr, y*s.dpr)

	w, h := s.pixmap.Width(), s.pixmap.Height()
	size := s.stamp.size
	x0, x1 := max(ox, 0), min(ox+size, w)
	if x0 >= x1 {
		return
	}
	dst := s.pixmap.Data()
	src := s.stamp.pixmap.Data()
	for j := 0; j < size; j++ {
		sy := oy + j
		if sy < 0 || sy >= h {
			continue
		}
		d := dst[(sy*w+x0)*4 : (sy*w+x1)*4]
		sp := src[(j*size+x0-ox)*4 : (j*size+x1-ox)*4]
		composite.DestinationOut(d, sp)
	}
	s.version++
}

// release frees the brush context. The buffer stays readable.
func (s *Surface) release() {
	if s == nil {
		return
	}
	s.stamp.close()
	s.stamp = nil
}

// applyTexture scales img over the whole buffer and composites it
// source-atop, so only still-covered pixels take the texture.
func (s *Surface) applyTexture(img image.Image) {
	if s == nil || img == nil {
		return
	}
	w, h := s.pixmap.Width(), s.pixmap.Height()
	layer := gg.NewPixmap(w, h)
	dc := gg.NewContext(w, h, gg.WithPixmap(layer))
	dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		DstWidth:  float64(w),
		DstHeight: float64(h),
	})
	_ = dc.Close()

	composite.SourceAtop(s.pixmap.Data(), layer.Data())
	s.version++
}

// brushStamp is a reusable anti-aliased disc. It is re-rasterised per
// stroke so sub-pixel positions keep their coverage.
type brushStamp struct {
	radius float64
	size   int
	pixmap *gg.Pixmap
	dc     *gg.Context
}

func newBrushStamp(radius float64) *brushStamp {
	size := int(math.Ceil(radius*2)) + 3
	pm := gg.NewPixmap(size, size)
	return &brushStamp{
		radius: radius,
		size:   size,
		pixmap: pm,
		dc:     gg.NewContext(size, size, gg.WithPixmap(pm)),
	}
}

func (b *brushStamp) close() {
	if b == nil || b.dc == nil {
		return
	}
	_ = b.dc.Close()
	b.dc = nil
}

// render draws the disc centred at (cx, cy) in buffer pixels and returns
// the buffer position of the stamp's top-left corner.
func (b *brushStamp) render(cx, cy float64) (ox, oy int) {
	ox = int(math.Floor(cx-b.radius)) - 1
	oy = int(math.Floor(cy-b.radius)) - 1

	b.pixmap.Clear(gg.Transparent)
	b.dc.SetRGBA(1, 1, 1, 1)
	b.dc.DrawCircle(cx-float64(ox), cy-float64(oy), b.radius)
	_ = b.dc.Fill()
	return ox, oy
}
