package scratchcard

import "math"

// ClearedAlpha is the alpha below which a pixel counts as scratched off.
const ClearedAlpha = 128

// Coverage returns the percentage of cleared pixels in s, in [0, 100].
//
// When zone is non-nil only pixels inside it count, for both the cleared
// total and the denominator. The zone is in layout units and is scaled by
// the surface's device pixel ratio; a pixel (x, y) is inside when
// zone.X <= x < zone.X+zone.Width (same for y). A zone with no pixels in
// the buffer yields 0.
func Coverage(s *Surface, zone *Zone) float64 {
	pct, _ := coverage(s, zone)
	return pct
}

// coverage is Coverage plus the number of pixels sampled. A zero count
// means the zone was degenerate and the result must not complete a card.
func coverage(s *Surface, zone *Zone) (float64, int) {
	if s == nil {
		return 0, 0
	}
	w, h := s.PixelSize()
	x0, y0, x1, y1 := 0, 0, w, h
	if zone != nil {
		z := zone.Scale(s.dpr)
		x0, x1 = pixelEdge(z.X, w), pixelEdge(z.X+z.Width, w)
		y0, y1 = pixelEdge(z.Y, h), pixelEdge(z.Y+z.Height, h)
	}
	if x0 >= x1 || y0 >= y1 {
		return 0, 0
	}

	pix := s.pixels()
	cleared := 0
	for y := y0; y < y1; y++ {
		row := pix[(y*w+x0)*4 : (y*w+x1)*4]
		for i := 3; i < len(row); i += 4 {
			if row[i] < ClearedAlpha {
				cleared++
			}
		}
	}
	total := (x1 - x0) * (y1 - y0)
	return float64(cleared) / float64(total) * 100, total
}

// pixelEdge returns the first pixel index at or after v, clamped to
// [0, limit].
func pixelEdge(v float64, limit int) int {
	c := math.Ceil(v)
	switch {
	case c <= 0:
		return 0
	case c >= float64(limit):
		return limit
	default:
		return int(c)
	}
}
