// Package composite implements the Porter-Duff operators a scratch surface
// needs, applied to straight (non-premultiplied) RGBA8 spans laid out the
// same way as gg.Pixmap data: 4 bytes per pixel, R, G, B, A.
//
// Three operators are provided:
//   - DestinationOut erases: the destination keeps what the source does not cover.
//   - SourceAtop paints a texture onto the cover without growing its alpha.
//   - SourceOver lays a (fading) surface over the content for previews.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package composite

// Op identifies a compositing operator.
type Op uint8

const (
	// OpSourceOver is ordinary painting: Sa' over Da.
	OpSourceOver Op = iota

	// OpDestinationOut: Da' = Da * (1 - Sa). Colour channels untouched.
	OpDestinationOut

	// OpSourceAtop: Da' = Da, C' = Sc*Sa + Dc*(1 - Sa) where Da > 0.
	OpSourceAtop
)

// String returns the canvas-style name of the operator.
func (o Op) String() string {
	switch o {
	case OpSourceOver:
		return "source-over"
	case OpDestinationOut:
		return "destination-out"
	case OpSourceAtop:
		return "source-atop"
	default:
		return "unknown"
	}
}

// DestinationOut removes source coverage from dst.
// Both spans are RGBA8; the shorter one bounds the work.
func DestinationOut(dst, src []byte) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		sa := src[i+3]
		if sa == 0 {
			continue
		}
		dst[i+3] = mulDiv255(dst[i+3], 255-sa)
	}
}

// SourceAtop composites src onto dst only where dst is already opaque,
// leaving dst alpha unchanged. Transparent destination pixels stay
// transparent, which is what keeps scratched areas clear when a texture
// arrives late.
func SourceAtop(dst, src []byte) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		sa := src[i+3]
		if sa == 0 || dst[i+3] == 0 {
			continue
		}
		inv := 255 - sa
		dst[i+0] = addClamp(mulDiv255(src[i+0], sa), mulDiv255(dst[i+0], inv))
		dst[i+1] = addClamp(mulDiv255(src[i+1], sa), mulDiv255(dst[i+1], inv))
		dst[i+2] = addClamp(mulDiv255(src[i+2], sa), mulDiv255(dst[i+2], inv))
	}
}

// SourceOver paints src over dst with its alpha scaled by opacity.
// Colours are straight, so the result is renormalised by the output alpha.
func SourceOver(dst, src []byte, opacity byte) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		sa := mulDiv255(src[i+3], opacity)
		switch sa {
		case 0:
			continue
		case 255:
			copy(dst[i:i+3], src[i:i+3])
			dst[i+3] = 255
			continue
		}
		dw := uint32(mulDiv255(dst[i+3], 255-sa))
		oa := uint32(sa) + dw
		for c := 0; c < 3; c++ {
			v := (uint32(src[i+c])*uint32(sa) + uint32(dst[i+c])*dw + oa/2) / oa
			dst[i+c] = byte(min(v, 255))
		}
		dst[i+3] = byte(oa)
	}
}
