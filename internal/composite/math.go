package composite

// mulDiv255 multiplies two bytes and divides by 255 with round-to-nearest.
//
// Formula: t = a*b + 128; (t + (t >> 8)) >> 8
//
// Exact for every byte pair; a fully covered source always drives the
// destination to zero.
func mulDiv255(a, b byte) byte {
	t := uint16(a)*uint16(b) + 128
	return byte((t + t>>8) >> 8)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
