package orbitgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex converts a 0xRRGGBB literal to an opaque color.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

var White = RGB(0xFF, 0xFF, 0xFF)

// MulScalar scales the color channels by s, clamped to 0..1.
func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Modulate multiplies two colors channel by channel.
func (c Color) Modulate(o Color) Color {
	mul := func(a, b uint8) uint8 {
		return uint8((uint32(a) * uint32(b)) / 255)
	}
	return Color{R: mul(c.R, o.R), G: mul(c.G, o.G), B: mul(c.B, o.B), A: c.A}
}

// Shade scales each channel by the matching light component (0..1 each).
func (c Color) Shade(l Vec3) Color {
	ch := func(v uint8, s Scalar) uint8 {
		return uint8(Scalar(v) * Clamp01(s))
	}
	return Color{R: ch(c.R, l.X), G: ch(c.G, l.Y), B: ch(c.B, l.Z), A: c.A}
}

// Vec3 returns the color channels as 0..1 components.
func (c Color) Vec3() Vec3 {
	return V3(Scalar(c.R)/255, Scalar(c.G)/255, Scalar(c.B)/255)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }
