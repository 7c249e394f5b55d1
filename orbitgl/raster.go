package orbitgl

import "image"

type rasterVert struct {
	x, y int
	z    float32

	// Perspective-correct attributes, already divided by clip w.
	invW float32
	u, v float32
}

type shader struct {
	flat Color

	tint      Color
	lit       bool
	amb, diff Vec3

	tex    *image.RGBA
	normal *image.RGBA
}

func (s *shader) shade(u, v float32) Color {
	c := s.tint
	if s.tex != nil {
		c = sampleRGBA(s.tex, u, v).Modulate(s.tint)
	}
	if !s.lit {
		return c
	}
	diff := s.diff
	if s.normal != nil {
		n := sampleRGBA(s.normal, u, v)
		// Tangent-space z, decoded from 0..255 to -1..1.
		nz := Clamp01(Scalar(n.B)/127.5 - 1)
		diff = diff.Mul(nz)
	}
	return c.Shade(s.amb.Add(diff))
}

func (r *Renderer) fillTriangle(f *frame, sh *shader, v0, v1, v2 rasterVert) {
	area := edgeFn(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX, maxX := min3(v0.x, v1.x, v2.x), max3(v0.x, v1.x, v2.x)
	minY, maxY := min3(v0.y, v1.y, v2.y), max3(v0.y, v1.y, v2.y)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= f.w {
		maxX = f.w - 1
	}
	if maxY >= f.h {
		maxY = f.h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1.0 / float32(area)
	flat := sh.tex == nil && sh.normal == nil

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(v1.x, v1.y, v2.x, v2.y, x, y)
			w1 := edgeFn(v2.x, v2.y, v0.x, v0.y, x, y)
			w2 := edgeFn(v0.x, v0.y, v1.x, v1.y, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*v0.z + a1*v1.z + a2*v2.z
			if !r.depthTest(f.w, x, y, z, true) {
				continue
			}
			if flat {
				f.t.SetPixel(x, y, sh.flat)
				continue
			}
			iw := a0*v0.invW + a1*v1.invW + a2*v2.invW
			if iw == 0 {
				continue
			}
			u := (a0*v0.u + a1*v1.u + a2*v2.u) / iw
			v := (a0*v0.v + a1*v1.v + a2*v2.v) / iw
			f.t.SetPixel(x, y, sh.shade(u, v))
		}
	}
}

// drawLine draws a depth-tested line without writing depth. The segment is
// clipped to the target first so far off-screen endpoints stay cheap.
func (r *Renderer) drawLine(f *frame, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c Color) {
	fx0, fy0, fx1, fy1, t0, t1, ok := clipSegment(float32(x0), float32(y0), float32(x1), float32(y1), float32(f.w-1), float32(f.h-1))
	if !ok {
		return
	}
	za := z0 + (z1-z0)*t0
	zb := z0 + (z1-z0)*t1
	x0, y0 = int(fx0+0.5), int(fy0+0.5)
	x1, y1 = int(fx1+0.5), int(fy1+0.5)

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	err := dx + dy
	for i := 0; ; i++ {
		z := za
		if steps > 0 {
			z = za + (zb-za)*float32(i)/float32(steps)
		}
		if r.depthTest(f.w, x0, y0, z, false) {
			f.t.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment clips a segment to [0,maxX]×[0,maxY] (Liang–Barsky) and returns
// the clipped endpoints plus their parameters along the original segment.
func clipSegment(x0, y0, x1, y1, maxX, maxY float32) (ax, ay, bx, by, t0, t1 float32, ok bool) {
	t0, t1 = 0, 1
	dx := x1 - x0
	dy := y1 - y0
	edges := [4][2]float32{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return x0 + dx*t0, y0 + dy*t0, x0 + dx*t1, y0 + dy*t1, t0, t1, true
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
