package orbitgl

import (
	"image"
	"math"
)

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	frames uint64

	depthBuf []float32

	bgKey bgKey
	bgImg *image.RGBA

	world []Vec3
	clip  []Vec4
}

type bgKey struct {
	tex     *Texture
	version uint64
	w, h    int
}

type lightSet struct {
	ambient Vec3
	points  []pointLight
}

type pointLight struct {
	pos   Vec3
	color Vec3
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolid,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

// SetRenderMode switches between solid and wireframe drawing.
func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Frames returns how many times Render has drawn into a target.
func (r *Renderer) Frames() uint64 { return r.frames }

// EnableDepth turns depth testing on or off and sizes the depth buffer for a
// w×h target.
func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render draws the scene as seen from cam into the target.
func (r *Renderer) Render(t Target, s *Scene, cam *PerspectiveCamera) {
	if r == nil || t == nil || s == nil || cam == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	r.frames++

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}
	r.drawBackground(t, s.Background, w, h)

	aspect := cam.Aspect
	if aspect == 0 {
		aspect = Scalar(w) / Scalar(h)
	}
	view := cam.View()
	proj := cam.Projection(aspect)
	f := frame{
		t:        t,
		w:        w,
		h:        h,
		view:     view,
		proj:     proj,
		viewProj: Mat4Mul(proj, view),
		near:     cam.Near,
		eye:      cam.Position,
		lights:   collectLights(s),
	}

	s.eachChild(func(o Object) {
		switch obj := o.(type) {
		case *Mesh:
			r.renderMesh(&f, obj.Matrix(), obj.maxScale(), obj.Geometry, obj.Material)
		case *PointLightHelper:
			r.renderMesh(&f, obj.Matrix(), 1, obj.Geometry, obj.Material)
		case *GridHelper:
			r.renderLines(&f, obj.Matrix(), obj.Geometry)
		}
	})
}

type frame struct {
	t    Target
	w, h int

	view, proj, viewProj Mat4

	near   Scalar
	eye    Vec3
	lights lightSet
}

func collectLights(s *Scene) lightSet {
	var ls lightSet
	s.eachChild(func(o Object) {
		switch l := o.(type) {
		case *AmbientLight:
			ls.ambient = ls.ambient.Add(l.Color.Vec3().Mul(l.Intensity))
		case *PointLight:
			ls.points = append(ls.points, pointLight{
				pos:   Mat4MulPoint(l.Matrix(), Vec3{}),
				color: l.Color.Vec3().Mul(l.Intensity),
			})
		}
	})
	return ls
}

// diffuse returns the summed Lambert term of all point lights at p with
// normal n.
func (ls *lightSet) diffuse(p, n Vec3) Vec3 {
	var out Vec3
	for _, pl := range ls.points {
		d := Dot(n, Normalize(pl.pos.Sub(p)))
		if d <= 0 {
			continue
		}
		out = out.Add(pl.color.Mul(d))
	}
	return out
}

func (r *Renderer) drawBackground(t Target, bg *Texture, w, h int) {
	src := bg.Image()
	if src == nil {
		t.Clear(r.ClearColor)
		return
	}

	key := bgKey{tex: bg, version: bg.Version(), w: w, h: h}
	if r.bgImg == nil || r.bgKey != key {
		r.bgImg = scaleNearest(src, w, h)
		r.bgKey = key
	}

	if rt, ok := t.(*RGBATarget); ok && rt.Img != nil && rt.Img.Rect == r.bgImg.Rect {
		copy(rt.Img.Pix, r.bgImg.Pix)
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := r.bgImg.PixOffset(x, y)
			p := r.bgImg.Pix[i : i+4 : i+4]
			t.SetPixel(x, y, Color{R: p[0], G: p[1], B: p[2], A: 0xFF})
		}
	}
}

func scaleNearest(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw <= 0 || sh <= 0 {
		return dst
	}
	for y := 0; y < h; y++ {
		sy := b.Min.Y + int((int64(y)*int64(sh))/int64(h))
		for x := 0; x < w; x++ {
			sx := b.Min.X + int((int64(x)*int64(sw))/int64(w))
			si := src.PixOffset(sx, sy)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			dst.Pix[di+3] = 0xFF
		}
	}
	return dst
}

func (r *Renderer) renderMesh(f *frame, model Mat4, scale Scalar, g *Geometry, m *Material) {
	if g == nil || len(g.Vertices) == 0 || len(g.Indices) < 3 {
		return
	}
	if m == nil {
		m = NewStandardMaterial(White)
	}
	if g.Lines {
		r.renderLines(f, model, g)
		return
	}

	center := Mat4MulPoint(model, Vec3{})
	depth := -Mat4MulPoint(f.view, center).Z
	radius := g.Radius * scale
	if depth+radius < f.near {
		return
	}
	if depth > f.near {
		px := radius * f.proj[5] * Scalar(f.h) / 2 / depth
		if px < 0.75 {
			r.renderPoint(f, center, m)
			return
		}
	}

	wire := m.Wireframe || r.Mode == RenderWireframe
	lit := m.Kind == MaterialStandard
	tex := m.Map.Image()
	nmap := m.NormalMap.Image()

	if cap(r.world) < len(g.Vertices) {
		r.world = make([]Vec3, len(g.Vertices))
		r.clip = make([]Vec4, len(g.Vertices))
	}
	world := r.world[:len(g.Vertices)]
	clip := r.clip[:len(g.Vertices)]
	for i, v := range g.Vertices {
		world[i] = Mat4MulPoint(model, v.Pos)
		clip[i] = Mat4MulV4(f.viewProj, Vec4{X: world[i].X, Y: world[i].Y, Z: world[i].Z, W: 1})
	}

	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0 := int(g.Indices[i+0])
		i1 := int(g.Indices[i+1])
		i2 := int(g.Indices[i+2])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) || i2 >= len(g.Vertices) {
			continue
		}
		p0, p1, p2 := clip[i0], clip[i1], clip[i2]

		// Trivial near clip: drop triangles reaching behind the near plane.
		if p0.W < f.near || p1.W < f.near || p2.W < f.near {
			continue
		}
		if outsideFrustum(p0, p1, p2) {
			continue
		}

		n0, n1, n2 := clipToNDC(p0), clipToNDC(p1), clipToNDC(p2)
		if !wire {
			cross := (n1.X-n0.X)*(n2.Y-n0.Y) - (n1.Y-n0.Y)*(n2.X-n0.X)
			if cross <= 0 {
				continue
			}
		}

		var amb, diff Vec3
		if lit {
			w0, w1, w2 := world[i0], world[i1], world[i2]
			n := Normalize(Cross(w1.Sub(w0), w2.Sub(w0)))
			c := w0.Add(w1).Add(w2).Mul(Scalar(1) / 3)
			amb = f.lights.ambient
			diff = f.lights.diffuse(c, n)
		}

		x0, y0 := ndcToScreen(n0, f.w, f.h)
		x1, y1 := ndcToScreen(n1, f.w, f.h)
		x2, y2 := ndcToScreen(n2, f.w, f.h)

		if wire {
			c := m.Color
			if lit {
				c = c.Shade(amb.Add(diff))
			}
			r.drawLine(f, x0, y0, n0.Z, x1, y1, n1.Z, c)
			r.drawLine(f, x1, y1, n1.Z, x2, y2, n2.Z, c)
			r.drawLine(f, x2, y2, n2.Z, x0, y0, n0.Z, c)
			continue
		}

		sh := shader{tint: m.Color, lit: lit, amb: amb, diff: diff, tex: tex, normal: nmap}
		if tex == nil && nmap == nil {
			sh.flat = m.Color
			if lit {
				sh.flat = sh.flat.Shade(amb.Add(diff))
			}
		}

		uv0, uv1, uv2 := g.Vertices[i0].UV, g.Vertices[i1].UV, g.Vertices[i2].UV
		r.fillTriangle(f, &sh,
			rasterVert{x: x0, y: y0, z: n0.Z, invW: 1 / p0.W, u: uv0.X / p0.W, v: uv0.Y / p0.W},
			rasterVert{x: x1, y: y1, z: n1.Z, invW: 1 / p1.W, u: uv1.X / p1.W, v: uv1.Y / p1.W},
			rasterVert{x: x2, y: y2, z: n2.Z, invW: 1 / p2.W, u: uv2.X / p2.W, v: uv2.Y / p2.W},
		)
	}
}

// renderPoint draws a mesh too small to rasterize as one shaded pixel.
func (r *Renderer) renderPoint(f *frame, center Vec3, m *Material) {
	p := Mat4MulV4(f.viewProj, Vec4{X: center.X, Y: center.Y, Z: center.Z, W: 1})
	if p.W < f.near {
		return
	}
	n := clipToNDC(p)
	if n.X < -1 || n.X > 1 || n.Y < -1 || n.Y > 1 {
		return
	}
	c := m.Color
	if m.Kind == MaterialStandard {
		facing := Normalize(f.eye.Sub(center))
		c = c.Shade(f.lights.ambient.Add(f.lights.diffuse(center, facing)))
	}
	x, y := ndcToScreen(n, f.w, f.h)
	if !r.depthTest(f.w, x, y, n.Z, true) {
		return
	}
	f.t.SetPixel(x, y, c)
}

func (r *Renderer) renderLines(f *frame, model Mat4, g *Geometry) {
	if g == nil || len(g.Vertices) == 0 {
		return
	}
	mvp := Mat4Mul(f.viewProj, model)
	for i := 0; i+1 < len(g.Indices); i += 2 {
		i0 := int(g.Indices[i])
		i1 := int(g.Indices[i+1])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) {
			continue
		}
		a, b := g.Vertices[i0], g.Vertices[i1]
		pa := Mat4MulV4(mvp, Vec4{X: a.Pos.X, Y: a.Pos.Y, Z: a.Pos.Z, W: 1})
		pb := Mat4MulV4(mvp, Vec4{X: b.Pos.X, Y: b.Pos.Y, Z: b.Pos.Z, W: 1})
		if !clipLineNear(&pa, &pb, f.near) {
			continue
		}
		na, nb := clipToNDC(pa), clipToNDC(pb)
		x0, y0 := ndcToScreen(na, f.w, f.h)
		x1, y1 := ndcToScreen(nb, f.w, f.h)
		r.drawLine(f, x0, y0, na.Z, x1, y1, nb.Z, a.Color)
	}
}

// clipLineNear trims a clip-space segment to w >= near.
func clipLineNear(a, b *Vec4, near Scalar) bool {
	if a.W < near && b.W < near {
		return false
	}
	if a.W >= near && b.W >= near {
		return true
	}
	t := (near - a.W) / (b.W - a.W)
	p := Vec4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: near,
	}
	if a.W < near {
		*a = p
	} else {
		*b = p
	}
	return true
}

func outsideFrustum(a, b, c Vec4) bool {
	switch {
	case a.X > a.W && b.X > b.W && c.X > c.W:
		return true
	case a.X < -a.W && b.X < -b.W && c.X < -c.W:
		return true
	case a.Y > a.W && b.Y > b.W && c.Y > c.W:
		return true
	case a.Y < -a.W && b.Y < -b.W && c.Y < -c.W:
		return true
	case a.Z > a.W && b.Z > b.W && c.Z > c.W:
		return true
	}
	return false
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) ndcPoint {
	if p.W == 0 {
		return ndcPoint{}
	}
	invW := 1 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(math.Floor(float64(sx + 0.5))), int(math.Floor(float64(sy + 0.5)))
}

// depthTest checks (and optionally records) an NDC depth at a pixel.
func (r *Renderer) depthTest(w int, x, y int, z float32, write bool) bool {
	if x < 0 || y < 0 || x >= w {
		return false
	}
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx := y*w + x
	if idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := clampF32(z*0.5+0.5, 0, 1)
	if d >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = d
	}
	return true
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
