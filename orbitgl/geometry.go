package orbitgl

import "math"

// Shape names the generator a Geometry came from.
type Shape uint8

const (
	ShapeCustom Shape = iota
	ShapeTorus
	ShapeSphere
	ShapeBox
	ShapeGrid
)

func (s Shape) String() string {
	switch s {
	case ShapeTorus:
		return "torus"
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapeGrid:
		return "grid"
	default:
		return "custom"
	}
}

// Vertex is a geometry vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	UV     Vec2
	Color  Color
}

// Geometry is an indexed triangle list, or a line list when Lines is set.
type Geometry struct {
	Shape  Shape
	Params []Scalar

	Vertices []Vertex
	Indices  []uint32
	Lines    bool

	// Radius bounds every vertex around the local origin.
	Radius Scalar
}

// Triangles returns the number of triangles (0 for line geometry).
func (g *Geometry) Triangles() int {
	if g == nil || g.Lines {
		return 0
	}
	return len(g.Indices) / 3
}

func (g *Geometry) computeRadius() {
	var r Scalar
	for _, v := range g.Vertices {
		if l := Len(v.Pos); l > r {
			r = l
		}
	}
	g.Radius = r
}

// NewTorusGeometry builds a torus in the XY plane around the Z axis.
//
// radius is the distance from the centre to the middle of the tube; radial
// segments run around the tube and tubular segments along the ring.
func NewTorusGeometry(radius, tube Scalar, radialSegments, tubularSegments int) *Geometry {
	if radialSegments < 2 {
		radialSegments = 2
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}

	g := &Geometry{
		Shape:    ShapeTorus,
		Params:   []Scalar{radius, tube, Scalar(radialSegments), Scalar(tubularSegments)},
		Vertices: make([]Vertex, 0, (radialSegments+1)*(tubularSegments+1)),
		Indices:  make([]uint32, 0, radialSegments*tubularSegments*6),
	}

	twoPi := 2 * math.Pi
	for j := 0; j <= radialSegments; j++ {
		v := twoPi * float64(j) / float64(radialSegments)
		cv, sv := math.Cos(v), math.Sin(v)
		for i := 0; i <= tubularSegments; i++ {
			u := twoPi * float64(i) / float64(tubularSegments)
			cu, su := math.Cos(u), math.Sin(u)

			r := float64(radius) + float64(tube)*cv
			pos := V3(Scalar(r*cu), Scalar(r*su), Scalar(float64(tube)*sv))
			center := V3(Scalar(float64(radius)*cu), Scalar(float64(radius)*su), 0)

			g.Vertices = append(g.Vertices, Vertex{
				Pos:    pos,
				Normal: Normalize(pos.Sub(center)),
				UV:     Vec2{X: Scalar(i) / Scalar(tubularSegments), Y: Scalar(j) / Scalar(radialSegments)},
				Color:  White,
			})
		}
	}

	row := uint32(tubularSegments + 1)
	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := row*uint32(j) + uint32(i) - 1
			b := row*uint32(j-1) + uint32(i) - 1
			c := row*uint32(j-1) + uint32(i)
			d := row*uint32(j) + uint32(i)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}

	g.computeRadius()
	return g
}

// NewSphereGeometry builds a UV sphere centred on the origin.
func NewSphereGeometry(radius Scalar, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{
		Shape:    ShapeSphere,
		Params:   []Scalar{radius, Scalar(widthSegments), Scalar(heightSegments)},
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint32, 0, widthSegments*heightSegments*6),
	}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		st, ct := math.Sin(v*math.Pi), math.Cos(v*math.Pi)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			cp, sp := math.Cos(u*2*math.Pi), math.Sin(u*2*math.Pi)

			n := V3(Scalar(-cp*st), Scalar(ct), Scalar(sp*st))
			g.Vertices = append(g.Vertices, Vertex{
				Pos:    n.Mul(radius),
				Normal: Normalize(n),
				UV:     Vec2{X: Scalar(u), Y: Scalar(1 - v)},
				Color:  White,
			})
		}
	}

	at := func(iy, ix int) uint32 { return uint32(iy*(widthSegments+1) + ix) }
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := at(iy, ix+1)
			b := at(iy, ix)
			c := at(iy+1, ix)
			d := at(iy+1, ix+1)
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	g.Radius = absScalar(radius)
	return g
}

type boxFace struct {
	n, u, v Vec3
}

// u × v = n for every face so the corner order below is counter-clockwise
// seen from outside.
var boxFaces = [6]boxFace{
	{n: V3(1, 0, 0), u: V3(0, 0, -1), v: V3(0, 1, 0)},
	{n: V3(-1, 0, 0), u: V3(0, 0, 1), v: V3(0, 1, 0)},
	{n: V3(0, 1, 0), u: V3(1, 0, 0), v: V3(0, 0, -1)},
	{n: V3(0, -1, 0), u: V3(1, 0, 0), v: V3(0, 0, 1)},
	{n: V3(0, 0, 1), u: V3(1, 0, 0), v: V3(0, 1, 0)},
	{n: V3(0, 0, -1), u: V3(-1, 0, 0), v: V3(0, 1, 0)},
}

// NewBoxGeometry builds an axis-aligned box; every face maps the full texture.
func NewBoxGeometry(width, height, depth Scalar) *Geometry {
	g := &Geometry{
		Shape:    ShapeBox,
		Params:   []Scalar{width, height, depth},
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	half := V3(width/2, height/2, depth/2)
	scale := func(a Vec3) Vec3 { return V3(a.X*half.X, a.Y*half.Y, a.Z*half.Z) }

	corners := [4]Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		base := uint32(len(g.Vertices))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c.X)).Add(f.v.Mul(c.Y))
			g.Vertices = append(g.Vertices, Vertex{
				Pos:    scale(p),
				Normal: f.n,
				UV:     Vec2{X: (c.X + 1) / 2, Y: (c.Y + 1) / 2},
				Color:  White,
			})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	g.computeRadius()
	return g
}

// NewGridGeometry builds a line grid on the XZ plane. The two centre lines use
// centerColor, all others gridColor.
func NewGridGeometry(size Scalar, divisions int, centerColor, gridColor Color) *Geometry {
	if divisions < 1 {
		divisions = 1
	}
	g := &Geometry{
		Shape:    ShapeGrid,
		Params:   []Scalar{size, Scalar(divisions)},
		Lines:    true,
		Vertices: make([]Vertex, 0, (divisions+1)*4),
		Indices:  make([]uint32, 0, (divisions+1)*4),
	}

	center := divisions / 2
	step := size / Scalar(divisions)
	half := size / 2
	for i := 0; i <= divisions; i++ {
		k := -half + Scalar(i)*step
		c := gridColor
		if i == center {
			c = centerColor
		}
		base := uint32(len(g.Vertices))
		g.Vertices = append(g.Vertices,
			Vertex{Pos: V3(-half, 0, k), Color: c},
			Vertex{Pos: V3(half, 0, k), Color: c},
			Vertex{Pos: V3(k, 0, -half), Color: c},
			Vertex{Pos: V3(k, 0, half), Color: c},
		)
		g.Indices = append(g.Indices, base, base+1, base+2, base+3)
	}

	g.computeRadius()
	return g
}
