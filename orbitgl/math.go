package orbitgl

import "math"

// Scalar is the numeric type used by orbitgl math operations.
type Scalar = float32

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y Scalar
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z Scalar
}

// Vec4 is a 4D vector.
type Vec4 struct {
	X, Y, Z, W Scalar
}

// Mat4 is a column-major 4x4 matrix.
//
// It matches the conventional OpenGL layout:
// m[col*4+row].
type Mat4 [16]Scalar

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func Dot(a, b Vec3) Scalar { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func Len(v Vec3) Scalar {
	return Scalar(math.Sqrt(float64(Dot(v, v))))
}

func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Clamp01 limits v to [0, 1].
func Clamp01(v Scalar) Scalar {
	return Clamp(v, 0, 1)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi Scalar) Scalar {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg Scalar) Scalar { return deg * math.Pi / 180 }

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				a[0*4+row]*b[col*4+0] +
					a[1*4+row]*b[col*4+1] +
					a[2*4+row]*b[col*4+2] +
					a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Mat4MulPoint transforms a point (w = 1) and drops w.
func Mat4MulPoint(m Mat4, p Vec3) Vec3 {
	v := Mat4MulV4(m, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	return Vec3{v.X, v.Y, v.Z}
}

// Mat4MulDir transforms a direction (w = 0).
func Mat4MulDir(m Mat4, d Vec3) Vec3 {
	v := Mat4MulV4(m, Vec4{X: d.X, Y: d.Y, Z: d.Z})
	return Vec3{v.X, v.Y, v.Z}
}

func Mat4Translate(v Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

func Mat4Scale(v Vec3) Mat4 {
	m := Mat4Identity()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

func Mat4RotateX(rad Scalar) Mat4 {
	c := Scalar(math.Cos(float64(rad)))
	s := Scalar(math.Sin(float64(rad)))
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func Mat4RotateY(rad Scalar) Mat4 {
	c := Scalar(math.Cos(float64(rad)))
	s := Scalar(math.Sin(float64(rad)))
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func Mat4RotateZ(rad Scalar) Mat4 {
	c := Scalar(math.Cos(float64(rad)))
	s := Scalar(math.Sin(float64(rad)))
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Basis builds a rotation matrix whose columns are x, y and z.
func Mat4Basis(x, y, z Vec3) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		0, 0, 0, 1,
	}
}

// Mat4RigidInverse inverts a matrix made only of rotation and translation.
func Mat4RigidInverse(m Mat4) Mat4 {
	out := Mat4{
		m[0], m[4], m[8], 0,
		m[1], m[5], m[9], 0,
		m[2], m[6], m[10], 0,
		0, 0, 0, 1,
	}
	t := Mat4MulDir(out, V3(m[12], m[13], m[14]))
	out[12] = -t.X
	out[13] = -t.Y
	out[14] = -t.Z
	return out
}

// Mat4LookAt returns a view matrix for an eye looking at target.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	f := Normalize(target.Sub(eye))
	s := Normalize(Cross(f, up))
	u := Cross(s, f)

	// Column-major.
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-Dot(s, eye), -Dot(u, eye), Dot(f, eye), 1,
	}
}

// Mat4Perspective returns an OpenGL-style projection with a vertical field of
// view in radians.
func Mat4Perspective(fovYRad Scalar, aspect Scalar, zNear, zFar Scalar) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := Scalar(1) / Scalar(math.Tan(float64(fovYRad)/2))
	nf := Scalar(1) / (zNear - zFar)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zFar + zNear) * nf, -1,
		0, 0, (2 * zFar * zNear) * nf, 0,
	}
}

// Euler is a rotation in radians applied in XYZ order.
type Euler struct {
	X, Y, Z Scalar
}

// Matrix returns Rx·Ry·Rz.
func (e Euler) Matrix() Mat4 {
	return Mat4Mul(Mat4RotateX(e.X), Mat4Mul(Mat4RotateY(e.Y), Mat4RotateZ(e.Z)))
}

// Add returns the component-wise sum of two rotations.
func (e Euler) Add(o Euler) Euler {
	return Euler{X: e.X + o.X, Y: e.Y + o.Y, Z: e.Z + o.Z}
}

// EulerFromMat4 extracts XYZ angles from the rotation part of m.
func EulerFromMat4(m Mat4) Euler {
	m11, m12, m13 := float64(m[0]), float64(m[4]), float64(m[8])
	m22, m23 := float64(m[5]), float64(m[9])
	m32, m33 := float64(m[6]), float64(m[10])

	y := math.Asin(math.Max(-1, math.Min(1, m13)))
	if math.Abs(m13) < 0.9999999 {
		return Euler{
			X: Scalar(math.Atan2(-m23, m33)),
			Y: Scalar(y),
			Z: Scalar(math.Atan2(-m12, m11)),
		}
	}
	return Euler{X: Scalar(math.Atan2(m32, m22)), Y: Scalar(y)}
}
