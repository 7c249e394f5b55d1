package orbitgl

// Object is anything that can be a child of a Scene.
type Object interface {
	Base() *Object3D
}

// Object3D carries the transform shared by every scene child.
type Object3D struct {
	Name     string
	Position Vec3
	Rotation Euler
	Scale    Vec3
	Visible  bool
}

func newObject3D(name string) Object3D {
	return Object3D{Name: name, Scale: V3(1, 1, 1), Visible: true}
}

func (o *Object3D) Base() *Object3D { return o }

// Matrix returns the local transform T·R·S.
func (o *Object3D) Matrix() Mat4 {
	s := o.Scale
	if s == (Vec3{}) {
		s = V3(1, 1, 1)
	}
	return Mat4Mul(Mat4Translate(o.Position), Mat4Mul(o.Rotation.Matrix(), Mat4Scale(s)))
}

// SetPosition sets all three position components.
func (o *Object3D) SetPosition(x, y, z Scalar) {
	o.Position = V3(x, y, z)
}

func (o *Object3D) maxScale() Scalar {
	s := o.Scale
	if s == (Vec3{}) {
		return 1
	}
	m := absScalar(s.X)
	if v := absScalar(s.Y); v > m {
		m = v
	}
	if v := absScalar(s.Z); v > m {
		m = v
	}
	return m
}

func absScalar(v Scalar) Scalar {
	if v < 0 {
		return -v
	}
	return v
}
