package orbitgl

import (
	"math"
	"testing"
)

func near(a, b, eps Scalar) bool {
	return Scalar(math.Abs(float64(a-b))) <= eps
}

func nearVec(a, b Vec3, eps Scalar) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps)
}

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	got := Mat4Mul(a, b)
	if got != b {
		t.Fatalf("identity*a mismatch")
	}
	got2 := Mat4Mul(b, a)
	if got2 != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func TestEulerRoundTrip(t *testing.T) {
	cases := []Euler{
		{},
		{X: 0.3},
		{Y: -0.7},
		{Z: 1.2},
		{X: 0.05, Y: 0.075, Z: 0.05},
		{X: -1.1, Y: 0.4, Z: 2.5},
	}
	for _, e := range cases {
		got := EulerFromMat4(e.Matrix())
		if !near(got.X, e.X, 1e-4) || !near(got.Y, e.Y, 1e-4) || !near(got.Z, e.Z, 1e-4) {
			t.Fatalf("round trip %+v: got %+v", e, got)
		}
	}
}

func TestRigidInverse(t *testing.T) {
	m := Mat4Mul(Mat4Translate(V3(4, -2, 7)), Euler{X: 0.3, Y: 1.1, Z: -0.4}.Matrix())
	inv := Mat4RigidInverse(m)
	p := V3(1, 2, 3)
	got := Mat4MulPoint(inv, Mat4MulPoint(m, p))
	if !nearVec(got, p, 1e-4) {
		t.Fatalf("inverse(m)*m*p = %+v, want %+v", got, p)
	}
}

func TestObjectMatrixOrder(t *testing.T) {
	o := newObject3D("o")
	o.Position = V3(10, 0, 0)
	o.Rotation = Euler{Y: math.Pi / 2}
	o.Scale = V3(2, 2, 2)

	// Scale, then rotate +X onto -Z, then translate.
	got := Mat4MulPoint(o.Matrix(), V3(1, 0, 0))
	if !nearVec(got, V3(10, 0, -2), 1e-5) {
		t.Fatalf("got %+v", got)
	}
}
