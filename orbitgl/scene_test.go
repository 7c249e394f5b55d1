package orbitgl

import "testing"

func TestSceneAddKeepsOrder(t *testing.T) {
	s := NewScene()
	a := NewMesh(NewBoxGeometry(1, 1, 1), nil)
	b := NewAmbientLight(White)
	s.Add(a, nil, b)
	if s.Len() != 2 {
		t.Fatalf("len: %d", s.Len())
	}
	kids := s.Children()
	if kids[0] != Object(a) || kids[1] != Object(b) {
		t.Fatalf("children out of order: %v", kids)
	}

	// Children returns a copy.
	kids[0] = nil
	if s.Children()[0] == nil {
		t.Fatal("Children exposed internal slice")
	}
}

func TestHelperFollowsLight(t *testing.T) {
	pl := NewPointLight(White)
	pl.Position = V3(5, 5, 5)
	h := NewPointLightHelper(pl, 0)
	if got := Mat4MulPoint(h.Matrix(), Vec3{}); got != V3(5, 5, 5) {
		t.Fatalf("helper at %+v", got)
	}
	if h.Geometry.Radius != 1 {
		t.Fatalf("default helper size: %v", h.Geometry.Radius)
	}
	if !h.Material.Wireframe {
		t.Fatal("helper should be wireframe")
	}
}
