package orbitgl

import (
	"math"
	"testing"
)

type fakeSurface struct {
	w, h    int
	pending Gestures
	taken   int
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) TakeGestures() Gestures {
	s.taken++
	g := s.pending
	s.pending = Gestures{}
	return g
}

func TestOrbitControlsIdleKeepsPosition(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = V3(0.2, 0, -10)
	s := &fakeSurface{w: 100, h: 100}
	c := NewOrbitControls(cam, s)

	if c.Update() {
		t.Fatal("idle update moved the camera")
	}
	if cam.Position != V3(0.2, 0, -10) {
		t.Fatalf("position changed: %+v", cam.Position)
	}
	if s.taken != 1 {
		t.Fatalf("gestures drained %d times", s.taken)
	}
	// Camera must now face the target.
	want := Normalize(c.Target.Sub(cam.Position))
	if !nearVec(cam.Forward(), want, 1e-4) {
		t.Fatalf("forward %+v, want %+v", cam.Forward(), want)
	}
}

func TestOrbitControlsCameraOnTarget(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Rotation = Euler{Y: 0.3}
	c := NewOrbitControls(cam, &fakeSurface{w: 10, h: 10, pending: Gestures{Rotate: Vec2{X: 5}}})
	c.Update()
	if cam.Position != (Vec3{}) {
		t.Fatalf("position moved: %+v", cam.Position)
	}
	if cam.Rotation != (Euler{}) {
		t.Fatalf("rotation not reset: %+v", cam.Rotation)
	}
}

func TestOrbitControlsRotateKeepsRadius(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = V3(0, 0, 30)
	s := &fakeSurface{w: 200, h: 200}
	c := NewOrbitControls(cam, s)

	// Dragging a quarter of the surface height is a quarter turn.
	s.pending = Gestures{Rotate: Vec2{X: -50}}
	if !c.Update() {
		t.Fatal("rotate did not move the camera")
	}
	if !near(Len(cam.Position), 30, 1e-3) {
		t.Fatalf("radius changed: %v", Len(cam.Position))
	}
	if !nearVec(cam.Position, V3(30, 0, 0), 1e-3) {
		t.Fatalf("position after rotate: %+v", cam.Position)
	}
}

func TestOrbitControlsZoom(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = V3(0, 0, 30)
	s := &fakeSurface{w: 100, h: 100, pending: Gestures{Zoom: 1}}
	c := NewOrbitControls(cam, s)
	c.Update()
	if !near(cam.Position.Z, 30*0.95, 1e-3) {
		t.Fatalf("dolly in: z=%v", cam.Position.Z)
	}

	c.MinDistance = 29
	s.pending = Gestures{Zoom: 10}
	c.Update()
	if !near(cam.Position.Z, 29, 1e-3) {
		t.Fatalf("min distance not enforced: z=%v", cam.Position.Z)
	}
}

func TestOrbitControlsDisabled(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = V3(0, 0, 30)
	s := &fakeSurface{w: 100, h: 100, pending: Gestures{Rotate: Vec2{X: 40}}}
	c := NewOrbitControls(cam, s)
	c.Enabled = false
	c.Update()
	if cam.Position != V3(0, 0, 30) {
		t.Fatalf("disabled controls moved camera: %+v", cam.Position)
	}
	if s.pending != (Gestures{}) {
		t.Fatal("disabled controls should still drain gestures")
	}
}

func TestOrbitControlsPolarClamp(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = V3(0, 0, 10)
	s := &fakeSurface{w: 100, h: 100, pending: Gestures{Rotate: Vec2{Y: 1000}}}
	c := NewOrbitControls(cam, s)
	c.Update()
	phi := math.Acos(float64(cam.Position.Y / Len(cam.Position)))
	if phi < 0 || phi > 1e-3 {
		t.Fatalf("phi not clamped near the pole: %v", phi)
	}
}
