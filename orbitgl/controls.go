package orbitgl

import "math"

// Gestures is the pointer input collected since the last controls update.
//
// Rotate and Pan are in surface pixels; Zoom is in wheel steps, positive
// meaning "dolly in".
type Gestures struct {
	Rotate Vec2
	Pan    Vec2
	Zoom   Scalar
}

// IsZero reports whether there is nothing to apply.
func (g Gestures) IsZero() bool { return g == (Gestures{}) }

// Surface is the render surface the controls listen on.
type Surface interface {
	Size() (w, h int)
	TakeGestures() Gestures
}

const polarEpsilon = 1e-6

// OrbitControls orbits, dollies and pans a camera around a target.
//
// Gestures are collected by the surface and applied on Update; nothing moves
// between updates.
type OrbitControls struct {
	Camera  *PerspectiveCamera
	Surface Surface

	Target  Vec3
	Enabled bool

	RotateSpeed Scalar
	ZoomSpeed   Scalar
	PanSpeed    Scalar

	MinDistance Scalar
	MaxDistance Scalar // 0 means unbounded

	MinPolarAngle Scalar
	MaxPolarAngle Scalar
}

// NewOrbitControls binds controls to a camera and a surface.
func NewOrbitControls(cam *PerspectiveCamera, s Surface) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		Surface:       s,
		Enabled:       true,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MaxPolarAngle: math.Pi,
	}
}

// Update applies pending gestures and re-aims the camera at the target.
// It reports whether the camera position changed.
func (c *OrbitControls) Update() bool {
	if c == nil || c.Camera == nil {
		return false
	}

	var g Gestures
	if c.Surface != nil {
		g = c.Surface.TakeGestures()
	}
	if !c.Enabled {
		g = Gestures{}
	}

	h := 1
	if c.Surface != nil {
		if _, sh := c.Surface.Size(); sh > 0 {
			h = sh
		}
	}

	cam := c.Camera
	before := cam.Position

	if g.Pan != (Vec2{}) {
		c.pan(g.Pan, h)
	}

	offset := cam.Position.Sub(c.Target)
	radius := Len(offset)
	if radius > 0 {
		theta := math.Atan2(float64(offset.X), float64(offset.Z))
		phi := math.Acos(float64(Clamp(offset.Y/radius, -1, 1)))

		theta -= 2 * math.Pi * float64(g.Rotate.X) / float64(h) * float64(c.RotateSpeed)
		phi -= 2 * math.Pi * float64(g.Rotate.Y) / float64(h) * float64(c.RotateSpeed)

		phi = math.Max(float64(c.MinPolarAngle), math.Min(float64(c.MaxPolarAngle), phi))
		phi = math.Max(polarEpsilon, math.Min(math.Pi-polarEpsilon, phi))

		if g.Zoom != 0 {
			radius *= Scalar(math.Pow(c.zoomScale(), float64(g.Zoom)))
		}
		if c.MinDistance > 0 && radius < c.MinDistance {
			radius = c.MinDistance
		}
		if c.MaxDistance > 0 && radius > c.MaxDistance {
			radius = c.MaxDistance
		}

		if !g.IsZero() {
			sp := math.Sin(phi)
			offset = V3(
				radius*Scalar(sp*math.Sin(theta)),
				radius*Scalar(math.Cos(phi)),
				radius*Scalar(sp*math.Cos(theta)),
			)
			cam.Position = c.Target.Add(offset)
		}
	}

	cam.LookAt(c.Target)
	return cam.Position != before
}

func (c *OrbitControls) zoomScale() float64 {
	return math.Pow(0.95, float64(c.ZoomSpeed))
}

// pan moves camera and target together in the camera's view plane.
func (c *OrbitControls) pan(d Vec2, h int) {
	cam := c.Camera
	dist := Len(cam.Position.Sub(c.Target))
	fov := cam.FOV
	if fov == 0 {
		fov = 50
	}
	dist *= Scalar(math.Tan(float64(Deg2Rad(fov)) / 2))

	rot := cam.Rotation.Matrix()
	right := Mat4MulDir(rot, V3(1, 0, 0))
	up := Mat4MulDir(rot, V3(0, 1, 0))

	k := 2 * dist / Scalar(h) * c.PanSpeed
	move := right.Mul(-d.X * k).Add(up.Mul(d.Y * k))
	cam.Position = cam.Position.Add(move)
	c.Target = c.Target.Add(move)
}
