package orbitgl

// PerspectiveCamera describes the viewing transform.
//
// The camera looks down its local -Z axis; Position and Rotation place it in
// the world.
type PerspectiveCamera struct {
	Object3D

	// FOV is the vertical field of view in degrees.
	FOV    Scalar
	Aspect Scalar
	Near   Scalar
	Far    Scalar

	Up Vec3
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far Scalar) *PerspectiveCamera {
	return &PerspectiveCamera{
		Object3D: newObject3D("camera"),
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Up:       V3(0, 1, 0),
	}
}

// View returns the world-to-camera matrix.
func (c *PerspectiveCamera) View() Mat4 {
	world := Mat4Mul(Mat4Translate(c.Position), c.Rotation.Matrix())
	return Mat4RigidInverse(world)
}

// Projection returns the projection matrix. A zero aspect uses the camera's.
func (c *PerspectiveCamera) Projection(aspect Scalar) Mat4 {
	if aspect == 0 {
		aspect = c.Aspect
	}
	fov := c.FOV
	if fov == 0 {
		fov = 50
	}
	return Mat4Perspective(Deg2Rad(fov), aspect, c.Near, c.Far)
}

// LookAt rotates the camera so that -Z points at target. A target equal to
// the camera position resets the rotation.
func (c *PerspectiveCamera) LookAt(target Vec3) {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}

	z := c.Position.Sub(target)
	if Dot(z, z) == 0 {
		z = V3(0, 0, 1)
	}
	z = Normalize(z)

	x := Cross(up, z)
	if Dot(x, x) == 0 {
		// up and z are parallel; nudge z.
		if absScalar(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = Normalize(z)
		x = Cross(up, z)
	}
	x = Normalize(x)
	y := Cross(z, x)

	c.Rotation = EulerFromMat4(Mat4Basis(x, y, z))
}

// Forward returns the world-space viewing direction.
func (c *PerspectiveCamera) Forward() Vec3 {
	return Normalize(Mat4MulDir(c.Rotation.Matrix(), V3(0, 0, -1)))
}
