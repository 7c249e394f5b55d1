package orbitgl

// PointLight emits in every direction from its position.
type PointLight struct {
	Object3D

	Color     Color
	Intensity Scalar
}

// NewPointLight creates a point light of intensity 1 at the origin.
func NewPointLight(c Color) *PointLight {
	return &PointLight{Object3D: newObject3D("pointlight"), Color: c, Intensity: 1}
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Object3D

	Color     Color
	Intensity Scalar
}

// NewAmbientLight creates an ambient light of intensity 1.
func NewAmbientLight(c Color) *AmbientLight {
	return &AmbientLight{Object3D: newObject3D("ambientlight"), Color: c, Intensity: 1}
}

// PointLightHelper draws a small wire sphere where its light is.
type PointLightHelper struct {
	Object3D

	Light    *PointLight
	Geometry *Geometry
	Material *Material
}

// NewPointLightHelper creates a helper of the given sphere size. Size 0 means 1.
func NewPointLightHelper(l *PointLight, size Scalar) *PointLightHelper {
	if size == 0 {
		size = 1
	}
	c := White
	if l != nil {
		c = l.Color
	}
	m := NewBasicMaterial(c)
	m.Wireframe = true
	return &PointLightHelper{
		Object3D: newObject3D("pointlighthelper"),
		Light:    l,
		Geometry: NewSphereGeometry(size, 4, 2),
		Material: m,
	}
}

// Matrix follows the light's transform.
func (h *PointLightHelper) Matrix() Mat4 {
	if h.Light == nil {
		return h.Object3D.Matrix()
	}
	return h.Light.Matrix()
}

// Grid line colors used by NewGridHelper.
var (
	GridCenterColor = Hex(0x444444)
	GridLineColor   = Hex(0x888888)
)

// GridHelper is a line grid on the XZ plane.
type GridHelper struct {
	Object3D

	Geometry *Geometry
}

// NewGridHelper creates a size×size grid split into divisions cells per side.
func NewGridHelper(size Scalar, divisions int) *GridHelper {
	return &GridHelper{
		Object3D: newObject3D("gridhelper"),
		Geometry: NewGridGeometry(size, divisions, GridCenterColor, GridLineColor),
	}
}
