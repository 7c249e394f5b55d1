package orbitgl

// MaterialKind selects how a surface reacts to light.
type MaterialKind uint8

const (
	// MaterialBasic ignores lights.
	MaterialBasic MaterialKind = iota
	// MaterialStandard is lit by ambient and point lights.
	MaterialStandard
)

// Material describes a mesh surface.
type Material struct {
	Kind  MaterialKind
	Color Color

	// Map multiplies Color when ready.
	Map *Texture
	// NormalMap perturbs the diffuse term when ready.
	NormalMap *Texture

	Wireframe bool
}

// NewBasicMaterial returns an unlit material.
func NewBasicMaterial(c Color) *Material {
	return &Material{Kind: MaterialBasic, Color: c}
}

// NewStandardMaterial returns a lit material.
func NewStandardMaterial(c Color) *Material {
	return &Material{Kind: MaterialStandard, Color: c}
}

// Mesh pairs a geometry with a material.
type Mesh struct {
	Object3D

	Geometry *Geometry
	Material *Material
}

// NewMesh creates a visible mesh at the origin.
func NewMesh(g *Geometry, m *Material) *Mesh {
	if m == nil {
		m = NewStandardMaterial(White)
	}
	return &Mesh{Object3D: newObject3D("mesh"), Geometry: g, Material: m}
}
