package orbitgl

// Scene is an ordered collection of top-level objects.
//
// Children are never removed; the scene keeps whatever it was given for its
// whole lifetime.
type Scene struct {
	// Background, when ready, is stretched over the whole target.
	Background *Texture

	children []Object
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends objects in order. Nil objects are skipped.
func (s *Scene) Add(objs ...Object) {
	if s == nil {
		return
	}
	for _, o := range objs {
		if o == nil {
			continue
		}
		s.children = append(s.children, o)
	}
}

// Len returns the number of top-level children.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.children)
}

// Children returns a copy of the top-level children.
func (s *Scene) Children() []Object {
	if s == nil {
		return nil
	}
	out := make([]Object, len(s.children))
	copy(out, s.children)
	return out
}

func (s *Scene) eachChild(fn func(o Object)) {
	for _, o := range s.children {
		if !o.Base().Visible {
			continue
		}
		fn(o)
	}
}
