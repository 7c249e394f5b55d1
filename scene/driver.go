// Package scene drives the scroll-animated space scene: a spinning torus, a
// star field, a textured avatar cube and a moon, with the camera following the
// document scroll position.
package scene

import (
	"fmt"
	"math/rand/v2"

	"scrollscape/hal"
	"scrollscape/orbitgl"
)

// Camera.
const (
	FieldOfView = 75
	NearPlane   = 0.1
	FarPlane    = 1000
	CameraStart = 30
)

// Star field.
const (
	StarCount    = 200
	StarRadius   = 0.05
	StarSegments = 24
	// StarSpread is the width of the interval each star coordinate is drawn
	// from, centred on 0.
	StarSpread = 100
)

// Texture paths, relative to the asset filesystem.
const (
	SpaceTexture  = "space.jpg"
	AvatarTexture = "fred.jpg"
	MoonTexture   = "moon.jpg"
	NormalTexture = "normal.jpg"
)

var torusColor = orbitgl.Hex(0xFF6347)

// Per-event and per-frame rotation steps, and the scroll-to-camera mapping.
var (
	moonSpin   = orbitgl.Euler{X: 0.05, Y: 0.075, Z: 0.05}
	avatarSpin = orbitgl.Euler{Y: 0.01, Z: 0.01}
	torusSpin  = orbitgl.Euler{X: 0.006, Y: 0.002, Z: 0.006}
)

const (
	scrollToCameraZ    = -0.01
	scrollToCameraX    = -0.0002
	scrollToCameraRotY = -0.0002
)

// Options configures New.
type Options struct {
	// Target is the render surface. Its size sets the camera aspect unless
	// Width and Height are given.
	Target orbitgl.Target
	Width  int
	Height int

	// Surface feeds the orbit controls. Nil means no pointer input.
	Surface orbitgl.Surface

	// Textures loads the image assets. Nil leaves every texture empty.
	Textures *orbitgl.TextureLoader

	// Rand places the stars. Nil uses an unseeded source.
	Rand *rand.Rand

	Log hal.Logger

	// InitialScrollTop is the document top the eager scroll update sees.
	InitialScrollTop float64
}

// Driver owns the scene graph and applies the scroll and frame updates.
//
// Both callbacks must be invoked from the same goroutine.
type Driver struct {
	log    hal.Logger
	target orbitgl.Target

	scene    *orbitgl.Scene
	camera   *orbitgl.PerspectiveCamera
	renderer *orbitgl.Renderer
	controls *orbitgl.OrbitControls

	torus        *orbitgl.Mesh
	pointLight   *orbitgl.PointLight
	ambientLight *orbitgl.AmbientLight
	stars        []*orbitgl.Mesh
	avatar       *orbitgl.Mesh
	moon         *orbitgl.Mesh

	scrolls uint64
	frames  uint64
}

// New builds the scene, renders one blank frame and applies the initial
// scroll position.
func New(opts Options) *Driver {
	d := &Driver{log: opts.Log, target: opts.Target}

	w, h := opts.Width, opts.Height
	if (w <= 0 || h <= 0) && opts.Target != nil {
		w, h = opts.Target.Size()
	}
	aspect := orbitgl.Scalar(1)
	if w > 0 && h > 0 {
		aspect = orbitgl.Scalar(w) / orbitgl.Scalar(h)
	}

	d.scene = orbitgl.NewScene()
	d.camera = orbitgl.NewPerspectiveCamera(FieldOfView, aspect, NearPlane, FarPlane)
	tw, th := 0, 0
	if opts.Target != nil {
		tw, th = opts.Target.Size()
	}
	d.renderer = orbitgl.NewRenderer(tw, th, true)
	d.camera.Position.Z = CameraStart

	d.render()

	d.torus = orbitgl.NewMesh(orbitgl.NewTorusGeometry(6, 2, 8, 100), orbitgl.NewStandardMaterial(torusColor))
	d.torus.Name = "torus"
	d.scene.Add(d.torus)

	d.pointLight = orbitgl.NewPointLight(orbitgl.White)
	d.pointLight.SetPosition(5, 5, 5)
	d.ambientLight = orbitgl.NewAmbientLight(orbitgl.White)
	d.scene.Add(d.pointLight, d.ambientLight)

	lightHelper := orbitgl.NewPointLightHelper(d.pointLight, 1)
	gridHelper := orbitgl.NewGridHelper(200, 50)
	d.scene.Add(lightHelper, gridHelper)

	d.controls = orbitgl.NewOrbitControls(d.camera, opts.Surface)

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d.stars = make([]*orbitgl.Mesh, 0, StarCount)
	for i := 0; i < StarCount; i++ {
		d.addStar(rng)
	}

	loader := opts.Textures
	if loader != nil && loader.OnError == nil {
		loader.OnError = func(path string, err error) {
			d.logf("scene: texture %s not loaded: %v", path, err)
		}
	}
	d.scene.Background = loader.Load(SpaceTexture)

	d.avatar = orbitgl.NewMesh(
		orbitgl.NewBoxGeometry(3, 3, 3),
		&orbitgl.Material{Kind: orbitgl.MaterialBasic, Color: orbitgl.White, Map: loader.Load(AvatarTexture)},
	)
	d.avatar.Name = "avatar"
	d.scene.Add(d.avatar)

	d.moon = orbitgl.NewMesh(
		orbitgl.NewSphereGeometry(3, 32, 32),
		&orbitgl.Material{
			Kind:      orbitgl.MaterialStandard,
			Color:     orbitgl.White,
			Map:       loader.Load(MoonTexture),
			NormalMap: loader.Load(NormalTexture),
		},
	)
	d.moon.Name = "moon"
	d.scene.Add(d.moon)

	d.moon.Position.Z = 30
	d.moon.Position.X = -10
	d.avatar.Position.Z = -5
	d.avatar.Position.X = 2

	d.logf("scene: ready, %d objects", d.scene.Len())

	d.OnScroll(opts.InitialScrollTop)
	return d
}

func (d *Driver) addStar(rng *rand.Rand) {
	star := orbitgl.NewMesh(
		orbitgl.NewSphereGeometry(StarRadius, StarSegments, StarSegments),
		orbitgl.NewStandardMaterial(orbitgl.White),
	)
	star.Name = "star"
	star.SetPosition(spread(rng, StarSpread), spread(rng, StarSpread), spread(rng, StarSpread))
	d.stars = append(d.stars, star)
	d.scene.Add(star)
}

// spread returns a value in (-r/2, r/2].
func spread(rng *rand.Rand, r orbitgl.Scalar) orbitgl.Scalar {
	return r * (0.5 - orbitgl.Scalar(rng.Float64()))
}

// OnScroll applies one document scroll event. top is the document's offset
// from the viewport top (0 or negative).
//
// The mesh spins are per event, not per scrolled pixel.
func (d *Driver) OnScroll(top float64) {
	t := orbitgl.Scalar(top)

	d.moon.Rotation = d.moon.Rotation.Add(moonSpin)
	d.avatar.Rotation = d.avatar.Rotation.Add(avatarSpin)

	d.camera.Position.Z = t * scrollToCameraZ
	d.camera.Position.X = t * scrollToCameraX
	d.camera.Rotation.Y = t * scrollToCameraRotY

	d.scrolls++
}

// OnFrame advances the animation by one display refresh and redraws.
func (d *Driver) OnFrame() {
	d.torus.Rotation = d.torus.Rotation.Add(torusSpin)
	d.controls.Update()
	d.render()
	d.frames++
}

func (d *Driver) render() {
	if d.target == nil {
		return
	}
	d.renderer.Render(d.target, d.scene, d.camera)
}

func (d *Driver) logf(format string, args ...any) {
	if d.log == nil {
		return
	}
	d.log.WriteLineString(fmt.Sprintf(format, args...))
}

// Scene returns the scene graph.
func (d *Driver) Scene() *orbitgl.Scene { return d.scene }

// Camera returns the perspective camera.
func (d *Driver) Camera() *orbitgl.PerspectiveCamera { return d.camera }

// Renderer returns the software renderer drawing into the target.
func (d *Driver) Renderer() *orbitgl.Renderer { return d.renderer }

// Controls returns the orbit controls bound to the camera.
func (d *Driver) Controls() *orbitgl.OrbitControls { return d.controls }

// Torus returns the per-frame spinning torus.
func (d *Driver) Torus() *orbitgl.Mesh { return d.torus }

// Avatar returns the textured cube.
func (d *Driver) Avatar() *orbitgl.Mesh { return d.avatar }

// Moon returns the textured, normal-mapped sphere.
func (d *Driver) Moon() *orbitgl.Mesh { return d.moon }

// Stars returns the star meshes in the order they were added.
func (d *Driver) Stars() []*orbitgl.Mesh { return d.stars }

// ScrollEvents counts OnScroll calls, including the one made by New.
func (d *Driver) ScrollEvents() uint64 { return d.scrolls }

// Frames counts OnFrame calls.
func (d *Driver) Frames() uint64 { return d.frames }
