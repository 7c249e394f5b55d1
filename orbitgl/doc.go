// Package orbitgl is a small software 3D engine for scroll-driven scenes.
//
// It keeps a three-style object model (scene, meshes, lights, helpers,
// perspective camera, orbit controls) on top of a fixed software pipeline:
//
//	Scene → Transform → Projection → Cull → Rasterization → Target.
//
// The renderer draws into a caller-provided Target and never owns a window.
// Textures load asynchronously from an fs.FS; until a load completes the
// material renders without imagery.
//
// All math is float32. Nothing in the package is safe for concurrent mutation
// except Texture publication, which the loader does from its own goroutines.
package orbitgl
