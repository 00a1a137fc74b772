package scene

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrDisposed is returned when adding to a scene after Dispose.
var ErrDisposed = errors.New("scene: disposed")

// Disposer releases GPU-side resources.
type Disposer interface {
	Dispose()
}

// Geometry is decoded vertex data. Bounds is the raw, untransformed bounding box as authored.
type Geometry interface {
	Disposer
	Bounds() rl.BoundingBox
}

// Scene is the ownership root of the meshes and lights of one viewing session.
// It lives between session start and stop; Dispose releases every owned mesh.
// Not safe for concurrent use: all access happens on the render thread.
type Scene struct {
	meshes   []*Mesh
	lights   []Light
	disposed bool
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add inserts m into the scene. The scene takes ownership of its resources.
func (s *Scene) Add(m *Mesh) error {
	if s.disposed {
		return ErrDisposed
	}
	s.meshes = append(s.meshes, m)
	return nil
}

// AddLight appends a light. Lights are static once added.
func (s *Scene) AddLight(l Light) error {
	if s.disposed {
		return ErrDisposed
	}
	s.lights = append(s.lights, l)
	return nil
}

// Meshes returns the meshes in insertion order. The slice must not be modified.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Lights returns the lights in insertion order.
func (s *Scene) Lights() []Light {
	return s.lights
}

// Disposed reports whether Dispose has run.
func (s *Scene) Disposed() bool {
	return s.disposed
}

// Dispose releases geometry and material of every mesh exactly once and empties the scene.
// Calling it again is a no-op.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, m := range s.meshes {
		m.Dispose()
	}
	s.meshes = nil
	s.lights = nil
}
