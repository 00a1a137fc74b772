package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mesh is a decoded object placed in the scene: geometry, material, and a
// scale-then-translate transform.
type Mesh struct {
	Name     string
	Geometry Geometry
	Material Disposer
	Position rl.Vector3
	Scale    rl.Vector3

	released bool
}

// NewMesh returns a mesh at the origin with unit scale.
func NewMesh(name string, geom Geometry, mtl Disposer) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: geom,
		Material: mtl,
		Scale:    rl.NewVector3(1, 1, 1),
	}
}

// SetUniformScale sets the same scale factor on all three axes.
func (m *Mesh) SetUniformScale(s float32) {
	m.Scale = rl.NewVector3(s, s, s)
}

// WorldBounds returns the axis-aligned bounding box after scale and translation.
func (m *Mesh) WorldBounds() rl.BoundingBox {
	if m.Geometry == nil {
		return rl.NewBoundingBox(m.Position, m.Position)
	}
	raw := m.Geometry.Bounds()
	a := rl.Vector3Add(rl.Vector3Multiply(raw.Min, m.Scale), m.Position)
	b := rl.Vector3Add(rl.Vector3Multiply(raw.Max, m.Scale), m.Position)
	// negative scale swaps the corners
	return rl.NewBoundingBox(rl.Vector3Min(a, b), rl.Vector3Max(a, b))
}

// Center translates the mesh so the center of its world bounding box sits at the origin.
func (m *Mesh) Center() {
	m.Position = rl.Vector3Subtract(m.Position, BoxCenter(m.WorldBounds()))
}

// Transform returns the model matrix (scale, then translate).
func (m *Mesh) Transform() rl.Matrix {
	return rl.MatrixMultiply(
		rl.MatrixScale(m.Scale.X, m.Scale.Y, m.Scale.Z),
		rl.MatrixTranslate(m.Position.X, m.Position.Y, m.Position.Z),
	)
}

// Dispose releases material, then geometry. Repeated calls do nothing.
// The material goes first because a decoded model frees its material slots with the geometry.
func (m *Mesh) Dispose() {
	if m.released {
		return
	}
	m.released = true
	if m.Material != nil {
		m.Material.Dispose()
	}
	if m.Geometry != nil {
		m.Geometry.Dispose()
	}
}

// BoxCenter returns the midpoint of b.
func BoxCenter(b rl.BoundingBox) rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(b.Min, b.Max), 0.5)
}
