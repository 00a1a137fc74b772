package scene

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeometry struct {
	bounds   rl.BoundingBox
	disposed int
}

func (g *fakeGeometry) Bounds() rl.BoundingBox { return g.bounds }
func (g *fakeGeometry) Dispose()               { g.disposed++ }

type fakeMaterial struct{ disposed int }

func (m *fakeMaterial) Dispose() { m.disposed++ }

const tol = 1e-4

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

func TestCenterSymmetricBox(t *testing.T) {
	g := &fakeGeometry{bounds: rl.NewBoundingBox(rl.NewVector3(-4, -4, -4), rl.NewVector3(4, 4, 4))}
	m := NewMesh("model", g, &fakeMaterial{})
	m.SetUniformScale(25)
	m.Center()

	b := m.WorldBounds()
	assertVec(t, rl.NewVector3(0, 0, 0), BoxCenter(b))
	assertVec(t, rl.NewVector3(-100, -100, -100), b.Min)
	assertVec(t, rl.NewVector3(100, 100, 100), b.Max)
}

func TestCenterIgnoresAuthoredOffset(t *testing.T) {
	cases := []rl.BoundingBox{
		rl.NewBoundingBox(rl.NewVector3(10, 2, -7), rl.NewVector3(14, 9, -1)),
		rl.NewBoundingBox(rl.NewVector3(-300, 0, 0), rl.NewVector3(-299.5, 0.25, 0.5)),
		rl.NewBoundingBox(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, 0)),
	}
	for _, raw := range cases {
		m := NewMesh("model", &fakeGeometry{bounds: raw}, nil)
		m.Position = rl.NewVector3(3, -2, 1)
		m.SetUniformScale(25)
		m.Center()
		assertVec(t, rl.NewVector3(0, 0, 0), BoxCenter(m.WorldBounds()))
	}
}

func TestWorldBoundsNegativeScale(t *testing.T) {
	g := &fakeGeometry{bounds: rl.NewBoundingBox(rl.NewVector3(1, 1, 1), rl.NewVector3(2, 2, 2))}
	m := NewMesh("m", g, nil)
	m.Scale = rl.NewVector3(-1, 1, 1)
	b := m.WorldBounds()
	assertVec(t, rl.NewVector3(-2, 1, 1), b.Min)
	assertVec(t, rl.NewVector3(-1, 2, 2), b.Max)
}

func TestDisposeReleasesOnce(t *testing.T) {
	s := New()
	var geoms []*fakeGeometry
	var mtls []*fakeMaterial
	for i := 0; i < 3; i++ {
		g, mt := &fakeGeometry{}, &fakeMaterial{}
		geoms, mtls = append(geoms, g), append(mtls, mt)
		require.NoError(t, s.Add(NewMesh("m", g, mt)))
	}
	require.NoError(t, s.AddLight(NewAmbientLight(rl.White, 1)))

	s.Dispose()
	s.Dispose()

	for i := range geoms {
		assert.Equal(t, 1, geoms[i].disposed)
		assert.Equal(t, 1, mtls[i].disposed)
	}
	assert.True(t, s.Disposed())
	assert.Empty(t, s.Meshes())
	assert.Empty(t, s.Lights())
	assert.ErrorIs(t, s.Add(NewMesh("late", &fakeGeometry{}, nil)), ErrDisposed)
	assert.ErrorIs(t, s.AddLight(NewAmbientLight(rl.White, 1)), ErrDisposed)
}

func TestDefaultRig(t *testing.T) {
	rig := DefaultRig()
	require.Len(t, rig, 2)
	assert.Equal(t, Ambient, rig[0].Kind)
	assert.Equal(t, Directional, rig[1].Kind)
	assert.InDelta(t, 1, rl.Vector3Length(rig[1].Direction), tol)
	assert.Less(t, rig[1].Direction.Y, float32(0))
}

func TestTransformMatchesWorldBounds(t *testing.T) {
	g := &fakeGeometry{bounds: rl.NewBoundingBox(rl.NewVector3(-1, 0, 2), rl.NewVector3(3, 4, 6))}
	m := NewMesh("m", g, nil)
	m.SetUniformScale(2)
	m.Center()
	got := rl.Vector3Transform(g.bounds.Max, m.Transform())
	assertVec(t, m.WorldBounds().Max, got)
}
