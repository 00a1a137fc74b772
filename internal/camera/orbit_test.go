package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-3

func newTestCamera() *Camera {
	cam := NewPerspective(75, 1280, 720, 0.1, 1000)
	cam.Position = rl.NewVector3(0, 5, 10)
	cam.LookAt(rl.NewVector3(0, 0, 0))
	return cam
}

func TestNewPerspective(t *testing.T) {
	cam := NewPerspective(75, 1280, 720, 0.1, 1000)
	assert.Equal(t, float32(75), cam.FOV)
	assert.InDelta(t, 1280.0/720.0, cam.Aspect, tol)
	assert.Equal(t, float32(0.1), cam.Near)
	assert.Equal(t, float32(1000), cam.Far)

	assert.Equal(t, float32(1), NewPerspective(75, 10, 0, 0.1, 1).Aspect)
}

func TestRotatePreservesDistance(t *testing.T) {
	cam := newTestCamera()
	o := NewOrbitControls(cam, 720, Options{})
	before := rl.Vector3Length(cam.ViewVector())

	o.HandleInput(Input{Delta: rl.NewVector2(120, -40), Rotate: true})

	assert.InDelta(t, before, rl.Vector3Length(cam.ViewVector()), tol)
	assert.NotEqual(t, rl.NewVector3(0, 5, 10), cam.Position)
	assert.Equal(t, rl.NewVector3(0, 0, 0), cam.Target)
}

func TestPolarClamped(t *testing.T) {
	cam := newTestCamera()
	o := NewOrbitControls(cam, 100, Options{})
	o.HandleInput(Input{Delta: rl.NewVector2(0, 10000), Rotate: true})
	offset := cam.ViewVector()
	assert.Greater(t, rl.Vector3Length(rl.NewVector3(offset.X, 0, offset.Z)), float32(0))
}

func TestZoomClampsDistance(t *testing.T) {
	cam := newTestCamera()
	o := NewOrbitControls(cam, 720, Options{MinDistance: 2, MaxDistance: 20})

	o.HandleInput(Input{Wheel: 200})
	assert.InDelta(t, 2, rl.Vector3Length(cam.ViewVector()), tol)

	o.HandleInput(Input{Wheel: -500})
	assert.InDelta(t, 20, rl.Vector3Length(cam.ViewVector()), tol)
}

func TestPanMovesTargetAndCamera(t *testing.T) {
	cam := newTestCamera()
	o := NewOrbitControls(cam, 720, Options{})
	view := cam.ViewVector()

	o.HandleInput(Input{Delta: rl.NewVector2(50, 0), Pan: true})

	assert.Less(t, cam.Target.X, float32(0))
	got := cam.ViewVector()
	assert.InDelta(t, view.X, got.X, tol)
	assert.InDelta(t, view.Y, got.Y, tol)
	assert.InDelta(t, view.Z, got.Z, tol)
}

func TestChangeEmittedOncePerMove(t *testing.T) {
	cam := newTestCamera()
	o := NewOrbitControls(cam, 720, Options{})
	changes := 0
	remove := o.OnChange(func() { changes++ })

	o.HandleInput(Input{Delta: rl.NewVector2(10, 0), Rotate: true})
	assert.Equal(t, 1, changes)

	o.HandleInput(Input{})
	o.HandleInput(Input{Delta: rl.NewVector2(10, 0)})
	assert.Equal(t, 1, changes, "no drag, no change")

	remove()
	assert.Equal(t, 0, o.Listeners())
	o.HandleInput(Input{Delta: rl.NewVector2(10, 0), Rotate: true})
	assert.Equal(t, 1, changes)
}

func TestDampingDecays(t *testing.T) {
	cam := newTestCamera()
	o := NewOrbitControls(cam, 720, Options{Damping: 0.25})
	changes := 0
	o.OnChange(func() { changes++ })

	o.HandleInput(Input{Delta: rl.NewVector2(100, 0), Rotate: true})
	assert.Equal(t, 0, changes, "damped input waits for Update")
	assert.True(t, o.Pending())

	updates := 0
	for o.Update() {
		updates++
		require.Less(t, updates, 1000)
	}
	assert.Greater(t, updates, 1)
	assert.Equal(t, updates, changes)
}

func TestInputActive(t *testing.T) {
	assert.False(t, Input{}.Active())
	assert.False(t, Input{Delta: rl.NewVector2(3, 0)}.Active(), "move without a button")
	assert.False(t, Input{Rotate: true}.Active())
	assert.True(t, Input{Delta: rl.NewVector2(3, 0), Rotate: true}.Active())
	assert.True(t, Input{Delta: rl.NewVector2(0, -2), Pan: true}.Active())
	assert.True(t, Input{Wheel: -1}.Active())
}

func TestDisposeStopsControls(t *testing.T) {
	cam := newTestCamera()
	o := NewOrbitControls(cam, 720, Options{})
	changes := 0
	o.OnChange(func() { changes++ })
	o.Dispose()

	o.HandleInput(Input{Delta: rl.NewVector2(10, 0), Rotate: true})
	assert.False(t, o.Update())
	assert.Equal(t, 0, changes)
	assert.Equal(t, 0, o.Listeners())
}

func TestProjectionMatchesFOV(t *testing.T) {
	cam := newTestCamera()
	p := cam.ProjectionMatrix()
	// M5 holds 1/tan(fov/2) for a perspective projection.
	assert.InDelta(t, 1/0.7673, p.M5, tol)
}
