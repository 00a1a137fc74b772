package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is a perspective camera looking at Target. FOV is the vertical field of view in degrees.
// Aspect is fixed when the camera is created; the viewer never resizes.
type Camera struct {
	Position rl.Vector3
	Target   rl.Vector3
	Up       rl.Vector3
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
}

// NewPerspective returns a camera at the origin looking down -Z with +Y up.
// Aspect is width/height of the viewport; a non-positive height yields aspect 1.
func NewPerspective(fov float32, width, height int, near, far float32) *Camera {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return &Camera{
		Target: rl.NewVector3(0, 0, -1),
		Up:     rl.NewVector3(0, 1, 0),
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// LookAt points the camera at target, keeping the current up direction.
func (c *Camera) LookAt(target rl.Vector3) {
	c.Target = target
}

// ViewVector is the vector from the target to the camera.
func (c *Camera) ViewVector() rl.Vector3 {
	return rl.Vector3Subtract(c.Position, c.Target)
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() rl.Matrix {
	return rl.MatrixLookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection for FOV, Aspect, Near and Far.
func (c *Camera) ProjectionMatrix() rl.Matrix {
	return rl.MatrixPerspective(c.FOV*rl.Deg2rad, c.Aspect, c.Near, c.Far)
}

// Camera3D converts to the raylib camera type (used for picking and helpers that take one).
func (c *Camera) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     c.Target,
		Up:         c.Up,
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

// visibleHeight is the height of the view frustum at distance d.
func (c *Camera) visibleHeight(d float32) float32 {
	return 2 * d * math32.Tan(c.FOV*rl.Deg2rad/2)
}
