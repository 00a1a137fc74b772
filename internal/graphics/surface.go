package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/camera"
	"model-viewer/internal/scene"
)

// Surface is an off-screen render texture with a transparent background.
type Surface struct {
	target   rl.RenderTexture2D
	width    int
	height   int
	lighting *Lighting
	released bool
}

// NewSurface allocates a width x height render texture lit by lighting.
func NewSurface(width, height int, lighting *Lighting) (*Surface, error) {
	target := rl.LoadRenderTexture(int32(width), int32(height))
	if !rl.IsRenderTextureValid(target) {
		return nil, ErrNoContext
	}
	return &Surface{target: target, width: width, height: height, lighting: lighting}, nil
}

// Render draws every mesh of s as seen by c.
func (s *Surface) Render(scn *scene.Scene, c *camera.Camera) {
	if s.released {
		return
	}
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	begin3D(c)
	s.lighting.Apply(scn.Lights(), c.Position)
	for _, m := range scn.Meshes() {
		if g, ok := m.Geometry.(*modelGeometry); ok {
			g.draw(m.Transform())
		}
	}
	rl.EndMode3D()
	rl.EndTextureMode()
}

// begin3D is BeginMode3D with the camera's own projection, so near and far planes
// come from the camera instead of raylib's defaults. EndMode3D undoes it.
func begin3D(c *camera.Camera) {
	rl.DrawRenderBatchActive()
	rl.MatrixMode(rl.Projection)
	rl.PushMatrix()
	rl.LoadIdentity()
	rl.SetMatrixProjection(c.ProjectionMatrix())
	rl.MatrixMode(rl.Modelview)
	rl.LoadIdentity()
	rl.SetMatrixModelview(c.ViewMatrix())
	rl.EnableDepthTest()
}

// present blits the texture to the window. Render textures are stored upside down.
func (s *Surface) present() {
	src := rl.NewRectangle(0, 0, float32(s.width), -float32(s.height))
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
}

// Dispose releases the render texture. Repeated calls do nothing.
func (s *Surface) Dispose() {
	if s.released {
		return
	}
	s.released = true
	rl.UnloadRenderTexture(s.target)
}
