package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/camera"
)

// pollPointer reads this tick's mouse state: left drag rotates, right drag pans,
// the wheel zooms.
func pollPointer() camera.Input {
	return camera.Input{
		Delta:  rl.GetMouseDelta(),
		Rotate: rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Pan:    rl.IsMouseButtonDown(rl.MouseButtonRight),
		Wheel:  rl.GetMouseWheelMove(),
	}
}
