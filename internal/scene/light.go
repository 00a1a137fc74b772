package scene

import rl "github.com/gen2brain/raylib-go/raylib"

// LightKind distinguishes the two light sources the viewer uses.
type LightKind int

const (
	Ambient LightKind = iota
	Directional
)

// Light is a static light source. Direction is the direction the light travels
// and is ignored for ambient lights.
type Light struct {
	Kind      LightKind
	Color     rl.Color
	Intensity float32
	Direction rl.Vector3
}

// NewAmbientLight returns a uniform ambient light.
func NewAmbientLight(c rl.Color, intensity float32) Light {
	return Light{Kind: Ambient, Color: c, Intensity: intensity}
}

// NewDirectionalLight returns a light shining from position toward the origin.
func NewDirectionalLight(c rl.Color, intensity float32, position rl.Vector3) Light {
	return Light{
		Kind:      Directional,
		Color:     c,
		Intensity: intensity,
		Direction: rl.Vector3Normalize(rl.Vector3Negate(position)),
	}
}

// DefaultRig returns the fixed light rig: a soft white ambient and a directional key light.
func DefaultRig() []Light {
	return []Light{
		NewAmbientLight(rl.NewColor(255, 255, 255, 255), 0.5),
		NewDirectionalLight(rl.NewColor(255, 250, 242, 255), 0.75, rl.NewVector3(5, 10, 7.5)),
	}
}
