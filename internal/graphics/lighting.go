package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/scene"
)

const (
	defaultSpecularPower    = float32(48.0)
	defaultSpecularStrength = float32(0.35)
)

// Lighting is the lit shader shared by every model material, plus the uniform
// locations fed from the scene's ambient and directional lights.
type Lighting struct {
	shader       rl.Shader
	viewPos      int32
	lightDir     int32
	ambient      int32
	lightColor   int32
	intensity    int32
	specPower    int32
	specStrength int32
}

// NewLighting compiles the lit shader. Call after the window exists.
func NewLighting() (*Lighting, error) {
	shader := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(shader) {
		return nil, ErrShader
	}
	return &Lighting{
		shader:       shader,
		viewPos:      rl.GetShaderLocation(shader, "viewPos"),
		lightDir:     rl.GetShaderLocation(shader, "lightDir"),
		ambient:      rl.GetShaderLocation(shader, "ambient"),
		lightColor:   rl.GetShaderLocation(shader, "lightColor"),
		intensity:    rl.GetShaderLocation(shader, "lightIntensity"),
		specPower:    rl.GetShaderLocation(shader, "specularPower"),
		specStrength: rl.GetShaderLocation(shader, "specularStrength"),
	}, nil
}

// Shader returns the lit shader for binding to materials.
func (l *Lighting) Shader() rl.Shader {
	return l.shader
}

// Apply uploads the ambient and directional light of the scene and the camera position.
// Missing lights contribute nothing.
func (l *Lighting) Apply(lights []scene.Light, viewPos rl.Vector3) {
	amb := [4]float32{0, 0, 0, 1}
	dir := [3]float32{0, 1, 0}
	col := [3]float32{0, 0, 0}
	var intensity float32
	for _, lt := range lights {
		c := rl.ColorNormalize(lt.Color)
		switch lt.Kind {
		case scene.Ambient:
			amb = [4]float32{c.X * lt.Intensity, c.Y * lt.Intensity, c.Z * lt.Intensity, 1}
		case scene.Directional:
			// the shader wants the direction toward the light
			dir = [3]float32{-lt.Direction.X, -lt.Direction.Y, -lt.Direction.Z}
			col = [3]float32{c.X, c.Y, c.Z}
			intensity = lt.Intensity
		}
	}
	view := [3]float32{viewPos.X, viewPos.Y, viewPos.Z}
	setVec(l.shader, l.viewPos, view[:], rl.ShaderUniformVec3)
	setVec(l.shader, l.lightDir, dir[:], rl.ShaderUniformVec3)
	setVec(l.shader, l.ambient, amb[:], rl.ShaderUniformVec4)
	setVec(l.shader, l.lightColor, col[:], rl.ShaderUniformVec3)
	setVec(l.shader, l.intensity, []float32{intensity}, rl.ShaderUniformFloat)
	setVec(l.shader, l.specPower, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	setVec(l.shader, l.specStrength, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
}

func setVec(shader rl.Shader, loc int32, v []float32, typ rl.ShaderUniformDataType) {
	if loc < 0 {
		return
	}
	rl.SetShaderValueV(shader, loc, v, typ, 1)
}

// Unload releases the shader.
func (l *Lighting) Unload() {
	rl.UnloadShader(l.shader)
}

// Lit shader: albedo texture times diffuse color, lit by one directional light plus ambient.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 1.0)));
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)
