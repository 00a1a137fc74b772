package graphics

import (
	"errors"
	"fmt"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/assets"
	"model-viewer/internal/scene"
)

// Decoder loads MTL and OBJ files into raylib materials and models.
type Decoder struct {
	lighting *Lighting
}

// NewDecoder returns a decoder whose materials use the given lit shader.
func NewDecoder(lighting *Lighting) *Decoder {
	return &Decoder{lighting: lighting}
}

// DecodeMaterials loads every material of the MTL file at path.
func (d *Decoder) DecodeMaterials(path string, lib assets.Library) (assets.Materials, error) {
	mats := rl.LoadMaterials(path)
	if len(mats) == 0 {
		return nil, fmt.Errorf("%s: no materials", path)
	}
	return &materialLibrary{
		dir:      filepath.Dir(path),
		lib:      lib,
		mats:     mats,
		original: make([]rl.Shader, len(mats)),
		lit:      d.lighting.Shader(),
	}, nil
}

// DecodeGeometry loads the OBJ file at path and puts the library's materials into
// its material slots.
func (d *Decoder) DecodeGeometry(path string, mats assets.Materials) (scene.Geometry, error) {
	ml, ok := mats.(*materialLibrary)
	if !ok {
		return nil, errors.New("graphics: materials were not decoded by this decoder")
	}
	model := rl.LoadModel(path)
	if !rl.IsModelValid(model) {
		return nil, fmt.Errorf("%s: invalid model", path)
	}
	ml.bind(model)
	return &modelGeometry{model: model, bounds: rl.GetModelBoundingBox(model)}, nil
}

// materialLibrary is a decoded MTL file. After bind its maps belong to the model,
// which frees them on unload; the textures stay ours.
type materialLibrary struct {
	dir      string
	lib      assets.Library
	mats     []rl.Material
	original []rl.Shader
	lit      rl.Shader
	bound    bool
	released bool
}

// Preload resolves each diffuse map next to the MTL file, checks that every material
// is usable and switches it to the lit shader. A texture that cannot be loaded
// leaves raylib's default white texture in place.
func (m *materialLibrary) Preload() error {
	def := rl.GetTextureIdDefault()
	for i := range m.mats {
		albedo := m.mats[i].GetMap(rl.MapAlbedo)
		if rel, ok := m.lib.Diffuse[m.name(i)]; ok && (albedo.Texture.ID == 0 || albedo.Texture.ID == def) {
			tex := rl.LoadTexture(filepath.Join(m.dir, filepath.FromSlash(rel)))
			if rl.IsTextureValid(tex) {
				albedo.Texture = tex
			}
		}
		if !rl.IsMaterialValid(m.mats[i]) {
			return fmt.Errorf("material %s is not usable", m.name(i))
		}
		m.original[i] = m.mats[i].Shader
		m.mats[i].Shader = m.lit
	}
	return nil
}

func (m *materialLibrary) name(i int) string {
	if i < len(m.lib.Names) {
		return m.lib.Names[i]
	}
	return fmt.Sprintf("#%d", i)
}

// bind replaces the model's own copies of the materials. The OBJ loader numbers
// material slots in newmtl order, the same order as the library.
func (m *materialLibrary) bind(model rl.Model) {
	slots := model.GetMaterials()
	for i := range slots {
		if i >= len(m.mats) {
			break
		}
		rl.UnloadMaterial(slots[i])
		slots[i] = m.mats[i]
	}
	m.bound = true
}

// Dispose releases the textures, and the maps too while no model owns them.
// Repeated calls do nothing.
func (m *materialLibrary) Dispose() {
	if m.released {
		return
	}
	m.released = true
	for i := range m.mats {
		m.mats[i].Shader = m.original[i]
		if m.bound {
			unloadTextures(m.mats[i])
			continue
		}
		rl.UnloadMaterial(m.mats[i])
	}
}

func unloadTextures(mat rl.Material) {
	def := rl.GetTextureIdDefault()
	for i := int32(0); i < rl.MaxMaterialMaps; i++ {
		tex := mat.GetMap(i).Texture
		if tex.ID != 0 && tex.ID != def {
			rl.UnloadTexture(tex)
		}
	}
}

// modelGeometry is a loaded OBJ model.
type modelGeometry struct {
	model    rl.Model
	bounds   rl.BoundingBox
	released bool
}

// Bounds returns the model-space bounding box.
func (g *modelGeometry) Bounds() rl.BoundingBox {
	return g.bounds
}

func (g *modelGeometry) draw(transform rl.Matrix) {
	g.model.Transform = transform
	rl.DrawModel(g.model, rl.NewVector3(0, 0, 0), 1, rl.White)
}

// Dispose unloads the model. Repeated calls do nothing.
func (g *modelGeometry) Dispose() {
	if g.released {
		return
	}
	g.released = true
	rl.UnloadModel(g.model)
}
