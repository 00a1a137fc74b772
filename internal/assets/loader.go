package assets

import (
	"context"
	"fmt"
	"os"
	"path"

	"model-viewer/internal/scene"
)

// Dispatcher runs fn on the render thread. Loaders fetch in the background and hand
// every completion to the Dispatcher, so decode and callbacks never race with drawing.
type Dispatcher func(fn func())

// Materials is a decoded material library owned by the GPU side.
type Materials interface {
	scene.Disposer
	// Preload resolves the textures of every material.
	Preload() error
}

// Decoder turns local files into GPU resources. It is only called on the render thread.
type Decoder interface {
	DecodeMaterials(path string, lib Library) (Materials, error)
	// DecodeGeometry decodes an OBJ file, binding its faces to mats by material name.
	DecodeGeometry(path string, mats Materials) (scene.Geometry, error)
}

// Loaders is the shared plumbing of the material and geometry loaders.
type Loaders struct {
	Fetcher  Fetcher
	Decoder  Decoder
	Manager  *Manager
	Dispatch Dispatcher
}

// MaterialLoader loads a material library. It is the only way to obtain a MaterialSet.
type MaterialLoader struct {
	l Loaders
}

// NewMaterialLoader returns a loader using l. A nil Manager gets a silent one.
func NewMaterialLoader(l Loaders) *MaterialLoader {
	if l.Manager == nil {
		l.Manager = &Manager{}
	}
	return &MaterialLoader{l: l}
}

// Load fetches the MTL file name and the textures it references, then decodes and
// preloads it on the render thread. Exactly one of onLoad or onError runs.
// A missing texture is reported to the manager but does not fail the library.
func (ml *MaterialLoader) Load(ctx context.Context, name string, onLoad func(*MaterialSet), onError func(error)) {
	l := ml.l
	url := l.Fetcher.URL(name)
	l.Manager.ItemStart(url)
	go func() {
		p, lib, err := ml.fetch(ctx, name)
		l.Dispatch(func() {
			fail := func(err error) {
				l.Manager.ItemError(url, err)
				l.Manager.ItemEnd(url)
				if onError != nil {
					onError(err)
				}
			}
			if err != nil {
				fail(err)
				return
			}
			mats, err := l.Decoder.DecodeMaterials(p, lib)
			if err != nil {
				fail(fmt.Errorf("decode materials: %w", err))
				return
			}
			if err := mats.Preload(); err != nil {
				mats.Dispose()
				fail(fmt.Errorf("preload materials: %w", err))
				return
			}
			l.Manager.ItemEnd(url)
			onLoad(&MaterialSet{mats: mats, lib: lib, l: l})
		})
	}()
}

// fetch runs off the render thread.
func (ml *MaterialLoader) fetch(ctx context.Context, name string) (string, Library, error) {
	l := ml.l
	p, err := l.Fetcher.Fetch(ctx, name)
	if err != nil {
		return "", Library{}, err
	}
	f, err := os.Open(p)
	if err != nil {
		return "", Library{}, fmt.Errorf("assets: %w", err)
	}
	lib, err := ScanLibrary(f, path.Dir(name))
	f.Close()
	if err != nil {
		return "", Library{}, fmt.Errorf("assets: %s: %w", l.Fetcher.URL(name), err)
	}
	for _, tex := range lib.Textures {
		texURL := l.Fetcher.URL(tex)
		l.Manager.ItemStart(texURL)
		if _, err := l.Fetcher.Fetch(ctx, tex); err != nil {
			l.Manager.ItemError(texURL, err)
		}
		l.Manager.ItemEnd(texURL)
	}
	return p, lib, nil
}

// MaterialSet is a decoded, preloaded material library. Once a mesh is built from it,
// the mesh owns it and releases it together with the geometry.
type MaterialSet struct {
	mats     Materials
	lib      Library
	l        Loaders
	disposed bool
}

// Names returns the material names in file order.
func (s *MaterialSet) Names() []string {
	return s.lib.Names
}

// Materials returns the decoded library.
func (s *MaterialSet) Materials() Materials {
	return s.mats
}

// Dispose releases the decoded materials once.
func (s *MaterialSet) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.mats.Dispose()
}

// NewGeometryLoader returns a geometry loader bound to this set.
func (s *MaterialSet) NewGeometryLoader() *GeometryLoader {
	return &GeometryLoader{set: s, l: s.l}
}

// GeometryLoader loads OBJ geometry against a preloaded MaterialSet.
type GeometryLoader struct {
	set *MaterialSet
	l   Loaders
}

// Load fetches the OBJ file name and decodes it on the render thread into a mesh that
// owns both the geometry and the material set. Exactly one of onLoad or onError runs.
func (gl *GeometryLoader) Load(ctx context.Context, name string, onLoad func(*scene.Mesh), onError func(error)) {
	l := gl.l
	url := l.Fetcher.URL(name)
	l.Manager.ItemStart(url)
	go func() {
		p, err := l.Fetcher.Fetch(ctx, name)
		l.Dispatch(func() {
			if err == nil {
				var geom scene.Geometry
				geom, err = l.Decoder.DecodeGeometry(p, gl.set.mats)
				if err == nil {
					l.Manager.ItemEnd(url)
					onLoad(scene.NewMesh(path.Base(name), geom, gl.set))
					return
				}
				err = fmt.Errorf("decode geometry: %w", err)
			}
			l.Manager.ItemError(url, err)
			l.Manager.ItemEnd(url)
			if onError != nil {
				onError(err)
			}
		})
	}()
}
