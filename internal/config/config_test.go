package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, float32(75), cfg.Camera.FOV)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, float32(1000), cfg.Camera.Far)
	assert.Equal(t, float32(25), cfg.Model.Scale)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 800
  height: 600
assets:
  root: https://example.com/static
  geometry: models/ship.obj
show_fps: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "https://example.com/static", cfg.Assets.Root)
	assert.Equal(t, "models/ship.obj", cfg.Assets.Geometry)
	assert.Equal(t, "models/model.mtl", cfg.Assets.Materials)
	assert.True(t, cfg.ShowFPS)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  scale: -1\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("window: [broken"), 0644))
	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "viewer.yaml")
	cfg := Default()
	cfg.Camera.Damping = 0.1
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\nVIEWER_TEST_A=\"quoted\"\nVIEWER_TEST_B = plain\n=skipped\nnoequals\n"), 0644))
	t.Setenv("VIEWER_TEST_B", "preset")
	os.Unsetenv("VIEWER_TEST_A")
	t.Cleanup(func() { os.Unsetenv("VIEWER_TEST_A") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "quoted", os.Getenv("VIEWER_TEST_A"))
	assert.Equal(t, "preset", os.Getenv("VIEWER_TEST_B"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing")))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAssetRoot: "bundle.zip",
		EnvGeometry:  "m.obj",
		EnvShowFPS:   "true",
		EnvMaterials: "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := ApplyEnv(Default(), lookup)
	assert.Equal(t, "bundle.zip", cfg.Assets.Root)
	assert.Equal(t, "m.obj", cfg.Assets.Geometry)
	assert.Equal(t, "models/model.mtl", cfg.Assets.Materials)
	assert.True(t, cfg.ShowFPS)
}
