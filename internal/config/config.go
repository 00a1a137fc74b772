package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the viewer config file, relative to the process working directory.
const DefaultPath = "config/viewer.yaml"

// Window is the initial window geometry. The window is never resized after start.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
}

// Camera holds the projection and orbit controller settings.
type Camera struct {
	FOV         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Offset      [3]float32 `yaml:"offset"`
	Damping     float32    `yaml:"damping"`
	RotateSpeed float32    `yaml:"rotate_speed"`
	ZoomSpeed   float32    `yaml:"zoom_speed"`
	PanSpeed    float32    `yaml:"pan_speed"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
}

// Model controls normalization of the loaded object.
type Model struct {
	Scale float32 `yaml:"scale"`
}

// Assets locates the material and geometry files. Root is a directory, a .zip bundle
// or an http(s) URL; Materials and Geometry are relative to it.
type Assets struct {
	Root      string `yaml:"root"`
	Materials string `yaml:"materials"`
	Geometry  string `yaml:"geometry"`
	CacheDir  string `yaml:"cache_dir"`
}

// Config is the full viewer configuration.
type Config struct {
	Window       Window `yaml:"window"`
	Camera       Camera `yaml:"camera"`
	Model        Model  `yaml:"model"`
	Assets       Assets `yaml:"assets"`
	LogFile      string `yaml:"log_file"`
	ShowFPS      bool   `yaml:"show_fps"`
	ShowMemAlloc bool   `yaml:"show_memalloc"`
}

// Default returns the built-in configuration: 75° camera, 25x model scale, assets under ./assets.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "model viewer", FPS: 60},
		Camera: Camera{
			FOV:         75,
			Near:        0.1,
			Far:         1000,
			Offset:      [3]float32{0, 5, 10},
			Damping:     0,
			RotateSpeed: 1,
			ZoomSpeed:   1,
			PanSpeed:    1,
			MinDistance: 0.5,
			MaxDistance: 500,
		},
		Model: Model{Scale: 25},
		Assets: Assets{
			Root:      "assets",
			Materials: "models/model.mtl",
			Geometry:  "models/model.obj",
			CacheDir:  "assets/.cache",
		},
		LogFile: "logs/viewer.txt",
	}
}

// Load reads path over Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the viewer cannot start with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("config: camera fov %v out of range", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("config: camera near/far %v/%v invalid", c.Camera.Near, c.Camera.Far)
	case c.Model.Scale <= 0:
		return fmt.Errorf("config: model scale %v must be positive", c.Model.Scale)
	case c.Assets.Materials == "" || c.Assets.Geometry == "":
		return fmt.Errorf("config: assets.materials and assets.geometry are required")
	}
	return nil
}
