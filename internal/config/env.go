package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override file settings.
const (
	EnvAssetRoot = "VIEWER_ASSET_ROOT"
	EnvMaterials = "VIEWER_MATERIALS"
	EnvGeometry  = "VIEWER_GEOMETRY"
	EnvLogFile   = "VIEWER_LOG_FILE"
	EnvShowFPS   = "VIEWER_SHOW_FPS"
)

// LoadDotEnv reads path (e.g. ".env") and sets an environment variable for each
// KEY=VALUE line. Empty lines and # comments are skipped; a missing file is not an error.
// Variables already set in the environment win over the file.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// ApplyEnv overrides cfg with any VIEWER_* variables read through lookup (os.LookupEnv in main).
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	if v, ok := lookup(EnvAssetRoot); ok && v != "" {
		cfg.Assets.Root = v
	}
	if v, ok := lookup(EnvMaterials); ok && v != "" {
		cfg.Assets.Materials = v
	}
	if v, ok := lookup(EnvGeometry); ok && v != "" {
		cfg.Assets.Geometry = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		cfg.LogFile = v
	}
	if v, ok := lookup(EnvShowFPS); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ShowFPS = b
		}
	}
	return cfg
}
