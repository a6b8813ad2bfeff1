package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSceneNotFound is returned when no search location has the scene.
var ErrSceneNotFound = errors.New("config: scene not found")

// LocalDir is the project-relative scene directory.
const LocalDir = "scenes"

// ParseScene decodes and validates a scene document.
func ParseScene(data []byte) (SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse scene: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadScene loads the scene with the given id.
// Search order: customPath -> ~/.tween/scenes/<id>.yaml -> ./scenes/<id>.yaml -> embedded default
//
// A custom path must load; broken files in the other locations are skipped.
func LoadScene(id, customPath string) (SceneConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SceneConfig{}, fmt.Errorf("config: cannot read scene %s: %w", customPath, err)
		}
		cfg, err := ParseScene(data)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := id + ".yaml"
	for _, dir := range []string{userSceneDir(), LocalDir} {
		if dir == "" {
			continue
		}
		if data, err := os.ReadFile(filepath.Join(dir, filename)); err == nil {
			if cfg, err := ParseScene(data); err == nil {
				return cfg, nil
			}
		}
	}

	data, err := defaultScenes.ReadFile("defaults/" + filename)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("%w: %q", ErrSceneNotFound, id)
	}
	return ParseScene(data)
}

// SceneIDs lists every scene id available from any location, sorted.
func SceneIDs() []string {
	ids := make(map[string]bool)
	for _, id := range DefaultSceneIDs() {
		ids[id] = true
	}
	for _, dir := range []string{userSceneDir(), LocalDir} {
		if dir == "" {
			continue
		}
		matches, _ := filepath.Glob(filepath.Join(dir, "*.yaml"))
		for _, m := range matches {
			ids[strings.TrimSuffix(filepath.Base(m), ".yaml")] = true
		}
	}

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// userSceneDir returns ~/.tween/scenes, or empty if home is unavailable.
func userSceneDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tween", "scenes")
}
