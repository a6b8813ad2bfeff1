package config

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultScenes embed.FS

// DefaultScene is played when no scene is named.
const DefaultScene = "buttons"

// DefaultSceneIDs returns the ids of the embedded scenes, sorted.
func DefaultSceneIDs() []string {
	entries, err := fs.ReadDir(defaultScenes, "defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids
}
