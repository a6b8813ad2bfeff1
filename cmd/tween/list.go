package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tween/internal/anim"
	"github.com/vovakirdan/tui-tween/internal/config"
	"github.com/vovakirdan/tui-tween/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenes, property kinds and paths",
	Long: `Shows every scene available from ~/.tween/scenes, ./scenes and the
built-in set, the animatable property kinds and the path names usable in
scene files.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	ids := config.SceneIDs()

	fmt.Println("Scenes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, id := range ids {
		maxIDLen = max(maxIDLen, len(id))
	}
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Animations", "Title")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "----------", "-----")
	for _, id := range ids {
		sc, err := config.LoadScene(id, "")
		if err != nil {
			fmt.Printf("  %-*s  %-10s  (%v)\n", maxIDLen, id, "-", err)
			continue
		}
		fmt.Printf("  %-*s  %-10d  %s\n", maxIDLen, id, len(sc.Animations), sc.Title)
	}

	fmt.Println()
	fmt.Println("Properties:")
	fmt.Println()
	props := registry.List()
	maxKindLen := 4
	for _, p := range props {
		maxKindLen = max(maxKindLen, len(p.Kind))
	}
	for _, p := range props {
		fmt.Printf("  %-*s  %s\n", maxKindLen, p.Kind, p.Title)
	}

	fmt.Println()
	fmt.Println("Paths:")
	fmt.Println()
	fmt.Printf("  %s\n", strings.Join(anim.PathNames(), ", "))

	fmt.Println()
	fmt.Println("Run 'tween play <id>' to play a scene.")
}
