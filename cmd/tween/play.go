package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tween/internal/config"
	"github.com/vovakirdan/tui-tween/internal/platform/tui"
)

var flagSceneFile string

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Play a scene",
	Long: `Play the specified scene (default: buttons).

Controls:
  Space/P    - Pause/resume
  .          - Step one frame while paused
  R          - Restart the scene
  +/-        - Double/halve playback speed
  Ctrl+S     - Save the screen to ~/.tween/screenshots
  Esc/B      - Leave
  Q/Ctrl+C   - Quit

Examples:
  tween play
  tween play easing
  tween play bounce --speed 0.5
  tween play --scene-file ./my-scene.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSceneFile, "scene-file", "", "Path to a scene YAML file")
}

// loadScene resolves the scene from args and --scene-file, exiting on error.
func loadScene(args []string) config.SceneConfig {
	id := config.DefaultScene
	if len(args) > 0 {
		id = args[0]
	}

	sc, err := config.LoadScene(id, flagSceneFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tween list' to see available scenes.")
		os.Exit(1)
	}
	return sc
}

func runPlay(_ *cobra.Command, args []string) {
	sc := loadScene(args)
	requireTerminal()

	logger, closeLog := mustLogger(true)
	defer closeLog()

	if _, err := tui.Run(sc, runtimeConfig(), logger); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
		os.Exit(1)
	}
}
