package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tween/internal/platform/tui"
	"github.com/vovakirdan/tui-tween/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scene picker menu",
	Long: `Start tween in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a scene and Tab to browse
recorded runs. Leaving a scene with Esc returns to the menu.

Examples:
  tween menu
  tween menu --fps 30
  tween menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	requireTerminal()

	logger, closeLog := mustLogger(true)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	items := tui.LoadMenuItems()

	for {
		menuResult, err := tui.RunMenu(items, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return

		case menuResult.WantsRuns:
			goBack, runsErr := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if !goBack {
				return
			}

		case menuResult.Scene != nil:
			goBack, playErr := tui.Run(*menuResult.Scene, cfg, logger)
			if playErr != nil {
				fmt.Fprintf(os.Stderr, "Error running scene: %v\n", playErr)
				continue
			}
			if !goBack {
				return
			}
		}
	}
}
