package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tween/internal/platform/tui"
	"github.com/vovakirdan/tui-tween/internal/storage"
	"github.com/vovakirdan/tui-tween/internal/trace"
)

var (
	flagTicks     int
	flagStep      time.Duration
	flagUntilDone bool
	flagDryRun    bool
	flagWidth     int
	flagHeight    int
)

var recordCmd = &cobra.Command{
	Use:   "record <scene>",
	Short: "Record a scene headless",
	Long: `Run a scene without a terminal, advancing it by a fixed step per frame,
and store every value the animations set in the runs database.

Examples:
  tween record buttons
  tween record bounce --until-done --ticks 1000
  tween record easing --step 20ms --ticks 150
  tween record --scene-file ./my-scene.yaml --dry-run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecord,
}

func init() {
	recordCmd.Flags().IntVar(&flagTicks, "ticks", trace.DefaultTicks, "Frames to simulate")
	recordCmd.Flags().DurationVar(&flagStep, "step", trace.DefaultStep, "Time advanced per frame")
	recordCmd.Flags().BoolVar(&flagUntilDone, "until-done", false, "Stop early once every animation has stopped")
	recordCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the summary without storing the run")
	recordCmd.Flags().IntVar(&flagWidth, "width", 80, "Width of the stored final frame")
	recordCmd.Flags().IntVar(&flagHeight, "height", 24, "Height of the stored final frame")
	recordCmd.Flags().StringVar(&flagSceneFile, "scene-file", "", "Path to a scene YAML file")
}

func runRecord(_ *cobra.Command, args []string) {
	sc := loadScene(args)

	logger, closeLog := mustLogger(false)
	defer closeLog()

	res, err := trace.Record(sc, trace.Options{
		Ticks:        flagTicks,
		Step:         flagStep,
		StopWhenDone: flagUntilDone,
		Width:        flagWidth,
		Height:       flagHeight,
		Logger:       logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recorded %s: %d ticks of %s, %d passes, %d samples, finished: %t\n",
		sc.ID, res.Run.Ticks, res.Run.Step, res.Run.Passes, len(res.Samples), res.Run.Finished)
	fmt.Println()
	fmt.Print(tui.SummarizeSamples(res.Samples))

	if flagDryRun {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveRun(res.Run, res.Samples)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("run saved", "id", id, "db", flagDBPath)

	fmt.Println()
	fmt.Printf("Saved as run %d. View it with 'tween runs --run %d'.\n", id, id)
}
