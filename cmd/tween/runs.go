package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tween/internal/platform/tui"
	"github.com/vovakirdan/tui-tween/internal/storage"
	"github.com/vovakirdan/tui-tween/internal/trace"
)

var (
	flagRunID     int64
	flagDeleteRun int64
	flagBrowse    bool
	flagLimit     int
	flagSamples   string
)

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show recorded runs",
	Long: `List recorded runs, newest first, optionally for one scene.

With --run, print one run: the per-animation summary and its final frame.
With --samples NAME, also print every value that animation set.
With --browse, open the interactive run browser.

Examples:
  tween runs
  tween runs bounce --limit 5
  tween runs --run 3
  tween runs --run 3 --samples drop1
  tween runs --delete 3
  tween runs --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().Int64Var(&flagRunID, "run", 0, "Show one run by id")
	runsCmd.Flags().Int64Var(&flagDeleteRun, "delete", 0, "Delete a run by id")
	runsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive run browser")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of runs to list")
	runsCmd.Flags().StringVar(&flagSamples, "samples", "", "With --run, print the values of this animation")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagBrowse:
		requireTerminal()
		cfg := runtimeConfig()
		if _, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case flagDeleteRun != 0:
		if err := store.DeleteRun(flagDeleteRun); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted run %d.\n", flagDeleteRun)

	case flagRunID != 0:
		if err := printRun(store, flagRunID); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		sceneID := ""
		if len(args) > 0 {
			sceneID = args[0]
		}
		if err := printRuns(store, sceneID); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printRuns(store *storage.Store, sceneID string) error {
	runs, err := store.Runs(sceneID, flagLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Use 'tween record <scene>' to record one.")
		return nil
	}

	fmt.Printf("  %-5s  %-12s  %-6s  %-6s  %-7s  %-8s  %-5s  %s\n", "ID", "Scene", "Ticks", "Step", "Passes", "Samples", "Done", "Date")
	fmt.Printf("  %-5s  %-12s  %-6s  %-6s  %-7s  %-8s  %-5s  %s\n", "--", "-----", "-----", "----", "------", "-------", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-12s  %-6d  %-6s  %-7d  %-8d  %-5t  %s\n",
			r.ID, r.SceneID, r.Ticks, r.Step, r.Passes, r.Samples, r.Finished, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.SceneStats(); err == nil && sceneID == "" {
		fmt.Println()
		for _, st := range stats {
			fmt.Printf("  %s: %d runs, last %s\n", st.SceneID, st.Runs, st.LastRun.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func printRun(store *storage.Store, id int64) error {
	r, err := store.Run(id)
	if err != nil {
		return err
	}
	samples, err := store.Samples(id)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d - %s (%s)\n", r.ID, r.Title, r.SceneID)
	fmt.Printf("Recorded %s: %d ticks of %s, %d passes, finished: %t\n",
		r.CreatedAt.Format("2006-01-02 15:04"), r.Ticks, r.Step, r.Passes, r.Finished)
	fmt.Println()
	fmt.Print(tui.SummarizeSamples(samples))
	fmt.Println()
	fmt.Println(r.Frame)

	if flagSamples == "" {
		return nil
	}
	series, ok := trace.Series(samples)[flagSamples]
	if !ok {
		return errors.New("no samples for animation " + flagSamples)
	}
	fmt.Println()
	fmt.Printf("  %-6s  %s\n", "Tick", flagSamples)
	for _, s := range series {
		fmt.Printf("  %-6d  %d\n", s.Tick, s.Value)
	}
	return nil
}
