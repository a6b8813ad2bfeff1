// tween plays and records frame-driven property animations in the terminal.
//
// Usage:
//
//	tween list               - List scenes, property kinds and paths
//	tween play [scene]       - Play a scene
//	tween menu               - Pick scenes interactively
//	tween record <scene>     - Record a scene headless into the runs database
//	tween runs [scene]       - List, inspect or browse recorded runs
//	tween serve              - Start SSH server for remote viewing
//
// Global flags:
//
//	--fps <rate>        - Set frame rate (default: 100)
//	--speed <factor>    - Playback speed multiplier (default: 1)
//	--db <path>         - Set database path (default: ~/.tween/runs.db)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tween/internal/core"

	// Import property setters to register them
	_ "github.com/vovakirdan/tui-tween/internal/props"
)

var (
	// Global flags
	flagFPS      int
	flagSpeed    float64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tween",
	Short: "Tween - frame-driven property animations in your terminal",
	Long: `Tween animates widget properties (position, size, alpha, hue, border,
corner radius) with start/end values, easing paths, repeats and finish hooks,
driven by a fixed-rate frame loop.

Available commands:
  list     - Show scenes, property kinds and paths
  play     - Play a scene directly
  menu     - Interactive scene picker
  record   - Record a scene headless
  runs     - View recorded runs
  serve    - Start SSH server for remote viewing

Examples:
  tween list
  tween play buttons
  tween play --scene-file ./my-scene.yaml
  tween record bounce --until-done
  tween runs bounce
  tween serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	def := core.DefaultConfig()
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", def.TickRate, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Float64Var(&flagSpeed, "speed", def.TimeScale, "Playback speed multiplier")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tween/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger from the global flags. Interactive
// commands pass quiet, so logs only go to --log-file and never over the TUI.
// The returned close function releases the log file.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tween",
		Level:           level,
	})
	return logger, closeFn, nil
}

// mustLogger is newLogger that exits on error.
func mustLogger(quiet bool) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeFn
}

// runtimeConfig returns the frame loop settings for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TickRate:  flagFPS,
		TimeScale: flagSpeed,
	}.Normalize()
}

// requireTerminal exits when stdout is not a terminal.
func requireTerminal() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: this command needs an interactive terminal")
		fmt.Fprintln(os.Stderr, "Use 'tween record <scene>' to run a scene headless.")
		os.Exit(1)
	}
}
