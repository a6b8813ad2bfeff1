package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tween/internal/anim"
	"github.com/vovakirdan/tui-tween/internal/config"
	"github.com/vovakirdan/tui-tween/internal/core"
	"github.com/vovakirdan/tui-tween/internal/scene"
)

// Playback speed bounds for the +/- keys.
const (
	minTimeScale = 0.125
	maxTimeScale = 8
)

// Model is the Bubble Tea model that plays one scene.
type Model struct {
	id          uint64
	scene       *scene.Scene
	sched       *anim.Scheduler
	screen      *core.Screen
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	keyMapper   *KeyMapper
	logger      *log.Logger
	snapshotDir string
	status      string
	paused      bool
	exitOnBack  bool
	quitting    bool
	backToMenu  bool
}

// NewModel builds the scene on a fresh scheduler and starts it.
// A nil logger discards output.
func NewModel(sc config.SceneConfig, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	cfg = cfg.Normalize()
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sched := anim.NewScheduler(
		anim.WithLogger(logger),
		anim.WithTimeScale(cfg.TimeScale),
	)
	s, err := scene.Build(sc, sched, scene.WithLogger(logger))
	if err != nil {
		return Model{}, err
	}
	s.Start()

	dir := ""
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		dir = filepath.Join(home, ".tween", "screenshots")
	}

	return Model{
		id:          playerSeq.Add(1),
		scene:       s,
		sched:       sched,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:      cfg,
		inputFrame:  core.NewInputFrame(),
		keyMapper:   NewKeyMapper(),
		logger:      logger,
		snapshotDir: dir,
	}, nil
}

// WithSnapshotDir returns a copy of m that saves screenshots into dir.
func (m Model) WithSnapshotDir(dir string) Model {
	m.snapshotDir = dir
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		// A tick from an earlier player would start a second frame loop.
		if msg.Player != m.id {
			return m, nil
		}
		m.handleTick(msg.Time)
		return m, tickCmd(m.config.TickRate, m.id)
	}

	return m, nil
}

// handleKey processes keyboard input. Quit and back act at once; everything
// else is applied on the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.scene.Close()
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		m.scene.Close()
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// handleTick applies pending actions, then advances the scheduler to now.
func (m *Model) handleTick(now time.Time) {
	frame := m.inputFrame
	m.inputFrame.Clear()

	if frame.Has(core.ActionPause) {
		m.togglePause()
	}
	if frame.Has(core.ActionRestart) {
		m.scene.Restart()
		if m.paused {
			m.sched.PauseAll()
		}
		m.status = "restarted"
	}
	if frame.Has(core.ActionSpeedUp) {
		m.setSpeed(m.sched.TimeScale() * 2)
	}
	if frame.Has(core.ActionSpeedDown) {
		m.setSpeed(m.sched.TimeScale() / 2)
	}
	if frame.Has(core.ActionSnapshot) {
		m.saveScreenshot()
	}

	if m.paused {
		if frame.Has(core.ActionStep) {
			m.step()
		}
		return
	}
	m.sched.TickAt(now)
}

func (m *Model) togglePause() {
	m.paused = !m.paused
	if m.paused {
		m.sched.PauseAll()
		m.status = "paused"
		return
	}
	m.sched.ResumeAll()
	// Time spent paused must not count.
	m.sched.ResetClock()
	m.status = ""
}

func (m *Model) setSpeed(scale float64) {
	scale = min(max(scale, minTimeScale), maxTimeScale)
	m.sched.SetTimeScale(scale)
	m.config.TimeScale = scale
	m.status = fmt.Sprintf("speed x%.3g", scale)
}

// step advances one frame while paused.
func (m *Model) step() {
	delta := time.Duration(float64(time.Second/time.Duration(m.config.TickRate)) * m.sched.TimeScale())
	m.sched.ResumeAll()
	m.sched.Advance(delta)
	m.sched.PauseAll()
	m.status = "step"
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	if m.snapshotDir == "" {
		m.status = "screenshot failed: no directory"
		return
	}
	m.scene.Draw(m.screen)

	if err := os.MkdirAll(m.snapshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.snapshotDir, "err", err)
		m.status = "screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.snapshotDir, fmt.Sprintf("%s_%s.txt", m.scene.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		m.status = "screenshot failed"
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.status = "saved " + filepath.Base(path)
}

// statusLine summarizes playback state for the bottom row.
func (m Model) statusLine() string {
	state := "playing"
	switch {
	case m.paused:
		state = "paused"
	case m.scene.Done():
		state = "done (r to replay)"
	}
	line := fmt.Sprintf(" %s | x%.3g | %s", m.scene.Title, m.sched.TimeScale(), state)
	if m.status != "" && m.status != "paused" {
		line += " | " + m.status
	}
	return line
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.scene.Draw(m.screen)
	m.screen.DrawTextColor(0, m.screen.Height()-1, m.statusLine(), core.ColorGray)
	return RenderScreen(m.screen)
}

// Paused reports whether playback is frozen.
func (m Model) Paused() bool {
	return m.paused
}

// Scene returns the scene being played.
func (m Model) Scene() *scene.Scene {
	return m.scene
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a scene until the user quits or goes back.
// Returns true if the user asked for the menu.
func Run(sc config.SceneConfig, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model, err := NewModel(sc, cfg, logger)
	if err != nil {
		return false, err
	}
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
