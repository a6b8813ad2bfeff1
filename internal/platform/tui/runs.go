package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tween/internal/storage"
	"github.com/vovakirdan/tui-tween/internal/trace"
)

// Run browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the scene sidebar
	sidebarWidth       = 20  // Width of the scene sidebar
	maxRuns            = 100 // Max runs to load per scene
	allScenes          = ""  // Sidebar entry that lists every scene
)

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Open      key.Binding
	Delete    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.Open, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Open, k.Delete, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded runs.
type RunsModel struct {
	scenes      []string // Sidebar entries; allScenes first
	sceneCursor int
	store       *storage.Store
	runs        []storage.Run
	detail      *storage.Run
	samples     []storage.Sample
	status      string
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsModel creates a new run browser. A nil store shows an empty list.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		scenes:      []string{allScenes},
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		if stats, err := store.SceneStats(); err == nil {
			for _, st := range stats {
				m.scenes = append(m.scenes, st.SceneID)
			}
		} else {
			m.status = err.Error()
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Scene", Width: 10},
		{Title: "Ticks", Width: 6},
		{Title: "Step", Width: 6},
		{Title: "Passes", Width: 7},
		{Title: "Done", Width: 5},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[1].Width += min(extra, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs for the selected sidebar entry.
func (m *RunsModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		runs, err := m.store.Runs(m.scenes[m.sceneCursor], maxRuns)
		if err != nil {
			m.status = err.Error()
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		done := "no"
		if r.Finished {
			done = "yes"
		}
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.SceneID,
			strconv.Itoa(r.Ticks),
			r.Step.String(),
			strconv.FormatUint(r.Passes, 10),
			done,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectedRun returns the run under the table cursor.
func (m RunsModel) selectedRun() *storage.Run {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return nil
	}
	r := m.runs[i]
	return &r
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.detail != nil {
			if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Open) {
				m.detail = nil
				m.samples = nil
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			m.sceneCursor = (m.sceneCursor + 1) % len(m.scenes)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			m.sceneCursor--
			if m.sceneCursor < 0 {
				m.sceneCursor = len(m.scenes) - 1
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Open):
			m.openDetail()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *RunsModel) openDetail() {
	r := m.selectedRun()
	if r == nil || m.store == nil {
		return
	}
	samples, err := m.store.Samples(r.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.detail = r
	m.samples = samples
}

func (m *RunsModel) deleteSelected() {
	r := m.selectedRun()
	if r == nil || m.store == nil {
		return
	}
	if err := m.store.DeleteRun(r.ID); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("deleted run %d", r.ID)
	m.loadRuns()
}

var (
	runsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	runsBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	runsHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	if m.detail != nil {
		return m.renderDetail()
	}

	var b strings.Builder

	title := "RECORDED RUNS - " + sceneLabel(m.scenes[m.sceneCursor])
	b.WriteString(runsTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", runsBoxStyle.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", sceneLabel(m.scenes[m.sceneCursor])), m.width))
		b.WriteString("\n\n")
		b.WriteString(runsBoxStyle.Render(m.renderTableContent()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(runsHintStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(runsHintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func sceneLabel(id string) string {
	if id == allScenes {
		return "all scenes"
	}
	return id
}

// renderSidebar renders the scene list.
func (m RunsModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Scenes\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, id := range m.scenes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.sceneCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := sceneLabel(id)
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(style.Render(cursor + name))
		sb.WriteString("\n")
	}

	return runsBoxStyle.Width(sidebarWidth).Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No runs recorded yet.\nUse 'tween record <scene>' to add one.")
	}
	return m.table.View()
}

// renderDetail shows the per-animation value range and the final frame of
// the open run.
func (m RunsModel) renderDetail() string {
	r := m.detail
	var b strings.Builder

	b.WriteString(runsTitleStyle.Render(fmt.Sprintf("RUN %d - %s", r.ID, r.Title)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "ticks %d  step %s  passes %d  finished %t  samples %d\n\n",
		r.Ticks, r.Step, r.Passes, r.Finished, len(m.samples))

	b.WriteString(SummarizeSamples(m.samples))
	b.WriteString("\n")
	b.WriteString(runsBoxStyle.Render(strings.TrimRight(r.Frame, "\n")))
	b.WriteString("\n")
	b.WriteString(runsHintStyle.Render("esc/enter: back  q: quit"))
	return b.String()
}

// SummarizeSamples renders one line per animation: sample count, first and
// last value and the observed range.
func SummarizeSamples(samples []storage.Sample) string {
	series := trace.Series(samples)
	names := make([]string, 0, len(series))
	width := 9
	for name := range series {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %7s  %7s  %7s  %7s  %7s\n", width, "Animation", "Samples", "First", "Last", "Min", "Max")
	for _, name := range names {
		s := series[name]
		lo, hi := s[0].Value, s[0].Value
		for _, smp := range s {
			lo = min(lo, smp.Value)
			hi = max(hi, smp.Value)
		}
		fmt.Fprintf(&b, "%-*s  %7d  %7d  %7d  %7d  %7d\n", width, name, len(s), s[0].Value, s[len(s)-1].Value, lo, hi)
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the run browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRunsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
