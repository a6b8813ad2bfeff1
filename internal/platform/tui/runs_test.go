package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tween/internal/storage"
)

func openRunsStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	runs := []struct {
		scene string
		value int32
	}{
		{"alpha", 10},
		{"beta", 20},
		{"beta", 30},
	}
	for _, r := range runs {
		_, err := store.SaveRun(
			storage.Run{SceneID: r.scene, Title: r.scene, Ticks: 2, Step: 10 * time.Millisecond, Frame: "frame " + r.scene},
			[]storage.Sample{{Tick: 1, Animation: "a", Value: 0}, {Tick: 2, Animation: "a", Value: r.value}},
		)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	return store
}

func sendRuns(t *testing.T, m RunsModel, msg tea.Msg) RunsModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(RunsModel)
	if !ok {
		t.Fatalf("Update returned %T, expected RunsModel", next)
	}
	return out
}

func TestRunsModelScenes(t *testing.T) {
	m := NewRunsModel(openRunsStore(t), 100, 30)

	if len(m.scenes) != 3 {
		t.Fatalf("scenes = %v, expected all + alpha + beta", m.scenes)
	}
	if len(m.runs) != 3 {
		t.Errorf("runs for all scenes = %d, expected 3", len(m.runs))
	}

	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scenes[m.sceneCursor] != "beta" || len(m.runs) != 2 {
		t.Errorf("scene %q has %d runs, expected beta with 2", m.scenes[m.sceneCursor], len(m.runs))
	}

	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.scenes[m.sceneCursor] != "beta" {
		t.Errorf("scene = %q after wrapping back, expected beta", m.scenes[m.sceneCursor])
	}
}

func TestRunsModelDetailAndDelete(t *testing.T) {
	store := openRunsStore(t)
	m := NewRunsModel(store, 100, 30)

	// Newest first: the top row is the last beta run.
	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.detail == nil {
		t.Fatal("enter should open the run details")
	}
	view := m.View()
	if !strings.Contains(view, "frame beta") {
		t.Errorf("detail view should show the final frame, got:\n%s", view)
	}
	if len(m.samples) != 2 {
		t.Errorf("samples = %d, expected 2", len(m.samples))
	}

	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail != nil || m.IsGoingBack() {
		t.Error("esc in details should return to the table, not the menu")
	}

	m = sendRuns(t, m, runeKey("d"))
	if len(m.runs) != 2 {
		t.Errorf("runs after delete = %d, expected 2", len(m.runs))
	}
	if runs, _ := store.Runs("", 0); len(runs) != 2 {
		t.Errorf("stored runs after delete = %d, expected 2", len(runs))
	}

	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() {
		t.Error("esc in the table should go back")
	}
}

func TestRunsModelWithoutStore(t *testing.T) {
	m := NewRunsModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("an empty browser should say no runs were recorded")
	}
	m = sendRuns(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sendRuns(t, m, runeKey("d"))
	if m.detail != nil {
		t.Error("enter without runs should not open details")
	}
	m = sendRuns(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSummarizeSamples(t *testing.T) {
	out := SummarizeSamples([]storage.Sample{
		{Tick: 1, Animation: "move", Value: 5},
		{Tick: 1, Animation: "fade", Value: 0},
		{Tick: 2, Animation: "move", Value: 1},
		{Tick: 3, Animation: "move", Value: 9},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, expected header + 2", len(lines))
	}
	if !strings.HasPrefix(lines[1], "fade") || !strings.HasPrefix(lines[2], "move") {
		t.Errorf("rows not sorted by name:\n%s", out)
	}
	if fields := strings.Fields(lines[2]); strings.Join(fields[1:], " ") != "3 5 9 1 9" {
		t.Errorf("move row = %v, expected 3 5 9 1 9", fields)
	}
}
