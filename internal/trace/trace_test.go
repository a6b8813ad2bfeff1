package trace

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tween/internal/config"
	"github.com/vovakirdan/tui-tween/internal/storage"
)

func slideScene() config.SceneConfig {
	return config.SceneConfig{
		ID:    "slide",
		Title: "Slide",
		Widgets: []config.WidgetConfig{
			{Name: "box", X: 0, Y: 0, W: 3, H: 1, Text: "#"},
		},
		Animations: []config.AnimationConfig{
			{Name: "move", Widget: "box", Property: "x", DurationMS: 1000, Start: 0, End: 100},
		},
	}
}

func TestRecordQuarterTicks(t *testing.T) {
	res, err := Record(slideScene(), Options{Ticks: 6, Step: 250 * time.Millisecond})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	expected := []storage.Sample{
		{Tick: 1, Animation: "move", Value: 25},
		{Tick: 2, Animation: "move", Value: 50},
		{Tick: 3, Animation: "move", Value: 75},
		{Tick: 4, Animation: "move", Value: 100},
	}
	if len(res.Samples) != len(expected) {
		t.Fatalf("Samples = %+v, expected %+v", res.Samples, expected)
	}
	for i := range expected {
		if res.Samples[i] != expected[i] {
			t.Errorf("sample %d = %+v, expected %+v", i, res.Samples[i], expected[i])
		}
	}

	if res.Run.Ticks != 6 {
		t.Errorf("Run.Ticks = %d, expected 6", res.Run.Ticks)
	}
	if !res.Run.Finished || res.Run.Passes != 1 {
		t.Errorf("Run = %+v, expected finished after one pass", res.Run)
	}
	if res.Run.Samples != 4 {
		t.Errorf("Run.Samples = %d, expected 4", res.Run.Samples)
	}
}

func TestRecordStopWhenDone(t *testing.T) {
	res, err := Record(slideScene(), Options{Ticks: 1000, Step: 100 * time.Millisecond, StopWhenDone: true})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if res.Run.Ticks != 10 {
		t.Errorf("Run.Ticks = %d, expected 10", res.Run.Ticks)
	}
}

func TestRecordFinalFrame(t *testing.T) {
	res, err := Record(slideScene(), Options{Ticks: 10, Step: 100 * time.Millisecond, Width: 120, Height: 2})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	rows := strings.Split(res.Run.Frame, "\n")
	if len(rows) != 2 || len([]rune(rows[0])) != 120 {
		t.Fatalf("Frame is %d rows, expected 2 rows of 120", len(rows))
	}
	if idx := strings.IndexRune(rows[0], '#'); idx != 101 {
		t.Errorf("caption at column %d, expected 101", idx)
	}
}

func TestRecordDefaults(t *testing.T) {
	res, err := Record(slideScene(), Options{})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if res.Run.Ticks != DefaultTicks || res.Run.Step != DefaultStep {
		t.Errorf("Run = %d ticks of %v, expected %d of %v", res.Run.Ticks, res.Run.Step, DefaultTicks, DefaultStep)
	}
	// 100 frames of 10ms complete the 1s pass.
	if last := res.Samples[len(res.Samples)-1]; last.Tick != 100 || last.Value != 100 {
		t.Errorf("last sample = %+v, expected tick 100 value 100", last)
	}
}

func TestRecordWithoutAnimations(t *testing.T) {
	cfg := config.SceneConfig{ID: "still", Widgets: []config.WidgetConfig{{Name: "a", W: 1, H: 1}}}
	if _, err := Record(cfg, Options{}); err == nil {
		t.Error("Record should reject a scene without animations")
	}
}

func TestSeries(t *testing.T) {
	samples := []storage.Sample{
		{Tick: 1, Animation: "a", Value: 1},
		{Tick: 1, Animation: "b", Value: 9},
		{Tick: 2, Animation: "a", Value: 2},
	}
	s := Series(samples)
	if len(s["a"]) != 2 || s["a"][1].Value != 2 || len(s["b"]) != 1 {
		t.Errorf("Series() = %+v", s)
	}
}

func TestRecordAndStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	res, err := Record(slideScene(), Options{Ticks: 4, Step: 250 * time.Millisecond})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	id, err := store.SaveRun(res.Run, res.Samples)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.Samples(id)
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if len(got) != 4 || got[3].Value != 100 {
		t.Errorf("stored samples = %+v", got)
	}
}
