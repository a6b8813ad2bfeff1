package widget

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tween/internal/core"
)

func TestButtonFillsRect(t *testing.T) {
	s := core.NewScreen(20, 10)
	b := NewButton("b", core.NewRect(2, 1, 6, 3))
	b.SetColor(core.ColorRed)
	b.Draw(s, core.ColorBlack)

	for y := 1; y < 4; y++ {
		for x := 2; x < 8; x++ {
			if c := s.GetCell(x, y); c.BG != core.ColorRed {
				t.Fatalf("cell (%d, %d) BG = %v, expected red", x, y, c.BG)
			}
		}
	}
	if c := s.GetCell(8, 1); c.BG != core.ColorBlack {
		t.Errorf("cell right of button BG = %v, expected black", c.BG)
	}
}

func TestButtonCaptionCentered(t *testing.T) {
	s := core.NewScreen(20, 5)
	b := NewButton("b", core.NewRect(0, 0, 10, 3))
	b.Text = "ok"
	b.Draw(s, core.ColorBlack)

	if row := s.Row(1); !strings.HasPrefix(row, "    ok    ") {
		t.Errorf("Row(1) = %q, expected centered caption", row)
	}
}

func TestButtonCaptionClipped(t *testing.T) {
	s := core.NewScreen(20, 5)
	b := NewButton("b", core.NewRect(0, 0, 6, 3))
	b.Text = "overflowing"
	b.SetBorderWidth(1)
	b.Draw(s, core.ColorBlack)

	if row := s.Row(1); !strings.HasPrefix(row, "│over│") {
		t.Errorf("Row(1) = %q, expected caption clipped inside the border", row)
	}
}

func TestButtonBorderWeights(t *testing.T) {
	tests := []struct {
		width    int
		expected rune
	}{
		{1, '┌'},
		{2, '┏'},
		{3, '╔'},
		{5, '╔'},
	}

	for _, tc := range tests {
		s := core.NewScreen(10, 5)
		b := NewButton("b", core.NewRect(0, 0, 5, 3))
		b.SetBorderWidth(tc.width)
		b.Draw(s, core.ColorBlack)

		if got := s.Get(0, 0); got != tc.expected {
			t.Errorf("border %d corner = %q, expected %q", tc.width, got, tc.expected)
		}
	}
}

func TestButtonRadius(t *testing.T) {
	t.Run("small radius keeps square corners", func(t *testing.T) {
		s := core.NewScreen(10, 5)
		b := NewButton("b", core.NewRect(0, 0, 6, 4))
		b.SetRadius(3)
		b.Draw(s, core.ColorBlack)
		if s.GetCell(0, 0).BG != b.Color() {
			t.Error("corner should be filled below radius 4")
		}
	})

	t.Run("radius trims corners", func(t *testing.T) {
		s := core.NewScreen(10, 5)
		b := NewButton("b", core.NewRect(0, 0, 6, 4))
		b.SetRadius(4)
		b.Draw(s, core.ColorBlack)

		for _, p := range [][2]int{{0, 0}, {5, 0}, {0, 3}, {5, 3}} {
			if c := s.GetCell(p[0], p[1]); c.BG != core.ColorBlack {
				t.Errorf("corner %v BG = %v, expected background", p, c.BG)
			}
		}
		if s.GetCell(1, 0).BG != b.Color() {
			t.Error("cell next to the corner should be filled")
		}
	})

	t.Run("rounded border", func(t *testing.T) {
		s := core.NewScreen(10, 5)
		b := NewButton("b", core.NewRect(0, 0, 6, 4))
		b.SetRadius(8)
		b.SetBorderWidth(1)
		b.Draw(s, core.ColorBlack)
		if s.Get(0, 0) != '╭' || s.Get(5, 3) != '╯' {
			t.Errorf("expected rounded corners, got %q and %q", s.Get(0, 0), s.Get(5, 3))
		}
	})
}

func TestButtonAlpha(t *testing.T) {
	s := core.NewScreen(4, 1)
	b := NewButton("b", core.NewRect(0, 0, 4, 1))
	b.SetColor(core.ColorWhite)

	b.SetAlpha(0)
	b.Draw(s, core.ColorBlack)
	if s.GetCell(0, 0).BG != core.ColorBlack {
		t.Error("alpha 0 should leave the background untouched")
	}

	b.SetAlpha(10)
	b.Draw(s, core.ColorBlack)
	dim := s.GetCell(0, 0).BG

	b.SetAlpha(200)
	b.Draw(s, core.ColorBlack)
	bright := s.GetCell(0, 0).BG

	if dim.R >= bright.R {
		t.Errorf("alpha 10 gave %v, alpha 200 gave %v, expected brighter fill", dim, bright)
	}
}

func TestButtonNegativeSize(t *testing.T) {
	b := NewButton("b", core.NewRect(3, 3, 5, 5))
	b.SetSize(-2, 4)
	if w, h := b.Size(); w != 0 || h != 4 {
		t.Errorf("Size() = (%d, %d), expected (0, 4)", w, h)
	}

	s := core.NewScreen(10, 10)
	b.Draw(s, core.ColorBlack)
	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Error("zero-width button should not draw")
	}
}

func TestButtonOffscreenClipped(t *testing.T) {
	s := core.NewScreen(5, 5)
	b := NewButton("b", core.NewRect(-3, 3, 6, 6))
	b.SetColor(core.ColorGreen)
	b.Draw(s, core.ColorBlack)

	if s.GetCell(0, 4).BG != core.ColorGreen {
		t.Error("visible part of the button should be drawn")
	}
	if s.GetCell(3, 4).BG != core.ColorBlack {
		t.Error("button should end at its right edge")
	}
}

func TestLabelBlendsOverCell(t *testing.T) {
	s := core.NewScreen(10, 1)
	s.FillRect(s.Bounds(), core.ColorBlue)

	l := NewLabel("l", 1, 0, "hi")
	l.SetColor(core.ColorWhite)
	l.SetAlpha(0)
	l.Draw(s, core.ColorBlack)
	if s.Get(1, 0) != ' ' {
		t.Error("invisible label should not draw")
	}

	l.SetAlpha(Opaque)
	l.Draw(s, core.ColorBlack)
	c := s.GetCell(2, 0)
	if c.Rune != 'i' || c.FG != core.ColorWhite || c.BG != core.ColorBlue {
		t.Errorf("GetCell(2, 0) = %+v, expected white 'i' on blue", c)
	}
}

func TestPageDrawOrder(t *testing.T) {
	s := core.NewScreen(10, 3)
	p := NewPage("demo", core.ColorGray)

	under := NewButton("under", core.NewRect(0, 0, 4, 3))
	under.SetColor(core.ColorRed)
	over := NewButton("over", core.NewRect(2, 0, 4, 3))
	over.SetColor(core.ColorGreen)
	p.Add(under)
	p.Add(over)

	p.Draw(s)

	if len(p.Children()) != 2 {
		t.Fatalf("Children() = %d, expected 2", len(p.Children()))
	}
	if s.GetCell(0, 0).BG != core.ColorRed {
		t.Error("first child should be visible where not covered")
	}
	if s.GetCell(3, 0).BG != core.ColorGreen {
		t.Error("later child should draw on top")
	}
	if s.GetCell(9, 2).BG != core.ColorGray {
		t.Error("page background should fill the rest")
	}
}
