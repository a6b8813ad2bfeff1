package widget

import (
	"testing"

	"github.com/vovakirdan/tui-tween/internal/core"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected core.Color
		wantErr  bool
	}{
		{"red", core.ColorRed, false},
		{" Orange ", core.ColorOrange, false},
		{"#102030", core.RGB(0x10, 0x20, 0x30), false},
		{"#fff", core.ColorWhite, false},
		{"#zzzzzz", core.Color{}, true},
		{"mauve", core.Color{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) expected error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tc.in, err)
			}
			if got != tc.expected {
				t.Errorf("ParseColor(%q) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestHueWheel(t *testing.T) {
	tests := []struct {
		deg      float64
		expected core.Color
	}{
		{0, core.RGB(255, 0, 0)},
		{60, core.RGB(255, 255, 0)},
		{120, core.RGB(0, 255, 0)},
		{240, core.RGB(0, 0, 255)},
		{360, core.RGB(255, 0, 0)},
		{-120, core.RGB(0, 0, 255)},
	}

	for _, tc := range tests {
		if got := Hue(tc.deg); got != tc.expected {
			t.Errorf("Hue(%v) = %v, expected %v", tc.deg, got, tc.expected)
		}
	}
}

func TestBlend(t *testing.T) {
	bg := core.ColorBlack
	fg := core.ColorWhite

	if got := Blend(bg, fg, 0); got != bg {
		t.Errorf("Blend alpha 0 = %v, expected background", got)
	}
	if got := Blend(bg, fg, Opaque); got != fg {
		t.Errorf("Blend alpha 255 = %v, expected foreground", got)
	}

	mid := Blend(bg, fg, 128)
	if mid.R < 120 || mid.R > 136 || mid.R != mid.G || mid.G != mid.B {
		t.Errorf("Blend alpha 128 = %v, expected mid gray", mid)
	}

	prev := -1
	for a := 0; a <= 255; a += 15 {
		v := int(Blend(bg, fg, uint8(a)).R)
		if v < prev {
			t.Fatalf("Blend not monotonic at alpha %d: %d < %d", a, v, prev)
		}
		prev = v
	}
}
