package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tween/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache maps (fg, bg) pairs to lipgloss styles. Scenes use a handful
// of colors per frame, but hue sweeps create new ones constantly.
var (
	styleCache   = make(map[colorPair]lipgloss.Style)
	styleCacheMu sync.Mutex
)

const maxCachedStyles = 4096

func styleFor(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}

	styleCacheMu.Lock()
	defer styleCacheMu.Unlock()

	if st, ok := styleCache[key]; ok {
		return st
	}
	if len(styleCache) >= maxCachedStyles {
		clear(styleCache)
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
	styleCache[key] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != first.FG || cell.BG != first.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(first.FG, first.BG).Render(run.String()))
		}
	}
	return sb.String()
}
