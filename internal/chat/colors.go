package chat

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	textColor     = lipgloss.Color("252")
	blurText      = lipgloss.Color("245")
	metaColor     = lipgloss.Color("240")
	statusColor   = lipgloss.Color("244")
	caretColor    = lipgloss.Color("205")
	inputBg       = lipgloss.Color("235")
	mentionColor  = lipgloss.Color("213")
	selfColor     = lipgloss.Color("214")
	errorColor    = lipgloss.Color("196")
	pillBg        = lipgloss.Color("236")
	pillActiveBg  = lipgloss.Color("24")
	sidebarSelect = lipgloss.Color("39")
	barBg         = lipgloss.Color("24")
)

var authorPalette = []lipgloss.Color{
	lipgloss.Color("111"),
	lipgloss.Color("157"),
	lipgloss.Color("216"),
	lipgloss.Color("36"),
	lipgloss.Color("183"),
	lipgloss.Color("230"),
}

// colorForAuthor picks a stable palette color per user so an author keeps
// the same color across sessions and channels.
func colorForAuthor(userID string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return authorPalette[int(h.Sum32())%len(authorPalette)]
}

func contrastTextColor(color lipgloss.Color) lipgloss.Color {
	code, ok := parseColorCode(color)
	if !ok {
		return lipgloss.Color("231")
	}
	r, g, b := colorCodeToRGB(code)
	luminance := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luminance > 128 {
		return lipgloss.Color("16")
	}
	return lipgloss.Color("231")
}

func parseColorCode(color lipgloss.Color) (int, bool) {
	trimmed := strings.TrimSpace(string(color))
	if trimmed == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func colorCodeToRGB(code int) (int, int, int) {
	if code < 16 {
		standard := [16][3]int{
			{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
			{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
			{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
			{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
		}
		values := standard[code]
		return values[0], values[1], values[2]
	}

	if code >= 16 && code <= 231 {
		index := code - 16
		r := index / 36
		g := (index % 36) / 6
		b := index % 6
		toRGB := func(value int) int {
			if value == 0 {
				return 0
			}
			return 55 + value*40
		}
		return toRGB(r), toRGB(g), toRGB(b)
	}

	if code >= 232 && code <= 255 {
		gray := 8 + (code-232)*10
		return gray, gray, gray
	}

	return 128, 128, 128
}
