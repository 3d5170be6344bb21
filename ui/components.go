package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colKey      = 20 // detail key column
	maxBoxInner = 72 // max inner width for KV boxes
)

type kv struct {
	Key string
	Val string
}

// styledPad pads a styled string to the given visual width using spaces.
// Unlike fmt.Sprintf("%-Xs"), this accounts for ANSI escape codes.
func styledPad(styled string, width int) string {
	visW := lipgloss.Width(styled)
	if visW >= width {
		return styled
	}
	return styled + strings.Repeat(" ", width-visW)
}

// ─── BOX DRAWING HELPERS ─────────────────────────────────────────────────────

func boxTop(innerW int) string {
	return " " + dimStyle.Render("╭"+strings.Repeat("─", innerW+2)+"╮")
}

func boxBot(innerW int) string {
	return " " + dimStyle.Render("╰"+strings.Repeat("─", innerW+2)+"╯")
}

// boxRow renders one content line inside a box, padded to innerW.
func boxRow(content string, innerW int) string {
	pad := innerW - lipgloss.Width(content)
	if pad < 0 {
		pad = 0
	}
	return " " + dimStyle.Render("│") + " " + content + strings.Repeat(" ", pad) + " " + dimStyle.Render("│")
}

// renderKVBox renders key-value pairs inside a bordered box under a title.
func renderKVBox(title string, details []kv, innerW int) string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render(title) + "\n")
	sb.WriteString(boxTop(innerW) + "\n")
	for _, d := range details {
		content := fmt.Sprintf("%s %s",
			styledPad(dimStyle.Render(d.Key+":"), colKey),
			valueStyle.Render(d.Val))
		sb.WriteString(boxRow(content, innerW) + "\n")
	}
	sb.WriteString(boxBot(innerW) + "\n")
	return sb.String()
}

// bar renders a temperature bar scaled to 0..80°C.
func bar(celsius, width int) string {
	if width < 1 {
		width = 10
	}
	filled := celsius * width / 80
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return tempColor(celsius).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

func padRight(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func pageInnerW(termWidth int) int {
	w := termWidth - 6
	if w > maxBoxInner {
		w = maxBoxInner
	}
	if w < 30 {
		w = 30
	}
	return w
}

// sparkline renders integer readings as a single line of block glyphs,
// keeping the most recent width values.
func sparkline(data []int, width int) string {
	if len(data) == 0 {
		return dimStyle.Render("-")
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	var sb strings.Builder
	for _, v := range data {
		idx := 0
		if hi > lo {
			idx = (v - lo) * (len(blocks) - 1) / (hi - lo)
		}
		sb.WriteString(tempColor(v).Render(string(blocks[idx])))
	}
	return sb.String()
}
