package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	removeGlyph   = "✕"
	cursorGlyph   = "›"
	ellipsis      = "…"
	minRowWidth   = 12
	shakeTiltDeg  = 5.0
	bounceScaleAt = 1.125
)

// RowData is one list row on the current frame. Scale, OffsetX and Rotate
// carry the celebration transform for the row's checkbox.
type RowData struct {
	ID          int
	Description string
	Checked     bool
	Selected    bool
	Opacity     float64
	Scale       float64
	OffsetX     float64
	Rotate      float64
}

// Checkbox renders the checkbox glyph with any celebration transform applied.
func Checkbox(row RowData) string {
	mark := " "
	if row.Checked {
		mark = "x"
	}
	switch {
	case row.Rotate > shakeTiltDeg:
		mark = "/"
	case row.Rotate < -shakeTiltDeg:
		mark = `\`
	}
	box := "[" + mark + "]"
	if row.Scale >= bounceScaleAt {
		box = "⟦" + strings.ToUpper(mark) + "⟧"
	}
	// Horizontal jitter moves the box by at most one column either way.
	shift := int(math.Round(row.OffsetX / 2))
	if shift > 1 {
		shift = 1
	}
	if shift < -1 {
		shift = -1
	}
	return strings.Repeat(" ", 1+shift) + box + strings.Repeat(" ", 1-shift)
}

// RenderRow draws a row exactly width cells wide: cursor, checkbox,
// description and a trailing remove control.
func RenderRow(row RowData, width int, theme Theme) string {
	if width < minRowWidth {
		width = minRowWidth
	}
	opacity := row.Opacity

	cursor := " "
	if row.Selected {
		cursor = cursorGlyph
	}
	left := cursor + Checkbox(row)
	right := " " + removeGlyph + " "
	room := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	desc := ansi.Truncate(row.Description, room, ellipsis)
	pad := room - ansi.StringWidth(desc)
	if pad < 0 {
		pad = 0
	}

	textHex := theme.Text
	if row.Checked {
		textHex = theme.Done
	}
	boxStyle := lipgloss.NewStyle().Foreground(theme.Fade(theme.Accent, opacity))
	if row.Scale >= bounceScaleAt {
		boxStyle = boxStyle.Bold(true)
	}
	descStyle := lipgloss.NewStyle().Foreground(theme.Fade(textHex, opacity)).Strikethrough(row.Checked)
	removeStyle := lipgloss.NewStyle().Foreground(theme.Fade(theme.Muted, opacity))
	cursorStyle := lipgloss.NewStyle().Foreground(theme.Fade(theme.Accent, opacity)).Bold(true)

	return cursorStyle.Render(cursor) +
		boxStyle.Render(Checkbox(row)) +
		descStyle.Render(desc) + strings.Repeat(" ", pad) +
		removeStyle.Render(right)
}

// RenderRows joins rows top to bottom.
func RenderRows(rows []RowData, width int, theme Theme) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, RenderRow(row, width, theme))
	}
	return strings.Join(lines, "\n")
}
