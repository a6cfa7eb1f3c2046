package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultCardWidth = 48
	placeholderText  = "Add a note"
	filterChipLabel  = "done"
)

type ListPanelData struct {
	InputView    string
	ShowFilter   bool
	FilterActive bool
	Empty        bool
	ListView     string
	ScrollHint   string
	Width        int
	Theme        Theme
}

// RenderFilterChip draws the pending/completed toggle. The chip is darker
// while the completed view is active.
func RenderFilterChip(active bool, theme Theme) string {
	bg := theme.ChipIdle
	if active {
		bg = theme.ChipActive
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ChipText)).
		Background(lipgloss.Color(bg)).
		Bold(true).
		Padding(0, 1).
		Render(filterChipLabel)
}

func RenderPlaceholder(width int, theme Theme) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Width(width).
		Align(lipgloss.Center).
		Render(placeholderText)
}

func RenderListPanel(data ListPanelData) string {
	width := data.Width
	if width <= 0 {
		width = DefaultCardWidth
	}
	var b strings.Builder
	b.WriteString(data.InputView)
	b.WriteString("\n\n")
	if data.Empty {
		b.WriteString(RenderPlaceholder(width, data.Theme))
		return b.String()
	}
	if data.ShowFilter {
		b.WriteString(RenderFilterChip(data.FilterActive, data.Theme))
		b.WriteString("\n")
	}
	b.WriteString(data.ListView)
	if data.ScrollHint != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(data.Theme.Muted)).Render(data.ScrollHint))
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

type HelpPanelData struct {
	Focus    string
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s focus:\n%s\n%s",
		strings.ToLower(data.Focus),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

// ChecklistItem is the plain projection used for non-interactive output.
type ChecklistItem struct {
	ID          int
	Description string
	Checked     bool
}

// MarkdownChecklist writes items as a GitHub-style task list.
func MarkdownChecklist(title string, items []ChecklistItem) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("## " + title + "\n\n")
	}
	if len(items) == 0 {
		b.WriteString("_" + placeholderText + "_\n")
		return b.String()
	}
	for _, item := range items {
		mark := " "
		if item.Checked {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("- [%s] %s `#%d`\n", mark, escapeMarkdown(item.Description), item.ID))
	}
	return b.String()
}

// PlainChecklist is the uncoloured form used when stdout is not a terminal.
func PlainChecklist(items []ChecklistItem) string {
	var b strings.Builder
	for _, item := range items {
		mark := " "
		if item.Checked {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("%d\t[%s] %s\n", item.ID, mark, item.Description))
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
