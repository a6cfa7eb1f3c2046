package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/selesai/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	ctx := context.Background()
	var frames tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			item, ok := m.store.Create(ctx, a.Description)
			if !ok {
				return commands.Result{}, nil
			}
			frames = m.refresh()
			return commands.Result{Message: fmt.Sprintf("added #%d", item.ID)}, nil
		},
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			if _, ok := m.store.Get(a.ID); !ok {
				return commands.Result{}, nil
			}
			frames = m.toggle(a.ID)
			item, _ := m.store.Get(a.ID)
			if item.Checked {
				return commands.Result{Message: fmt.Sprintf("checked #%d", a.ID)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("unchecked #%d", a.ID)}, nil
		},
		Remove: func(a commands.RemoveArgs) (commands.Result, error) {
			if !m.store.Remove(ctx, a.ID) {
				return commands.Result{}, nil
			}
			frames = m.refresh()
			return commands.Result{Message: fmt.Sprintf("removed #%d", a.ID)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.filter.SetMode(a.Mode)
			m.Cursor = 0
			frames = m.refresh()
			return commands.Result{Message: fmt.Sprintf("showing %s", a.Mode)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	// Unknown ids are dropped without a message.
	m.Status = StatusBar{Text: res.Message}
	return m, frames
}
