package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/selesai/internal/views"
)

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.focusBindings()
	plain := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		plain = append(plain, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Focus:    string(m.Focus),
		Bindings: plain,
		HelpView: m.helpModel.FullHelpView(m.keyMap().FullHelp()),
	})
}

func (m Model) globalBindings() []key.Binding {
	return []key.Binding{m.Keys.Switch, m.Keys.Help, m.Keys.Quit}
}

func (m Model) focusBindings() []key.Binding {
	if m.Focus == FocusInput {
		return []key.Binding{m.Keys.Submit, m.Keys.Switch}
	}
	return []key.Binding{
		m.Keys.Up,
		m.Keys.Down,
		m.Keys.Toggle,
		m.Keys.Remove,
		m.Keys.Filter,
		m.Keys.Palette,
	}
}

func (m Model) keyMap() helpKeyMap {
	return helpKeyMap{
		short: append(m.focusBindings(), m.Keys.Help, m.Keys.Quit),
		full:  [][]key.Binding{m.focusBindings(), m.globalBindings()},
	}
}
