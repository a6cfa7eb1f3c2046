package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/selesai/internal/celebrate"
	"github.com/sandeepkv93/selesai/internal/filter"
	"github.com/sandeepkv93/selesai/internal/model"
	"github.com/sandeepkv93/selesai/internal/views"
	"github.com/sandeepkv93/selesai/internal/watch"
)

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForChangeCmd(m.watcher.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handle(msg)
	next.syncListViewport()
	return next, cmd
}

func (m Model) handle(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width)
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Focus == FocusInput {
			return m.handleInputKey(typed)
		}
		return m.handleListKey(typed)
	case FrameMsg:
		m.ticking = false
		if m.list.Animating() {
			m.list.Step()
		}
		m.expireCelebrations(time.Time(typed))
		return m, m.frameCmd()
	case StorageChangedMsg:
		var cmd tea.Cmd
		if m.store.Reload(context.Background()) {
			m.Status = StatusBar{Text: "list reloaded from disk"}
			cmd = m.refresh()
		}
		if m.watcher != nil {
			return m, tea.Batch(cmd, waitForChangeCmd(m.watcher.C()))
		}
		return m, cmd
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Switch), msg.String() == "esc":
		m.setFocus(FocusList)
		return m, nil
	case key.Matches(msg, m.Keys.Submit):
		// The field clears whether or not the text was accepted.
		raw := m.input.Value()
		m.input.SetValue("")
		if _, ok := m.store.Create(context.Background(), raw); !ok {
			return m, nil
		}
		return m, m.refresh()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Switch):
		m.setFocus(FocusInput)
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.visible())-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Toggle):
		if id, ok := m.selectedID(); ok {
			return m, m.toggle(id)
		}
	case key.Matches(msg, m.Keys.Remove):
		if id, ok := m.selectedID(); ok && m.store.Remove(context.Background(), id) {
			return m, m.refresh()
		}
	case key.Matches(msg, m.Keys.Filter):
		if filter.ShowToggle(m.store.Items()) {
			m.filter.Toggle()
			m.Cursor = 0
			return m, m.refresh()
		}
	case key.Matches(msg, m.Keys.Palette):
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m *Model) setFocus(f Focus) {
	m.Focus = f
	if f == FocusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

func (m *Model) toggle(id int) tea.Cmd {
	res, ok := m.store.Toggle(context.Background(), id)
	if !ok {
		return nil
	}
	if res.Celebration != nil && m.cfg.Animations {
		m.celebrations[res.Celebration.Seq] = *res.Celebration
	}
	return m.refresh()
}

// refresh reconciles the animated list with the current filtered view and
// keeps the cursor in range.
func (m *Model) refresh() tea.Cmd {
	visible := m.visible()
	if diff := m.list.Reconcile(visible); !diff.Empty() {
		m.logger.Debug().
			Ints("entered", diff.Entered).
			Ints("exited", diff.Exited).
			Ints("moved", diff.Moved).
			Str("filter", m.filter.Mode().String()).
			Msg("list reconciled")
	}
	if m.Cursor >= len(visible) {
		m.Cursor = len(visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m.frameCmd()
}

func (m *Model) frameCmd() tea.Cmd {
	if m.ticking || !m.Animating() {
		return nil
	}
	m.ticking = true
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m *Model) expireCelebrations(now time.Time) {
	for seq, plan := range m.celebrations {
		if plan.Done(now.Sub(plan.StartedAt)) {
			delete(m.celebrations, seq)
		}
	}
}

func (m Model) visible() []model.Item {
	return m.filter.Visible(m.store.Items())
}

func (m Model) selectedID() (int, bool) {
	visible := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return 0, false
	}
	return visible[m.Cursor].ID, true
}

func (m *Model) resize(termWidth int) {
	width := termWidth - 6
	if width > 72 {
		width = 72
	}
	if width < 24 {
		width = 24
	}
	m.width = width
	m.input.Width = width - 4
	m.commandInput.Width = width - 4
	m.listViewport.Width = width
}

// rowData turns the animated rows into render input, applying every
// in-flight celebration to the checkboxes.
func (m Model) rowData() []views.RowData {
	rows := m.list.Rows()
	out := make([]views.RowData, 0, len(rows))
	for _, row := range rows {
		if !row.Visible() {
			continue
		}
		out = append(out, views.RowData{
			ID:          row.Item.ID,
			Description: row.Item.Description,
			Checked:     row.Item.Checked,
			Opacity:     row.Opacity,
			Scale:       1,
		})
	}
	selected, hasSelection := m.selectedID()
	anchors := make(map[int]int, len(out))
	for i := range out {
		anchors[out[i].ID] = i
		out[i].Selected = hasSelection && m.Focus == FocusList && out[i].ID == selected
	}

	now := m.now()
	for _, plan := range m.celebrations {
		row, ok := anchors[plan.AnchorID]
		if !ok {
			row = plan.Anchor
		}
		local := plan.Reanchor(row, len(out))
		elapsed := now.Sub(plan.StartedAt)
		for i := range out {
			v := local.Sample(i, elapsed)
			switch plan.Style.Property() {
			case celebrate.PropertyScale:
				out[i].Scale *= v
			case celebrate.PropertyX:
				out[i].OffsetX += v
			case celebrate.PropertyRotate:
				out[i].Rotate += v
			}
		}
	}
	return out
}

// syncListViewport renders the rows into the viewport and scrolls it so the
// cursor stays on screen.
func (m *Model) syncListViewport() {
	rows := m.rowData()
	m.listViewport.SetContent(views.RenderRows(rows, m.width, m.theme))
	height := len(rows)
	if height > m.cfg.ListHeight {
		height = m.cfg.ListHeight
	}
	if height < 1 {
		height = 1
	}
	m.listViewport.Height = height

	selected, ok := m.selectedID()
	if !ok {
		m.listViewport.GotoTop()
		return
	}
	line := 0
	for i, row := range rows {
		if row.ID == selected {
			line = i
			break
		}
	}
	if line < m.listViewport.YOffset {
		m.listViewport.SetYOffset(line)
	} else if line >= m.listViewport.YOffset+height {
		m.listViewport.SetYOffset(line - height + 1)
	}
}

func (m Model) scrollHint() string {
	total := m.listViewport.TotalLineCount()
	if total <= m.listViewport.Height {
		return ""
	}
	first := m.listViewport.YOffset + 1
	last := m.listViewport.YOffset + m.listViewport.Height
	if last > total {
		last = total
	}
	return fmt.Sprintf("%d-%d of %d", first, last, total)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	all := m.store.Items()
	body := views.RenderListPanel(views.ListPanelData{
		InputView:    m.input.View(),
		ShowFilter:   filter.ShowToggle(all),
		FilterActive: m.filter.Mode() == model.FilterCompleted,
		Empty:        len(all) == 0,
		ListView:     m.listViewport.View(),
		ScrollHint:   m.scrollHint(),
		Width:        m.width,
		Theme:        m.theme,
	})

	side := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		m.renderHelpIfVisible(),
	}, "\n"))

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("selesai | %d items | showing: %s | focus: %s", len(all), m.filter.Mode(), m.Focus),
		Body:       body,
		SidePane:   side,
		StatusLine: status,
		Footer:     m.helpModel.View(m.keyMap()),
		Width:      m.width,
	})
}

func waitForChangeCmd(ch <-chan watch.ChangeEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return StorageChangedMsg{Event: ev}
	}
}
