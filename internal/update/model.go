package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"
	"github.com/sandeepkv93/selesai/internal/celebrate"
	"github.com/sandeepkv93/selesai/internal/filter"
	"github.com/sandeepkv93/selesai/internal/items"
	"github.com/sandeepkv93/selesai/internal/listview"
	"github.com/sandeepkv93/selesai/internal/views"
	"github.com/sandeepkv93/selesai/internal/watch"
)

type Focus string

const (
	FocusInput Focus = "input"
	FocusList  Focus = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Submit  key.Binding
	Switch  key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Remove  key.Binding
	Filter  key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add note")),
		Switch:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "move up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "move down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "check / uncheck")),
		Remove:  key.NewBinding(key.WithKeys("d", "backspace", "delete"), key.WithHelp("d", "remove")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "pending / done")),
		Palette: key.NewBinding(key.WithKeys(":", "/"), key.WithHelp(":", "command palette")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// FrameMsg advances list and celebration animations by one frame.
type FrameMsg time.Time

// StorageChangedMsg arrives when another process rewrote the state file.
type StorageChangedMsg struct {
	Event watch.ChangeEvent
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type Model struct {
	Focus       Focus
	Cursor      int
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	store        *items.Store
	filter       *filter.Controller
	list         *listview.List
	celebrations map[uint64]celebrate.Plan
	watcher      *watch.Engine
	theme        views.Theme
	cfg          RuntimeConfig
	now          func() time.Time
	ticking      bool
	width        int
	logger       zerolog.Logger

	input        textinput.Model
	commandInput textinput.Model
	listViewport viewport.Model
	helpModel    help.Model
}

// NewModel builds a model over a hydrated store with default settings and
// no file watcher.
func NewModel(store *items.Store) Model {
	return NewModelWithConfig(store, nil, views.DarkTheme(), DefaultRuntimeConfig())
}

func NewModelWithConfig(store *items.Store, watcher *watch.Engine, theme views.Theme, cfg RuntimeConfig) Model {
	if store == nil {
		store = items.New(nil, nil, zerolog.Nop())
	}
	if cfg.ListHeight <= 0 {
		cfg.ListHeight = DefaultRuntimeConfig().ListHeight
	}
	m := Model{
		Focus:        FocusInput,
		Keys:         DefaultKeyMap(),
		store:        store,
		filter:       filter.New(),
		list:         listview.New(cfg.FPS, cfg.Animations),
		celebrations: make(map[uint64]celebrate.Plan),
		watcher:      watcher,
		theme:        theme,
		cfg:          cfg,
		now:          time.Now,
		width:        views.DefaultCardWidth,
		logger:       zerolog.Nop(),
	}
	m.initBubbleComponents()
	m.list.Reconcile(m.visible())
	m.syncListViewport()
	return m
}

func (m *Model) initBubbleComponents() {
	m.input = textinput.New()
	m.input.Prompt = "› "
	m.input.Placeholder = "What needs doing?"
	m.input.CharLimit = 256
	m.input.Width = m.width - 4
	m.input.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = m.width - 4

	m.listViewport = viewport.New(m.width, m.cfg.ListHeight)
	m.helpModel = help.New()
}

func (m Model) WithLogger(logger zerolog.Logger) Model {
	m.logger = logger
	return m
}

// Store exposes the underlying item store, mostly for tests and the CLI.
func (m Model) Store() *items.Store { return m.store }

func (m Model) FilterMode() string { return m.filter.Mode().String() }

func (m Model) InputValue() string { return m.input.Value() }

// Celebrating reports how many celebrations are still in flight.
func (m Model) Celebrating() int { return len(m.celebrations) }

func (m Model) Animating() bool {
	return m.list.Animating() || len(m.celebrations) > 0
}
