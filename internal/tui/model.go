// Package tui is the interactive navigator over a walk's match records.
package tui

import (
	"look/internal/command"
	"look/internal/config"
	"look/internal/log"
	"look/internal/search"
	"look/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// Lines outside the result list: pane borders, status, input pane, help.
	chromeHeight = 2 + 1 + 3 + 1
)

// Dispatcher runs submitted command text against the selected record.
type Dispatcher interface {
	Dispatch(text string, selected *search.MatchRecord) command.Outcome
}

// Model is the navigator state. Records are fixed for the model's lifetime.
type Model struct {
	records  []search.MatchRecord
	selected int
	mode     types.Mode

	// Command line
	input  []rune
	cursor int

	lastOutput string
	hasOutput  bool
	showOutput bool
	exit       bool

	dispatcher Dispatcher
	keys       types.KeyMap
	help       help.Model
	viewport   viewport.Model
	styles     Styles
	logger     *log.Logger

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithDispatcher replaces the command dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(m *Model) {
		m.dispatcher = d
	}
}

// WithTheme styles the navigator from theme colours.
func WithTheme(theme config.ThemeConfig) Option {
	return func(m *Model) {
		m.styles = NewStyles(theme)
	}
}

// WithKeyMap replaces the key bindings.
func WithKeyMap(keys types.KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// WithLogger directs navigator diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// New creates a navigator over records. The first record is selected when
// there is one.
func New(records []search.MatchRecord, opts ...Option) *Model {
	m := &Model{
		records:  records,
		selected: -1,
		mode:     types.Selection,
		keys:     types.DefaultKeyMap(),
		help:     help.New(),
		styles:   DefaultStyles(),
		logger:   log.Default(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if len(records) > 0 {
		m.selected = 0
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.dispatcher == nil {
		m.dispatcher = command.New(command.WithLogger(m.logger))
	}

	m.help.Width = m.width
	m.viewport = viewport.New(m.listWidth(), m.listHeight())
	m.syncViewport()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		for _, k := range keysFromMsg(msg, m.mode, m.keys) {
			if _, exit := m.HandleKey(k); exit {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// HandleKey applies one key press and reports whether the navigator should
// exit.
func (m *Model) HandleKey(k Key) (*Model, bool) {
	if k.Type == KeyInterrupt {
		m.exit = true
		return m, true
	}

	switch m.mode {
	case types.Command:
		m.handleCommandKey(k)
	default:
		m.handleSelectionKey(k)
	}

	m.syncViewport()
	return m, m.exit
}

func (m *Model) handleSelectionKey(k Key) {
	switch {
	case k.Type == KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case k.Type == KeyDown:
		if m.selected >= 0 && m.selected < len(m.records)-1 {
			m.selected++
		}
	case k.Type == KeyRune && k.Rune == ':':
		m.mode = types.Command
		m.clearInput()
	}
}

func (m *Model) handleCommandKey(k Key) {
	switch k.Type {
	case KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case KeyRight:
		if m.cursor < len(m.input) {
			m.cursor++
		}
	case KeyBackspace:
		if m.cursor > 0 {
			m.input = append(m.input[:m.cursor-1], m.input[m.cursor:]...)
			m.cursor--
		}
	case KeyDelete:
		if m.cursor < len(m.input) {
			m.input = append(m.input[:m.cursor], m.input[m.cursor+1:]...)
		}
	case KeyRune:
		m.input = append(m.input, 0)
		copy(m.input[m.cursor+1:], m.input[m.cursor:])
		m.input[m.cursor] = k.Rune
		m.cursor++
		m.showOutput = false
	case KeyEnter:
		m.submit()
	case KeyEsc:
		m.mode = types.Selection
		m.clearInput()
	}
}

func (m *Model) submit() {
	text := string(m.input)
	outcome := m.dispatcher.Dispatch(text, m.Selected())

	if outcome.HasOutput {
		m.lastOutput = outcome.Output
		m.hasOutput = true
	}
	if outcome.Exit {
		m.exit = true
	}

	m.clearInput()
	m.showOutput = true
	m.logger.With(log.F("input", text), log.F("outcome", outcome.Kind.String())).Debug("command submitted")
}

func (m *Model) clearInput() {
	m.input = m.input[:0]
	m.cursor = 0
}

// SetSize records the terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.syncViewport()
}

func (m *Model) listHeight() int {
	if h := m.height - chromeHeight; h > 1 {
		return h
	}
	return 1
}

func (m *Model) listWidth() int {
	if w := m.width - 2; w > 1 {
		return w
	}
	return 1
}

// syncViewport refreshes the list content and scrolls the selection into
// view.
func (m *Model) syncViewport() {
	m.viewport.Width = m.listWidth()
	m.viewport.Height = m.listHeight()
	m.viewport.SetContent(m.renderRecords())

	if m.selected < 0 {
		m.viewport.SetYOffset(0)
		return
	}
	switch {
	case m.selected < m.viewport.YOffset:
		m.viewport.SetYOffset(m.selected)
	case m.selected >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
	}
}

// Records returns the match records.
func (m *Model) Records() []search.MatchRecord {
	return m.records
}

// SelectedIndex returns the selected record's index, or -1 when there are
// no records.
func (m *Model) SelectedIndex() int {
	return m.selected
}

// Selected returns the selected record, or nil.
func (m *Model) Selected() *search.MatchRecord {
	if m.selected < 0 || m.selected >= len(m.records) {
		return nil
	}
	return &m.records[m.selected]
}

func (m *Model) Mode() types.Mode {
	return m.mode
}

// Input returns the command line text.
func (m *Model) Input() string {
	return string(m.input)
}

// Cursor returns the rune index of the command line cursor.
func (m *Model) Cursor() int {
	return m.cursor
}

// LastOutput returns the most recent command output, if any.
func (m *Model) LastOutput() (string, bool) {
	return m.lastOutput, m.hasOutput
}

// ShowOutput reports whether the input pane shows the last output instead
// of the command line.
func (m *Model) ShowOutput() bool {
	return m.showOutput
}

// Exit reports whether the navigator has finished.
func (m *Model) Exit() bool {
	return m.exit
}
