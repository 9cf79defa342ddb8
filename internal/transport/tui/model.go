// Package tui is the interactive terminal front end: a search box, the
// rendered result, and key bindings for theme, font and clipboard actions.
package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/render"
	"github.com/heartmarshall/wordlookup/internal/session"
)

// lookupService performs a single lookup.
type lookupService interface {
	Lookup(ctx context.Context, query string) (domain.Result, error)
}

// resultMsg carries a finished lookup back into the event loop.
type resultMsg struct {
	ticket session.Ticket
	res    domain.Result
	err    error
}

// Model is the bubbletea model of the widget.
type Model struct {
	log   *slog.Logger
	svc   lookupService
	state *session.State

	input   textinput.Model
	spinner spinner.Model
	term    render.Terminal

	// base is the parent of every lookup context; cancel aborts the in-flight one.
	base   context.Context
	cancel context.CancelFunc

	copy   func(string) error
	status string
	quit   bool
}

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copy = fn }
}

// WithContext sets the parent context of lookups.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.base = ctx }
}

// NewModel creates the widget model with the given starting preferences.
func NewModel(logger *slog.Logger, svc lookupService, prefs domain.Preferences, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search for any word..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 64
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		log:     logger.With("component", "tui"),
		svc:     svc,
		state:   session.New(prefs),
		input:   ti,
		spinner: sp,
		base:    context.Background(),
		copy:    clipboard.WriteAll,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// State exposes the session for inspection.
func (m *Model) State() *session.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.term.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		if msg.err != nil {
			if m.state.Abandon(msg.ticket) {
				m.cancel = nil
				m.status = msg.err.Error()
			}
			return m, nil
		}
		if m.state.Resolve(msg.ticket, msg.res) {
			m.cancel = nil
			m.status = ""
			m.log.Debug("lookup applied", slog.String("word", msg.res.Word), slog.Bool("ok", msg.res.OK()))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.abort()
		m.quit = true
		return m, tea.Quit

	case "enter":
		return m, m.submit()

	case "ctrl+t":
		m.state.Prefs.ToggleTheme()
		return m, nil

	case "ctrl+f":
		m.state.Prefs.CycleFont()
		return m, nil

	case "ctrl+a":
		m.copyLink("audio", m.audioURL)
		return m, nil

	case "ctrl+s":
		m.copyLink("source", m.sourceURL)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.SetQuery(m.input.Value())
	return m, cmd
}

// submit starts a lookup for the typed word. The previous lookup, if still
// running, is canceled and its ticket becomes stale.
func (m *Model) submit() tea.Cmd {
	m.state.SetQuery(m.input.Value())
	ticket, word, ok := m.state.Submit()
	if !ok {
		m.status = "Whoops, can't be empty..."
		return nil
	}
	m.status = ""
	m.abort()

	ctx, cancel := context.WithCancel(m.base)
	m.cancel = cancel
	return tea.Batch(m.lookupCmd(ctx, ticket, word), m.spinner.Tick)
}

func (m *Model) lookupCmd(ctx context.Context, ticket session.Ticket, word string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Lookup(ctx, word)
		return resultMsg{ticket: ticket, res: res, err: err}
	}
}

func (m *Model) abort() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) audioURL() (string, bool) {
	if e := m.state.Entry(); e != nil {
		return e.AudioURL()
	}
	return "", false
}

func (m *Model) sourceURL() (string, bool) {
	if e := m.state.Entry(); e != nil {
		return e.SourceURL()
	}
	return "", false
}

func (m *Model) copyLink(what string, get func() (string, bool)) {
	u, ok := get()
	if !ok {
		m.status = "No " + what + " link for this word"
		return
	}
	if err := m.copy(u); err != nil {
		m.log.Warn("clipboard write failed", slog.String("error", err.Error()))
		m.status = "Could not copy the " + what + " link"
		return
	}
	m.status = "Copied " + what + " link"
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (m *Model) View() string {
	if m.quit {
		return ""
	}
	prefs := m.state.Prefs

	var b strings.Builder
	theme := "☀"
	if prefs.Dark {
		theme = "☾"
	}
	b.WriteString(titleStyle.Render("📖 Dictionary"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(prefs.Font.Label() + " · " + theme))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if word, ok := m.state.Pending(); ok {
		b.WriteString(m.spinner.View())
		b.WriteString(" Looking up ")
		b.WriteString(accentStyle.Render(word))
		b.WriteString("\n\n")
	}

	if out := m.term.Render(render.Build(m.state.Result(), prefs)); out != "" {
		b.WriteString(out)
		b.WriteString("\n\n")
	}

	if m.status != "" {
		b.WriteString(accentStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("enter search • ctrl+t theme • ctrl+f font • ctrl+a copy audio • ctrl+s copy source • esc quit"))
	return b.String()
}
