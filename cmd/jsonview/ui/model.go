package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/config"
	"jsonview/internal/logging"
	"jsonview/internal/viewer"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// ReloadMsg replaces the displayed value, highlighting what changed. A
// non-nil Err keeps the current value and reports the error.
type ReloadMsg struct {
	Value viewer.Value
	Err   error
}

// ResetMsg replaces the displayed value and discards all folding state.
type ResetMsg struct {
	Value viewer.Value
	Err   error
}

// Options configures a Model.
type Options struct {
	Source       string
	Indentation  int
	InitialItems int
	Styles       config.Modifiers
	Keys         config.KeyConfig
	Theme        string
	StatusBar    bool

	// Loader re-reads the source on the reload key. Without one the reload
	// key resets the current value.
	Loader func() (viewer.Value, error)
}

// DefaultOptions mirrors the default configuration.
func DefaultOptions() Options {
	cfg := config.DefaultConfig()
	return OptionsFromConfig(cfg)
}

// OptionsFromConfig builds options from a validated configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	mods, err := cfg.Viewer.Styles.Modifiers()
	if err != nil {
		logging.ConfigWarn("invalid styles, using defaults: %v", err)
		mods = config.Modifiers{
			ActiveFocused:   viewer.DefaultActiveFocused,
			InactiveFocused: viewer.DefaultInactiveFocused,
			ItemChanged:     viewer.DefaultItemChanged,
		}
	}
	return Options{
		Indentation:  cfg.Viewer.Indentation,
		InitialItems: cfg.Viewer.InitialItems,
		Styles:       mods,
		Keys:         cfg.Keys,
		Theme:        cfg.UI.Theme,
		StatusBar:    cfg.UI.StatusBar,
	}
}

// Model hosts a viewer.Viewer in a viewport that follows the active
// interaction point.
type Model struct {
	viewer   *viewer.Viewer
	value    viewer.Value
	opts     Options
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	styles   Styles
	cache    *RenderCache

	width   int
	height  int
	focused bool

	status    string
	statusErr bool
	quitting  bool
}

// New creates a model displaying value.
func New(value viewer.Value, opts Options) Model {
	m := Model{
		viewer:   viewer.New(value, viewer.WithInitialItems(opts.InitialItems)),
		value:    value,
		opts:     opts,
		keys:     NewKeyMap(opts.Keys),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		styles:   NewStyles(DetectTheme(opts.Theme)),
		cache:    NewRenderCache(32),
		width:    80,
		height:   24,
		focused:  true,
	}
	m.layout()
	m.refresh()
	return m
}

// Viewer exposes the hosted viewer.
func (m Model) Viewer() *viewer.Viewer { return m.viewer }

// Status returns the status bar message and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Focused reports whether the terminal has focus.
func (m Model) Focused() bool { return m.focused }

// YOffset returns the first visible line of the viewer.
func (m Model) YOffset() int { return m.viewport.YOffset }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()

	case tea.FocusMsg:
		m.focused = true

	case tea.BlurMsg:
		m.focused = false

	case ReloadMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("reload failed: %w", msg.Err))
			break
		}
		m.value = msg.Value
		m.viewer.Update(msg.Value)
		m.setStatus("reloaded")
		logging.ViewerDebug("applied reload, revision %d", m.viewer.Revision())

	case ResetMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("reload failed: %w", msg.Err))
			break
		}
		m.value = msg.Value
		m.viewer.Reset(msg.Value)
		m.setStatus("reset")

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		if m.quitting {
			return m, cmd
		}
		m.refresh()
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		err = m.viewer.SelectNext()
	case key.Matches(msg, m.keys.Previous):
		err = m.viewer.SelectPrevious()
	case key.Matches(msg, m.keys.First):
		err = m.viewer.SelectFirst()
	case key.Matches(msg, m.keys.Last):
		err = m.viewer.SelectLast()

	case key.Matches(msg, m.keys.Toggle):
		err = m.viewer.ToggleActiveElement()

	case key.Matches(msg, m.keys.Expand):
		m.viewer.ExpandAll()
		m.setStatus("expanded all")

	case key.Matches(msg, m.keys.Reload):
		if m.opts.Loader != nil {
			return m, m.load()
		}
		m.viewer.Reset(m.value)
		m.setStatus("reset")

	case key.Matches(msg, m.keys.CopyValue):
		m.copy(m.viewer.ActiveValue(), "value")

	case key.Matches(msg, m.keys.CopyPath):
		ptr := m.viewer.ActivePath().Pointer()
		if ptr == "" {
			m.setStatus("the root has no path")
			break
		}
		m.copy(ptr, "path")

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}

	switch {
	case err == nil:
	case errors.Is(err, viewer.ErrNoSelection), errors.Is(err, viewer.ErrNoAction):
		logging.UIDebug("%s: %v", msg.String(), err)
	default:
		m.setError(err)
	}
	return m, nil
}

func (m Model) load() tea.Cmd {
	loader := m.opts.Loader
	return func() tea.Msg {
		t := logging.StartTimer(logging.CategoryViewer, "reload")
		defer t.Stop()
		v, err := loader()
		return ResetMsg{Value: v, Err: err}
	}
}

func (m *Model) copy(text, what string) {
	if err := clipboardWriteAll(text); err != nil {
		m.setError(fmt.Errorf("copy %s: %w", what, err))
		return
	}
	logging.UI("copied %s (%d bytes)", what, len(text))
	m.setStatus(fmt.Sprintf("copied %s %q", what, text))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	logging.Get(logging.CategoryUI).Warn("%v", err)
}

func (m *Model) layout() {
	h := m.height - lipgloss.Height(m.help.View(m.keys))
	if m.opts.StatusBar {
		h--
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(h, 1)
}

func (m *Model) widget() viewer.Widget {
	return m.viewer.AsWidget().
		Indentation(m.opts.Indentation).
		ActiveFocused(m.opts.Styles.ActiveFocused).
		InactiveFocused(m.opts.Styles.InactiveFocused).
		ItemChanged(m.opts.Styles.ItemChanged)
}

// refresh redraws the viewer into the viewport and scrolls so that the
// active line stays visible.
func (m *Model) refresh() {
	k := ComputeKey(m.viewer.Revision(), m.width, m.focused, m.opts.Indentation)
	r := m.cache.GetOrCompute(k, func() Rendered {
		f := m.widget().Render(viewer.RenderingHints{Active: m.focused})
		return Rendered{
			Content:    f.Window(0, m.width, f.Height()),
			ActiveLine: f.ActiveLine,
			Lines:      f.Height(),
		}
	})
	m.viewport.SetContent(r.Content)

	switch {
	case r.ActiveLine < m.viewport.YOffset:
		m.viewport.SetYOffset(r.ActiveLine)
	case r.ActiveLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(r.ActiveLine - m.viewport.Height + 1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	parts := []string{m.viewport.View()}
	if m.opts.StatusBar {
		parts = append(parts, m.statusBar())
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusBar() string {
	left := m.styles.Source.Render(m.opts.Source) + m.styles.Path.Render(m.viewer.ActivePath().String())
	msgStyle := m.styles.Message
	if m.statusErr {
		msgStyle = m.styles.Error
	}
	right := ""
	if m.status != "" {
		right = msgStyle.Render(m.status)
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + m.styles.StatusBar.Render(strings.Repeat(" ", gap)) + right
}
