package ui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tidy/internal/app"
	"github.com/idilsaglam/tidy/internal/codec"
	"github.com/idilsaglam/tidy/internal/model"
	"github.com/idilsaglam/tidy/internal/store/jsonstore"
)

// how often the state file is checked for outside edits
const pollInterval = time.Second

// pollMsg asks the model to look at the state file again.
type pollMsg time.Time

// entry adapts a Todo to bubbles/list.Item.
type entry struct {
	model.Todo
}

// Implement list.Item interface
func (e entry) Title() string       { return e.Todo.Title }
func (e entry) Description() string { return "" }
func (e entry) FilterValue() string { return e.Todo.Title }

// Custom delegate to control how entries render (single line)
type entryDelegate struct{}

func (d entryDelegate) Height() int                               { return 1 }
func (d entryDelegate) Spacing() int                              { return 0 }
func (d entryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, _ := item.(entry)

	box := mutedStyle.Render(boxUnchecked)
	text := e.Todo.Title
	if e.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	line := fmt.Sprintf("%s %s", box, text)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// Model is the Bubble Tea model: a thin shell around the dispatcher. All
// state transitions go through Dispatch; the shell only turns terminal
// events into actions and re-renders snapshots.
type Model struct {
	dispatcher *app.Dispatcher
	store      *jsonstore.Store

	list  list.Model
	input textinput.Model

	// composing routes keystrokes into the draft field
	composing bool

	width, height int
}

// New builds the TUI shell over an already-loaded dispatcher.
func New(d *app.Dispatcher, store *jsonstore.Store) Model {
	l := list.New(nil, entryDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("item", "items")

	// Extend help with our bindings
	binds := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "compose")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1/2/3", "filter")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return binds }
	l.AdditionalFullHelpKeys = func() []key.Binding { return binds }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200

	m := Model{dispatcher: d, store: store, list: l, input: ti}
	m.syncFromState()
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
// Gateway diagnostics are silenced for the duration: stderr is part of the
// screen while the program runs.
func Run(d *app.Dispatcher, store *jsonstore.Store) error {
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer slog.SetDefault(prev)

	p := tea.NewProgram(New(d, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return pollTick() }

func pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case pollMsg:
		m.checkStore()
		m.syncFromState()
		return m, pollTick()

	case tea.KeyMsg:
		if m.composing {
			return m.updateComposing(msg)
		}
		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateComposing feeds keystrokes into the draft: every edit dispatches the
// new field text, enter submits it. Submitting an empty title is allowed.
func (m Model) updateComposing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.dispatcher.Dispatch(model.Add{})
		m.input.SetValue("")
		m.syncFromState()
		return m, nil
	case "esc":
		m.composing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.dispatcher.Dispatch(model.UpdateField{Title: m.input.Value()})
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "a":
		m.composing = true
		m.input.SetValue(m.dispatcher.State().Draft.Title)
		m.input.CursorEnd()
		m.input.Focus()
		return m, nil

	case " ":
		if e, ok := m.list.SelectedItem().(entry); ok {
			if e.Completed {
				m.dispatcher.Dispatch(model.Uncomplete{Todo: e.Todo})
			} else {
				m.dispatcher.Dispatch(model.Complete{Todo: e.Todo})
			}
			m.syncFromState()
		}
		return m, nil

	case "d":
		if e, ok := m.list.SelectedItem().(entry); ok {
			m.dispatcher.Dispatch(model.Delete{Todo: e.Todo})
			m.syncFromState()
		}
		return m, nil

	case "1":
		m.dispatcher.Dispatch(model.SetFilter{Filter: model.FilterAll})
		m.syncFromState()
		return m, nil
	case "2":
		m.dispatcher.Dispatch(model.SetFilter{Filter: model.FilterActive})
		m.syncFromState()
		return m, nil
	case "3":
		m.dispatcher.Dispatch(model.SetFilter{Filter: model.FilterCompleted})
		m.syncFromState()
		return m, nil

	case "c":
		m.dispatcher.Dispatch(model.ClearCompleted{})
		m.syncFromState()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// checkStore picks up outside edits of the state file. A changed file that
// decodes replaces the whole state; one that does not is absorbed as a no-op
// (the decode error would normally be logged, but the TUI runs with logging
// silenced).
func (m *Model) checkStore() {
	raw, changed, err := m.store.Poll()
	if err != nil {
		slog.Warn("state file not polled", "err", err)
		return
	}
	if !changed {
		return
	}
	st, err := codec.Decode(raw)
	if err != nil {
		slog.Warn("undecodable state file content ignored", "err", err)
		m.dispatcher.Dispatch(model.NoOp{})
		return
	}
	m.dispatcher.Dispatch(model.SetModel{State: st})
}

// syncFromState rebuilds the visible list and header from the current
// snapshot. Called after every dispatch so the screen never renders a stale
// state.
func (m *Model) syncFromState() {
	s := m.dispatcher.State()

	visible := model.VisibleTodos(s.Todos, s.Filter)
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, entry{t})
	}
	m.list.SetItems(items)

	remaining := model.RemainingCount(s.Todos)
	done := len(s.Todos) - remaining
	m.list.Title = fmt.Sprintf("%s   %s %d left  %s %s  %s",
		titleStyle.Render("Todos"),
		pendingStyle.Render("•"), remaining,
		accentStyle.Render("Filter"), s.Filter.String(),
		mutedStyle.Render(progressBar(done, len(s.Todos), 20)),
	)

	if !m.composing {
		m.input.SetValue(s.Draft.Title)
	}
}

func (m *Model) resize() {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}
	listHeight := h - 4
	if m.composing {
		listHeight = h - 6
	}
	m.list.SetSize(w-2, listHeight)
}

func (m Model) View() string {
	m.resize()

	content := m.list.View()
	if m.composing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		inputLine := "New todo (enter adds, esc leaves)\n" + m.input.View()
		content = content + "\n" + bar.Render(inputLine)
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(content)
}
