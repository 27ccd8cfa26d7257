package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/todoboard/internal/client"
	"github.com/adanyl0v/todoboard/internal/filter"
	"github.com/adanyl0v/todoboard/internal/models"
	"github.com/adanyl0v/todoboard/internal/tui/prefs"
)

// searchDebounce is the quiet window after the last search keystroke
// before the visible list is recomputed.
const searchDebounce = 300 * time.Millisecond

type focusArea int

const (
	focusList focusArea = iota
	focusInput
	focusSearch
)

type (
	todosLoadedMsg []models.Todo
	todoCreatedMsg *models.Todo
	todoUpdatedMsg *models.Todo
	todoDeletedMsg int64

	opFailedMsg struct {
		display string
	}

	searchDebounceMsg struct {
		seq int
	}

	filtersSavedMsg struct{}
)

type Model struct {
	logger zerolog.Logger
	api    *client.Client

	todos   []models.Todo
	loading bool
	errMsg  string

	filters        filter.State
	debouncedQuery string
	debounceSeq    int
	prefsPath      string

	focus  focusArea
	cursor int
	input  textinput.Model
	search textinput.Model
}

func NewModel(logger zerolog.Logger, api *client.Client, filters filter.State, prefsPath string) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 200

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search todos..."
	search.CharLimit = 200
	search.SetValue(filters.SearchQuery)

	return Model{
		logger:         logger,
		api:            api,
		loading:        true,
		filters:        filters,
		debouncedQuery: filters.SearchQuery,
		prefsPath:      prefsPath,
		input:          input,
		search:         search,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTodos(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.loading = false
		m.todos = msg
		m.clampCursor()
		return m, nil

	case todoCreatedMsg:
		// Prepend the server-confirmed record; no optimistic insert.
		m.todos = append([]models.Todo{*msg}, m.todos...)
		m.input.SetValue("")
		m.input.Blur()
		m.focus = focusList
		m.cursor = 0
		return m, nil

	case todoUpdatedMsg:
		for i := range m.todos {
			if m.todos[i].ID == msg.ID {
				m.todos[i] = *msg
				break
			}
		}
		return m, nil

	case todoDeletedMsg:
		todos := m.todos[:0]
		for _, todo := range m.todos {
			if todo.ID != int64(msg) {
				todos = append(todos, todo)
			}
		}
		m.todos = todos
		m.clampCursor()
		return m, nil

	case opFailedMsg:
		m.loading = false
		m.errMsg = msg.display
		return m, nil

	case searchDebounceMsg:
		// A newer keystroke supersedes this recomputation.
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		m.debouncedQuery = m.filters.SearchQuery
		m.clampCursor()
		return m, m.persistFilters()

	case filtersSavedMsg:
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusInput:
			return m.updateInput(msg)
		case focusSearch:
			return m.updateSearch(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			// Blank input never reaches the server.
			m.input.SetValue("")
			m.input.Blur()
			m.focus = focusList
			return m, nil
		}
		m.errMsg = ""
		return m, m.createTodo(title)

	case "esc":
		m.input.SetValue("")
		m.input.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.search.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if m.search.Value() != m.filters.SearchQuery {
		m.filters.SearchQuery = m.search.Value()
		m.debounceSeq++

		seq := m.debounceSeq
		debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{seq: seq}
		})
		return m, tea.Batch(cmd, debounce)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Sequence(m.persistFilters(), tea.Quit)

	case "a", "n":
		m.focus = focusInput
		return m, m.input.Focus()

	case "/":
		m.focus = focusSearch
		return m, m.search.Focus()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil

	case " ", "enter":
		if todo, ok := m.todoAtCursor(); ok {
			m.errMsg = ""
			return m, m.toggleTodo(todo)
		}
		return m, nil

	case "d", "x":
		if todo, ok := m.todoAtCursor(); ok {
			m.errMsg = ""
			return m, m.deleteTodo(todo.ID)
		}
		return m, nil

	case "f":
		m.filters.Status = nextStatus(m.filters.Status)
		m.clampCursor()
		return m, m.persistFilters()

	case "s":
		if m.filters.SortOrder == filter.SortNewest {
			m.filters.SortOrder = filter.SortOldest
		} else {
			m.filters.SortOrder = filter.SortNewest
		}
		return m, m.persistFilters()

	case "c":
		m.filters = filter.DefaultState()
		m.debouncedQuery = ""
		m.search.SetValue("")
		m.clampCursor()
		return m, m.persistFilters()

	case "r":
		m.loading = true
		m.errMsg = ""
		return m, m.loadTodos()
	}

	return m, nil
}

func nextStatus(status string) string {
	switch status {
	case filter.StatusAll:
		return filter.StatusActive
	case filter.StatusActive:
		return filter.StatusCompleted
	default:
		return filter.StatusAll
	}
}

// effectiveFilters swaps in the debounced copy of the search text,
// so typing only recomputes the list after the quiet window.
func (m Model) effectiveFilters() filter.State {
	state := m.filters
	state.SearchQuery = m.debouncedQuery
	return state
}

func (m Model) visible() []models.Todo {
	return filter.Apply(m.todos, m.effectiveFilters())
}

func (m Model) todoAtCursor() (models.Todo, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.Todo{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	last := len(m.visible()) - 1
	if m.cursor > last {
		m.cursor = last
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) loadTodos() tea.Cmd {
	api, logger := m.api, m.logger
	return func() tea.Msg {
		todos, err := api.ListTodos(context.Background())
		if err != nil {
			logger.Error().
				Err(err).
				Msg("failed to load todos")
			return opFailedMsg{display: "Failed to load todos"}
		}
		return todosLoadedMsg(todos)
	}
}

func (m Model) createTodo(title string) tea.Cmd {
	api, logger := m.api, m.logger
	return func() tea.Msg {
		todo, err := api.CreateTodo(context.Background(), title)
		if err != nil {
			logger.Error().
				Err(err).
				Msg("failed to create todo")
			return opFailedMsg{display: "Failed to create todo"}
		}
		return todoCreatedMsg(todo)
	}
}

func (m Model) toggleTodo(todo models.Todo) tea.Cmd {
	api, logger := m.api, m.logger
	completed := !todo.Completed
	return func() tea.Msg {
		updated, err := api.UpdateTodo(context.Background(), todo.ID, client.UpdateParams{
			Completed: &completed,
		})
		if err != nil {
			logger.Error().
				Err(err).
				Int64("todo_id", todo.ID).
				Msg("failed to update todo")
			return opFailedMsg{display: "Failed to update todo"}
		}
		return todoUpdatedMsg(updated)
	}
}

func (m Model) deleteTodo(id int64) tea.Cmd {
	api, logger := m.api, m.logger
	return func() tea.Msg {
		err := api.DeleteTodo(context.Background(), id)
		if err != nil {
			logger.Error().
				Err(err).
				Int64("todo_id", id).
				Msg("failed to delete todo")
			return opFailedMsg{display: "Failed to delete todo"}
		}
		return todoDeletedMsg(id)
	}
}

func (m Model) persistFilters() tea.Cmd {
	logger, path, state := m.logger, m.prefsPath, m.filters
	return func() tea.Msg {
		err := prefs.SaveFilters(path, state)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to persist filters")
		}
		return filtersSavedMsg{}
	}
}

func (m Model) View() string {
	var b strings.Builder

	visible := m.visible()
	counts := filter.Count(m.todos, visible)

	b.WriteString(fmt.Sprintf("%s   %s %d  %s %d  %s %d\n",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), counts.Completed,
		pendingStyle.Render("•"), counts.Active,
		accentStyle.Render("Total"), counts.All,
	))

	filterLine := filter.Summary(m.effectiveFilters())
	if m.filters.SortOrder == filter.SortOldest {
		filterLine += " · oldest first"
	}
	if strings.TrimSpace(m.debouncedQuery) != "" {
		plural := "s"
		if counts.Filtered == 1 {
			plural = ""
		}
		filterLine += fmt.Sprintf(" · %d result%s", counts.Filtered, plural)
	}
	b.WriteString(mutedStyle.Render(filterLine) + "\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("✖ "+m.errMsg) + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading...") + "\n")

	case len(visible) == 0 && len(m.todos) == 0:
		b.WriteString(mutedStyle.Render("No todos yet. Add one to get started!") + "\n")

	case len(visible) == 0:
		b.WriteString(mutedStyle.Render("Nothing matches the current filters.") + "\n")

	default:
		for i, todo := range visible {
			box := mutedStyle.Render(boxUnchecked)
			text := todo.Title
			if todo.Completed {
				box = successStyle.Render(boxChecked)
				text = doneStyle.Render(text)
			}

			prefix := "  "
			if i == m.cursor && m.focus == focusList {
				prefix = selectedStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, box, text))
		}
	}

	b.WriteString("\n")
	switch m.focus {
	case focusInput:
		b.WriteString(m.input.View() + "\n")
		b.WriteString(helpStyle.Render("enter add · esc cancel") + "\n")
	case focusSearch:
		b.WriteString(m.search.View() + "\n")
		b.WriteString(helpStyle.Render("enter/esc done · filters apply as you pause typing") + "\n")
	default:
		b.WriteString(helpStyle.Render(
			"a add · / search · space toggle · d delete · f status · s sort · c clear · r reload · q quit") + "\n")
	}

	return b.String()
}
