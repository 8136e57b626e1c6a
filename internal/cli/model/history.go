// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/moto/internal/cli/styles"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/logging"
)

const (
	historyPageSize = 500
	tableChrome     = 6
)

// HistorySource loads history entries.
type HistorySource interface {
	Recent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error)
	Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error)
}

type historyKeyMap struct {
	Search key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultHistoryKeyMap() historyKeyMap {
	return historyKeyMap{
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "print url")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// HistoryModel is an interactive history table. Enter picks an entry;
// its url is available from Selected after the program exits.
type HistoryModel struct {
	table   table.Model
	search  textinput.Model
	loading styles.LoadingModel
	keys    historyKeyMap

	entries    []*entity.HistoryEntry
	searching  bool
	isLoading  bool
	selected   string
	err        error
	width      int
	height     int
	generation int

	ctx    context.Context
	source HistorySource
	theme  *styles.Theme
}

// NewHistoryModel creates the history browser.
func NewHistoryModel(ctx context.Context, theme *styles.Theme, source HistorySource) HistoryModel {
	search := textinput.New()
	search.Placeholder = "search history"
	search.Prompt = "/ "
	search.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	search.TextStyle = theme.Normal

	return HistoryModel{
		table:     styles.NewStyledTable(theme, styles.HistoryTableColumns(), nil, 120, 20),
		search:    search,
		loading:   styles.NewLoading(theme, "Loading history..."),
		keys:      defaultHistoryKeyMap(),
		isLoading: true,
		width:     120,
		height:    24,
		ctx:       ctx,
		source:    source,
		theme:     theme,
	}
}

// historyLoadedMsg carries a load result. Stale generations are ignored.
type historyLoadedMsg struct {
	generation int
	entries    []*entity.HistoryEntry
	err        error
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Spinner.Tick, m.load(""))
}

func (m HistoryModel) load(query string) tea.Cmd {
	ctx, source, gen := m.ctx, m.source, m.generation
	return func() tea.Msg {
		var (
			entries []*entity.HistoryEntry
			err     error
		)
		if query == "" {
			entries, err = source.Recent(ctx, historyPageSize, 0)
		} else {
			entries, err = source.Search(ctx, query, historyPageSize)
		}
		if err != nil {
			logging.FromContext(ctx).Debug().Err(err).Str("query", query).Msg("history load failed")
		}
		return historyLoadedMsg{generation: gen, entries: entries, err: err}
	}
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-tableChrome, 1))
		return m, nil

	case historyLoadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.isLoading = false
		m.err = msg.err
		m.entries = msg.entries
		rows := make([]table.Row, 0, len(msg.entries))
		for _, e := range msg.entries {
			rows = append(rows, styles.HistoryRow(e))
		}
		m.table.SetRows(rows)
		m.table.SetCursor(0)
		return m, nil

	case spinner.TickMsg:
		if !m.isLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.table.Blur()
			return m, m.search.Focus()
		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.entries) {
				m.selected = m.entries[i].URL
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m HistoryModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		m.generation++
		m.isLoading = true
		return m, tea.Batch(m.loading.Spinner.Tick, m.load(m.search.Value()))
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	header := m.theme.Title.Render(styles.IconClock + " History")
	var body string
	switch {
	case m.err != nil:
		body = m.theme.ErrorStyle.Render("Error: " + m.err.Error())
	case m.isLoading:
		body = m.loading.View()
	case len(m.entries) == 0:
		body = m.theme.Subtle.Render("No history yet.")
	default:
		body = m.table.View()
	}

	footer := m.theme.Subtle.Render("/ search • enter print url • q quit")
	if m.searching {
		footer = m.search.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

// Selected returns the url picked with enter, if any.
func (m HistoryModel) Selected() string {
	return m.selected
}

// Err returns the last load error.
func (m HistoryModel) Err() error {
	return m.err
}
