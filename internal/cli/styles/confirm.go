package styles

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a yes/no confirmation dialog.
type ConfirmModel struct {
	Message   string
	Yes       bool // Current selection
	Confirmed bool // User pressed enter
	Canceled  bool // User pressed escape
	theme     *Theme
	keys      ConfirmKeyMap
}

// ConfirmKeyMap defines keybindings for the confirm dialog.
type ConfirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeyMap returns the default keybindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes:     key.NewBinding(key.WithKeys("y", "right", "l"), key.WithHelp("y/→", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "left", "h"), key.WithHelp("n/←", "no")),
		Toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "cancel")),
	}
}

// NewConfirm creates a new confirmation dialog. defaultYes preselects Yes.
func NewConfirm(theme *Theme, message string, defaultYes bool) ConfirmModel {
	return ConfirmModel{
		Message: message,
		Yes:     defaultYes,
		theme:   theme,
		keys:    DefaultConfirmKeyMap(),
	}
}

// Update handles a key press.
func (m ConfirmModel) Update(msg tea.Msg) ConfirmModel {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.Yes = true
	case key.Matches(keyMsg, m.keys.No):
		m.Yes = false
	case key.Matches(keyMsg, m.keys.Toggle):
		m.Yes = !m.Yes
	case key.Matches(keyMsg, m.keys.Confirm):
		m.Confirmed = true
	case key.Matches(keyMsg, m.keys.Cancel):
		m.Canceled = true
	}
	return m
}

// View renders the dialog.
func (m ConfirmModel) View() string {
	t := m.theme

	yesStyle, noStyle := t.ButtonInactive, t.ButtonActive
	if m.Yes {
		yesStyle, noStyle = t.ButtonActive, t.ButtonInactive
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, noStyle.Render(" No "), "  ", yesStyle.Render(" Yes "))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		t.Title.Render(m.Message),
		"",
		buttons,
		"",
		t.Subtle.Render("y/n to select • enter to confirm • esc to cancel"),
	)
	return t.Box.Render(content)
}

// Done returns true if the dialog is complete.
func (m ConfirmModel) Done() bool {
	return m.Confirmed || m.Canceled
}

// Result returns true if user confirmed "Yes".
func (m ConfirmModel) Result() bool {
	return m.Confirmed && m.Yes
}

// confirmProgram adapts ConfirmModel to tea.Model.
type confirmProgram struct {
	confirm ConfirmModel
}

func (confirmProgram) Init() tea.Cmd { return nil }

func (p confirmProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p.confirm = p.confirm.Update(msg)
	if p.confirm.Done() {
		return p, tea.Quit
	}
	return p, nil
}

func (p confirmProgram) View() string {
	if p.confirm.Done() {
		return ""
	}
	return p.confirm.View() + "\n"
}

// Confirm runs a standalone dialog on the terminal. A canceled context
// answers no.
func Confirm(ctx context.Context, theme *Theme, message string, defaultYes bool) (bool, error) {
	p := tea.NewProgram(confirmProgram{confirm: NewConfirm(theme, message, defaultYes)}, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		return false, fmt.Errorf("confirm dialog: %w", err)
	}
	result, ok := final.(confirmProgram)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", final)
	}
	return result.confirm.Result(), nil
}
