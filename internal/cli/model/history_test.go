package model_test

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/cli/model"
	"github.com/bnema/moto/internal/cli/styles"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/logging"
)

type fakeSource struct {
	recent  []*entity.HistoryEntry
	found   []*entity.HistoryEntry
	err     error
	queries []string
}

func (f *fakeSource) Recent(context.Context, int, int) ([]*entity.HistoryEntry, error) {
	return f.recent, f.err
}

func (f *fakeSource) Search(_ context.Context, query string, _ int) ([]*entity.HistoryEntry, error) {
	f.queries = append(f.queries, query)
	return f.found, f.err
}

func newModel(src model.HistorySource) model.HistoryModel {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	return model.NewHistoryModel(ctx, styles.NewTheme(nil), src)
}

// loadMsg runs the loader command of Init, skipping the spinner tick.
func loadMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	return batch[1]()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHistoryModel_LoadAndSelect(t *testing.T) {
	src := &fakeSource{recent: []*entity.HistoryEntry{
		{URL: "https://go.dev", Title: "Go"},
		{URL: "https://example.com", Title: "Example"},
	}}
	m := newModel(src)

	next, _ := m.Update(loadMsg(t, m.Init()))
	m = next.(model.HistoryModel)
	assert.Contains(t, m.View(), "go.dev")

	next, cmd := m.Update(key("enter"))
	m = next.(model.HistoryModel)
	assert.Equal(t, "https://go.dev", m.Selected())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHistoryModel_Search(t *testing.T) {
	src := &fakeSource{found: []*entity.HistoryEntry{{URL: "https://pkg.go.dev", Title: "Packages"}}}
	m := newModel(src)

	next, _ := m.Update(key("/"))
	m = next.(model.HistoryModel)
	for _, r := range "pkg" {
		next, _ = m.Update(key(string(r)))
		m = next.(model.HistoryModel)
	}
	next, cmd := m.Update(key("enter"))
	m = next.(model.HistoryModel)

	next, _ = m.Update(loadMsg(t, cmd))
	m = next.(model.HistoryModel)
	assert.Equal(t, []string{"pkg"}, src.queries)
	assert.Contains(t, m.View(), "pkg.go.dev")
}

func TestHistoryModel_StaleLoadIgnored(t *testing.T) {
	src := &fakeSource{
		recent: []*entity.HistoryEntry{{URL: "https://old.example"}},
		found:  []*entity.HistoryEntry{{URL: "https://new.example"}},
	}
	m := newModel(src)
	initial := loadMsg(t, m.Init())

	next, _ := m.Update(key("/"))
	m = next.(model.HistoryModel)
	next, _ = m.Update(key("n"))
	m = next.(model.HistoryModel)
	next, cmd := m.Update(key("enter"))
	m = next.(model.HistoryModel)
	fresh := loadMsg(t, cmd)

	next, _ = m.Update(initial)
	m = next.(model.HistoryModel)
	assert.NotContains(t, m.View(), "old.example")

	next, _ = m.Update(fresh)
	m = next.(model.HistoryModel)
	assert.Contains(t, m.View(), "new.example")
}

func TestHistoryModel_Error(t *testing.T) {
	m := newModel(&fakeSource{err: errors.New("disk on fire")})
	next, _ := m.Update(loadMsg(t, m.Init()))
	m = next.(model.HistoryModel)
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "disk on fire")
}

func TestHistoryModel_QuitWithoutSelection(t *testing.T) {
	m := newModel(&fakeSource{})
	next, cmd := m.Update(key("q"))
	m = next.(model.HistoryModel)
	assert.Empty(t, m.Selected())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
