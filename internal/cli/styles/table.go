package styles

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/ui/overlay"
)

const (
	titleColumnWidth = 40
	urlColumnWidth   = 48
)

// NewStyledTable creates a themed, interactive table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// HistoryTableColumns returns columns for the history table.
func HistoryTableColumns() []table.Column {
	return []table.Column{
		{Title: "Title", Width: titleColumnWidth},
		{Title: "URL", Width: urlColumnWidth},
		{Title: "Visits", Width: 6},
		{Title: "Last Visit", Width: 16},
	}
}

// HistoryRow converts an entry to a table row.
func HistoryRow(e *entity.HistoryEntry) table.Row {
	return table.Row{
		overlay.TruncateLabel(e.Title, titleColumnWidth),
		overlay.TruncateLabel(e.URL, urlColumnWidth),
		formatCount(e.VisitCount),
		formatWhen(e.LastVisited),
	}
}

// BookmarkRow converts a bookmark to a row for RenderTable.
func BookmarkRow(b *entity.Bookmark) []string {
	return []string{
		overlay.TruncateLabel(b.Title, titleColumnWidth),
		overlay.TruncateLabel(b.URL, urlColumnWidth),
		formatWhen(b.CreatedAt),
	}
}

// RenderTable renders a static table for non-interactive output.
func RenderTable(theme *Theme, headers []string, rows [][]string) string {
	header := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return header
			}
			return cell
		})
	return t.Render()
}

func formatCount(n int64) string {
	return strconv.FormatInt(max(n, 0), 10)
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
