package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/moto/internal/cli/model"
	"github.com/bnema/moto/internal/cli/styles"
	"github.com/bnema/moto/internal/domain/entity"
)

var (
	historyJSON bool
	historyMax  int
	historyYes  bool
)

const defaultHistoryMax = 50

var historyHeader = []string{"Title", "URL", "Visits", "Last visit"}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage history",
	Long: `Interactive history browser with search. Press enter on an entry to
print its url, which makes it easy to pipe into 'moto browse'.

When stdout is not a terminal the most recent entries are printed instead.`,
	RunE: runHistory,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search history by url and title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistorySearch,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historySearchCmd, historyClearCmd)

	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.PersistentFlags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to print")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip confirmation prompt")
}

type historyJSONEntry struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	VisitCount  int64  `json:"visit_count"`
	LastVisited string `json:"last_visited"`
}

func runHistory(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	if historyJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		entries, err := app.History.Recent(app.Ctx(), historyMax, 0)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		return printHistory(app.Theme, entries)
	}

	m := model.NewHistoryModel(app.Ctx(), app.Theme, app.History)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(app.Ctx())).Run()
	if err != nil {
		return fmt.Errorf("run history browser: %w", err)
	}
	hm, ok := final.(model.HistoryModel)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	if hm.Err() != nil {
		return hm.Err()
	}
	if u := hm.Selected(); u != "" {
		fmt.Println(u)
	}
	return nil
}

func runHistorySearch(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	entries, err := app.History.Search(app.Ctx(), strings.Join(args, " "), historyMax)
	if err != nil {
		return fmt.Errorf("search history: %w", err)
	}
	return printHistory(app.Theme, entries)
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	if !historyYes {
		ok, err := styles.Confirm(app.Ctx(), app.Theme, "Delete all browsing history?", false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(app.Theme.Subtle.Render("Canceled."))
			return nil
		}
	}

	if err := app.History.Clear(app.Ctx()); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Println(app.Theme.SuccessStyle.Render(styles.IconTrash + " History cleared"))
	return nil
}

func printHistory(theme *styles.Theme, entries []*entity.HistoryEntry) error {
	if historyJSON {
		out := make([]historyJSONEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, historyJSONEntry{
				URL:         e.URL,
				Title:       e.Title,
				VisitCount:  e.VisitCount,
				LastVisited: e.LastVisited.Format(time.RFC3339),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(entries) == 0 {
		fmt.Println(theme.Subtle.Render("No history entries."))
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, styles.HistoryRow(e))
	}
	fmt.Println(styles.RenderTable(theme, historyHeader, rows))
	return nil
}
