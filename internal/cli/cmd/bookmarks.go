package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/moto/internal/cli/styles"
	"github.com/bnema/moto/internal/domain/entity"
)

var (
	bookmarksJSON  bool
	bookmarkTitle  string
	bookmarkHeader = []string{"Title", "URL", "Added"}
)

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bm"},
	Short:   "List and edit bookmarks",
	Long:    `Bookmarks are shown on the new tab page. Without a subcommand they are listed.`,
	RunE:    runBookmarksList,
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Bookmark a url",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksAdd,
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:     "remove <url>",
	Aliases: []string{"rm"},
	Short:   "Remove a bookmark",
	Args:    cobra.ExactArgs(1),
	RunE:    runBookmarksRemove,
}

func init() {
	rootCmd.AddCommand(bookmarksCmd)
	bookmarksCmd.AddCommand(bookmarksAddCmd, bookmarksRemoveCmd)

	bookmarksCmd.Flags().BoolVar(&bookmarksJSON, "json", false, "output as JSON")
	bookmarksAddCmd.Flags().StringVarP(&bookmarkTitle, "title", "t", "", "bookmark title (defaults to the url)")
}

type bookmarkJSON struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

func runBookmarksList(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	bookmarks, err := app.Bookmarks.List(app.Ctx())
	if err != nil {
		return fmt.Errorf("list bookmarks: %w", err)
	}

	if bookmarksJSON {
		out := make([]bookmarkJSON, 0, len(bookmarks))
		for _, b := range bookmarks {
			out = append(out, bookmarkJSON{URL: b.URL, Title: b.Title, CreatedAt: b.CreatedAt.Format(time.RFC3339)})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(bookmarks) == 0 {
		fmt.Println(app.Theme.Subtle.Render("No bookmarks yet. Add one with 'moto bookmarks add <url>'."))
		return nil
	}
	fmt.Println(app.Theme.Title.Render(styles.IconStar + " Bookmarks"))
	fmt.Println(styles.RenderTable(app.Theme, bookmarkHeader, bookmarkRows(bookmarks)))
	return nil
}

func bookmarkRows(bookmarks []*entity.Bookmark) [][]string {
	rows := make([][]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		rows = append(rows, styles.BookmarkRow(b))
	}
	return rows
}

func runBookmarksAdd(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Bookmarks.Add(app.Ctx(), args[0], bookmarkTitle)
	if err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	fmt.Println(app.Theme.SuccessStyle.Render(styles.IconCheck + " Bookmarked " + b.URL))
	return nil
}

func runBookmarksRemove(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if err := app.Bookmarks.Remove(app.Ctx(), args[0]); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	fmt.Println(app.Theme.SuccessStyle.Render(styles.IconTrash + " Removed " + args[0]))
	return nil
}
