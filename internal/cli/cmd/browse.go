package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// BrowseOptions carries the browse flags to the runner.
type BrowseOptions struct {
	URL        string
	Headless   bool
	EnginePath string
	RemoteURL  string
}

// BrowseFunc launches the browser and returns its exit code.
type BrowseFunc func(BrowseOptions) int

var (
	browseRunner   BrowseFunc
	browseExitCode int
	browseOpts     BrowseOptions
)

var browseCmd = &cobra.Command{
	Use:   "browse [url or search terms]",
	Short: "Launch the browser",
	Long: `Open the browser window. Arguments are joined and treated like input
to the location bar: a url opens directly, anything else is searched.

With --headless no window is created and frames stay in memory, which is
useful for scripted runs against a remote engine.`,
	Example: `  moto browse
  moto browse go.dev
  moto browse golang generics
  moto browse --remote-url ws://127.0.0.1:9222/devtools/browser/<id>`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().BoolVar(&browseOpts.Headless, "headless", false, "run without a native window")
	browseCmd.Flags().StringVar(&browseOpts.EnginePath, "engine-path", "", "path to the Chromium executable")
	browseCmd.Flags().StringVar(&browseOpts.RemoteURL, "remote-url", "", "attach to a running engine instead of launching one")
}

// SetBrowseRunner installs the function that starts the browser.
func SetBrowseRunner(fn BrowseFunc) {
	browseRunner = fn
}

func runBrowse(_ *cobra.Command, args []string) error {
	if browseRunner == nil {
		return errNoBrowseRunner
	}
	opts := browseOpts
	opts.URL = strings.Join(args, " ")
	browseExitCode = browseRunner(opts)
	return nil
}
