// Package cmd provides Cobra CLI commands for moto.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/moto/internal/cli"
	"github.com/bnema/moto/internal/domain/build"
)

var errNoBrowseRunner = errors.New("browse is not available in this build")

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "moto",
		Short: "A minimal browser shell around a headless engine",
		Long: `Moto - a small browser shell.

Pages are rendered by a Chromium engine driven over the DevTools protocol
and composited under a native tab strip and toolbar.

Use 'moto browse' to launch the browser, or explore the subcommands for
bookmarks, history and configuration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// browse opens its own, lazily connected database.
			switch cmd.Name() {
			case "help", "completion", "browse", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return browseExitCode
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
