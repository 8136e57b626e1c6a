// Command moto is a small browser shell around a Chromium engine.
package main

import (
	"os"
	"runtime"

	"github.com/bnema/moto/internal/bootstrap"
	"github.com/bnema/moto/internal/cli/cmd"
	"github.com/bnema/moto/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// GTK must be driven from the main thread; cobra runs browse on it.
func init() {
	runtime.LockOSThread()
}

func main() {
	enableCrashForensics()

	info := build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
	cmd.SetBuildInfo(info)
	cmd.SetBrowseRunner(func(opts cmd.BrowseOptions) int {
		return bootstrap.RunBrowser(bootstrap.BrowseInput{
			URL:         opts.URL,
			Headless:    opts.Headless,
			EnginePath:  opts.EnginePath,
			RemoteURL:   opts.RemoteURL,
			BuildInfo:   info,
			Diagnostics: logCoreDumpLimits,
		})
	})

	os.Exit(cmd.Execute())
}
