package ui

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/bnema/moto/internal/infrastructure/config"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui/shell"
	"github.com/bnema/moto/internal/ui/window"
	"github.com/bnema/moto/internal/ui/window/headless"
)

// App is the browser process: one shell, one window.
type App struct {
	deps  *Dependencies
	shell *shell.Shell

	errMu  sync.Mutex
	runErr error
}

// New creates a new App with the given dependencies.
func New(deps *Dependencies) (*App, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}

	configPath := ""
	if deps.ConfigManager != nil {
		configPath = deps.ConfigManager.GetConfigFile()
	}
	sh, err := shell.New(deps.Ctx, shell.Options{
		Config:     deps.Config,
		ConfigPath: configPath,
		InitialURL: deps.InitialURL,
		Engine:     deps.Engine,
		Prompt:     deps.Prompt,
		SystemDark: deps.SystemDark,
		History:    deps.HistoryUC,
		Bookmarks:  deps.BookmarksUC,
		Pages:      deps.Pages,
	})
	if err != nil {
		return nil, err
	}
	return &App{deps: deps, shell: sh}, nil
}

// Run shows the window and blocks until the session ends. Returns the exit
// code.
func (a *App) Run(ctx context.Context, args []string) int {
	log := logging.FromContext(ctx)
	a.watchConfig(ctx)

	if a.deps.Headless {
		win := headless.New(a.shell.Queue(), a.deps.Config.Window.Width, a.deps.Config.Window.Height)
		return a.exitCode(ctx, a.shell.Run(ctx, win))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	code := window.Run(ctx, window.AppConfig{
		Width:  a.deps.Config.Window.Width,
		Height: a.deps.Config.Window.Height,
		Sink:   a.shell.Queue(),
		Ready: func(ctx context.Context, mw *window.MainWindow, quit func()) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				a.setErr(a.shell.Run(ctx, mw))
				quit()
			}()
		},
	}, args)

	// The window is gone; stop the session and let the engine shut down.
	cancel()
	wg.Wait()
	log.Debug().Int("gtk_code", code).Msg("GTK main loop exited")

	if code != 0 {
		return code
	}
	return a.exitCode(ctx, a.err())
}

func (a *App) watchConfig(ctx context.Context) {
	m := a.deps.ConfigManager
	if m == nil {
		return
	}
	m.OnConfigChange(func(cfg *config.Config) {
		a.shell.Reload(ctx, cfg)
	})
	if err := m.Watch(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("config watching disabled")
	}
}

func (a *App) setErr(err error) {
	a.errMu.Lock()
	a.runErr = err
	a.errMu.Unlock()
}

func (a *App) err() error {
	a.errMu.Lock()
	defer a.errMu.Unlock()
	return a.runErr
}

func (*App) exitCode(ctx context.Context, err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	logging.FromContext(ctx).Error().Err(err).Msg("browser session ended")
	return 1
}

// RunWithArgs creates and runs an App. GTK only sees the program name; the
// command line was already parsed by cobra.
func RunWithArgs(ctx context.Context, deps *Dependencies) int {
	app, err := New(deps)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Error().Err(err).Msg("failed to create application")
		return 1
	}
	return app.Run(ctx, os.Args[:1])
}
