package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/application/usecase"
	"github.com/bnema/moto/internal/cli/styles"
	"github.com/bnema/moto/internal/domain/build"
	"github.com/bnema/moto/internal/domain/url"
	"github.com/bnema/moto/internal/infrastructure/cdp"
	"github.com/bnema/moto/internal/infrastructure/colorscheme"
	"github.com/bnema/moto/internal/infrastructure/config"
	"github.com/bnema/moto/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/moto/internal/infrastructure/xdg"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui"
	"github.com/bnema/moto/internal/ui/shell"
)

const restartPromptTimeout = 2 * time.Minute

// BrowseInput holds the browse command line.
type BrowseInput struct {
	// URL is a url or search query; empty opens the homepage.
	URL        string
	Headless   bool
	EnginePath string
	RemoteURL  string
	BuildInfo  build.Info

	// Diagnostics runs once the logger exists. Optional.
	Diagnostics func(ctx context.Context)
}

// prepared is everything the UI needs that can be built concurrently.
type prepared struct {
	profileDir string
	resolver   *colorscheme.Resolver
	pages      *cdp.Pages
}

// RunBrowser loads the configuration, wires the browser and blocks until it
// exits. Returns the process exit code.
func RunBrowser(in BrowseInput) int {
	timer := NewStartupTimer()

	mgr, err := config.NewManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := mgr.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := mgr.Get()
	applyOverrides(cfg, in)
	timer.Mark("config")

	logger, closeLog := newLogger(cfg)
	defer closeLog()
	ctx, stop := signal.NotifyContext(logging.WithContext(context.Background(), logger), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().
		Str("version", in.BuildInfo.Version).
		Str("commit", in.BuildInfo.Commit).
		Str("build_date", in.BuildInfo.BuildDate).
		Msg("starting moto")
	if in.Diagnostics != nil {
		in.Diagnostics(ctx)
	}
	timer.Mark("logger")

	// The database opens on first use so a cold start never waits on it.
	lazyDB := sqlite.NewLazyDB(cfg.Database.Path)
	defer func() {
		if err := lazyDB.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()
	bookmarkRepo := sqlite.NewLazyBookmarkRepository(lazyDB)
	historyRepo := sqlite.NewLazyHistoryRepository(lazyDB)

	prep, err := prepare(ctx, cfg, bookmarkRepo)
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return 1
	}
	timer.Mark("prepare")

	deps := &ui.Dependencies{
		Ctx:           ctx,
		Config:        cfg,
		ConfigManager: mgr,
		InitialURL:    initialURL(in.URL, cfg.SearchEngine),
		Headless:      in.Headless || cfg.Engine.Headless,
		Engine:        engineFactory(cfg, prep),
		Prompt:        restartPrompt(cfg),
		SystemDark:    prep.resolver.PrefersDark,
		Pages:         prep.pages,
		HistoryUC:     usecase.NewHistoryUseCase(historyRepo, cfg.History.MaxEntries),
		BookmarksUC:   usecase.NewManageBookmarksUseCase(bookmarkRepo),
	}
	timer.Mark("ui_deps")
	timer.Log(ctx)

	return ui.RunWithArgs(ctx, deps)
}

// prepare runs the independent startup steps in parallel.
func prepare(ctx context.Context, cfg *config.Config, bookmarks cdp.BookmarkLister) (*prepared, error) {
	var p prepared
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := config.EnsureDirectories(); err != nil {
			return fmt.Errorf("ensure directories: %w", err)
		}
		dir, err := xdg.New().ProfileDir()
		if err != nil {
			return fmt.Errorf("resolve profile directory: %w", err)
		}
		p.profileDir = dir
		return nil
	})
	g.Go(func() error {
		p.resolver = colorscheme.NewSystemResolver()
		pref := p.resolver.Resolve()
		logging.FromContext(gctx).Debug().
			Bool("prefers_dark", pref.PrefersDark).
			Str("source", pref.Source).
			Msg("desktop color scheme")
		return nil
	})
	g.Go(func() error {
		pages, err := cdp.NewPages(bookmarks, cdp.PageSettings{SearchEngine: cfg.SearchEngine})
		if err != nil {
			return err
		}
		p.pages = pages
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

func engineFactory(cfg *config.Config, p *prepared) shell.EngineFactory {
	return func(ctx context.Context) (port.Engine, error) {
		engine, err := cdp.New(ctx, cdp.Config{
			ExecPath:   cfg.Engine.Path,
			RemoteURL:  cfg.Engine.RemoteURL,
			Flags:      cfg.Engine.Flags,
			ProfileDir: p.profileDir,
			Pages:      p.pages,
		})
		if err != nil {
			return nil, err
		}
		return engine, nil
	}
}

// restartPrompt asks on the controlling terminal. Without one the answer
// is no, so a detached browser never hangs waiting for input.
func restartPrompt(cfg *config.Config) shell.RestartPrompt {
	return func(ctx context.Context, cause error) bool {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			logging.FromContext(ctx).Warn().Msg("engine lost and no terminal to ask for a restart")
			return false
		}
		ctx, cancel := context.WithTimeout(ctx, restartPromptTimeout)
		defer cancel()
		msg := fmt.Sprintf("The browser engine stopped (%s). Restart it?", promptCause(cause))
		ok, err := styles.Confirm(ctx, styles.NewTheme(cfg), msg, true)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("restart prompt failed")
			return false
		}
		return ok
	}
}

func promptCause(err error) string {
	if err == nil {
		return "unknown error"
	}
	for u := errors.Unwrap(err); u != nil; u = errors.Unwrap(u) {
		err = u
	}
	return err.Error()
}

// applyOverrides layers command line flags over the config file.
func applyOverrides(cfg *config.Config, in BrowseInput) {
	if p := strings.TrimSpace(in.EnginePath); p != "" {
		cfg.Engine.Path = p
	}
	if u := strings.TrimSpace(in.RemoteURL); u != "" {
		cfg.Engine.RemoteURL = u
	}
}

// initialURL turns the browse argument into a url. Queries go to the search
// engine.
func initialURL(arg, searchEngine string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return ""
	}
	return url.LocationBarInputToURL(arg, searchEngine)
}

// newLogger writes to stderr and, when enabled, to a rotated file.
func newLogger(cfg *config.Config) (zerolog.Logger, func()) {
	var file io.Writer
	closeFn := func() {}
	if cfg.Logging.EnableFileLog {
		sink, err := logging.OpenFileSink(cfg.Logging.LogDir, cfg.Logging.MaxSizeMB, cfg.Logging.MaxAgeDays)
		if err != nil {
			fmt.Fprintf(os.Stderr, "file logging disabled: %v\n", err)
		} else {
			file = sink
			closeFn = func() { _ = sink.Close() }
		}
	}
	return logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format, file), closeFn
}
