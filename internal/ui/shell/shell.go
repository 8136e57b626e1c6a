// Package shell owns one browsing session per engine process: it builds the
// frame coordinator around a window, runs it, and applies the restart policy
// when the engine goes away.
package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/application/usecase"
	"github.com/bnema/moto/internal/bridge"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/url"
	"github.com/bnema/moto/internal/infrastructure/cdp"
	"github.com/bnema/moto/internal/infrastructure/config"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui/coordinator"
	"github.com/bnema/moto/internal/ui/input"
	"github.com/bnema/moto/internal/ui/overlay"
	"github.com/bnema/moto/internal/ui/surface"
)

const shutdownTimeout = 5 * time.Second

// EngineFactory creates a fresh, unstarted engine.
type EngineFactory func(ctx context.Context) (port.Engine, error)

// RestartPrompt asks the user whether to relaunch a lost engine.
type RestartPrompt func(ctx context.Context, cause error) bool

// PageUpdater receives the settings of the built-in pages on every reload.
type PageUpdater interface {
	Update(settings cdp.PageSettings)
}

// Options configures a Shell.
type Options struct {
	Config     *config.Config
	ConfigPath string
	InitialURL string
	Engine     EngineFactory

	// Optional.
	Prompt     RestartPrompt
	SystemDark func() bool
	History    *usecase.HistoryUseCase
	Bookmarks  *usecase.ManageBookmarksUseCase
	IPC        port.IPCHandler
	Pages      PageUpdater
}

// Shell keeps the window-side state (input queue, geometry, overlay) alive
// across engine restarts.
type Shell struct {
	opts        Options
	queue       *input.Queue
	translator  *input.Translator
	router      *input.Router
	overlay     *overlay.Overlay
	permissions *usecase.HandlePermissionUseCase

	mu    sync.Mutex
	cfg   *config.Config
	coord *coordinator.Coordinator
}

// New validates opts and prepares the input pipeline.
func New(ctx context.Context, opts Options) (*Shell, error) {
	if opts.Config == nil {
		return nil, errors.New("shell requires a config")
	}
	if opts.Engine == nil {
		return nil, errors.New("shell requires an engine factory")
	}
	cfg := opts.Config
	settings := SettingsFromConfig(ctx, cfg, opts.SystemDark)

	s := &Shell{
		opts:  opts,
		queue: input.NewQueue(),
		translator: input.NewTranslator(
			entity.Size{Width: cfg.Window.Width, Height: cfg.Window.Height}, 1, settings.ChromeHeight,
		),
		router:      input.NewRouter(settings.Shortcuts),
		overlay:     overlay.New(ctx, cfg.Window.Width, settings.ChromeHeight, settings.Palette, settings.Shortcuts),
		permissions: usecase.NewHandlePermissionUseCase(cfg.Permissions.Policy()),
		cfg:         cfg,
	}
	if opts.Pages != nil {
		opts.Pages.Update(PageSettingsFromConfig(cfg, settings.Palette, opts.ConfigPath))
	}
	return s, nil
}

// Queue is where windows push native events.
func (s *Shell) Queue() *input.Queue {
	return s.queue
}

// Reload applies a new configuration. Safe from any goroutine; the running
// coordinator picks it up at its next iteration.
func (s *Shell) Reload(ctx context.Context, cfg *config.Config) {
	if cfg == nil {
		return
	}
	settings := SettingsFromConfig(ctx, cfg, s.opts.SystemDark)
	s.permissions.SetPolicy(cfg.Permissions.Policy())
	if s.opts.Pages != nil {
		s.opts.Pages.Update(PageSettingsFromConfig(cfg, settings.Palette, s.opts.ConfigPath))
	}

	s.mu.Lock()
	s.cfg = cfg
	coord := s.coord
	s.mu.Unlock()
	if coord != nil {
		coord.Apply(settings)
	}
	logging.FromContext(ctx).Info().Msg("configuration reloaded")
}

func (s *Shell) config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Run drives sessions on win until ctx ends or the window closes. A lost
// engine is relaunched according to engine.restart_policy, reopening the
// tabs it had.
func (s *Shell) Run(ctx context.Context, win port.Window) error {
	log := logging.FromContext(ctx)
	urls := []string{s.opts.InitialURL}

	for attempt := 1; ; attempt++ {
		next, err := s.session(ctx, win, urls)
		if err == nil || !errors.Is(err, entity.ErrEngineLost) {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("engine lost")
		if !s.shouldRestart(ctx, err) {
			return err
		}
		if len(next) > 0 {
			urls = next
		}
	}
}

func (s *Shell) shouldRestart(ctx context.Context, cause error) bool {
	switch s.config().Engine.RestartPolicy {
	case config.RestartAlways:
		return true
	case config.RestartNever:
		return false
	default:
		if s.opts.Prompt == nil {
			return false
		}
		return s.opts.Prompt(ctx, cause)
	}
}

// session runs one engine lifetime. After a lost engine it returns the urls
// that were open.
func (s *Shell) session(ctx context.Context, win port.Window, urls []string) ([]string, error) {
	log := logging.FromContext(ctx)
	cfg := s.config()

	engine, err := s.opts.Engine(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	br := bridge.New(engine, bridge.WithDispatchTimeout(cfg.Engine.DispatchTimeout()))
	if err := br.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}

	registry := entity.NewRegistry()
	settings := SettingsFromConfig(ctx, cfg, s.opts.SystemDark)
	coord := coordinator.New(ctx, coordinator.Config{
		Queue:       s.queue,
		Translator:  s.translator,
		Router:      s.router,
		Overlay:     s.overlay,
		Registry:    registry,
		Bridge:      br,
		Surface:     surface.NewManager(win),
		Permissions: s.permissions,
		History:     s.opts.History,
		Bookmarks:   s.opts.Bookmarks,
		IPC:         s.ipcHandler(),
		Title:       win,
		Settings:    settings,
	})

	s.mu.Lock()
	s.coord = coord
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.coord = nil
		s.mu.Unlock()
	}()

	first := entity.WebViewID(0)
	for _, u := range urls {
		if u == "" {
			u = cfg.Homepage
		}
		id := coord.OpenWebView(ctx, u)
		if first == 0 {
			first = id
		}
	}
	if first != 0 {
		if err := registry.SetActive(first); err != nil {
			log.Debug().Err(err).Msg("activate first webview")
		}
	}

	runErr := coord.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := br.Shutdown(shutdownCtx); err != nil && !br.Lost() {
		log.Warn().Err(err).Msg("engine shutdown incomplete")
	}
	return coord.LostURLs(), runErr
}

// ipcHandler serves the config page and hands everything else to
// Options.IPC. It runs on the coordinator goroutine.
func (s *Shell) ipcHandler() port.IPCHandler {
	return port.IPCHandlerFunc(func(ctx context.Context, msg entity.IPCMessage) {
		if s.handleConfigSave(ctx, msg) {
			return
		}
		if s.opts.IPC != nil {
			s.opts.IPC.HandleIPC(ctx, msg)
			return
		}
		logging.FromContext(ctx).Debug().
			Uint64("webview_id", uint64(msg.ID)).
			Int("bytes", len(msg.Data)).
			Msg("ipc message")
	})
}

const configSaveMessage = "config.save"

type configSaveRequest struct {
	Type string `json:"type"`
	TOML string `json:"toml"`
}

// handleConfigSave applies an edit posted by moto:config. Only the config
// page itself may save.
func (s *Shell) handleConfigSave(ctx context.Context, msg entity.IPCMessage) bool {
	name, _, _ := strings.Cut(msg.URL, "?")
	if name != url.ConfigURL {
		return false
	}
	var req configSaveRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Type != configSaveMessage {
		return false
	}

	log := logging.FromContext(ctx)
	target := url.ConfigURL + "?saved=1"
	if err := s.saveConfig(ctx, req.TOML); err != nil {
		log.Warn().Err(err).Msg("config not saved")
		s.showConfigDraft(ctx, req.TOML, err)
		target = url.ConfigURL
	}

	s.mu.Lock()
	coord := s.coord
	s.mu.Unlock()
	if coord != nil {
		coord.Navigate(ctx, msg.ID, target)
	}
	return true
}

func (s *Shell) saveConfig(ctx context.Context, text string) error {
	if s.opts.ConfigPath == "" {
		return errors.New("no config file to write")
	}
	cfg, err := config.Parse([]byte(text))
	if err != nil {
		return err
	}
	if err := config.WriteConfigOrdered(cfg, s.opts.ConfigPath); err != nil {
		return err
	}
	s.Reload(ctx, cfg)
	return nil
}

func (s *Shell) showConfigDraft(ctx context.Context, draft string, cause error) {
	if s.opts.Pages == nil {
		return
	}
	cfg := s.config()
	settings := SettingsFromConfig(ctx, cfg, s.opts.SystemDark)
	pages := PageSettingsFromConfig(cfg, settings.Palette, s.opts.ConfigPath)
	pages.ConfigDraft = draft
	pages.ConfigError = cause.Error()
	s.opts.Pages.Update(pages)
}

