// Package cli holds the dependencies shared by the moto subcommands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/bnema/moto/internal/application/usecase"
	"github.com/bnema/moto/internal/cli/styles"
	"github.com/bnema/moto/internal/domain/build"
	"github.com/bnema/moto/internal/infrastructure/config"
	"github.com/bnema/moto/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/moto/internal/logging"
)

// cliLogLevel keeps subcommand output clean unless MOTO_LOG_LEVEL says otherwise.
const cliLogLevel = "warn"

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	db        *sql.DB

	// Use cases
	History   *usecase.HistoryUseCase
	Bookmarks *usecase.ManageBookmarksUseCase

	// Context with logger
	ctx context.Context
}

// NewApp loads the config and opens the database.
func NewApp() (*App, error) {
	cfg, mgr := loadConfig()

	logLevel := cliLogLevel
	if envLevel := os.Getenv("MOTO_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.NewFromConfigValues(logLevel, cfg.Logging.Format, nil)
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug().Str("db_path", cfg.Database.Path).Msg("database connected")

	app := NewAppWithDB(ctx, cfg, db)
	app.Manager = mgr
	return app, nil
}

// NewAppWithDB wires the use cases around an open database.
func NewAppWithDB(ctx context.Context, cfg *config.Config, db *sql.DB) *App {
	return &App{
		Config:    cfg,
		Theme:     styles.NewTheme(cfg),
		db:        db,
		History:   usecase.NewHistoryUseCase(sqlite.NewHistoryRepository(db), cfg.History.MaxEntries),
		Bookmarks: usecase.NewManageBookmarksUseCase(sqlite.NewBookmarkRepository(db)),
		ctx:       ctx,
	}
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return sqlite.Close(a.db)
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// ConfigFile returns the config file in use, or where it would be created.
func (a *App) ConfigFile() (string, error) {
	if a.Manager != nil {
		if path := a.Manager.GetConfigFile(); path != "" {
			return path, nil
		}
	}
	return config.GetConfigFile()
}

// loadConfig falls back to the defaults when the file cannot be read, so
// read-only commands keep working with a broken config.
func loadConfig() (*config.Config, *config.Manager) {
	mgr, err := config.NewManager()
	if err != nil {
		return defaultConfig(), nil
	}
	if err := mgr.Load(); err != nil {
		return defaultConfig(), mgr
	}
	return mgr.Get(), mgr
}

func defaultConfig() *config.Config {
	cfg := config.DefaultConfig()
	if path, err := config.GetDatabaseFile(); err == nil {
		cfg.Database.Path = path
	}
	return cfg
}
