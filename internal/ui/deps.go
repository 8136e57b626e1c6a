// Package ui hosts the browser shell in a native GTK4 window or, with
// headless set, in an in-memory window.
package ui

import (
	"context"

	"github.com/bnema/moto/internal/application/usecase"
	"github.com/bnema/moto/internal/infrastructure/config"
	"github.com/bnema/moto/internal/ui/shell"
)

// Dependencies holds all injected dependencies for the UI layer.
// This struct is created once at startup.
type Dependencies struct {
	Ctx           context.Context
	Config        *config.Config
	ConfigManager *config.Manager
	InitialURL    string
	Headless      bool

	// Engine creates one browser engine per session.
	Engine shell.EngineFactory
	// Prompt asks whether to relaunch a lost engine. Optional.
	Prompt shell.RestartPrompt
	// SystemDark reports the desktop color scheme. Optional.
	SystemDark func() bool
	// Pages renders the built-in pages and is refreshed on reload. Optional.
	Pages shell.PageUpdater

	HistoryUC   *usecase.HistoryUseCase
	BookmarksUC *usecase.ManageBookmarksUseCase
}

// Validate checks that all required dependencies are set.
func (d *Dependencies) Validate() error {
	if d.Ctx == nil {
		return ErrMissingDependency("Ctx")
	}
	if d.Config == nil {
		return ErrMissingDependency("Config")
	}
	if d.Engine == nil {
		return ErrMissingDependency("Engine")
	}
	return nil
}

// DependencyError is returned when a required dependency is missing.
type DependencyError struct {
	Name string
}

func (e DependencyError) Error() string {
	return "missing required dependency: " + e.Name
}

// ErrMissingDependency creates a DependencyError.
func ErrMissingDependency(name string) error {
	return DependencyError{Name: name}
}
