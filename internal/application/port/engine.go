// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the application layer to
// remain independent of specific implementations (CDP, GTK, etc.).
package port

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mock_port

import (
	"context"

	"github.com/bnema/moto/internal/domain/entity"
)

// CallbackSink receives engine callbacks from any goroutine.
// Deliver must not block.
type CallbackSink interface {
	Deliver(cb entity.Callback)
}

// Engine is the embedding API of a web engine.
//
// Dispatch may block while the engine processes the command; callers that
// need a non-blocking boundary wrap it in a bridge. Fatal failures are
// reported once through the sink as entity.EngineLost.
type Engine interface {
	// Start launches the engine process and begins delivering callbacks.
	Start(ctx context.Context, sink CallbackSink) error

	// Dispatch executes a single command.
	Dispatch(ctx context.Context, cmd entity.Command) error

	// Shutdown tears down every page and the engine process.
	Shutdown(ctx context.Context) error
}
