package bridge

import (
	"errors"
	"fmt"

	"github.com/bnema/moto/internal/domain/entity"
)

var (
	// ErrNotStarted is returned by Send before Start.
	ErrNotStarted = errors.New("bridge not started")

	// ErrStopped is returned by Send once Shutdown began.
	ErrStopped = errors.New("bridge stopped")
)

// CommandError reports a command the engine failed to execute.
type CommandError struct {
	Command entity.Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("dispatch %T to webview %d: %v", e.Command, e.Command.Target(), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// WebViewID returns the command target.
func (e *CommandError) WebViewID() entity.WebViewID {
	return e.Command.Target()
}
