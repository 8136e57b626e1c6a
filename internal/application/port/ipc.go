package port

import (
	"context"

	"github.com/bnema/moto/internal/domain/entity"
)

// IPCHandler consumes messages posted by page script.
type IPCHandler interface {
	HandleIPC(ctx context.Context, msg entity.IPCMessage)
}

// IPCHandlerFunc adapts a function to IPCHandler.
type IPCHandlerFunc func(ctx context.Context, msg entity.IPCMessage)

// HandleIPC calls f.
func (f IPCHandlerFunc) HandleIPC(ctx context.Context, msg entity.IPCMessage) {
	f(ctx, msg)
}
