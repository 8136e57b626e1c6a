package usecase

import (
	"context"
	"sync"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/logging"
)

// HandlePermissionUseCase answers page permission requests from the
// configured policy. The policy can be swapped at runtime on config reload.
type HandlePermissionUseCase struct {
	mu     sync.RWMutex
	policy entity.PermissionPolicy
}

// NewHandlePermissionUseCase creates a new permission handling use case.
func NewHandlePermissionUseCase(policy entity.PermissionPolicy) *HandlePermissionUseCase {
	return &HandlePermissionUseCase{policy: policy}
}

// SetPolicy replaces the active policy.
func (uc *HandlePermissionUseCase) SetPolicy(policy entity.PermissionPolicy) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.policy = policy
}

// Policy returns the active policy.
func (uc *HandlePermissionUseCase) Policy() entity.PermissionPolicy {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.policy
}

// Answer builds the response command for req.
func (uc *HandlePermissionUseCase) Answer(ctx context.Context, req entity.PermissionRequested) entity.RespondPermissionCommand {
	allow := uc.Policy().Allows(req.Permission)

	logging.FromContext(ctx).Debug().
		Uint64("webview_id", uint64(req.ID)).
		Str("kind", string(req.Permission)).
		Bool("allowed", allow).
		Msg("permission request answered")

	return entity.RespondPermissionCommand{
		ID:         req.ID,
		Permission: req.Permission,
		Allow:      allow,
	}
}
