package entity

import (
	"fmt"
	"strings"
)

// PermissionKind names what a page asked for.
type PermissionKind string

const (
	PermissionAlert         PermissionKind = "alert"
	PermissionConfirm       PermissionKind = "confirm"
	PermissionPrompt        PermissionKind = "prompt"
	PermissionBeforeUnload  PermissionKind = "beforeunload"
	PermissionNotifications PermissionKind = "notifications"
	PermissionGeolocation   PermissionKind = "geolocation"
	PermissionMedia         PermissionKind = "media"
)

// PermissionKinds lists every kind in a stable order.
var PermissionKinds = []PermissionKind{
	PermissionAlert,
	PermissionConfirm,
	PermissionPrompt,
	PermissionBeforeUnload,
	PermissionNotifications,
	PermissionGeolocation,
	PermissionMedia,
}

// PermissionDecision is the answer given to a permission request.
type PermissionDecision string

const (
	// PermissionAllow grants the request.
	PermissionAllow PermissionDecision = "allow"

	// PermissionDeny refuses the request.
	PermissionDeny PermissionDecision = "deny"
)

// ParsePermissionDecision accepts "allow"/"deny" and the granted/denied aliases.
func ParsePermissionDecision(s string) (PermissionDecision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow", "granted", "grant":
		return PermissionAllow, nil
	case "deny", "denied":
		return PermissionDeny, nil
	default:
		return "", fmt.Errorf("invalid permission decision %q", s)
	}
}

// PermissionPolicy decides permission requests without user interaction.
type PermissionPolicy struct {
	Default   PermissionDecision
	Overrides map[PermissionKind]PermissionDecision
}

// Decide returns the decision for kind. Dialog kinds that only inform the
// user are always allowed so pages never stall on them.
func (p PermissionPolicy) Decide(kind PermissionKind) PermissionDecision {
	if IsAutoAllow(kind) {
		return PermissionAllow
	}
	if d, ok := p.Overrides[kind]; ok {
		return d
	}
	if p.Default == "" {
		return PermissionDeny
	}
	return p.Default
}

// Allows reports whether kind is granted.
func (p PermissionPolicy) Allows(kind PermissionKind) bool {
	return p.Decide(kind) == PermissionAllow
}

// IsAutoAllow returns true for kinds that are acknowledged unconditionally.
func IsAutoAllow(kind PermissionKind) bool {
	switch kind {
	case PermissionAlert, PermissionBeforeUnload:
		return true
	default:
		return false
	}
}

// PermissionKindsToStrings converts kinds to strings for logging.
func PermissionKindsToStrings(kinds []PermissionKind) []string {
	result := make([]string, len(kinds))
	for i, k := range kinds {
		result[i] = string(k)
	}
	return result
}
