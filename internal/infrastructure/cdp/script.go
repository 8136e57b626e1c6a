package cdp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/page"

	"github.com/bnema/moto/internal/domain/entity"
)

// Runtime bindings installed in every page.
const (
	hostBinding = "motoHost"
	ipcBinding  = "motoIPC"
)

// hostMessage is posted by the host script through the motoHost binding.
type hostMessage struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Text    string `json:"text,omitempty"`
	URL     string `json:"url,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Request int64  `json:"request,omitempty"`
}

func parseHostMessage(payload string) (hostMessage, error) {
	var msg hostMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return hostMessage{}, fmt.Errorf("invalid host message: %w", err)
	}
	if msg.Type == "" {
		return hostMessage{}, fmt.Errorf("host message without type")
	}
	return msg, nil
}

// hostPermission maps the kinds the host script asks about.
func hostPermission(kind string) (entity.PermissionKind, bool) {
	switch k := entity.PermissionKind(strings.ToLower(kind)); k {
	case entity.PermissionNotifications, entity.PermissionGeolocation, entity.PermissionMedia:
		return k, true
	default:
		return "", false
	}
}

// dialogPermission maps a JavaScript dialog to the permission asked for.
func dialogPermission(t page.DialogType) entity.PermissionKind {
	switch t {
	case page.DialogTypeConfirm:
		return entity.PermissionConfirm
	case page.DialogTypePrompt:
		return entity.PermissionPrompt
	case page.DialogTypeBeforeunload:
		return entity.PermissionBeforeUnload
	default:
		return entity.PermissionAlert
	}
}

// resolveScript answers a pending host script permission request.
func resolveScript(request int64, allow bool) string {
	return fmt.Sprintf("window.__motoResolve && window.__motoResolve(%d, %t)", request, allow)
}
