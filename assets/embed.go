package assets

import (
	"embed"
)

// Pages holds the HTML templates served for the moto: pages.
//
//go:embed pages/*.html
var Pages embed.FS

// HostScript is evaluated in every document before page scripts run. It
// exposes window.moto.postMessage and reports title, hovered links, popups
// and permission requests to the shell.
//
//go:embed host.js
var HostScript string
