// Package droplet holds the file-drop application served on top of httpd:
// uploads under random-prefixed names, static file serving, and running
// stats. Handlers touch the core only through the handler contract and the
// Response type.
package droplet

import (
	"github.com/dropletd/droplet/internal/config"
	"github.com/dropletd/droplet/internal/obs"
)

// State is the shared application state handed to every handler. The struct
// is copied per request; the mutable part lives behind the Stats pointer,
// which does its own locking.
type State struct {
	Config config.Config
	Stats  *Stats
	Log    obs.Logger
}

func (s State) logf(level obs.Level, format string, args ...any) {
	if s.Log != nil {
		s.Log.Logf(level, format, args...)
	}
}
