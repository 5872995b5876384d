// Package backend defines the interface a host platform implements to pump
// frames out of a gbcore.Core and feed button state back in.
package backend

import "github.com/ashgrove/gogbc/gbcore"

// Backend is a complete host platform: rendering, input and lifecycle.
type Backend interface {
	// Init prepares the backend to receive frames. Called once before the
	// first Update.
	Init(cfg Config) error

	// Update renders frame and returns the set of currently-pressed buttons,
	// along with whether the host requested to quit.
	Update(frame []uint32) (pressed map[gbcore.Button]bool, quit bool, err error)

	// Cleanup releases any platform resources (terminal state, windows).
	Cleanup() error
}

// Config carries the few things a backend needs to know about the session
// it is rendering, independent of any one Core instance.
type Config struct {
	Title     string
	ShowDebug bool
	Core      *gbcore.Core // optional: backends with a debug view read registers off it
}
