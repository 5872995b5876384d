// Package headless implements a backend.Backend with no display or input,
// for automated test-ROM runs and batch processing.
package headless

import (
	"log/slog"

	"github.com/ashgrove/gogbc/backend"
	"github.com/ashgrove/gogbc/gbcore"
)

// Backend runs a fixed number of frames and then requests quit.
type Backend struct {
	maxFrames  int
	frameCount int
}

// New creates a headless backend that quits after maxFrames frames. A
// maxFrames of 0 means run forever (until some other signal stops the host
// loop).
func New(maxFrames int) *Backend {
	return &Backend{maxFrames: maxFrames}
}

func (h *Backend) Init(cfg backend.Config) error {
	slog.Info("headless backend started", "max_frames", h.maxFrames)
	return nil
}

func (h *Backend) Update(frame []uint32) (map[gbcore.Button]bool, bool, error) {
	h.frameCount++
	if h.frameCount%60 == 0 {
		slog.Info("headless progress", "frame", h.frameCount)
	}
	quit := h.maxFrames > 0 && h.frameCount >= h.maxFrames
	return nil, quit, nil
}

func (h *Backend) Cleanup() error {
	slog.Info("headless backend finished", "frames", h.frameCount)
	return nil
}
