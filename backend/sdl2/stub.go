//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/ashgrove/gogbc/backend"
	"github.com/ashgrove/gogbc/gbcore"
)

// Backend stubs out the SDL2 renderer for default builds, which skip the
// cgo dependency on the SDL2 development libraries.
type Backend struct{}

func New() *Backend { return &Backend{} }

func (s *Backend) Init(cfg backend.Config) error {
	return fmt.Errorf("sdl2: not built with -tags sdl2")
}

func (s *Backend) Update(frame []uint32) (map[gbcore.Button]bool, bool, error) {
	return nil, false, fmt.Errorf("sdl2: not built with -tags sdl2")
}

func (s *Backend) Cleanup() error { return nil }
