//go:build sdl2

// Package sdl2 implements a backend.Backend on top of SDL2, for hosts that
// want a scaled graphical window instead of the terminal renderer. Building
// it requires the SDL2 development libraries and the sdl2 build tag; default
// builds link the stub in stub.go instead.
package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/ashgrove/gogbc/backend"
	"github.com/ashgrove/gogbc/gbcore"
	"github.com/ashgrove/gogbc/internal/video"
)

const pixelScale = 4

var keyMapping = map[sdl.Keycode]gbcore.Button{
	sdl.K_UP:     gbcore.ButtonUp,
	sdl.K_DOWN:   gbcore.ButtonDown,
	sdl.K_LEFT:   gbcore.ButtonLeft,
	sdl.K_RIGHT:  gbcore.ButtonRight,
	sdl.K_RETURN: gbcore.ButtonStart,
	sdl.K_RSHIFT: gbcore.ButtonSelect,
	sdl.K_z:      gbcore.ButtonB,
	sdl.K_x:      gbcore.ButtonA,
}

// Backend renders through an SDL2 window scaled pixelScale times over the
// Game Boy's native 160x144 resolution.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixelBuffer []byte
	pressed     map[gbcore.Button]bool
	quit        bool
}

func New() *Backend {
	return &Backend{pressed: make(map[gbcore.Button]bool)}
}

func (s *Backend) Init(cfg backend.Config) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl2: %w", err)
	}

	title := cfg.Title
	if title == "" {
		title = "gogbc"
	}
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		video.Width*pixelScale, video.Height*pixelScale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl2: create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, video.Width, video.Height)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("sdl2: create texture: %w", err)
	}
	s.texture = texture
	s.pixelBuffer = make([]byte, video.Width*video.Height*4)

	slog.Info("sdl2 backend initialized", "title", title)
	return nil
}

func (s *Backend) Update(frame []uint32) (map[gbcore.Button]bool, bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.quit = true
		case *sdl.KeyboardEvent:
			s.handleKey(e)
		}
	}

	for i, px := range frame {
		s.pixelBuffer[i*4] = byte(px >> 24)
		s.pixelBuffer[i*4+1] = byte(px >> 16)
		s.pixelBuffer[i*4+2] = byte(px >> 8)
		s.pixelBuffer[i*4+3] = byte(px)
	}
	s.texture.Update(nil, unsafe.Pointer(&s.pixelBuffer[0]), video.Width*4)

	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()

	return s.pressed, s.quit, nil
}

func (s *Backend) handleKey(e *sdl.KeyboardEvent) {
	if e.Keysym.Sym == sdl.K_ESCAPE {
		s.quit = true
		return
	}
	btn, ok := keyMapping[e.Keysym.Sym]
	if !ok {
		return
	}
	s.pressed[btn] = e.Type == sdl.KEYDOWN
}

func (s *Backend) Cleanup() error {
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	return nil
}
