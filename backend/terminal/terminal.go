// Package terminal implements a backend.Backend that renders the Game Boy
// screen as half-block characters in a tcell terminal window and reads
// button state from the keyboard.
package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/ashgrove/gogbc/backend"
	"github.com/ashgrove/gogbc/gbcore"
	"github.com/ashgrove/gogbc/internal/video"
)

const (
	minTermWidth  = video.Width + 2
	minTermHeight = video.Height/2 + 2
)

// keyMapping is the default WASD+ZX layout: arrows/WASD for the d-pad,
// Z/X for B/A, Enter/Backspace for Start/Select.
var keyMapping = map[tcell.Key]gbcore.Button{
	tcell.KeyUp:        gbcore.ButtonUp,
	tcell.KeyDown:      gbcore.ButtonDown,
	tcell.KeyLeft:      gbcore.ButtonLeft,
	tcell.KeyRight:     gbcore.ButtonRight,
	tcell.KeyEnter:     gbcore.ButtonStart,
	tcell.KeyBackspace: gbcore.ButtonSelect,
	tcell.KeyBackspace2: gbcore.ButtonSelect,
}

var runeMapping = map[rune]gbcore.Button{
	'w': gbcore.ButtonUp,
	's': gbcore.ButtonDown,
	'a': gbcore.ButtonLeft,
	'd': gbcore.ButtonRight,
	'z': gbcore.ButtonB,
	'x': gbcore.ButtonA,
}

// Backend is a tcell-based terminal renderer. Since tcell delivers key
// presses as discrete events rather than a pollable "is this key down"
// state, Backend tracks a button as held until it sees the matching
// EventKey stop arriving for one Update cycle, same idea as the teacher's
// keyTimeout tracking but keyed directly off held state.
type Backend struct {
	screen  tcell.Screen
	cfg     backend.Config
	pressed map[gbcore.Button]bool
	quit    bool
}

// New creates a terminal backend.
func New() *Backend {
	return &Backend{pressed: make(map[gbcore.Button]bool)}
}

func (t *Backend) Init(cfg backend.Config) error {
	t.cfg = cfg

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	t.screen = screen
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	slog.Info("terminal backend initialized", "title", cfg.Title)
	return nil
}

func (t *Backend) Update(frame []uint32) (map[gbcore.Button]bool, bool, error) {
	t.pressed = make(map[gbcore.Button]bool)
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	termWidth, termHeight := t.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		t.drawTooSmall(termWidth, termHeight)
		t.screen.Show()
		return t.pressed, t.quit, nil
	}

	t.screen.Clear()
	t.drawFrame(frame)
	if t.cfg.ShowDebug && t.cfg.Core != nil {
		t.drawRegisters(video.Width+2, 0)
	}
	t.screen.Show()

	return t.pressed, t.quit, nil
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
		t.quit = true
		return
	}

	if btn, ok := keyMapping[ev.Key()]; ok {
		t.pressed[btn] = true
		return
	}
	if ev.Key() == tcell.KeyRune {
		if btn, ok := runeMapping[ev.Rune()]; ok {
			t.pressed[btn] = true
			return
		}
		if ev.Rune() == 'q' {
			t.quit = true
		}
	}
}

func (t *Backend) drawTooSmall(width, height int) {
	t.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	msg := fmt.Sprintf("terminal too small, need at least %dx%d", minTermWidth, minTermHeight)
	for i, ch := range msg {
		if i < width {
			t.screen.SetContent(i, height/2, ch, nil, style)
		}
	}
}

var shadeColor = [4]tcell.Color{tcell.ColorWhite, tcell.ColorSilver, tcell.ColorGray, tcell.ColorBlack}

// pixelToShade maps a packed RGBA8888 pixel back to a 0-3 shade index by
// matching against the four colors of palette, darkest last. A pixel that
// matches none of them maps to 3.
func pixelToShade(pixel uint32, palette video.Palette) uint8 {
	for i, c := range palette {
		if uint32(c) == pixel {
			return uint8(i)
		}
	}
	return 3
}

func (t *Backend) drawFrame(frame []uint32) {
	for y := 0; y < video.Height; y += 2 {
		for x := 0; x < video.Width; x++ {
			topShade := pixelToShade(frame[y*video.Width+x], video.DefaultPalette)
			bottomShade := uint8(3)
			if y+1 < video.Height {
				bottomShade = pixelToShade(frame[(y+1)*video.Width+x], video.DefaultPalette)
			}

			style := tcell.StyleDefault.Foreground(shadeColor[topShade]).Background(shadeColor[bottomShade])
			t.screen.SetContent(x+1, y/2+1, '▀', nil, style)
		}
	}
}

func (t *Backend) drawRegisters(startX, startY int) {
	snap := t.cfg.Core.CPU().Regs.Snapshot()
	lines := []string{
		fmt.Sprintf("A:%02X F:%02X", snap.A, snap.F),
		fmt.Sprintf("B:%02X C:%02X", snap.B, snap.C),
		fmt.Sprintf("D:%02X E:%02X", snap.D, snap.E),
		fmt.Sprintf("H:%02X L:%02X", snap.H, snap.L),
		fmt.Sprintf("SP:%04X", snap.SP),
		fmt.Sprintf("PC:%04X", snap.PC),
		fmt.Sprintf("frame:%d", t.cfg.Core.FrameCount()),
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		for j, ch := range line {
			t.screen.SetContent(startX+j, startY+i, ch, nil, style)
		}
	}
}
