// Package gbcore is the host-facing facade: it owns a CPU, bus and PPU and
// drives them in lockstep, exposing the frame/audio/save-RAM/debugger
// surface a backend needs without requiring it to understand the SM83 tick
// contract.
package gbcore

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ashgrove/gogbc/internal/cpu"
	"github.com/ashgrove/gogbc/internal/memory"
	"github.com/ashgrove/gogbc/internal/video"
)

// cyclesPerFrame is the fixed DMG frame budget: 154 scanlines * 456 cycles.
const cyclesPerFrame = 70224

// Button identifies one of the eight logical Game Boy buttons, mirroring
// memory.Button without leaking an internal type through the public API.
type Button uint8

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

var buttonToInternal = map[Button]memory.Button{
	ButtonRight:  memory.ButtonRight,
	ButtonLeft:   memory.ButtonLeft,
	ButtonUp:     memory.ButtonUp,
	ButtonDown:   memory.ButtonDown,
	ButtonA:      memory.ButtonA,
	ButtonB:      memory.ButtonB,
	ButtonSelect: memory.ButtonSelect,
	ButtonStart:  memory.ButtonStart,
}

// DebuggerState mirrors the run mode a host has requested of the core.
type DebuggerState int

const (
	// Running executes instructions freely, as RunToVBlank intends.
	Running DebuggerState = iota
	// Paused executes nothing until Resume or a single-step call.
	Paused
	// Stepping executes exactly one instruction on the next RunToVBlank
	// call, then returns to Paused.
	Stepping
	// SteppingFrame executes exactly one frame on the next RunToVBlank
	// call, then returns to Paused.
	SteppingFrame
)

// Core wires a CPU, bus and PPU together and is the unit a backend embeds.
// The debugger methods (Pause, Resume, StepInstruction, StepFrame, State)
// and the InstructionCount/FrameCount counters are guarded by a mutex and may
// be called from a goroutine other than the one driving emulation; the other
// methods take no lock.
type Core struct {
	cpu *cpu.CPU
	bus *memory.Bus
	ppu *video.PPU
	cfg Config

	mu               sync.RWMutex
	state            DebuggerState
	stepRequested    bool
	frameRequested   bool
	instructionCount uint64
	frameCount       uint64
}

// BuildFromROM decodes rom's header, wires a cartridge-backed bus, and
// returns a Core ready to run from the power-on register state.
func BuildFromROM(rom []byte, opts ...Option) (*Core, error) {
	cart, err := memory.NewCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("gbcore: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	bus := memory.NewBusWithCartridge(cart)
	bus.SetAudioRingCapacity(cfg.audioRingCapacity)
	bus.SetSerialCapacity(cfg.serialCapacity)
	c := &Core{
		cpu: cpu.New(bus),
		bus: bus,
		ppu: video.New(bus, cfg.palette),
		cfg: cfg,
	}
	slog.Debug("gbcore: loaded cartridge", "title", cart.Title, "mapper", cart.Mapper)
	return c, nil
}

// SetButtons replaces the full set of currently-pressed buttons.
func (c *Core) SetButtons(pressed map[Button]bool) {
	translated := make(map[memory.Button]bool, len(pressed))
	for b, down := range pressed {
		translated[buttonToInternal[b]] = down
	}
	c.bus.Joypad.Set(translated)
}

// RunToVBlank executes instructions until a full frame has been rendered
// (or, under a debugger step mode, for exactly one instruction or frame)
// and returns the number of CPU cycles spent. A FatalError from the CPU
// stops execution and is returned to the caller.
func (c *Core) RunToVBlank() (int, error) {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()

	switch state {
	case Paused:
		return 0, nil

	case Stepping:
		c.mu.Lock()
		if !c.stepRequested {
			c.mu.Unlock()
			return 0, nil
		}
		c.stepRequested = false
		c.mu.Unlock()

		spent, err := c.step()
		c.setState(Paused)
		return spent, err

	case SteppingFrame:
		c.mu.Lock()
		if !c.frameRequested {
			c.mu.Unlock()
			return 0, nil
		}
		c.frameRequested = false
		c.mu.Unlock()

		spent, err := c.runFrame()
		c.setState(Paused)
		return spent, err

	default: // Running
		return c.runFrame()
	}
}

func (c *Core) step() (int, error) {
	cycles, err := c.cpu.Tick()
	if err != nil {
		return cycles, err
	}
	c.ppu.Step(cycles)
	c.mu.Lock()
	c.instructionCount++
	c.mu.Unlock()
	return cycles, nil
}

func (c *Core) runFrame() (int, error) {
	total := 0
	for total < cyclesPerFrame {
		spent, err := c.step()
		total += spent
		if err != nil {
			return total, err
		}
		if c.ppu.FrameReady() {
			break
		}
	}
	c.mu.Lock()
	c.frameCount++
	c.mu.Unlock()
	return total, nil
}

// Framebuffer returns the most recently rendered frame as packed RGBA8888
// (0xRRGGBBAA) pixels, row-major, video.Width by video.Height.
func (c *Core) Framebuffer() []uint32 {
	return c.ppu.FrameBuffer().Pixels()
}

// TakeAudio drains and returns the interleaved stereo float32 samples
// produced since the last call.
func (c *Core) TakeAudio() []float32 {
	return c.bus.APU.TakeSamples()
}

// SaveRAM returns a copy of the cartridge's external RAM, or nil if the
// cartridge carries none.
func (c *Core) SaveRAM() []byte {
	return c.bus.Cart.SaveRAM()
}

// LoadRAM restores previously saved external RAM.
func (c *Core) LoadRAM(data []byte) {
	c.bus.Cart.LoadRAM(data)
}

// SerialOutput returns everything written to the link port so far, decoded
// as a string (the common case: test ROMs that print ASCII diagnostics).
func (c *Core) SerialOutput() string {
	return c.bus.Serial.String()
}

// SerialBytes returns everything written to the link port so far, as raw
// bytes.
func (c *Core) SerialBytes() []byte {
	return c.bus.Serial.Bytes()
}

func (c *Core) setState(state DebuggerState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	slog.Debug("gbcore: debugger state changed", "state", state)
}

// Pause halts RunToVBlank until Resume or a step call.
func (c *Core) Pause() { c.setState(Paused) }

// Resume returns to free-running execution.
func (c *Core) Resume() { c.setState(Running) }

// StepInstruction arms a single-instruction step for the next RunToVBlank.
func (c *Core) StepInstruction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stepRequested = true
	c.state = Stepping
}

// StepFrame arms a single-frame step for the next RunToVBlank.
func (c *Core) StepFrame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameRequested = true
	c.state = SteppingFrame
}

// State reports the current debugger state.
func (c *Core) State() DebuggerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// InstructionCount and FrameCount report cumulative execution counters,
// useful for debugger UIs and test assertions alike.
func (c *Core) InstructionCount() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.instructionCount
}

func (c *Core) FrameCount() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frameCount
}

// CPU exposes the underlying CPU, for debuggers that need register/PC
// inspection beyond what Core summarizes.
func (c *Core) CPU() *cpu.CPU { return c.cpu }
