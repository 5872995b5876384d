// Package cpu implements the SM83 instruction set: fetch/decode/execute,
// the interrupt dispatcher, and the DIV/TIMA/sound bookkeeping a real tick
// performs alongside the opcode itself. The PPU is stepped by the caller.
package cpu

import (
	"fmt"

	"github.com/ashgrove/gogbc/internal/addr"
	"github.com/ashgrove/gogbc/internal/memory"
)

// FatalError is returned (never panicked) when the guest program executes
// an opcode outside the documented DMG instruction set. It carries enough
// state for a host to print a useful diagnostic.
type FatalError struct {
	Reason string
	PC     uint16
	Opcode uint16
	Regs   Snapshot
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: opcode=0x%04X pc=0x%04X", e.Reason, e.Opcode, e.PC)
}

// CPU holds the register file and drives the bus, timer, sound and IME
// bookkeeping described by the tick contract.
type CPU struct {
	Regs Registers
	Bus  *memory.Bus

	ime          bool
	imeCountdown int // -1 when idle; counts down after EI/RETI

	halted  bool
	stopped bool
}

// New creates a CPU wired to bus, with registers at their documented
// post-boot-ROM values.
func New(bus *memory.Bus) *CPU {
	c := &CPU{Bus: bus, imeCountdown: -1}
	c.Regs.PowerOn()
	return c
}

func (c *CPU) fetch8() uint8 {
	v := c.Bus.ReadByte(c.Regs.PC)
	c.Regs.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) push16(value uint16) {
	c.Regs.SP--
	c.Bus.WriteByte(c.Regs.SP, uint8(value>>8))
	c.Regs.SP--
	c.Bus.WriteByte(c.Regs.SP, uint8(value))
}

func (c *CPU) pop16() uint16 {
	low := c.Bus.ReadByte(c.Regs.SP)
	c.Regs.SP++
	high := c.Bus.ReadByte(c.Regs.SP)
	c.Regs.SP++
	return uint16(high)<<8 | uint16(low)
}

// interruptOrder matches IE/IF bit order: VBlank, LCDStat, Timer, Serial,
// Joypad, lowest bit dispatched first.
var interruptOrder = [5]addr.Interrupt{addr.VBlank, addr.LCDStat, addr.Timer, addr.Serial, addr.Joypad}

// dispatchInterrupt implements §4.1's "performed at the start of each
// tick, before fetch" semantics, including the HALT-wake-without-dispatch
// case when IME is false.
func (c *CPU) dispatchInterrupt() int {
	pending := c.Bus.Interrupts.Pending()
	if pending == 0 {
		return 0
	}

	for _, kind := range interruptOrder {
		if pending&kind.Bit() == 0 {
			continue
		}

		if kind == addr.Joypad {
			c.stopped = false
		}
		c.halted = false

		if !c.ime {
			return 0
		}

		c.Bus.Interrupts.Clear(kind)
		c.ime = false
		c.push16(c.Regs.PC)
		c.Regs.PC = kind.Vector()
		return 20
	}
	return 0
}

// Tick executes one instruction (or a stall step when halted/stopped) and
// advances the timer and sound engine by the spent cycles, returning that
// cycle count so the caller (gbcore, which also owns the PPU) can step the
// picture processor in lockstep. cpu deliberately does not import video:
// video already imports memory, and memory is this package's own
// dependency, so the PPU is driven one level up instead.
func (c *CPU) Tick() (cycles int, err error) {
	if n := c.dispatchInterrupt(); n > 0 {
		c.advance(n)
		return n, nil
	}

	if c.halted || c.stopped {
		c.advance(4)
		return 4, nil
	}

	pc := c.Regs.PC
	opcode := uint16(c.fetch8())

	var handler opcodeFunc
	if opcode == 0xCB {
		opcode = 0xCB00 | uint16(c.fetch8())
		handler = cbTable[opcode&0xFF]
	} else {
		handler = baseTable[opcode]
	}

	if handler == nil {
		return 0, &FatalError{Reason: "undefined opcode", PC: pc, Opcode: opcode, Regs: c.Regs.Snapshot()}
	}

	cycles = handler(c)

	if c.imeCountdown >= 0 {
		c.imeCountdown--
		if c.imeCountdown < 0 {
			c.ime = true
		}
	}

	c.advance(cycles)
	return cycles, nil
}

// advance steps DIV/TIMA and the sound engine by cycles.
func (c *CPU) advance(cycles int) {
	c.Bus.Timer.Tick(cycles)
	c.Bus.APU.Step(cycles)
}

// RequestStop clears STOP mode, for hosts implementing their own wake
// button. A pending joypad interrupt also clears it, in dispatchInterrupt.
func (c *CPU) RequestStop() { c.stopped = false }

func (c *CPU) Halted() bool  { return c.halted }
func (c *CPU) Stopped() bool { return c.stopped }
func (c *CPU) IME() bool     { return c.ime }
