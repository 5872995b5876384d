package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/gogbc/internal/addr"
	"github.com/ashgrove/gogbc/internal/memory"
)

func TestNewStartsAtPowerOnState(t *testing.T) {
	c := newTestCPU()
	assert.Equal(t, uint16(0x0100), c.Regs.PC)
	assert.False(t, c.IME())
}

func TestUndefinedOpcodeReturnsFatalError(t *testing.T) {
	bus := memory.NewBus()
	c := New(bus)
	c.Regs.PC = 0xC000          // work RAM; the ROM-only cartridge ignores writes
	bus.WriteByte(0xC000, 0xD3) // undefined

	_, err := c.Tick()
	var fatal *FatalError
	assert.ErrorAs(t, err, &fatal)
	assert.Equal(t, uint16(0xC000), fatal.PC)
}

func TestNOPAdvancesPCAndCosts4Cycles(t *testing.T) {
	bus := memory.NewBus()
	c := New(bus)
	bus.WriteByte(0x0100, 0x00) // NOP

	cycles, err := c.Tick()
	assert.NoError(t, err)
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(0x0101), c.Regs.PC)
}

func TestInterruptDispatchPushesPCAndJumpsToVector(t *testing.T) {
	bus := memory.NewBus()
	c := New(bus)
	c.ime = true
	c.Regs.PC = 0x1234
	c.Regs.SP = 0xFFFE
	bus.Interrupts.WriteIE(addr.VBlank.Bit())
	bus.Interrupts.Request(addr.VBlank)

	cycles, err := c.Tick()
	assert.NoError(t, err)
	assert.Equal(t, 20, cycles)
	assert.Equal(t, addr.VBlank.Vector(), c.Regs.PC)
	assert.False(t, c.IME(), "dispatch clears IME so the handler isn't reentered")
	assert.Equal(t, uint16(0x1234), c.pop16())
}

func TestInterruptPriorityOrderIsVBlankFirst(t *testing.T) {
	bus := memory.NewBus()
	c := New(bus)
	c.ime = true
	bus.Interrupts.WriteIE(0x1F)
	bus.Interrupts.WriteIF(0x1F)

	_, err := c.Tick()
	assert.NoError(t, err)
	assert.Equal(t, addr.VBlank.Vector(), c.Regs.PC)
}

func TestHaltWakesOnPendingInterruptEvenWithIMEOff(t *testing.T) {
	bus := memory.NewBus()
	c := New(bus)
	c.ime = false
	c.halted = true
	bus.Interrupts.WriteIE(addr.Joypad.Bit())
	bus.Interrupts.Request(addr.Joypad)

	cycles, err := c.Tick()
	assert.NoError(t, err)
	assert.False(t, c.halted, "IME=0 still wakes HALT, it just doesn't dispatch")
	assert.Equal(t, 4, cycles)
}

func TestEIDelaysInterruptEnableByOneInstruction(t *testing.T) {
	bus := memory.NewBus()
	c := New(bus)
	c.Regs.PC = 0xC000          // work RAM; the ROM-only cartridge ignores writes
	bus.WriteByte(0xC000, 0xFB) // EI
	bus.WriteByte(0xC001, 0x00) // NOP

	_, err := c.Tick()
	assert.NoError(t, err)
	assert.False(t, c.IME(), "IME takes effect after the instruction following EI")

	_, err = c.Tick()
	assert.NoError(t, err)
	assert.True(t, c.IME())
}
