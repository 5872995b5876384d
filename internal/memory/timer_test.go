package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/gogbc/internal/addr"
)

func TestDIVIsTopByteOfFreeRunningCounter(t *testing.T) {
	timer := NewTimer(func(addr.Interrupt) {})
	timer.counter = 0
	timer.Tick(256)
	assert.Equal(t, byte(1), timer.Read(addr.DIV))
}

func TestDIVWriteResetsCounter(t *testing.T) {
	timer := NewTimer(func(addr.Interrupt) {})
	timer.counter = 0x8000
	timer.Write(addr.DIV, 0xFF) // any write value resets to 0
	assert.Equal(t, byte(0), timer.Read(addr.DIV))
}

func TestTIMAIncrementsOnSelectedBitFallingEdge(t *testing.T) {
	var fired bool
	timer := NewTimer(func(addr.Interrupt) { fired = true })
	timer.counter = 0
	timer.Write(addr.TAC, 0x05) // enabled, freq select 01 -> bit 3

	// Bit 3 rises at counter=8 and falls again at counter=16; only the
	// falling edge increments TIMA.
	timer.Tick(16)
	assert.Equal(t, byte(1), timer.Read(addr.TIMA))
	assert.False(t, fired)
}

func TestTIMAOverflowReloadsFromTMAAfterDelay(t *testing.T) {
	var fired bool
	timer := NewTimer(func(addr.Interrupt) { fired = true })
	timer.tima = 0xFF
	timer.tma = 0x10
	timer.tac = 0x05 // enabled
	timer.counter = 0x0004
	timer.lastBit = true // primed so the next clear edge fires

	timer.Tick(4) // counter bit 3 falls, TIMA overflows to 0, overflowLeft=4
	assert.Equal(t, byte(0x00), timer.tima)
	assert.False(t, fired, "the interrupt and TMA reload are delayed by one tick")

	timer.Tick(4) // overflowLeft reaches 0: TMA reloads, interrupt queued
	assert.Equal(t, byte(0x10), timer.tima)
	assert.False(t, fired, "the queued interrupt fires on the following tick, not this one")

	timer.Tick(0)
	assert.True(t, fired)
}

func TestTACReadBackHasUpperBitsSet(t *testing.T) {
	timer := NewTimer(func(addr.Interrupt) {})
	timer.Write(addr.TAC, 0x07)
	assert.Equal(t, byte(0xFF), timer.Read(addr.TAC))
}
