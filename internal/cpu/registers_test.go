package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterPairs(t *testing.T) {
	var r Registers
	r.SetBC(0xABCD)
	assert.Equal(t, uint8(0xAB), r.B)
	assert.Equal(t, uint8(0xCD), r.C)
	assert.Equal(t, uint16(0xABCD), r.BC())

	r.SetHL(0x1234)
	assert.Equal(t, uint16(0x1234), r.HL())
}

func TestAFMasksLowNibbleOfF(t *testing.T) {
	var r Registers
	r.SetAF(0x12FF)
	assert.Equal(t, uint8(0xF0), r.F, "the low nibble of F is always zero")
	assert.Equal(t, uint16(0x12F0), r.AF())
}

func TestFlags(t *testing.T) {
	var r Registers
	r.setFlag(flagZ, true)
	r.setFlag(flagC, true)

	assert.True(t, r.Zero())
	assert.True(t, r.Carry())
	assert.False(t, r.Subtract())
	assert.False(t, r.HalfCarry())

	r.setFlag(flagZ, false)
	assert.False(t, r.Zero())
}

func TestPowerOnState(t *testing.T) {
	var r Registers
	r.PowerOn()

	assert.Equal(t, uint16(0x0100), r.PC)
	assert.Equal(t, uint16(0xFFFE), r.SP)
	assert.True(t, r.Zero())
	assert.True(t, r.HalfCarry())
	assert.True(t, r.Carry())
}

func TestSnapshotCopiesCurrentState(t *testing.T) {
	var r Registers
	r.PowerOn()
	r.PC = 0xC000

	snap := r.Snapshot()
	r.PC = 0xC100

	assert.Equal(t, uint16(0xC000), snap.PC, "snapshot must not alias the live registers")
}
