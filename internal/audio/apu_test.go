package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/gogbc/internal/addr"
)

func TestNewWithCapacitySizesRing(t *testing.T) {
	a := NewWithCapacity(16)
	assert.Equal(t, 16, a.ringCapacity)
	assert.Empty(t, a.TakeSamples())
}

func TestWriteRegisterIgnoredWhilePoweredOff(t *testing.T) {
	a := New()
	a.WriteRegister(addr.NR52, 0x00) // power off
	a.WriteRegister(addr.NR11, 0xFF)
	assert.Equal(t, byte(0x3F), a.ReadRegister(addr.NR11), "register writes are ignored while the APU is off")
}

func TestPowerOnOffRoundTripsNR52Bit(t *testing.T) {
	a := New()
	assert.Equal(t, byte(0xF1), a.ReadRegister(addr.NR52), "channel 1 is left enabled by the boot ROM's startup sound")

	a.WriteRegister(addr.NR52, 0x00)
	assert.Equal(t, byte(0x70), a.ReadRegister(addr.NR52))

	a.WriteRegister(addr.NR52, 0x80)
	assert.Equal(t, byte(0xF0), a.ReadRegister(addr.NR52), "powering back on does not replay the boot quirk")
}

func TestPowerOnRegisterValuesMatchBootROM(t *testing.T) {
	a := New()
	assert.Equal(t, byte(0xBF), a.ReadRegister(addr.NR11), "duty initializes to 2")
	assert.Equal(t, byte(0xF3), a.ReadRegister(addr.NR12), "envelope initializes to volume 15, pace 3")
	assert.Equal(t, byte(0x77), a.ReadRegister(addr.NR50), "left/right master volume initialize to 7")
	assert.Equal(t, byte(0xF3), a.ReadRegister(addr.NR51), "panning initializes to 0xF3")
}

func TestTriggeringChannel1SetsStatusBit(t *testing.T) {
	a := New()
	a.WriteRegister(addr.NR12, 0xF0) // initial volume 15, envelope stopped, DAC on
	a.WriteRegister(addr.NR14, 0x80) // trigger

	assert.True(t, a.ch1.enabled)
	assert.Equal(t, byte(0xF1), a.ReadRegister(addr.NR52))
}

func TestWaveRAMIsReadableEvenWhenPoweredOff(t *testing.T) {
	a := New()
	a.WriteRegister(addr.NR52, 0x00)
	a.WriteRegister(addr.WaveRAMStart, 0xAB)
	assert.Equal(t, byte(0xAB), a.ReadRegister(addr.WaveRAMStart))
}

func TestPushSampleDropsWhenRingIsFull(t *testing.T) {
	a := NewWithCapacity(1)
	a.pushSample()
	a.pushSample() // dropped: ring already holds one stereo pair
	assert.Len(t, a.ring, 2)
}

func TestTakeSamplesDrainsAndResets(t *testing.T) {
	a := NewWithCapacity(4)
	a.pushSample()
	a.pushSample()
	samples := a.TakeSamples()
	assert.Len(t, samples, 4)
	assert.Empty(t, a.TakeSamples())
}

func TestMixRespectsPanningAndMasterVolume(t *testing.T) {
	a := New()
	a.ch1.enabled = true
	a.ch1.dacOn = true
	a.ch1.env.volume = 15
	a.ch1.duty = 2
	a.ch1.dutyStep = 0 // dutyTable[2][0] is high
	a.panning = 0x11   // channel 1 on both left and right
	a.leftVolume = 7
	a.rightVolume = 0

	left, right := a.mix()
	assert.Greater(t, left, right, "right volume is at its NR50 minimum")
}

func TestNR12ZeroingVolumeAndEnvelopeDisablesDAC(t *testing.T) {
	a := New()
	a.WriteRegister(addr.NR12, 0xF0) // DAC on
	a.WriteRegister(addr.NR14, 0x80) // trigger
	assert.True(t, a.ch1.enabled)

	a.WriteRegister(addr.NR12, 0x00) // clears the DAC bits
	assert.False(t, a.ch1.enabled, "clearing the DAC bits disables the channel")
}
