package audio

// lengthCounter is the length-timer behavior shared by all four channels:
// NRx1 seeds it, NRx4 bit 6 enables it, and it silences the channel when it
// counts down to zero while enabled.
type lengthCounter struct {
	enabled bool
	counter uint16
	max     uint16 // 64 for ch1/2/4, 256 for ch3
}

func (l *lengthCounter) load(seed uint16) {
	l.counter = l.max - seed
}

// step is called once per frame-sequencer length step (256 Hz); returns
// true if the channel should be silenced this step.
func (l *lengthCounter) step() (expired bool) {
	if !l.enabled || l.counter == 0 {
		return false
	}
	l.counter--
	return l.counter == 0
}

// envelope is the volume envelope shared by ch1, ch2 and ch4.
type envelope struct {
	initialVolume uint8
	increasing    bool
	pace          uint8
	volume        uint8
	timer         uint8
}

func (e *envelope) trigger() {
	e.volume = e.initialVolume
	e.timer = e.pace
}

func (e *envelope) step() {
	if e.pace == 0 {
		return
	}
	if e.timer > 0 {
		e.timer--
	}
	if e.timer == 0 {
		e.timer = e.pace
		if e.increasing && e.volume < 15 {
			e.volume++
		} else if !e.increasing && e.volume > 0 {
			e.volume--
		}
	}
}

// square implements channel 1 (with sweep) and channel 2 (without).
type square struct {
	enabled    bool
	dacOn      bool
	length     lengthCounter
	env        envelope
	duty       uint8
	dutyStep   uint8
	period     uint16 // 11-bit frequency period
	freqTimer  int

	hasSweep     bool
	sweepPeriod  uint8
	sweepDown    bool
	sweepShift   uint8
	sweepTimer   uint8
	sweepEnabled bool
	shadowFreq   uint16
}

func (c *square) periodCycles() int {
	return (2048 - int(c.period)) * 4
}

func (c *square) trigger() {
	c.enabled = c.dacOn
	c.freqTimer = c.periodCycles()
	c.env.trigger()
	if c.length.counter == 0 {
		c.length.load(0)
	}
	if c.hasSweep {
		c.shadowFreq = c.period
		c.sweepTimer = c.sweepPeriod
		if c.sweepTimer == 0 {
			c.sweepTimer = 8
		}
		c.sweepEnabled = c.sweepPeriod != 0 || c.sweepShift != 0
		if c.sweepShift != 0 {
			if _, overflow := c.sweepTarget(); overflow {
				c.enabled = false
			}
		}
	}
}

func (c *square) sweepTarget() (uint16, bool) {
	delta := c.shadowFreq >> c.sweepShift
	var target uint16
	if c.sweepDown {
		target = c.shadowFreq - delta
	} else {
		target = c.shadowFreq + delta
	}
	return target, target > 2047
}

func (c *square) stepSweep() {
	if !c.hasSweep || !c.sweepEnabled {
		return
	}
	if c.sweepTimer > 0 {
		c.sweepTimer--
	}
	if c.sweepTimer != 0 {
		return
	}
	c.sweepTimer = c.sweepPeriod
	if c.sweepTimer == 0 {
		c.sweepTimer = 8
	}
	if c.sweepPeriod == 0 {
		return
	}
	target, overflow := c.sweepTarget()
	if overflow {
		c.enabled = false
		return
	}
	if c.sweepShift != 0 {
		c.shadowFreq = target
		c.period = target
		if _, overflow := c.sweepTarget(); overflow {
			c.enabled = false
		}
	}
}

func (c *square) stepLength() {
	if c.length.step() {
		c.enabled = false
	}
}

func (c *square) stepTimer(cycles int) {
	c.freqTimer -= cycles
	for c.freqTimer <= 0 {
		c.freqTimer += c.periodCycles()
		c.dutyStep = (c.dutyStep + 1) % 8
	}
}

func (c *square) amplitude() float32 {
	if !c.enabled || !c.dacOn {
		return 0
	}
	high := dutyTable[c.duty][c.dutyStep]
	if !high {
		return 0
	}
	return float32(c.env.volume) / 15.0
}

// wave implements channel 3, playing back 32 4-bit samples from wave RAM.
type wave struct {
	enabled   bool
	dacOn     bool
	length    lengthCounter
	period    uint16
	freqTimer int
	position  uint8
	volumeShift uint8 // 0=mute, 1=100%, 2=50%, 3=25%
	ram       *[waveRAMSize]uint8
}

func (c *wave) periodCycles() int {
	return (2048 - int(c.period)) * 2
}

func (c *wave) trigger() {
	c.enabled = c.dacOn
	c.freqTimer = c.periodCycles()
	c.position = 0
	if c.length.counter == 0 {
		c.length.load(0)
	}
}

func (c *wave) stepLength() {
	if c.length.step() {
		c.enabled = false
	}
}

func (c *wave) stepTimer(cycles int) {
	c.freqTimer -= cycles
	for c.freqTimer <= 0 {
		c.freqTimer += c.periodCycles()
		c.position = (c.position + 1) % 32
	}
}

func (c *wave) amplitude() float32 {
	if !c.enabled || !c.dacOn || c.volumeShift == 0 {
		return 0
	}
	sampleByte := c.ram[c.position/2]
	var nibble uint8
	if c.position%2 == 0 {
		nibble = sampleByte >> 4
	} else {
		nibble = sampleByte & 0x0F
	}
	return float32(nibble>>(c.volumeShift-1)) / 15.0
}

// noise implements channel 4's LFSR-driven pseudo-random output.
type noise struct {
	enabled   bool
	dacOn     bool
	length    lengthCounter
	env       envelope
	shift     uint8
	use7Bit   bool
	divisor   uint8
	freqTimer int
	lfsr      uint16
}

var divisorTable = [8]int{8, 16, 32, 48, 64, 80, 96, 112}

func (c *noise) periodCycles() int {
	return divisorTable[c.divisor] << c.shift
}

func (c *noise) trigger() {
	c.enabled = c.dacOn
	c.freqTimer = c.periodCycles()
	c.lfsr = 0x7FFF
	c.env.trigger()
	if c.length.counter == 0 {
		c.length.load(0)
	}
}

func (c *noise) stepLength() {
	if c.length.step() {
		c.enabled = false
	}
}

func (c *noise) stepTimer(cycles int) {
	c.freqTimer -= cycles
	for c.freqTimer <= 0 {
		c.freqTimer += c.periodCycles()
		bit := (c.lfsr ^ (c.lfsr >> 1)) & 1
		c.lfsr = (c.lfsr >> 1) | (bit << 14)
		if c.use7Bit {
			c.lfsr = (c.lfsr &^ (1 << 6)) | (bit << 6)
		}
	}
}

func (c *noise) amplitude() float32 {
	if !c.enabled || !c.dacOn {
		return 0
	}
	if c.lfsr&1 != 0 {
		return 0
	}
	return float32(c.env.volume) / 15.0
}
