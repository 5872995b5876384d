package memory

import "github.com/ashgrove/gogbc/internal/addr"

// Button identifies one of the eight logical Game Boy buttons.
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

// Joypad maps the logical button set onto the two 4-bit select lines
// exposed through P1 (0xFF00): bit 4 selects the direction pad, bit 5
// selects the action buttons, bits 0-3 read back as 0 for a pressed button.
type Joypad struct {
	dpad    byte // low nibble, 1 = released
	buttons byte // low nibble, 1 = released
	p1      byte // selection bits 4-5, as last written

	requestInterrupt func(addr.Interrupt)
}

// NewJoypad returns a joypad with nothing pressed.
func NewJoypad(requestFn func(addr.Interrupt)) *Joypad {
	return &Joypad{
		dpad:             0x0F,
		buttons:          0x0F,
		requestInterrupt: requestFn,
	}
}

// Set replaces the full set of currently-pressed buttons in one call,
// raising the joypad interrupt for any button that transitions from
// released to pressed.
func (j *Joypad) Set(pressed map[Button]bool) {
	oldDpad, oldButtons := j.dpad, j.buttons
	j.dpad, j.buttons = 0x0F, 0x0F

	for b, down := range pressed {
		if !down {
			continue
		}
		switch b {
		case ButtonRight:
			j.dpad &^= 1 << 0
		case ButtonLeft:
			j.dpad &^= 1 << 1
		case ButtonUp:
			j.dpad &^= 1 << 2
		case ButtonDown:
			j.dpad &^= 1 << 3
		case ButtonA:
			j.buttons &^= 1 << 0
		case ButtonB:
			j.buttons &^= 1 << 1
		case ButtonSelect:
			j.buttons &^= 1 << 2
		case ButtonStart:
			j.buttons &^= 1 << 3
		}
	}

	newlyPressedDpad := oldDpad &^ j.dpad
	newlyPressedButtons := oldButtons &^ j.buttons
	if newlyPressedDpad|newlyPressedButtons != 0 {
		j.requestInterrupt(addr.Joypad)
	}
}

// Read returns the current value of P1.
func (j *Joypad) Read() byte {
	result := byte(0b11000000) | (j.p1 & 0b00110000)

	selectButtons := !bitSet(5, j.p1)
	selectDpad := !bitSet(4, j.p1)

	switch {
	case selectButtons && !selectDpad:
		result |= j.buttons & 0x0F
	case selectDpad && !selectButtons:
		result |= j.dpad & 0x0F
	case selectButtons && selectDpad:
		result |= j.buttons & j.dpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

// Write stores the selection bits (4-5); bits 0-3 are not writable.
func (j *Joypad) Write(value byte) {
	j.p1 = value & 0b00110000
}

func bitSet(index uint8, b byte) bool {
	return (b>>index)&1 == 1
}
