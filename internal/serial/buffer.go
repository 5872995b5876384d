// Package serial implements the minimal serial port needed to run test
// ROMs that report pass/fail over the link cable (SB/SC), and to give a
// host a bounded, human-readable capture of what was written.
package serial

import "github.com/ashgrove/gogbc/internal/addr"

const defaultCapacity = 4096

// Buffer is a serial device with no peer attached: every byte written to SB
// while SC starts a transfer is captured verbatim and, per real hardware,
// completes immediately (no actual link partner to wait for) before raising
// the serial interrupt.
//
// This is a test-only observability surface, not part of the hardware
// contract in spec.md — see spec.md §9.
type Buffer struct {
	sb, sc           byte
	transferActive   bool
	captured         []byte
	capacity         int
	requestInterrupt func(addr.Interrupt)
}

// NewBuffer creates a serial device that raises the serial interrupt via
// requestFn on every completed transfer.
func NewBuffer(requestFn func(addr.Interrupt)) *Buffer {
	return NewBufferWithCapacity(requestFn, defaultCapacity)
}

// NewBufferWithCapacity is NewBuffer but with a host-chosen capture
// capacity, in bytes.
func NewBufferWithCapacity(requestFn func(addr.Interrupt), capacity int) *Buffer {
	return &Buffer{capacity: capacity, requestInterrupt: requestFn}
}

func (b *Buffer) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return b.sb
	case addr.SC:
		return b.sc
	default:
		return 0xFF
	}
}

func (b *Buffer) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		b.sb = value
	case addr.SC:
		b.sc = value
		b.maybeTransfer()
	}
}

func (b *Buffer) maybeTransfer() {
	if b.transferActive {
		return
	}
	const startBit, clockBit = 7, 0
	if b.sc&(1<<startBit) == 0 || b.sc&(1<<clockBit) == 0 {
		return
	}

	if len(b.captured) < b.capacity {
		b.captured = append(b.captured, b.sb)
	}

	b.sb = 0xFF
	b.sc &^= 1 << startBit
	if b.requestInterrupt != nil {
		b.requestInterrupt(addr.Serial)
	}
}

// String returns everything captured so far, as text.
func (b *Buffer) String() string { return string(b.captured) }

// Bytes returns a copy of everything captured so far.
func (b *Buffer) Bytes() []byte { return append([]byte(nil), b.captured...) }
