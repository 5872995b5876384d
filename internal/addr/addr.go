// Package addr centralizes the memory-mapped I/O addresses and interrupt
// bit positions used throughout the core.
package addr

// Joypad
const P1 uint16 = 0xFF00

// Serial
const (
	SB uint16 = 0xFF01
	SC uint16 = 0xFF02
)

// Timer
const (
	DIV  uint16 = 0xFF04
	TIMA uint16 = 0xFF05
	TMA  uint16 = 0xFF06
	TAC  uint16 = 0xFF07
)

// Interrupts
const (
	IF uint16 = 0xFF0F
	IE uint16 = 0xFFFF
)

// Audio registers (channels 1-4, global control, wave RAM)
const (
	NR10 uint16 = 0xFF10
	NR11 uint16 = 0xFF11
	NR12 uint16 = 0xFF12
	NR13 uint16 = 0xFF13
	NR14 uint16 = 0xFF14

	NR21 uint16 = 0xFF16
	NR22 uint16 = 0xFF17
	NR23 uint16 = 0xFF18
	NR24 uint16 = 0xFF19

	NR30 uint16 = 0xFF1A
	NR31 uint16 = 0xFF1B
	NR32 uint16 = 0xFF1C
	NR33 uint16 = 0xFF1D
	NR34 uint16 = 0xFF1E

	NR41 uint16 = 0xFF20
	NR42 uint16 = 0xFF21
	NR43 uint16 = 0xFF22
	NR44 uint16 = 0xFF23

	NR50 uint16 = 0xFF24
	NR51 uint16 = 0xFF25
	NR52 uint16 = 0xFF26

	WaveRAMStart uint16 = 0xFF30
	WaveRAMEnd   uint16 = 0xFF3F

	AudioStart uint16 = 0xFF10
	AudioEnd   uint16 = 0xFF3F
)

// PPU registers
const (
	LCDC uint16 = 0xFF40
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LY   uint16 = 0xFF44
	LYC  uint16 = 0xFF45
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
)

// OAM
const (
	OAMStart uint16 = 0xFE00
	OAMEnd   uint16 = 0xFE9F
)

// VRAM tile data and tile map regions.
const (
	// TileData0 is the start of unsigned tile data addressing (tiles 0-255).
	TileData0 uint16 = 0x8000
	// TileData2 is the base used by signed tile data addressing (tiles -128 to 127).
	TileData2 uint16 = 0x9000

	TileMap0 uint16 = 0x9800
	TileMap1 uint16 = 0x9C00
)

// Interrupt identifies one of the five interrupt sources. Values match the
// bit position within IE/IF.
type Interrupt uint8

const (
	VBlank   Interrupt = 0
	LCDStat  Interrupt = 1
	Timer    Interrupt = 2
	Serial   Interrupt = 3
	Joypad   Interrupt = 4
)

// Vector returns the fixed dispatch address for an interrupt.
func (i Interrupt) Vector() uint16 {
	return 0x0040 + uint16(i)*0x08
}

// Bit returns the IE/IF bitmask for the interrupt.
func (i Interrupt) Bit() uint8 {
	return 1 << uint8(i)
}
