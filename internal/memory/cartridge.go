package memory

import (
	"fmt"
)

const (
	titleAddr       = 0x134
	titleLen        = 15
	cartTypeAddr    = 0x147
	romSizeAddr     = 0x148
	ramSizeAddr     = 0x149
)

// MapperKind identifies the mapper family a cartridge uses.
type MapperKind uint8

const (
	MapperRomOnly MapperKind = iota
	MapperMBC1
	MapperMBC2
	MapperMBC3
)

// Cartridge owns the immutable ROM image, the decoded header, and (via its
// MBC) the mutable cart-RAM array.
type Cartridge struct {
	Title   string
	Mapper  MapperKind
	HasRAM  bool
	HasBattery bool

	rom []byte
	mbc MBC
}

// cartTypeInfo describes, per byte 0x147 of the header, which mapper family
// a cartridge type code implies and whether it carries RAM/battery.
type cartTypeInfo struct {
	mapper     MapperKind
	hasRAM     bool
	hasBattery bool
}

var cartTypes = map[byte]cartTypeInfo{
	0x00: {MapperRomOnly, false, false},
	0x08: {MapperRomOnly, true, false},
	0x09: {MapperRomOnly, true, true},
	0x01: {MapperMBC1, false, false},
	0x02: {MapperMBC1, true, false},
	0x03: {MapperMBC1, true, true},
	0x05: {MapperMBC2, false, false},
	0x06: {MapperMBC2, false, true},
	0x0F: {MapperMBC3, false, true},
	0x10: {MapperMBC3, true, true},
	0x11: {MapperMBC3, false, false},
	0x12: {MapperMBC3, true, false},
	0x13: {MapperMBC3, true, true},
}

// romBankCount decodes byte 0x148 into a number of 16KiB banks.
func romBankCount(code byte) (int, error) {
	switch {
	case code <= 0x06:
		return 2 << code, nil
	case code == 0x52:
		return 72, nil
	case code == 0x53:
		return 80, nil
	case code == 0x54:
		return 96, nil
	default:
		return 0, fmt.Errorf("unknown ROM size code 0x%02X", code)
	}
}

// ramBankSize decodes byte 0x149 into a total cart-RAM size, in bytes.
func ramBankSize(code byte) (int, error) {
	switch code {
	case 0x00:
		return 0, nil
	case 0x01:
		return 2 * 1024, nil
	case 0x02:
		return 8 * 1024, nil
	case 0x03:
		return 32 * 1024, nil
	case 0x04:
		return 128 * 1024, nil
	default:
		return 0, fmt.Errorf("unknown RAM size code 0x%02X", code)
	}
}

// NewCartridge loads a cartridge from a raw ROM image (no loader header),
// decoding the header fields documented in spec.md §4.3. A mismatch between
// the declared ROM size and len(rom) is logged as a warning, not an error.
func NewCartridge(rom []byte) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("rom too small to contain a header: %d bytes", len(rom))
	}

	typeCode := rom[cartTypeAddr]
	info, ok := cartTypes[typeCode]
	if !ok {
		return nil, fmt.Errorf("unknown cartridge type code 0x%02X", typeCode)
	}

	declaredBanks, err := romBankCount(rom[romSizeAddr])
	if err != nil {
		return nil, err
	}

	ramSize, err := ramBankSize(rom[ramSizeAddr])
	if err != nil {
		return nil, err
	}

	if declaredBanks*0x4000 != len(rom) {
		warnf("ROM size mismatch: header declares %d bytes, file is %d bytes", declaredBanks*0x4000, len(rom))
	}

	title := make([]byte, 0, titleLen)
	for _, b := range rom[titleAddr : titleAddr+titleLen] {
		if b == 0 {
			break
		}
		title = append(title, b)
	}

	cart := &Cartridge{
		Title:      string(title),
		Mapper:     info.mapper,
		HasRAM:     info.hasRAM,
		HasBattery: info.hasBattery,
		rom:        rom,
	}

	ramBanks := uint8(ramSize / 0x2000)
	switch info.mapper {
	case MapperRomOnly:
		cart.mbc = newRomOnly(rom)
	case MapperMBC1:
		cart.mbc = newMBC1(rom, ramBanks)
	case MapperMBC2:
		cart.mbc = newMBC2(rom)
	case MapperMBC3:
		cart.mbc = newMBC3(rom, ramBanks)
	}

	return cart, nil
}

// Read/Write delegate to the cartridge's mapper.
func (c *Cartridge) Read(address uint16) byte         { return c.mbc.Read(address) }
func (c *Cartridge) Write(address uint16, value byte) { c.mbc.Write(address, value) }

// SaveRAM returns a copy of the cartridge's external RAM, for hosts that
// implement battery-backed persistence outside the core.
func (c *Cartridge) SaveRAM() []byte { return c.mbc.RAM() }

// LoadRAM restores previously saved external RAM.
func (c *Cartridge) LoadRAM(data []byte) { c.mbc.SetRAM(data) }
