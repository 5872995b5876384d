package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// romWithHeader builds a minimal ROM image of size bankCount*0x4000 bytes
// with a valid header declaring cartType/romSizeCode/ramSizeCode.
func romWithHeader(bankCount int, cartType, romSizeCode, ramSizeCode byte) []byte {
	rom := make([]byte, bankCount*0x4000)
	rom[cartTypeAddr] = cartType
	rom[romSizeAddr] = romSizeCode
	rom[ramSizeAddr] = ramSizeCode
	return rom
}

func TestMBC1BankSwitching(t *testing.T) {
	rom := romWithHeader(4, 0x01, 0x01, 0x00) // MBC1, 4 banks, no RAM
	for bank := 0; bank < 4; bank++ {
		for i := 0; i < 0x4000; i++ {
			rom[bank*0x4000+i] = byte(bank)
		}
	}

	mbc := newMBC1(rom, 0)
	assert.Equal(t, byte(1), mbc.Read(0x4000), "bank register defaults to 1")

	mbc.Write(0x2000, 0x02)
	assert.Equal(t, byte(2), mbc.Read(0x4000))

	mbc.Write(0x2000, 0x00)
	assert.Equal(t, byte(1), mbc.Read(0x4000), "writing bank 0 aliases to bank 1")
}

func TestMBC1RAMGatedByEnable(t *testing.T) {
	mbc := newMBC1(make([]byte, 0x8000), 1)

	mbc.Write(0xA000, 0x42)
	assert.Equal(t, byte(0xFF), mbc.Read(0xA000), "RAM is disabled until 0x0A is written to the enable gate")

	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x42)
	assert.Equal(t, byte(0x42), mbc.Read(0xA000))
}

func TestMBC1SaveRAMRoundTrips(t *testing.T) {
	mbc := newMBC1(make([]byte, 0x8000), 1)
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x99)

	saved := mbc.RAM()
	restored := newMBC1(make([]byte, 0x8000), 1)
	restored.SetRAM(saved)
	restored.Write(0x0000, 0x0A)
	assert.Equal(t, byte(0x99), restored.Read(0xA000))
}

func TestMBC2RAMIsNibbleWide(t *testing.T) {
	mbc := newMBC2(make([]byte, 0x8000))
	mbc.Write(0xA000, 0xFF)
	assert.Equal(t, byte(0xFF), mbc.Read(0xA000), "unwritten high nibble reads back as 1s")

	mbc.Write(0xA000, 0x05)
	assert.Equal(t, byte(0xF5), mbc.Read(0xA000))
}

func TestMBC2BankSelectRequiresAddressBit8(t *testing.T) {
	rom := make([]byte, 0x4000*3)
	for i := range rom[0x4000:] {
		rom[0x4000+i] = byte(1 + i/0x4000)
	}
	mbc := newMBC2(rom)

	mbc.Write(0x0000, 0x02) // bit 8 clear, ignored
	assert.Equal(t, byte(1), mbc.effectiveBank())

	mbc.Write(0x0100, 0x02) // bit 8 set, takes effect
	assert.Equal(t, byte(2), mbc.effectiveBank())
}

func TestMBC3RTCRegisterSelectReadsOpenBus(t *testing.T) {
	mbc := newMBC3(make([]byte, 0x8000), 1)
	mbc.Write(0x0000, 0x0A)
	mbc.Write(0x4000, 0x08) // select RTC seconds register
	assert.Equal(t, byte(0xFF), mbc.Read(0xA000))
}

func TestNewCartridgeDecodesHeader(t *testing.T) {
	rom := romWithHeader(2, 0x01, 0x00, 0x00) // MBC1, 32KB, no RAM
	copy(rom[titleAddr:], "TESTROM")

	cart, err := NewCartridge(rom)
	assert.NoError(t, err)
	assert.Equal(t, "TESTROM", cart.Title)
	assert.Equal(t, MapperMBC1, cart.Mapper)
	assert.False(t, cart.HasRAM)
}

func TestNewCartridgeRejectsUnknownType(t *testing.T) {
	rom := romWithHeader(2, 0x7F, 0x00, 0x00)
	_, err := NewCartridge(rom)
	assert.Error(t, err)
}

func TestCartridgeSaveLoadRAM(t *testing.T) {
	rom := romWithHeader(2, 0x03, 0x00, 0x02) // MBC1+RAM+battery, 8KB RAM
	cart, err := NewCartridge(rom)
	assert.NoError(t, err)

	cart.Write(0x0000, 0x0A) // enable RAM
	cart.Write(0xA000, 0x7B)

	saved := cart.SaveRAM()
	assert.Equal(t, byte(0x7B), saved[0])

	fresh, _ := NewCartridge(rom)
	fresh.LoadRAM(saved)
	fresh.Write(0x0000, 0x0A)
	assert.Equal(t, byte(0x7B), fresh.Read(0xA000))
}
