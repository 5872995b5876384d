package video

import (
	"github.com/ashgrove/gogbc/internal/addr"
	"github.com/ashgrove/gogbc/internal/bit"
	"github.com/ashgrove/gogbc/internal/memory"
)

// mode durations in cycles, for a 160x144 scanline at 456 cycles/line.
const (
	oamScanCycles  = 80
	vramScanCycles = 172
	hblankCycles   = 204
	lineCycles     = oamScanCycles + vramScanCycles + hblankCycles
	visibleLines   = 144
	totalLines     = 154
)

// lcdcFlag bit positions within LCDC.
const (
	lcdEnable        uint8 = 7
	windowTileMap    uint8 = 6
	windowEnable     uint8 = 5
	bgWindowTileData uint8 = 4
	bgTileMap        uint8 = 3
	objSize          uint8 = 2
	objEnable        uint8 = 1
	bgEnable         uint8 = 0
)

// statFlag bit positions within STAT.
const (
	statLYCIrq    uint8 = 6
	statOAMIrq    uint8 = 5
	statVBlankIrq uint8 = 4
	statHBlankIrq uint8 = 3
)

// PPU implements the picture processor's mode/scanline state machine and
// scanline rasterization, driving the bus' LY/STAT registers and raising
// VBlank/LCDStat interrupts as it goes.
type PPU struct {
	bus *memory.Bus
	fb  *FrameBuffer

	mode   memory.PPUMode
	line   int
	cycles int

	bgShade    [Width]uint8 // background/window color index per pixel this line, for sprite priority
	sprPrio    spritePriority
	windowLine int
	frameDone  bool
}

func New(bus *memory.Bus, palette Palette) *PPU {
	p := &PPU{
		bus:  bus,
		fb:   NewFrameBuffer(palette),
		mode: memory.ModeOAMScan,
	}
	bus.SetPPUMode(p.mode)
	return p
}

func (p *PPU) FrameBuffer() *FrameBuffer { return p.fb }

// FrameReady reports whether a full frame completed on the most recent Step
// and resets the flag.
func (p *PPU) FrameReady() bool {
	done := p.frameDone
	p.frameDone = false
	return done
}

func (p *PPU) lcdc(flag uint8) bool {
	return bit.IsSet(flag, p.bus.IO.LCDC)
}

// Step advances the PPU by cycles CPU clocks, making every mode transition
// those clocks cover.
func (p *PPU) Step(cycles int) {
	if !p.lcdc(lcdEnable) {
		return
	}

	p.cycles += cycles

	for {
		before := p.cycles
		switch p.mode {
		case memory.ModeOAMScan:
			if p.cycles >= oamScanCycles {
				p.cycles -= oamScanCycles
				p.setMode(memory.ModeVRAMScan)
			}
		case memory.ModeVRAMScan:
			if p.cycles >= vramScanCycles {
				p.cycles -= vramScanCycles
				p.drawLine()
				p.setMode(memory.ModeHBlank)
				if p.bus.STATInterruptEnabled(statHBlankIrq) {
					p.bus.RequestInterrupt(addr.LCDStat)
				}
			}
		case memory.ModeHBlank:
			if p.cycles >= hblankCycles {
				p.cycles -= hblankCycles
				p.advanceLine()
			}
		case memory.ModeVBlank:
			if p.cycles >= lineCycles {
				p.cycles -= lineCycles
				p.advanceLine()
			}
		}
		if p.cycles == before {
			return
		}
	}
}

func (p *PPU) advanceLine() {
	p.line++

	if p.line == visibleLines {
		p.setMode(memory.ModeVBlank)
		p.windowLine = 0
		p.frameDone = true
		p.bus.RequestInterrupt(addr.VBlank)
		if p.bus.STATInterruptEnabled(statVBlankIrq) {
			p.bus.RequestInterrupt(addr.LCDStat)
		}
	} else if p.line >= totalLines {
		p.line = 0
		p.setMode(memory.ModeOAMScan)
		if p.bus.STATInterruptEnabled(statOAMIrq) {
			p.bus.RequestInterrupt(addr.LCDStat)
		}
	} else if p.mode == memory.ModeHBlank {
		p.setMode(memory.ModeOAMScan)
		if p.bus.STATInterruptEnabled(statOAMIrq) {
			p.bus.RequestInterrupt(addr.LCDStat)
		}
	}

	p.setLY(p.line)
}

func (p *PPU) setMode(mode memory.PPUMode) {
	p.mode = mode
	p.bus.SetPPUMode(mode)
	p.bus.SetSTATMode(mode)
}

func (p *PPU) setLY(line int) {
	p.bus.SetLY(line)
	lyc := p.bus.IO.LYC
	coincidence := byte(line) == lyc
	p.bus.SetCoincidence(coincidence)
	if coincidence && p.bus.STATInterruptEnabled(statLYCIrq) {
		p.bus.RequestInterrupt(addr.LCDStat)
	}
}

func (p *PPU) vramByte(address uint16) byte {
	return p.bus.VRAM()[address-0x8000]
}

func (p *PPU) oamByte(address uint16) byte {
	return p.bus.OAM()[address-addr.OAMStart]
}

func (p *PPU) drawLine() {
	if !p.lcdc(lcdEnable) {
		p.fb.fillLine(p.line, 3)
		return
	}
	p.drawBackground()
	p.drawWindow()
	p.drawSprites()
}

func (p *PPU) tileAddr(tileValue byte, pixelRow int, signed bool) uint16 {
	rowOffset := uint16(pixelRow * 2)
	if signed {
		return uint16(int(addr.TileData2) + int(int8(tileValue))*16 + int(rowOffset))
	}
	return addr.TileData0 + uint16(tileValue)*16 + rowOffset
}

func (p *PPU) drawBackground() {
	io := p.bus.IO
	if !p.lcdc(bgEnable) {
		shade := io.BGP & 0x03
		p.fb.fillLine(p.line, shade)
		for x := range p.bgShade {
			p.bgShade[x] = 0
		}
		return
	}

	signed := !p.lcdc(bgWindowTileData)
	mapBase := addr.TileMap0
	if p.lcdc(bgTileMap) {
		mapBase = addr.TileMap1
	}

	scrolledY := (p.line + int(io.SCY)) & 0xFF
	tileRow := (scrolledY / 8) * 32
	pixelRow := scrolledY % 8

	for x := 0; x < Width; x++ {
		scrolledX := (x + int(io.SCX)) & 0xFF
		tileCol := scrolledX / 8
		pixelCol := scrolledX % 8

		tileValue := p.vramByte(mapBase + uint16(tileRow+tileCol))
		addrLow := p.tileAddr(tileValue, pixelRow, signed)
		low := p.vramByte(addrLow)
		high := p.vramByte(addrLow + 1)

		shade := pixelShade(low, high, uint8(7-pixelCol))
		color := (io.BGP >> (shade * 2)) & 0x03

		p.fb.set(x, p.line, color)
		p.bgShade[x] = color
	}
}

func (p *PPU) drawWindow() {
	io := p.bus.IO
	if !p.lcdc(windowEnable) {
		return
	}
	wx := int(io.WX) - 7
	wy := int(io.WY)
	if wy > p.line {
		return
	}

	signed := !p.lcdc(bgWindowTileData)
	mapBase := addr.TileMap0
	if p.lcdc(windowTileMap) {
		mapBase = addr.TileMap1
	}

	tileRow := (p.windowLine / 8) * 32
	pixelRow := p.windowLine % 8
	rendered := false

	for x := 0; x < Width; x++ {
		screenX := x + wx
		if screenX < 0 || screenX >= Width {
			continue
		}
		rendered = true
		tileCol := x / 8
		pixelCol := x % 8

		tileValue := p.vramByte(mapBase + uint16(tileRow+tileCol))
		addrLow := p.tileAddr(tileValue, pixelRow, signed)
		low := p.vramByte(addrLow)
		high := p.vramByte(addrLow + 1)

		shade := pixelShade(low, high, uint8(7-pixelCol))
		color := (io.BGP >> (shade * 2)) & 0x03

		p.fb.set(screenX, p.line, color)
		p.bgShade[screenX] = color
	}

	if rendered {
		p.windowLine++
	}
}

func (p *PPU) drawSprites() {
	if !p.lcdc(objEnable) {
		return
	}

	height := 8
	if p.lcdc(objSize) {
		height = 16
	}

	var visible []int
	for i := 0; i < 40; i++ {
		base := addr.OAMStart + uint16(i*4)
		y := int(p.oamByte(base)) - 16
		if y > p.line || y+height <= p.line {
			continue
		}
		visible = append(visible, i)
		if len(visible) >= 10 {
			break
		}
	}

	p.sprPrio.clear()
	for _, i := range visible {
		base := addr.OAMStart + uint16(i*4)
		x := int(p.oamByte(base+1)) - 8
		for dx := 0; dx < 8; dx++ {
			p.sprPrio.tryClaim(x+dx, i, x)
		}
	}

	for _, i := range visible {
		base := addr.OAMStart + uint16(i*4)
		y := int(p.oamByte(base)) - 16
		x := int(p.oamByte(base+1)) - 8
		tile := p.oamByte(base + 2)
		flags := p.oamByte(base + 3)

		flipX := bit.IsSet(5, flags)
		flipY := bit.IsSet(6, flags)
		aboveBG := !bit.IsSet(7, flags)
		useOBP1 := bit.IsSet(4, flags)

		row := p.line - y
		if flipY {
			row = height - 1 - row
		}

		tileIndex := tile
		if height == 16 {
			tileIndex &^= 0x01
		}
		rowOffset := row * 2
		if height == 16 && row >= 8 {
			tileIndex++
			rowOffset = (row - 8) * 2
		}

		tileStart := addr.TileData0 + uint16(tileIndex)*16 + uint16(rowOffset)
		low := p.vramByte(tileStart)
		high := p.vramByte(tileStart + 1)

		palette := p.bus.IO.OBP0
		if useOBP1 {
			palette = p.bus.IO.OBP1
		}

		for dx := 0; dx < 8; dx++ {
			screenX := x + dx
			if p.sprPrio.ownerOf(screenX) != i {
				continue
			}
			bitIndex := uint8(7 - dx)
			if flipX {
				bitIndex = uint8(dx)
			}
			shade := pixelShade(low, high, bitIndex)
			if shade == 0 {
				continue
			}
			if !aboveBG && p.bgShade[screenX] != 0 {
				continue
			}
			color := (palette >> (shade * 2)) & 0x03
			p.fb.set(screenX, p.line, color)
		}
	}
}

func pixelShade(low, high byte, bitIndex uint8) uint8 {
	var shade uint8
	if bit.IsSet(bitIndex, low) {
		shade |= 1
	}
	if bit.IsSet(bitIndex, high) {
		shade |= 2
	}
	return shade
}
