package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBufferSetWritesPalettedColor(t *testing.T) {
	fb := NewFrameBuffer(Grayscale)
	fb.set(5, 2, 3)
	assert.Equal(t, uint32(Grayscale[3]), fb.Pixels()[2*Width+5])
}

func TestFrameBufferFillLineCoversWholeRow(t *testing.T) {
	fb := NewFrameBuffer(DefaultPalette)
	fb.fillLine(1, 2)
	for x := 0; x < Width; x++ {
		assert.Equal(t, uint32(DefaultPalette[2]), fb.Pixels()[Width+x])
	}
	assert.Equal(t, uint32(0), fb.Pixels()[0], "other rows are untouched")
}

func TestFrameBufferSetPaletteAffectsFutureWrites(t *testing.T) {
	fb := NewFrameBuffer(DefaultPalette)
	fb.SetPalette(Grayscale)
	fb.set(0, 0, 0)
	assert.Equal(t, uint32(Grayscale[0]), fb.Pixels()[0])
}

func TestPixelShadeCombinesLowAndHighPlanes(t *testing.T) {
	// bit 7 set in both planes -> shade 3 at bitIndex 7
	assert.Equal(t, uint8(3), pixelShade(0x80, 0x80, 7))
	assert.Equal(t, uint8(0), pixelShade(0x00, 0x00, 7))
	assert.Equal(t, uint8(1), pixelShade(0x80, 0x00, 7))
	assert.Equal(t, uint8(2), pixelShade(0x00, 0x80, 7))
}
