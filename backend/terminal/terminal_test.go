package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/gogbc/internal/video"
)

func TestPixelToShadeMatchesPaletteEntry(t *testing.T) {
	for i, c := range video.DefaultPalette {
		assert.Equal(t, uint8(i), pixelToShade(uint32(c), video.DefaultPalette))
	}
}

func TestPixelToShadeUnknownColorDefaultsToDarkest(t *testing.T) {
	assert.Equal(t, uint8(3), pixelToShade(0xDEADBEEF, video.DefaultPalette))
}
