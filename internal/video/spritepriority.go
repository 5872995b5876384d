package video

// spritePriority resolves pixel ownership among overlapping sprites on a
// scanline without sorting: lower X coordinate wins, ties broken by lower
// OAM index (https://gbdev.io/pandocs/OAM.html#drawing-priority).
type spritePriority struct {
	owner  [Width]int
	ownerX [Width]int
}

func (s *spritePriority) clear() {
	for i := range s.owner {
		s.owner[i] = -1
		s.ownerX[i] = 0xFF
	}
}

func (s *spritePriority) tryClaim(pixelX, spriteIndex, spriteX int) bool {
	if pixelX < 0 || pixelX >= Width {
		return false
	}
	current := s.owner[pixelX]
	if current == -1 {
		s.owner[pixelX] = spriteIndex
		s.ownerX[pixelX] = spriteX
		return true
	}
	currentX := s.ownerX[pixelX]
	if spriteX < currentX || (spriteX == currentX && spriteIndex < current) {
		s.owner[pixelX] = spriteIndex
		s.ownerX[pixelX] = spriteX
		return true
	}
	return false
}

func (s *spritePriority) ownerOf(pixelX int) int {
	if pixelX < 0 || pixelX >= Width {
		return -1
	}
	return s.owner[pixelX]
}
