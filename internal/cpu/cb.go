package cpu

// buildCBTable generates all 256 CB-prefixed opcodes: the rotate/shift
// family (0x00-0x3F), BIT (0x40-0x7F), RES (0x80-0xBF) and SET (0xC0-0xFF),
// each applied across the eight r8 operands. This spec's timing table
// gives (HL) variants of every CB family 16 cycles, not the 12 a real DMG
// spends on BIT b,(HL).
func buildCBTable() {
	shiftOps := [8]func(c *CPU, v uint8) uint8{
		(*CPU).rlc,
		(*CPU).rrc,
		(*CPU).rl,
		(*CPU).rr,
		(*CPU).sla,
		(*CPU).sra,
		(*CPU).swap,
		(*CPU).srl,
	}

	for op := 0; op < 8; op++ {
		for r := 0; r < 8; r++ {
			opcode := uint16(op*8 + r)
			fn, rr := shiftOps[op], r
			cbTable[opcode] = func(c *CPU) int {
				r8Table[rr].set(c, fn(c, r8Table[rr].get(c)))
				if rr == indirectHL {
					return 16
				}
				return 8
			}
		}
	}

	for b := 0; b < 8; b++ {
		for r := 0; r < 8; r++ {
			opcode := uint16(0x40 + b*8 + r)
			bit, rr := uint8(b), r
			cbTable[opcode] = func(c *CPU) int {
				c.bit(bit, r8Table[rr].get(c))
				if rr == indirectHL {
					return 16
				}
				return 8
			}
		}
	}

	for b := 0; b < 8; b++ {
		for r := 0; r < 8; r++ {
			opcode := uint16(0x80 + b*8 + r)
			bit, rr := uint8(b), r
			cbTable[opcode] = func(c *CPU) int {
				r8Table[rr].set(c, res(bit, r8Table[rr].get(c)))
				if rr == indirectHL {
					return 16
				}
				return 8
			}
		}
	}

	for b := 0; b < 8; b++ {
		for r := 0; r < 8; r++ {
			opcode := uint16(0xC0 + b*8 + r)
			bit, rr := uint8(b), r
			cbTable[opcode] = func(c *CPU) int {
				r8Table[rr].set(c, set(bit, r8Table[rr].get(c)))
				if rr == indirectHL {
					return 16
				}
				return 8
			}
		}
	}
}
