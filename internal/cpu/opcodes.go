package cpu

// opcodeFunc executes one decoded instruction and returns the cycle count
// it actually took (conditional branches take fewer cycles when untaken).
type opcodeFunc func(c *CPU) int

var baseTable [256]opcodeFunc
var cbTable [256]opcodeFunc

// r8Entry is one operand of the SM83's 3-bit register encoding, in the
// real hardware order B,C,D,E,H,L,(HL),A. Index 6, (HL), costs an extra
// memory access wherever it appears, which callers account for by
// special-casing that index's cycle count.
type r8Entry struct {
	get func(c *CPU) uint8
	set func(c *CPU, v uint8)
}

var r8Table = [8]r8Entry{
	{func(c *CPU) uint8 { return c.Regs.B }, func(c *CPU, v uint8) { c.Regs.B = v }},
	{func(c *CPU) uint8 { return c.Regs.C }, func(c *CPU, v uint8) { c.Regs.C = v }},
	{func(c *CPU) uint8 { return c.Regs.D }, func(c *CPU, v uint8) { c.Regs.D = v }},
	{func(c *CPU) uint8 { return c.Regs.E }, func(c *CPU, v uint8) { c.Regs.E = v }},
	{func(c *CPU) uint8 { return c.Regs.H }, func(c *CPU, v uint8) { c.Regs.H = v }},
	{func(c *CPU) uint8 { return c.Regs.L }, func(c *CPU, v uint8) { c.Regs.L = v }},
	{func(c *CPU) uint8 { return c.Bus.ReadByte(c.Regs.HL()) }, func(c *CPU, v uint8) { c.Bus.WriteByte(c.Regs.HL(), v) }},
	{func(c *CPU) uint8 { return c.Regs.A }, func(c *CPU, v uint8) { c.Regs.A = v }},
}

const indirectHL = 6

// rpEntry is a 16-bit register-pair operand.
type rpEntry struct {
	get func(c *CPU) uint16
	set func(c *CPU, v uint16)
}

// rpTable is the {BC,DE,HL,SP} group used by LD rp,nn / INC rp / DEC rp / ADD HL,rp.
var rpTable = [4]rpEntry{
	{func(c *CPU) uint16 { return c.Regs.BC() }, func(c *CPU, v uint16) { c.Regs.SetBC(v) }},
	{func(c *CPU) uint16 { return c.Regs.DE() }, func(c *CPU, v uint16) { c.Regs.SetDE(v) }},
	{func(c *CPU) uint16 { return c.Regs.HL() }, func(c *CPU, v uint16) { c.Regs.SetHL(v) }},
	{func(c *CPU) uint16 { return c.Regs.SP }, func(c *CPU, v uint16) { c.Regs.SP = v }},
}

// rp2Table is the {BC,DE,HL,AF} group used by PUSH/POP.
var rp2Table = [4]rpEntry{
	rpTable[0],
	rpTable[1],
	rpTable[2],
	{func(c *CPU) uint16 { return c.Regs.AF() }, func(c *CPU, v uint16) { c.Regs.SetAF(v) }},
}

// ccTable is the {NZ,Z,NC,C} condition group.
var ccTable = [4]func(c *CPU) bool{
	func(c *CPU) bool { return !c.Regs.Zero() },
	func(c *CPU) bool { return c.Regs.Zero() },
	func(c *CPU) bool { return !c.Regs.Carry() },
	func(c *CPU) bool { return c.Regs.Carry() },
}

func (c *CPU) applyALU(op uint8, value uint8) {
	switch op {
	case 0:
		c.add8(value, 0)
	case 1:
		c.add8(value, carryBit(c))
	case 2:
		c.Regs.A = c.sub8(value, 0)
	case 3:
		c.Regs.A = c.sub8(value, carryBit(c))
	case 4:
		c.and8(value)
	case 5:
		c.or8(value)
	case 6:
		c.xor8(value)
	case 7:
		c.cp8(value)
	}
}

func carryBit(c *CPU) uint8 {
	if c.Regs.Carry() {
		return 1
	}
	return 0
}

func init() {
	buildLoadRegisterTable()
	buildALURegisterTable()
	buildIncDecLoadImmediateTable()
	buildRegisterPairTable()
	buildPushPopTable()
	buildRSTTable()
	buildConditionalControlFlowTable()
	buildALUImmediateTable()
	buildIrregularOpcodes()
	buildCBTable()
}

// buildLoadRegisterTable generates the 0x40-0x7F LD r,r' block; 0x76 is
// reassigned to HALT by buildIrregularOpcodes after this runs.
func buildLoadRegisterTable() {
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			opcode := uint16(0x40 + dst*8 + src)
			d, s := dst, src
			baseTable[opcode] = func(c *CPU) int {
				r8Table[d].set(c, r8Table[s].get(c))
				if d == indirectHL || s == indirectHL {
					return 8
				}
				return 4
			}
		}
	}
}

// buildALURegisterTable generates the 0x80-0xBF ALU A,r block.
func buildALURegisterTable() {
	for op := 0; op < 8; op++ {
		for r := 0; r < 8; r++ {
			opcode := uint16(0x80 + op*8 + r)
			o, rr := uint8(op), r
			baseTable[opcode] = func(c *CPU) int {
				c.applyALU(o, r8Table[rr].get(c))
				if rr == indirectHL {
					return 8
				}
				return 4
			}
		}
	}
}

// buildIncDecLoadImmediateTable generates INC r / DEC r / LD r,n across all
// eight r8 operands (opcode = idx*8 + {4,5,6}).
func buildIncDecLoadImmediateTable() {
	for idx := 0; idx < 8; idx++ {
		i := idx
		baseTable[uint16(i*8+4)] = func(c *CPU) int {
			r8Table[i].set(c, c.inc8(r8Table[i].get(c)))
			if i == indirectHL {
				return 12
			}
			return 4
		}
		baseTable[uint16(i*8+5)] = func(c *CPU) int {
			r8Table[i].set(c, c.dec8(r8Table[i].get(c)))
			if i == indirectHL {
				return 12
			}
			return 4
		}
		baseTable[uint16(i*8+6)] = func(c *CPU) int {
			r8Table[i].set(c, c.fetch8())
			if i == indirectHL {
				return 12
			}
			return 8
		}
	}
}

// buildRegisterPairTable generates LD rp,nn / INC rp / DEC rp / ADD HL,rp.
func buildRegisterPairTable() {
	for i := 0; i < 4; i++ {
		ii := i
		baseTable[uint16(i*0x10+0x01)] = func(c *CPU) int {
			rpTable[ii].set(c, c.fetch16())
			return 12
		}
		baseTable[uint16(i*0x10+0x03)] = func(c *CPU) int {
			rpTable[ii].set(c, rpTable[ii].get(c)+1)
			return 8
		}
		baseTable[uint16(i*0x10+0x0B)] = func(c *CPU) int {
			rpTable[ii].set(c, rpTable[ii].get(c)-1)
			return 8
		}
		baseTable[uint16(i*0x10+0x09)] = func(c *CPU) int {
			c.addHL(rpTable[ii].get(c))
			return 8
		}
	}
}

func buildPushPopTable() {
	for i := 0; i < 4; i++ {
		ii := i
		baseTable[uint16(i*0x10+0xC5)] = func(c *CPU) int {
			c.push16(rp2Table[ii].get(c))
			return 16
		}
		baseTable[uint16(i*0x10+0xC1)] = func(c *CPU) int {
			rp2Table[ii].set(c, c.pop16())
			return 12
		}
	}
}

func buildRSTTable() {
	for i := 0; i < 8; i++ {
		vec := uint16(i * 8)
		baseTable[uint16(0xC7+i*8)] = func(c *CPU) int {
			c.push16(c.Regs.PC)
			c.Regs.PC = vec
			return 16
		}
	}
}

func buildConditionalControlFlowTable() {
	for i := 0; i < 4; i++ {
		ii := i
		baseTable[uint16(0xC2+i*8)] = func(c *CPU) int {
			target := c.fetch16()
			if ccTable[ii](c) {
				c.Regs.PC = target
				return 16
			}
			return 12
		}
		baseTable[uint16(0x20+i*8)] = func(c *CPU) int {
			offset := int8(c.fetch8())
			if ccTable[ii](c) {
				c.Regs.PC = uint16(int32(c.Regs.PC) + int32(offset))
				return 12
			}
			return 8
		}
		baseTable[uint16(0xC4+i*8)] = func(c *CPU) int {
			target := c.fetch16()
			if ccTable[ii](c) {
				c.push16(c.Regs.PC)
				c.Regs.PC = target
				return 24
			}
			return 12
		}
		baseTable[uint16(0xC0+i*8)] = func(c *CPU) int {
			if ccTable[ii](c) {
				c.Regs.PC = c.pop16()
				return 20
			}
			return 8
		}
	}
}

func buildALUImmediateTable() {
	for i := 0; i < 8; i++ {
		op := uint8(i)
		baseTable[uint16(0xC6+i*8)] = func(c *CPU) int {
			c.applyALU(op, c.fetch8())
			return 8
		}
	}
}

// buildIrregularOpcodes wires up the ~50 instructions that don't follow a
// uniform encoding: NOP/STOP/HALT, the accumulator rotates, DAA/CPL/SCF/CCF,
// the indirect-A load family, unconditional jumps/calls/returns, the
// stack-pointer instructions and DI/EI. The eleven undefined slots are left
// nil, which Tick reports as a FatalError.
func buildIrregularOpcodes() {
	baseTable[0x00] = func(c *CPU) int { return 4 }

	baseTable[0x10] = func(c *CPU) int {
		c.fetch8() // STOP's second byte is conventionally 0x00 and discarded
		c.stopped = true
		return 4
	}

	baseTable[0x76] = func(c *CPU) int {
		c.halted = true
		return 4
	}

	baseTable[0x02] = func(c *CPU) int { c.Bus.WriteByte(c.Regs.BC(), c.Regs.A); return 8 }
	baseTable[0x12] = func(c *CPU) int { c.Bus.WriteByte(c.Regs.DE(), c.Regs.A); return 8 }
	baseTable[0x22] = func(c *CPU) int {
		hl := c.Regs.HL()
		c.Bus.WriteByte(hl, c.Regs.A)
		c.Regs.SetHL(hl + 1)
		return 8
	}
	baseTable[0x32] = func(c *CPU) int {
		hl := c.Regs.HL()
		c.Bus.WriteByte(hl, c.Regs.A)
		c.Regs.SetHL(hl - 1)
		return 8
	}

	baseTable[0x0A] = func(c *CPU) int { c.Regs.A = c.Bus.ReadByte(c.Regs.BC()); return 8 }
	baseTable[0x1A] = func(c *CPU) int { c.Regs.A = c.Bus.ReadByte(c.Regs.DE()); return 8 }
	baseTable[0x2A] = func(c *CPU) int {
		hl := c.Regs.HL()
		c.Regs.A = c.Bus.ReadByte(hl)
		c.Regs.SetHL(hl + 1)
		return 8
	}
	baseTable[0x3A] = func(c *CPU) int {
		hl := c.Regs.HL()
		c.Regs.A = c.Bus.ReadByte(hl)
		c.Regs.SetHL(hl - 1)
		return 8
	}

	baseTable[0x07] = func(c *CPU) int { c.Regs.A = c.rlc(c.Regs.A); c.Regs.F &^= flagZ; return 4 }
	baseTable[0x0F] = func(c *CPU) int { c.Regs.A = c.rrc(c.Regs.A); c.Regs.F &^= flagZ; return 4 }
	baseTable[0x17] = func(c *CPU) int { c.Regs.A = c.rl(c.Regs.A); c.Regs.F &^= flagZ; return 4 }
	baseTable[0x1F] = func(c *CPU) int { c.Regs.A = c.rr(c.Regs.A); c.Regs.F &^= flagZ; return 4 }

	baseTable[0x27] = func(c *CPU) int { c.daa(); return 4 }
	baseTable[0x2F] = func(c *CPU) int {
		c.Regs.A = ^c.Regs.A
		c.Regs.setFlag(flagN, true)
		c.Regs.setFlag(flagH, true)
		return 4
	}
	baseTable[0x37] = func(c *CPU) int {
		c.Regs.setFlag(flagC, true)
		c.Regs.setFlag(flagN, false)
		c.Regs.setFlag(flagH, false)
		return 4
	}
	baseTable[0x3F] = func(c *CPU) int {
		c.Regs.setFlag(flagC, !c.Regs.Carry())
		c.Regs.setFlag(flagN, false)
		c.Regs.setFlag(flagH, false)
		return 4
	}

	baseTable[0x18] = func(c *CPU) int {
		offset := int8(c.fetch8())
		c.Regs.PC = uint16(int32(c.Regs.PC) + int32(offset))
		return 12
	}

	baseTable[0x08] = func(c *CPU) int {
		addr16 := c.fetch16()
		c.Bus.WriteWord(addr16, c.Regs.SP)
		return 20
	}

	baseTable[0xC3] = func(c *CPU) int { c.Regs.PC = c.fetch16(); return 16 }
	baseTable[0xE9] = func(c *CPU) int { c.Regs.PC = c.Regs.HL(); return 4 }
	baseTable[0xCD] = func(c *CPU) int {
		target := c.fetch16()
		c.push16(c.Regs.PC)
		c.Regs.PC = target
		return 24
	}
	baseTable[0xC9] = func(c *CPU) int { c.Regs.PC = c.pop16(); return 16 }
	baseTable[0xD9] = func(c *CPU) int {
		c.Regs.PC = c.pop16()
		c.ime = true
		c.imeCountdown = -1
		return 16
	}

	baseTable[0xE0] = func(c *CPU) int {
		offset := c.fetch8()
		c.Bus.WriteByte(0xFF00+uint16(offset), c.Regs.A)
		return 12
	}
	baseTable[0xF0] = func(c *CPU) int {
		offset := c.fetch8()
		c.Regs.A = c.Bus.ReadByte(0xFF00 + uint16(offset))
		return 12
	}
	baseTable[0xE2] = func(c *CPU) int { c.Bus.WriteByte(0xFF00+uint16(c.Regs.C), c.Regs.A); return 8 }
	baseTable[0xF2] = func(c *CPU) int { c.Regs.A = c.Bus.ReadByte(0xFF00 + uint16(c.Regs.C)); return 8 }

	baseTable[0xE8] = func(c *CPU) int {
		operand := c.fetch8()
		c.Regs.SP = c.addSPSigned(operand)
		return 16
	}
	baseTable[0xF8] = func(c *CPU) int {
		operand := c.fetch8()
		c.Regs.SetHL(c.addSPSigned(operand))
		return 12
	}
	baseTable[0xF9] = func(c *CPU) int { c.Regs.SP = c.Regs.HL(); return 8 }

	baseTable[0xEA] = func(c *CPU) int { c.Bus.WriteByte(c.fetch16(), c.Regs.A); return 16 }
	baseTable[0xFA] = func(c *CPU) int { c.Regs.A = c.Bus.ReadByte(c.fetch16()); return 16 }

	baseTable[0xF3] = func(c *CPU) int { c.ime = false; c.imeCountdown = -1; return 4 }
	baseTable[0xFB] = func(c *CPU) int { c.imeCountdown = 1; return 4 }

	// 0xD3,0xDB,0xDD,0xE3,0xE4,0xEB,0xEC,0xED,0xF4,0xFC,0xFD are left nil:
	// Tick reports them as a FatalError rather than dispatching.
}
