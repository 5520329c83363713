package cpu

// Shared decoder plumbing: the operand-selector abstraction spec.md §9
// suggests factoring DD/FD's "HL→IX/IY" substitution through, condition
// tests, and register-pair lookups. Grounded on the dispatch idiom of
// other_examples' retroenv-retrogolib step.go (prefix-driven sub-decoders)
// and thegtproject-toyz80's flat opcode switch; the teacher's pkg/cpu/exec.go
// has no decoder of its own; it takes one already-decoded inst.OpCode per
// call, so the decoding structure here is new construction in the ALU
// kernel's branchless, table-driven style rather than a direct port.

// idxMode selects which 16-bit index register (if any) a decoded instruction
// substitutes for HL.
type idxMode uint8

const (
	idxNone idxMode = iota
	idxIX
	idxIY
)

// pairHL returns HL, or IX/IY when an index prefix is active.
func (c *CPU) pairHL(mode idxMode) uint16 {
	switch mode {
	case idxIX:
		return c.IX
	case idxIY:
		return c.IY
	default:
		return c.HL()
	}
}

func (c *CPU) setPairHL(mode idxMode, v uint16) {
	switch mode {
	case idxIX:
		c.IX = v
	case idxIY:
		c.IY = v
	default:
		c.SetHL(v)
	}
}

// hlAddr resolves the effective address of the "(HL)" operand slot: (HL)
// itself with no prefix, or (IX+d)/(IY+d) with one, fetching the signed
// displacement byte that immediately follows the opcode.
func (c *CPU) hlAddr(mode idxMode) uint16 {
	switch mode {
	case idxIX:
		d := int8(c.fetch8())
		return uint16(int32(c.IX) + int32(d))
	case idxIY:
		d := int8(c.fetch8())
		return uint16(int32(c.IY) + int32(d))
	default:
		return c.HL()
	}
}

// reg8 reads the 8-bit operand selected by the standard 3-bit register field
// (0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A), substituting IXH/IXL/IYH/IYL for H/L
// and (IX+d)/(IY+d) for (HL) when mode is active.
func (c *CPU) reg8(idx uint8, mode idxMode) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		switch mode {
		case idxIX:
			return c.IXH()
		case idxIY:
			return c.IYH()
		default:
			return c.H
		}
	case 5:
		switch mode {
		case idxIX:
			return c.IXL()
		case idxIY:
			return c.IYL()
		default:
			return c.L
		}
	case 6:
		return c.mem.ReadByte(c.hlAddr(mode))
	default: // 7
		return c.A
	}
}

func (c *CPU) setReg8(idx uint8, mode idxMode, v uint8) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		switch mode {
		case idxIX:
			c.SetIXH(v)
		case idxIY:
			c.SetIYH(v)
		default:
			c.H = v
		}
	case 5:
		switch mode {
		case idxIX:
			c.SetIXL(v)
		case idxIY:
			c.SetIYL(v)
		default:
			c.L = v
		}
	case 6:
		c.mem.WriteByte(c.hlAddr(mode), v)
	default: // 7
		c.A = v
	}
}

// regPair reads the 16-bit operand selected by the 2-bit "ss" field used by
// most 16-bit loads/arithmetic (0=BC 1=DE 2=HL/IX/IY 3=SP).
func (c *CPU) regPair(rp uint8, mode idxMode) uint16 {
	switch rp {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.pairHL(mode)
	default:
		return c.SP
	}
}

func (c *CPU) setRegPair(rp uint8, mode idxMode, v uint16) {
	switch rp {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setPairHL(mode, v)
	default:
		c.SP = v
	}
}

// regPair2 reads the 16-bit operand selected by the "qq" field PUSH/POP use
// (0=BC 1=DE 2=HL/IX/IY 3=AF).
func (c *CPU) regPair2(rp uint8, mode idxMode) uint16 {
	if rp == 3 {
		return c.AF()
	}
	return c.regPair(rp, mode)
}

func (c *CPU) setRegPair2(rp uint8, mode idxMode, v uint16) {
	if rp == 3 {
		c.SetAF(v)
		return
	}
	c.setRegPair(rp, mode, v)
}

// condition tests the 3-bit "cc" field (NZ Z NC C PO PE P M).
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return c.F&FlagZ == 0
	case 1:
		return c.F&FlagZ != 0
	case 2:
		return c.F&FlagC == 0
	case 3:
		return c.F&FlagC != 0
	case 4:
		return c.F&FlagP == 0
	case 5:
		return c.F&FlagP != 0
	case 6:
		return c.F&FlagS == 0
	default: // 7
		return c.F&FlagS != 0
	}
}

// jumpRelative applies a signed displacement to PC, modulo 65536 (spec.md
// flags a source quirk using mod 0xFFFF instead; this module always uses the
// correct mod 0x10000 behavior).
func (c *CPU) jumpRelative(d int8) {
	c.PC = uint16(int32(c.PC) + int32(d))
}

// execute is the top-level decode entry point, called once per Step with the
// already-fetched first opcode byte. It absorbs any DD/FD prefix chain (the
// last one wins, per real hardware), then dispatches to the unprefixed, CB,
// ED, or indexed-CB tables.
func (c *CPU) execute(opcode uint8) bool {
	mode := idxNone
	for opcode == 0xDD || opcode == 0xFD {
		if opcode == 0xDD {
			mode = idxIX
		} else {
			mode = idxIY
		}
		c.TStates += 4
		opcode = c.fetch8()
		c.bumpR()
	}
	switch opcode {
	case 0xCB:
		if mode == idxNone {
			sub := c.fetch8()
			c.bumpR()
			return c.execCB(sub)
		}
		d := int8(c.fetch8())
		sub := c.fetch8()
		c.bumpR()
		return c.execIndexedCB(mode, d, sub)
	case 0xED:
		sub := c.fetch8()
		c.bumpR()
		return c.execED(sub)
	default:
		return c.execUnprefixed(opcode, mode)
	}
}
