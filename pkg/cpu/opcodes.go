package cpu

// Unprefixed instruction table. Decoded via the standard x/y/z/p/q bitfield
// breakdown of the opcode byte (x=op>>6, y=(op>>3)&7, z=op&7, p=y>>1, q=y&1)
// rather than a flat 256-entry switch: this is the same bitfield-driven
// selection spec.md §4.4 itself uses to describe the CB table ("top two bits
// select operation class, bits 5..3 select..."), generalized to the whole
// unprefixed table, and it is what collapses the DD/FD "HL→IX/IY" duplication
// spec.md §9 calls out into the reg8/regPair helpers in decode.go instead of
// 256 duplicated cases.

// applyALU runs accumulator op `y` (0=ADD 1=ADC 2=SUB 3=SBC 4=AND 5=XOR 6=OR
// 7=CP) against operand v.
func (c *CPU) applyALU(y uint8, v uint8) {
	switch y {
	case 0:
		c.ADD8(v)
	case 1:
		c.ADC8(v)
	case 2:
		c.SUB8(v)
	case 3:
		c.SBC8(v)
	case 4:
		c.AND(v)
	case 5:
		c.XOR(v)
	case 6:
		c.OR(v)
	case 7:
		c.CP(v)
	}
}

func (c *CPU) execUnprefixed(op uint8, mode idxMode) bool {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		switch z {
		case 0:
			return c.opX0Z0(y)
		case 1:
			if q == 0 {
				c.setRegPair(p, mode, c.fetch16())
				c.TStates += 10
			} else {
				c.setPairHL(mode, c.ADD16(c.pairHL(mode), c.regPair(p, mode)))
				c.TStates += 11
			}
			return true
		case 2:
			return c.opX0Z2(p, q, mode)
		case 3:
			if q == 0 {
				c.setRegPair(p, mode, c.regPair(p, mode)+1)
			} else {
				c.setRegPair(p, mode, c.regPair(p, mode)-1)
			}
			c.TStates += 6
			return true
		case 4:
			c.incOperand(y, mode)
			return true
		case 5:
			c.decOperand(y, mode)
			return true
		case 6:
			if y == 6 {
				// LD (HL),n / LD (IX+d),n: the displacement precedes n.
				addr := c.hlAddr(mode)
				c.mem.WriteByte(addr, c.fetch8())
				c.TStates += 10
				return true
			}
			n := c.fetch8()
			c.setReg8(y, mode, n)
			c.TStates += 7
			return true
		default: // z==7
			return c.opX0Z7(y)
		}
	case 1:
		if z == 6 && y == 6 {
			c.Halted = true
			c.PC--
			c.TStates += 4
			return true
		}
		c.setReg8(y, mode, c.reg8(z, mode))
		c.TStates += bsel16(z == 6 || y == 6, 7, 4)
		return true
	case 2:
		c.applyALU(y, c.reg8(z, mode))
		c.TStates += bsel16(z == 6, 7, 4)
		return true
	default: // x==3
		return c.opX3(y, z, p, q, mode)
	}
}

func bsel16(cond bool, a, b uint64) uint64 {
	if cond {
		return a
	}
	return b
}

func (c *CPU) incOperand(y uint8, mode idxMode) {
	if y == 6 {
		addr := c.hlAddr(mode)
		v := c.mem.ReadByte(addr)
		c.INC8(&v)
		c.mem.WriteByte(addr, v)
		c.TStates += 11
		return
	}
	switch y {
	case 4:
		switch mode {
		case idxIX:
			v := c.IXH()
			c.INC8(&v)
			c.SetIXH(v)
		case idxIY:
			v := c.IYH()
			c.INC8(&v)
			c.SetIYH(v)
		default:
			c.INC8(&c.H)
		}
	case 5:
		switch mode {
		case idxIX:
			v := c.IXL()
			c.INC8(&v)
			c.SetIXL(v)
		case idxIY:
			v := c.IYL()
			c.INC8(&v)
			c.SetIYL(v)
		default:
			c.INC8(&c.L)
		}
	default:
		c.INC8(c.regPtr8(y))
	}
	c.TStates += 4
}

func (c *CPU) decOperand(y uint8, mode idxMode) {
	if y == 6 {
		addr := c.hlAddr(mode)
		v := c.mem.ReadByte(addr)
		c.DEC8(&v)
		c.mem.WriteByte(addr, v)
		c.TStates += 11
		return
	}
	switch y {
	case 4:
		switch mode {
		case idxIX:
			v := c.IXH()
			c.DEC8(&v)
			c.SetIXH(v)
		case idxIY:
			v := c.IYH()
			c.DEC8(&v)
			c.SetIYH(v)
		default:
			c.DEC8(&c.H)
		}
	case 5:
		switch mode {
		case idxIX:
			v := c.IXL()
			c.DEC8(&v)
			c.SetIXL(v)
		case idxIY:
			v := c.IYL()
			c.DEC8(&v)
			c.SetIYL(v)
		default:
			c.DEC8(&c.L)
		}
	default:
		c.DEC8(c.regPtr8(y))
	}
	c.TStates += 4
}

// regPtr8 returns a pointer to one of B,C,D,E,A for the plain (non-indexed,
// non-memory) register indices used by incOperand/decOperand.
func (c *CPU) regPtr8(idx uint8) *uint8 {
	switch idx {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	default:
		return &c.A
	}
}

// opX0Z0 covers NOP, EX AF,AF', DJNZ and the JR family (x=0,z=0).
func (c *CPU) opX0Z0(y uint8) bool {
	switch y {
	case 0:
		c.TStates += 4
	case 1:
		c.exAF()
		c.TStates += 4
	case 2:
		c.B--
		d := int8(c.fetch8())
		if c.B != 0 {
			c.jumpRelative(d)
			c.TStates += 13
		} else {
			c.TStates += 8
		}
	case 3:
		d := int8(c.fetch8())
		c.jumpRelative(d)
		c.TStates += 12
	default: // 4..7 -> JR cc[y-4],d
		d := int8(c.fetch8())
		if c.condition(y - 4) {
			c.jumpRelative(d)
			c.TStates += 12
		} else {
			c.TStates += 7
		}
	}
	return true
}

// opX0Z2 covers the indirect 8/16-bit A/HL loads (x=0,z=2).
func (c *CPU) opX0Z2(p, q uint8, mode idxMode) bool {
	if q == 0 {
		switch p {
		case 0:
			c.mem.WriteByte(c.BC(), c.A)
		case 1:
			c.mem.WriteByte(c.DE(), c.A)
		case 2:
			c.mem.WriteWord(c.fetch16(), c.pairHL(mode))
		default:
			c.mem.WriteByte(c.fetch16(), c.A)
		}
	} else {
		switch p {
		case 0:
			c.A = c.mem.ReadByte(c.BC())
		case 1:
			c.A = c.mem.ReadByte(c.DE())
		case 2:
			c.setPairHL(mode, c.mem.ReadWord(c.fetch16()))
		default:
			c.A = c.mem.ReadByte(c.fetch16())
		}
	}
	switch p {
	case 2:
		c.TStates += 16
	case 3:
		c.TStates += 13
	default:
		c.TStates += 7
	}
	return true
}

// opX0Z7 covers the accumulator/flag-only single-byte ops (x=0,z=7).
func (c *CPU) opX0Z7(y uint8) bool {
	switch y {
	case 0:
		c.RLCA()
	case 1:
		c.RRCA()
	case 2:
		c.RLA()
	case 3:
		c.RRA()
	case 4:
		c.DAA()
	case 5:
		c.A = ^c.A
		c.F = (c.F & (FlagS | FlagZ | FlagP | FlagC)) | FlagH | FlagN | (c.A & (Flag3 | Flag5))
	case 6:
		c.F = (c.F & (FlagS | FlagZ | FlagP)) | FlagC | (c.A & (Flag3 | Flag5))
	default: // 7: CCF
		oldCarry := c.F&FlagC != 0
		c.F = (c.F & (FlagS | FlagZ | FlagP)) |
			bsel(oldCarry, FlagH, 0) | bsel(!oldCarry, FlagC, 0) |
			(c.A & (Flag3 | Flag5))
	}
	c.TStates += 4
	return true
}

// opX3 covers the x==3 quadrant: RET/JP/CALL families, PUSH/POP, RST, I/O,
// EX (SP),HL, EX DE,HL, DI/EI and the immediate-operand ALU forms.
func (c *CPU) opX3(y, z, p, q uint8, mode idxMode) bool {
	switch z {
	case 0:
		if c.condition(y) {
			c.PC = c.pop()
			c.TStates += 11
		} else {
			c.TStates += 5
		}
		return true
	case 1:
		if q == 0 {
			c.setRegPair2(p, mode, c.pop())
			c.TStates += 10
			return true
		}
		switch p {
		case 0:
			c.PC = c.pop()
			c.TStates += 10
		case 1:
			c.exx()
			c.TStates += 4
		case 2:
			c.PC = c.pairHL(mode)
			c.TStates += 4
		default:
			c.SP = c.pairHL(mode)
			c.TStates += 6
		}
		return true
	case 2:
		nn := c.fetch16()
		if c.condition(y) {
			c.PC = nn
		}
		c.TStates += 10
		return true
	case 3:
		return c.opX3Z3(y, mode)
	case 4:
		nn := c.fetch16()
		if c.condition(y) {
			c.push(c.PC)
			c.PC = nn
			c.TStates += 17
		} else {
			c.TStates += 10
		}
		return true
	case 5:
		if q == 0 {
			c.push(c.regPair2(p, mode))
			c.TStates += 11
			return true
		}
		switch p {
		case 0:
			nn := c.fetch16()
			c.push(c.PC)
			c.PC = nn
			c.TStates += 17
		default:
			// p==1 (DD), p==2 (ED), p==3 (FD): unreachable here, the
			// top-level prefix loop in decode.go never forwards these
			// bytes to execUnprefixed.
			c.TStates += 4
		}
		return true
	case 6:
		n := c.fetch8()
		c.applyALU(y, n)
		c.TStates += 7
		return true
	default: // 7: RST
		c.push(c.PC)
		c.PC = uint16(y) * 8
		c.TStates += 11
		return true
	}
}

func (c *CPU) opX3Z3(y uint8, mode idxMode) bool {
	switch y {
	case 0:
		c.PC = c.fetch16()
		c.TStates += 10
	case 1:
		// 0xCB: absorbed by the top-level prefix dispatch; unreachable.
	case 2:
		n := c.fetch8()
		c.portOut(uint16(c.A)<<8|uint16(n), c.A)
		c.TStates += 11
	case 3:
		n := c.fetch8()
		c.A = c.portIn(uint16(c.A)<<8 | uint16(n))
		c.TStates += 11
	case 4:
		addr := c.SP
		old := c.mem.ReadWord(addr)
		c.mem.WriteWord(addr, c.pairHL(mode))
		c.setPairHL(mode, old)
		c.TStates += 19
	case 5:
		de, hl := c.DE(), c.HL()
		c.SetDE(hl)
		c.SetHL(de)
		c.TStates += 4
	case 6:
		c.IFF1, c.IFF2 = false, false
		c.TStates += 4
	default: // 7: EI
		c.IFF1, c.IFF2 = true, true
		c.TStates += 4
	}
	return true
}
