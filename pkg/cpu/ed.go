package cpu

// ED-prefixed ("extended") table: IN/OUT via (C), 16-bit SBC/ADC, the
// (nn)/rp load pair covering all four register pairs including SP, NEG
// (mirrored across all eight y values), RETN/RETI, the three interrupt
// modes (each reachable from more than one y), LD I,A / LD R,A / LD A,I /
// LD A,R, RLD/RRD, and the eight block/IO instructions from block.go.
// Anything else in the ED table is undefined and absorbed as a NOP per
// spec.md §7's policy (never aborts step()).
func (c *CPU) execED(op uint8) bool {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	q := y & 1
	p := y >> 1

	switch {
	case x == 1:
		return c.edBlock40(y, z, p, q)
	case x == 2 && z <= 3 && y >= 4:
		return c.edRepeat(y, z)
	default:
		c.TStates += 8
		return true
	}
}

func (c *CPU) edBlock40(y, z, p, q uint8) bool {
	switch z {
	case 0: // IN r[y],(C)
		v := c.portIn(c.BC())
		if y != 6 {
			c.setReg8(y, idxNone, v)
		}
		c.F = (c.F & FlagC) | sz53pTable[v]
		c.TStates += 12
	case 1: // OUT (C),r[y]
		v := uint8(0)
		if y != 6 {
			v = c.reg8(y, idxNone)
		}
		c.portOut(c.BC(), v)
		c.TStates += 12
	case 2:
		hl := c.HL()
		rp := c.regPair(p, idxNone)
		if q == 0 {
			c.SetHL(c.SBC16(hl, rp))
		} else {
			c.SetHL(c.ADC16(hl, rp))
		}
		c.TStates += 15
	case 3:
		nn := c.fetch16()
		if q == 0 {
			c.mem.WriteWord(nn, c.regPair(p, idxNone))
		} else {
			c.setRegPair(p, idxNone, c.mem.ReadWord(nn))
		}
		c.TStates += 20
	case 4:
		c.NEG()
		c.TStates += 8
	case 5:
		if q == 0 {
			c.IFF1 = c.IFF2 // RETN
		}
		c.PC = c.pop()
		c.TStates += 14
	case 6:
		switch y {
		case 0, 1, 4, 5:
			c.IM = 0
		case 2, 6:
			c.IM = 1
		default:
			c.IM = 2
		}
		c.TStates += 8
	default: // 7
		c.edSpecial(y)
	}
	return true
}

func (c *CPU) edSpecial(y uint8) {
	switch y {
	case 0:
		c.I = c.A
		c.TStates += 9
	case 1:
		c.R = c.A
		c.TStates += 9
	case 2:
		c.A = c.I
		c.F = (c.F & FlagC) | sz53Table[c.A] | bsel(c.IFF2, FlagP, 0)
		c.TStates += 9
	case 3:
		c.A = c.R
		c.F = (c.F & FlagC) | sz53Table[c.A] | bsel(c.IFF2, FlagP, 0)
		c.TStates += 9
	case 4:
		c.mem.WriteByte(c.HL(), c.RRD(c.mem.ReadByte(c.HL())))
		c.TStates += 18
	case 5:
		c.mem.WriteByte(c.HL(), c.RLD(c.mem.ReadByte(c.HL())))
		c.TStates += 18
	default:
		c.TStates += 8
	}
}

func (c *CPU) edRepeat(y, z uint8) bool {
	var repeated bool
	switch z {
	case 0:
		switch y {
		case 4:
			c.LDI()
		case 5:
			c.LDD()
		case 6:
			repeated = c.LDIR()
		default:
			repeated = c.LDDR()
		}
	case 1:
		switch y {
		case 4:
			c.CPI()
		case 5:
			c.CPD()
		case 6:
			repeated = c.CPIR()
		default:
			repeated = c.CPDR()
		}
	case 2:
		switch y {
		case 4:
			c.INI()
		case 5:
			c.IND()
		case 6:
			repeated = c.INIR()
		default:
			repeated = c.INDR()
		}
	default: // 3
		switch y {
		case 4:
			c.OUTI()
		case 5:
			c.OUTD()
		case 6:
			repeated = c.OTIR()
		default:
			repeated = c.OTDR()
		}
	}
	c.TStates += bsel16(repeated, 21, 16)
	return true
}
