package cpu

// Block transfer, compare and I/O repeat instructions (the ED-prefixed
// LDI/LDD/CPI/CPD/INI/IND/OUTI/OUTD families and their *R repeat forms), per
// spec.md §4.3. No teacher file covers these (the teacher never implements
// ED-table instructions at all); grounded on the decode idiom of
// retroenv-retrogolib's step.go and on the flag formulas spec.md states
// directly, built in the ALU kernel's style (lookup tables + bsel).

// undocFlags3_5 computes the undocumented F3/F5 pair shared by LDI/LDD/CPI/CPD:
// bits 3 and 1 of the given accumulator-derived byte, truncated to 8 bits.
func undocFlags3_5(n uint8) uint8 {
	return n&Flag3 | bsel(n&0x02 != 0, Flag5, 0)
}

// LDI/LDD share this core; step is +1 for LDI, -1 for LDD.
func (c *CPU) ldBlock(step int16) {
	v := c.mem.ReadByte(c.HL())
	c.mem.WriteByte(c.DE(), v)
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.SetDE(uint16(int32(c.DE()) + int32(step)))
	c.SetBC(c.BC() - 1)

	n := v + c.A
	c.F = (c.F & (FlagS | FlagZ | FlagC)) |
		undocFlags3_5(n) |
		bsel(c.BC() != 0, FlagP, 0)
}

// LDI implements LD (DE),(HL); HL++; DE++; BC--.
func (c *CPU) LDI() { c.ldBlock(1) }

// LDD implements LD (DE),(HL); HL--; DE--; BC--.
func (c *CPU) LDD() { c.ldBlock(-1) }

// LDIR repeats LDI while BC != 0. Returns true if it repeated (rewound PC).
func (c *CPU) LDIR() bool {
	c.LDI()
	return c.repeatIf(c.BC() != 0)
}

// LDDR repeats LDD while BC != 0.
func (c *CPU) LDDR() bool {
	c.LDD()
	return c.repeatIf(c.BC() != 0)
}

// repeatIf rewinds PC by 2 (re-fetching the same ED-prefixed opcode) when cont
// holds, and reports whether it did so; callers use this to pick the
// "repeated" vs. "terminal" T-state cost.
func (c *CPU) repeatIf(cont bool) bool {
	if cont {
		c.PC -= 2
	}
	return cont
}

func (c *CPU) cpBlock(step int16) {
	hlByte := c.mem.ReadByte(c.HL())
	diff := c.A - hlByte
	lookup := ((c.A & 0x08) >> 3) | ((hlByte & 0x08) >> 2) | ((diff & 0x08) >> 1)
	halfBorrow := halfcarrySubTable[lookup&0x07] != 0
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.SetBC(c.BC() - 1)

	n := diff
	if halfBorrow {
		n--
	}
	c.F = (c.F & FlagC) | FlagN |
		bsel(halfBorrow, FlagH, 0) |
		bsel(diff == 0, FlagZ, 0) |
		bsel(diff&0x80 != 0, FlagS, 0) |
		undocFlags3_5(n) |
		bsel(c.BC() != 0, FlagP, 0)
}

// CPI implements CP (HL); HL++; BC--.
func (c *CPU) CPI() { c.cpBlock(1) }

// CPD implements CP (HL); HL--; BC--.
func (c *CPU) CPD() { c.cpBlock(-1) }

// CPIR repeats CPI while BC != 0 and A != (HL).
func (c *CPU) CPIR() bool {
	c.CPI()
	return c.repeatIf(c.BC() != 0 && c.F&FlagZ == 0)
}

// CPDR repeats CPD while BC != 0 and A != (HL).
func (c *CPU) CPDR() bool {
	c.CPD()
	return c.repeatIf(c.BC() != 0 && c.F&FlagZ == 0)
}

// inOutFlags computes the shared N/Z/S/F3/F5/H/C/PV contract for the
// INI/IND/OUTI/OUTD family, per spec.md §4.3: H and C both come from whether
// mem_byte + sumOperand overflows a byte (sumOperand is C±1 for the IN forms
// and L for the OUT forms), and PV folds that sum's low three bits against
// the new B.
func (c *CPU) inOutFlags(memByte uint8, sumOperand uint8) {
	newB := c.B
	sum := uint16(memByte) + uint16(sumOperand)
	c.F = bsel(memByte&0x80 != 0, FlagN, 0) |
		bsel(newB == 0, FlagZ, 0) |
		sz53Table[newB]&(FlagS|Flag3|Flag5) |
		bsel(sum > 0xFF, FlagH|FlagC, 0) |
		bsel(parity(uint8(sum&7)^newB), FlagP, 0)
}

// INI implements IN (HL),(C); B--; HL++.
func (c *CPU) INI() {
	v := c.portIn(c.BC())
	c.mem.WriteByte(c.HL(), v)
	c.SetHL(c.HL() + 1)
	c.B--
	c.inOutFlags(v, (c.C+1)&0xFF)
}

// IND implements IN (HL),(C); B--; HL--.
func (c *CPU) IND() {
	v := c.portIn(c.BC())
	c.mem.WriteByte(c.HL(), v)
	c.SetHL(c.HL() - 1)
	c.B--
	c.inOutFlags(v, (c.C-1)&0xFF)
}

// INIR repeats INI until B == 0.
func (c *CPU) INIR() bool {
	c.INI()
	return c.repeatIf(c.B != 0)
}

// INDR repeats IND until B == 0.
func (c *CPU) INDR() bool {
	c.IND()
	return c.repeatIf(c.B != 0)
}

// OUTI implements OUT (C),(HL); HL++; B--.
func (c *CPU) OUTI() {
	v := c.mem.ReadByte(c.HL())
	c.SetHL(c.HL() + 1)
	c.B--
	c.portOut(c.BC(), v)
	c.inOutFlags(v, c.L)
}

// OUTD implements OUT (C),(HL); HL--; B--.
func (c *CPU) OUTD() {
	v := c.mem.ReadByte(c.HL())
	c.SetHL(c.HL() - 1)
	c.B--
	c.portOut(c.BC(), v)
	c.inOutFlags(v, c.L)
}

// OTIR repeats OUTI until B == 0.
func (c *CPU) OTIR() bool {
	c.OUTI()
	return c.repeatIf(c.B != 0)
}

// OTDR repeats OUTD until B == 0.
func (c *CPU) OTDR() bool {
	c.OUTD()
	return c.repeatIf(c.B != 0)
}
