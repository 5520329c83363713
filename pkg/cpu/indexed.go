package cpu

// DDCB/FDCB: displacement then sub-opcode, operating on (IX+d)/(IY+d) with
// optional register writeback, per spec.md §4.4's "DDCB/FDCB encoding"
// paragraph. The displacement `d` has already been fetched by decode.go's
// execute() before this is called; the sub-opcode byte never consumes a
// following byte, unlike the plain CB table.
func (c *CPU) execIndexedCB(mode idxMode, d int8, sub uint8) bool {
	base := c.pairHL(mode)
	addr := uint16(int32(base) + int32(d))
	v := c.mem.ReadByte(addr)

	x := sub >> 6
	y := (sub >> 3) & 7
	z := sub & 7

	switch x {
	case 1: // BIT n,(IX+d): read-only; F3/F5 from the high byte of addr.
		c.BIT(y, v, uint8(addr>>8))
		c.TStates += 20
		return true
	case 0:
		result := c.rotateShift(y, v)
		c.mem.WriteByte(addr, result)
		if z != 6 {
			c.setReg8(z, idxNone, result)
		}
	case 2:
		result := RES(y, v)
		c.mem.WriteByte(addr, result)
		if z != 6 {
			c.setReg8(z, idxNone, result)
		}
	default: // 3: SET
		result := SET(y, v)
		c.mem.WriteByte(addr, result)
		if z != 6 {
			c.setReg8(z, idxNone, result)
		}
	}
	c.TStates += 23
	return true
}
