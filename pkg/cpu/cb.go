package cpu

// CB-prefixed table: rotate/shift group, BIT, RES, SET over B,C,D,E,H,L,(HL),A.
// Decoded the same x/y/z way spec.md §4.4 already describes it: "the top two
// bits select operation class... bits 5..3 select the bit number... bits 2..0
// select the operand".
func (c *CPU) execCB(op uint8) bool {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7

	v := c.reg8(z, idxNone)
	switch x {
	case 0:
		c.setReg8(z, idxNone, c.rotateShift(y, v))
	case 1:
		c.BIT(y, v, v)
	case 2:
		c.setReg8(z, idxNone, RES(y, v))
	default: // 3: SET
		c.setReg8(z, idxNone, SET(y, v))
	}
	c.TStates += bsel16(z == 6, bsel16(x == 1, 12, 15), 8)
	return true
}

// rotateShift applies rotate group member `op` (0=RLC 1=RRC 2=RL 3=RR 4=SLA
// 5=SRA 6=SLL 7=SRL) to v.
func (c *CPU) rotateShift(op uint8, v uint8) uint8 {
	switch op {
	case 0:
		return c.RLC(v)
	case 1:
		return c.RRC(v)
	case 2:
		return c.RL(v)
	case 3:
		return c.RR(v)
	case 4:
		return c.SLA(v)
	case 5:
		return c.SRA(v)
	case 6:
		return c.SLL(v)
	default: // 7
		return c.SRL(v)
	}
}
