package cpu

// Registers holds the complete architectural state of a Z80: the primary and
// shadow register sets, the index registers, the special registers, the two
// interrupt flip-flops, the interrupt mode, the halt latch and the T-state
// counter. See spec.md §3's reset-value table for the power-on values this
// struct takes after Reset.
type Registers struct {
	A, F, B, C, D, E, H, L uint8
	A2, F2, B2, C2, D2, E2, H2, L2 uint8 // shadow set, swapped by EX AF,AF' / EXX

	IX, IY uint16
	I, R   uint8
	SP, PC uint16

	IFF1, IFF2 bool
	IM         uint8 // 0, 1 or 2
	Halted     bool

	TStates uint64 // monotonic; caller may reset via ResetTStates
}

// Reset restores power-on register values, per spec.md §3.
func (r *Registers) Reset() {
	r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L = 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF
	r.A2, r.F2, r.B2, r.C2, r.D2, r.E2, r.H2, r.L2 = 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF
	r.IX, r.IY = 0xFFFF, 0xFFFF
	r.I, r.R = 0xFF, 0xFF
	r.PC = 0x0000
	r.SP = 0xFFFF
	r.IFF1, r.IFF2 = false, false
	r.IM = 0
	r.Halted = false
	r.TStates = 0
}

// ResetTStates zeroes the T-state counter without touching any other register.
func (r *Registers) ResetTStates() { r.TStates = 0 }

// Compound 16-bit views. High register packs into the high byte, matching
// spec.md §3's "big-endian packing: high register is the high byte".

func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }
func (r *Registers) SetAF(v uint16) {
	r.A, r.F = uint8(v>>8), uint8(v)
}

func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) SetBC(v uint16) {
	r.B, r.C = uint8(v>>8), uint8(v)
}

func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) SetDE(v uint16) {
	r.D, r.E = uint8(v>>8), uint8(v)
}

func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) SetHL(v uint16) {
	r.H, r.L = uint8(v>>8), uint8(v)
}

func (r *Registers) AF2() uint16 { return uint16(r.A2)<<8 | uint16(r.F2) }
func (r *Registers) SetAF2(v uint16) {
	r.A2, r.F2 = uint8(v>>8), uint8(v)
}

func (r *Registers) BC2() uint16 { return uint16(r.B2)<<8 | uint16(r.C2) }
func (r *Registers) SetBC2(v uint16) {
	r.B2, r.C2 = uint8(v>>8), uint8(v)
}

func (r *Registers) DE2() uint16 { return uint16(r.D2)<<8 | uint16(r.E2) }
func (r *Registers) SetDE2(v uint16) {
	r.D2, r.E2 = uint8(v>>8), uint8(v)
}

func (r *Registers) HL2() uint16 { return uint16(r.H2)<<8 | uint16(r.L2) }
func (r *Registers) SetHL2(v uint16) {
	r.H2, r.L2 = uint8(v>>8), uint8(v)
}

// IX/IY halves, addressable as bytes by the undocumented DD/FD CB-less opcodes.

func (r *Registers) IXH() uint8 { return uint8(r.IX >> 8) }
func (r *Registers) IXL() uint8 { return uint8(r.IX) }
func (r *Registers) SetIXH(v uint8) { r.IX = uint16(v)<<8 | (r.IX & 0x00FF) }
func (r *Registers) SetIXL(v uint8) { r.IX = (r.IX & 0xFF00) | uint16(v) }

func (r *Registers) IYH() uint8 { return uint8(r.IY >> 8) }
func (r *Registers) IYL() uint8 { return uint8(r.IY) }
func (r *Registers) SetIYH(v uint8) { r.IY = uint16(v)<<8 | (r.IY & 0x00FF) }
func (r *Registers) SetIYL(v uint8) { r.IY = (r.IY & 0xFF00) | uint16(v) }

// exAF swaps the primary and shadow AF pairs (EX AF,AF').
func (r *Registers) exAF() {
	r.A, r.A2 = r.A2, r.A
	r.F, r.F2 = r.F2, r.F
}

// exx swaps the primary and shadow BC/DE/HL (EXX). AF is untouched.
func (r *Registers) exx() {
	r.B, r.B2 = r.B2, r.B
	r.C, r.C2 = r.C2, r.C
	r.D, r.D2 = r.D2, r.D
	r.E, r.E2 = r.E2, r.E
	r.H, r.H2 = r.H2, r.H
	r.L, r.L2 = r.L2, r.L
}

// bumpR advances the refresh register: only the low 7 bits auto-increment,
// bit 7 is preserved. Called once per fetched opcode/prefix byte.
func (r *Registers) bumpR() {
	r.R = (r.R & 0x80) | ((r.R + 1) & 0x7F)
}
