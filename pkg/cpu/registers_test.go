package cpu

import "testing"

func TestResetValues(t *testing.T) {
	r := &Registers{}
	r.Reset()
	if r.AF() != 0xFFFF || r.BC() != 0xFFFF || r.DE() != 0xFFFF || r.HL() != 0xFFFF {
		t.Fatalf("Reset: primary pairs should all be 0xFFFF, got AF=%04X BC=%04X DE=%04X HL=%04X",
			r.AF(), r.BC(), r.DE(), r.HL())
	}
	if r.IX != 0xFFFF || r.IY != 0xFFFF {
		t.Fatalf("Reset: IX/IY should be 0xFFFF, got IX=%04X IY=%04X", r.IX, r.IY)
	}
	if r.I != 0xFF || r.R != 0xFF {
		t.Fatalf("Reset: I/R should be 0xFF, got I=%02X R=%02X", r.I, r.R)
	}
	if r.PC != 0x0000 {
		t.Fatalf("Reset: PC should be 0x0000, got %04X", r.PC)
	}
	if r.SP != 0xFFFF {
		t.Fatalf("Reset: SP should be 0xFFFF, got %04X", r.SP)
	}
	if r.IFF1 || r.IFF2 {
		t.Fatal("Reset: IFF1/IFF2 should be false")
	}
	if r.IM != 0 {
		t.Fatalf("Reset: IM should be 0, got %d", r.IM)
	}
	if r.Halted {
		t.Fatal("Reset: Halted should be false")
	}
	if r.TStates != 0 {
		t.Fatalf("Reset: TStates should be 0, got %d", r.TStates)
	}
}

func TestPairRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		set  func(r *Registers, v uint16)
		get  func(r *Registers) uint16
	}{
		{"AF", (*Registers).SetAF, (*Registers).AF},
		{"BC", (*Registers).SetBC, (*Registers).BC},
		{"DE", (*Registers).SetDE, (*Registers).DE},
		{"HL", (*Registers).SetHL, (*Registers).HL},
		{"AF2", (*Registers).SetAF2, (*Registers).AF2},
		{"BC2", (*Registers).SetBC2, (*Registers).BC2},
		{"DE2", (*Registers).SetDE2, (*Registers).DE2},
		{"HL2", (*Registers).SetHL2, (*Registers).HL2},
	}
	for _, tc := range tests {
		for _, v := range []uint16{0x0000, 0xFFFF, 0x1234, 0xABCD, 0x00FF, 0xFF00} {
			r := &Registers{}
			tc.set(r, v)
			if got := tc.get(r); got != v {
				t.Errorf("%s round trip: set %04X, got %04X", tc.name, v, got)
			}
		}
	}
}

func TestPairByteOrder(t *testing.T) {
	r := &Registers{}
	r.SetBC(0x1234)
	if r.B != 0x12 || r.C != 0x34 {
		t.Fatalf("SetBC(0x1234): B=%02X C=%02X, want B=12 C=34", r.B, r.C)
	}
}

func TestIXIYHalves(t *testing.T) {
	r := &Registers{}
	r.IX = 0x1234
	if r.IXH() != 0x12 || r.IXL() != 0x34 {
		t.Fatalf("IXH/IXL of 0x1234: got %02X/%02X, want 12/34", r.IXH(), r.IXL())
	}
	r.SetIXH(0xAB)
	if r.IX != 0xAB34 {
		t.Fatalf("SetIXH(0xAB): IX=%04X, want AB34", r.IX)
	}
	r.SetIXL(0xCD)
	if r.IX != 0xABCD {
		t.Fatalf("SetIXL(0xCD): IX=%04X, want ABCD", r.IX)
	}

	r.IY = 0x5678
	if r.IYH() != 0x56 || r.IYL() != 0x78 {
		t.Fatalf("IYH/IYL of 0x5678: got %02X/%02X, want 56/78", r.IYH(), r.IYL())
	}
	r.SetIYH(0x11)
	r.SetIYL(0x22)
	if r.IY != 0x1122 {
		t.Fatalf("SetIYH/SetIYL: IY=%04X, want 1122", r.IY)
	}
}

func TestExAFTwiceIsIdentity(t *testing.T) {
	r := &Registers{A: 0x11, F: 0x22, A2: 0x33, F2: 0x44}
	orig := *r
	r.exAF()
	r.exAF()
	if *r != orig {
		t.Fatalf("exAF twice should be identity, got %+v want %+v", *r, orig)
	}
}

func TestExxTwiceIsIdentity(t *testing.T) {
	r := &Registers{
		B: 1, C: 2, D: 3, E: 4, H: 5, L: 6,
		B2: 7, C2: 8, D2: 9, E2: 10, H2: 11, L2: 12,
		A: 0xAA, F: 0xBB, // AF must be untouched by EXX
	}
	orig := *r
	r.exx()
	r.exx()
	if *r != orig {
		t.Fatalf("exx twice should be identity, got %+v want %+v", *r, orig)
	}
}

func TestExxLeavesAFAlone(t *testing.T) {
	r := &Registers{A: 0xAA, F: 0xBB, B: 1, B2: 2}
	r.exx()
	if r.A != 0xAA || r.F != 0xBB {
		t.Fatalf("exx must not touch AF, got A=%02X F=%02X", r.A, r.F)
	}
	if r.B != 2 {
		t.Fatalf("exx should have swapped B, got %02X", r.B)
	}
}

func TestBumpRWrapsAt7Bits(t *testing.T) {
	r := &Registers{R: 0x7F}
	r.bumpR()
	if r.R != 0x00 {
		t.Fatalf("bumpR at 0x7F should wrap to 0x00, got %02X", r.R)
	}

	r2 := &Registers{R: 0xFF} // bit 7 set
	r2.bumpR()
	if r2.R != 0x80 {
		t.Fatalf("bumpR at 0xFF should preserve bit 7 and wrap low 7 bits to 0, got %02X", r2.R)
	}

	r3 := &Registers{R: 0x3F}
	r3.bumpR()
	if r3.R != 0x40 {
		t.Fatalf("bumpR at 0x3F should give 0x40, got %02X", r3.R)
	}
}

func TestResetTStates(t *testing.T) {
	r := &Registers{TStates: 12345}
	r.ResetTStates()
	if r.TStates != 0 {
		t.Fatalf("ResetTStates: got %d, want 0", r.TStates)
	}
}
