package cpu

import "testing"

func TestCBRotatesPlainRegister(t *testing.T) {
	c := newTestCPU()
	c.B = 0x81
	c.mem.WriteByte(0x0000, 0xCB)
	c.mem.WriteByte(0x0001, 0x00) // RLC B
	if !c.Step() {
		t.Fatal("RLC B should be a defined opcode")
	}
	if c.B != 0x03 {
		t.Fatalf("RLC B on 0x81: B=%02X, want 03", c.B)
	}
	if c.F&FlagC == 0 {
		t.Fatal("RLC B on 0x81: carry should be set from old bit 7")
	}
}

func TestCBSetOnMemory(t *testing.T) {
	c := newTestCPU()
	c.SetHL(0x4000)
	c.mem.WriteByte(0x4000, 0x00)
	c.mem.WriteByte(0x0000, 0xCB)
	c.mem.WriteByte(0x0001, 0xC6) // SET 0,(HL)
	if !c.Step() {
		t.Fatal("SET 0,(HL) should be a defined opcode")
	}
	if c.mem.ReadByte(0x4000) != 0x01 {
		t.Fatalf("SET 0,(HL): (HL)=%02X, want 01", c.mem.ReadByte(0x4000))
	}
}

func TestDDCBWritesBackToPlainRegisterNotIndexHalf(t *testing.T) {
	c := newTestCPU()
	c.IX = 0x3000
	c.mem.WriteByte(0x3002, 0x00)
	c.mem.WriteByte(0x0000, 0xDD)
	c.mem.WriteByte(0x0001, 0xCB)
	c.mem.WriteByte(0x0002, 0x02) // displacement +2
	c.mem.WriteByte(0x0003, 0xC4) // SET 0,(IX+2),H

	if !c.Step() {
		t.Fatal("DD CB SET with register writeback should be a defined opcode")
	}
	if c.mem.ReadByte(0x3002) != 0x01 {
		t.Fatalf("SET 0,(IX+2),H: memory=%02X, want 01", c.mem.ReadByte(0x3002))
	}
	if c.H != 0x01 {
		t.Fatalf("SET 0,(IX+2),H: H should also receive the result, got %02X", c.H)
	}
	if c.IX != 0x3000 {
		t.Fatalf("SET 0,(IX+2),H: IXH must not receive the result, IX=%04X", c.IX)
	}
	if c.PC != 0x0004 {
		t.Fatalf("DDCB instruction is 4 bytes long, PC=%04X want 0004", c.PC)
	}
}

func TestDDCBBitDoesNotWriteBack(t *testing.T) {
	c := newTestCPU()
	c.IX = 0x3000
	c.mem.WriteByte(0x3005, 0x08) // bit 3 set
	c.B = 0xFF
	c.mem.WriteByte(0x0000, 0xDD)
	c.mem.WriteByte(0x0001, 0xCB)
	c.mem.WriteByte(0x0002, 0x05) // displacement +5
	c.mem.WriteByte(0x0003, 0x46) // BIT 0,(IX+5)
	c.F = 0

	if !c.Step() {
		t.Fatal("BIT 0,(IX+5) should be a defined opcode")
	}
	if c.B != 0xFF {
		t.Fatalf("BIT must never write back to any register, B changed to %02X", c.B)
	}
	if c.F&FlagZ == 0 {
		t.Fatalf("BIT 0,(IX+5) with bit 0 clear should set Z, F=%02X", c.F)
	}
}
