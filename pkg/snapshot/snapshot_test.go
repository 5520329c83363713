package snapshot

import (
	"path/filepath"
	"strings"
	"testing"
)

func sampleSnapshot() *Snapshot {
	snap := &Snapshot{
		A: 0x12, F: 0x34, B: 0x56, C: 0x78, D: 0x9A, E: 0xBC, H: 0xDE, L: 0xF0,
		IX: 0x1111, IY: 0x2222, I: 0x33, R: 0x44,
		SP: 0x5555, PC: 0x6666,
		IFF1: true, IFF2: false, IM: 2, Halted: false, TStates: 123456,
	}
	snap.Memory[0] = 0xAA
	snap.Memory[65535] = 0xBB
	return snap
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.gob")
	want := sampleSnapshot()

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.A != want.A || got.PC != want.PC || got.SP != want.SP {
		t.Fatalf("round trip mismatch: got %+v, want registers from %+v", got, want)
	}
	if got.Memory != want.Memory {
		t.Fatal("round trip: memory did not survive Save/Load")
	}
	if got.IFF1 != want.IFF1 || got.IFF2 != want.IFF2 || got.IM != want.IM {
		t.Fatalf("round trip: interrupt state mismatch, got IFF1=%v IFF2=%v IM=%d",
			got.IFF1, got.IFF2, got.IM)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.gob"))
	if err == nil {
		t.Fatal("Load of a missing file should return an error")
	}
}

func TestDumpJSONExcludesMemory(t *testing.T) {
	snap := sampleSnapshot()
	out, err := DumpJSON(snap)
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	if !strings.Contains(out, "\"PC\"") {
		t.Fatalf("DumpJSON should include register fields, got: %s", out)
	}
	if strings.Contains(out, "\"Memory\"") {
		t.Fatal("DumpJSON should not dump the 65536-byte memory array")
	}
}
