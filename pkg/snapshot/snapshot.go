// Package snapshot persists a CPU's complete state — registers, memory, the
// interrupt flip-flops and the T-state counter — as an opaque blob. spec.md
// §6 requires no persistence of its own ("tests and frontends may serialize
// ... as an opaque snapshot"); this adapts the teacher's
// pkg/result/checkpoint.go SaveCheckpoint/LoadCheckpoint pair, retargeted
// from a search checkpoint to a CPU snapshot.
package snapshot

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is the serializable CPU state. Memory is carried in full: a Z80
// address space is always 65536 bytes, so there is no sparse representation
// to bother with.
type Snapshot struct {
	A, F, B, C, D, E, H, L         uint8
	A2, F2, B2, C2, D2, E2, H2, L2 uint8
	IX, IY                         uint16
	I, R                           uint8
	SP, PC                         uint16
	IFF1, IFF2                     bool
	IM                             uint8
	Halted                         bool
	TStates                        uint64
	Memory                         [65536]byte
}

func init() {
	gob.Register(Snapshot{})
}

// Save writes a snapshot to path in gob format.
func Save(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Load reads a snapshot previously written by Save.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer f.Close()
	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return &snap, nil
}

// DumpJSON renders a snapshot's registers (not its memory, which would
// dwarf any sensible terminal output) as human-inspectable JSON.
func DumpJSON(snap *Snapshot) (string, error) {
	view := struct {
		A, F, B, C, D, E, H, L         uint8
		A2, F2, B2, C2, D2, E2, H2, L2 uint8
		IX, IY                         uint16
		I, R                           uint8
		SP, PC                         uint16
		IFF1, IFF2                     bool
		IM                             uint8
		Halted                         bool
		TStates                        uint64
	}{
		snap.A, snap.F, snap.B, snap.C, snap.D, snap.E, snap.H, snap.L,
		snap.A2, snap.F2, snap.B2, snap.C2, snap.D2, snap.E2, snap.H2, snap.L2,
		snap.IX, snap.IY, snap.I, snap.R, snap.SP, snap.PC,
		snap.IFF1, snap.IFF2, snap.IM, snap.Halted, snap.TStates,
	}
	b, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("snapshot: marshal: %w", err)
	}
	return string(b), nil
}
