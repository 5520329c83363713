// Package cpu implements a deterministic Z80 interpreter: register file,
// ALU kernel, four-table instruction decoder, block/IO repeat instructions
// and the three interrupt modes plus NMI. Memory and port I/O are external
// collaborators, supplied by the host at construction time.
package cpu

import (
	"fmt"

	"github.com/oisee/z80emu/pkg/snapshot"
)

// Memory is the external 65536-byte address space the CPU reads and writes.
// pkg/mem.Memory satisfies this; tests may substitute a smaller fake so long
// as it never panics on any uint16 address.
type Memory interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, v uint8)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, v uint16)
}

// PortReader and PortWriter are the two port I/O callbacks. The CPU always
// presents the full 16-bit address bus, not just the low 8 bits.
type PortReader func(addr uint16) uint8
type PortWriter func(addr uint16, v uint8)

// defaultPortRead returns the high byte of the port address, matching what
// real Z80 hardware floats onto the data bus when nothing drives it.
func defaultPortRead(addr uint16) uint8 { return uint8(addr >> 8) }

// defaultPortWrite discards the byte; no peripheral is attached.
func defaultPortWrite(addr uint16, v uint8) {}

// CPU is the complete interpreter: register file plus its external
// collaborators. Construct with New; step with Step.
type CPU struct {
	Registers

	mem     Memory
	portIn  PortReader
	portOut PortWriter
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithPorts overrides the default port-read/port-write callbacks.
func WithPorts(read PortReader, write PortWriter) Option {
	return func(c *CPU) {
		if read != nil {
			c.portIn = read
		}
		if write != nil {
			c.portOut = write
		}
	}
}

// New constructs a CPU over the given memory, in power-on state. mem must not
// be nil: a CPU without an address space cannot fetch its first opcode, which
// this package treats as programmer error rather than a runtime condition.
func New(m Memory, opts ...Option) *CPU {
	if m == nil {
		panic("cpu.New: memory must not be nil")
	}
	c := &CPU{
		mem:     m,
		portIn:  defaultPortRead,
		portOut: defaultPortWrite,
	}
	c.Registers.Reset()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset restores power-on register state (§3) without touching memory.
func (c *CPU) Reset() {
	c.Registers.Reset()
}

// PreviewByte reads memory at PC+offset without side effects, for debuggers.
func (c *CPU) PreviewByte(offset uint16) uint8 {
	return c.mem.ReadByte(c.PC + offset)
}

// PreviewWord reads a little-endian word at PC+offset without side effects.
func (c *CPU) PreviewWord(offset uint16) uint16 {
	return c.mem.ReadWord(c.PC + offset)
}

// fetch8 reads the byte at PC and advances PC. Used for opcode and
// immediate-operand fetches alike; R is left alone, so callers that fetch an
// opcode or prefix byte bump R themselves.
func (c *CPU) fetch8() uint8 {
	v := c.mem.ReadByte(c.PC)
	c.PC++
	return v
}

// fetch16 reads a little-endian word at PC and advances PC by 2.
func (c *CPU) fetch16() uint16 {
	v := c.mem.ReadWord(c.PC)
	c.PC += 2
	return v
}

// push pushes a 16-bit value: SP -= 2, then word-write at the new SP.
func (c *CPU) push(v uint16) {
	c.SP -= 2
	c.mem.WriteWord(c.SP, v)
}

// pop pops a 16-bit value: word-read at SP, then SP += 2.
func (c *CPU) pop() uint16 {
	v := c.mem.ReadWord(c.SP)
	c.SP += 2
	return v
}

// Step executes one complete instruction, including any prefix bytes and any
// block-repeat rewind, and returns false iff the fetched opcode has no
// defined effect. While halted, Step re-executes the parked HALT byte and
// always returns true.
func (c *CPU) Step() bool {
	if c.Halted {
		c.bumpR()
		c.TStates += 4
		return true
	}
	opcode := c.fetch8()
	c.bumpR()
	return c.execute(opcode)
}

// NonMaskableInterrupt disables IFF1, bumps R, and calls 0x0066. It is always
// honored, regardless of IFF1/IFF2.
func (c *CPU) NonMaskableInterrupt() {
	c.Halted = false
	c.IFF1 = false
	c.bumpR()
	c.push(c.PC)
	c.PC = 0x0066
	c.TStates += 11
}

// MaskableInterrupt requests an interrupt; honored only when IFF1 is set.
// Clears both flip-flops and dispatches per the current interrupt mode.
func (c *CPU) MaskableInterrupt() {
	if !c.IFF1 {
		return
	}
	c.Halted = false
	c.IFF1, c.IFF2 = false, false
	c.bumpR()
	switch c.IM {
	case 0:
		c.TStates += 13
	case 1:
		c.push(c.PC)
		c.PC = 0x0038
		c.TStates += 13
	case 2:
		c.push(c.PC)
		vector := uint16(c.I)<<8 | 0
		c.PC = c.mem.ReadWord(vector)
		c.TStates += 19
	default:
		panic(fmt.Sprintf("cpu: invalid interrupt mode %d", c.IM))
	}
}

// dumpableMemory is the narrow extra surface pkg/mem.Memory offers for
// whole-address-space snapshotting; a Memory implementation that doesn't
// satisfy it simply can't be snapshotted.
type dumpableMemory interface {
	Dump() [65536]byte
	Restore([65536]byte)
}

// Snapshot captures the complete CPU state, including memory, as an opaque
// blob suitable for snapshot.Save. Returns an error if the attached Memory
// doesn't support Dump/Restore.
func (c *CPU) Snapshot() (*snapshot.Snapshot, error) {
	dm, ok := c.mem.(dumpableMemory)
	if !ok {
		return nil, fmt.Errorf("cpu: memory %T does not support snapshotting", c.mem)
	}
	return &snapshot.Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		A2: c.A2, F2: c.F2, B2: c.B2, C2: c.C2, D2: c.D2, E2: c.E2, H2: c.H2, L2: c.L2,
		IX: c.IX, IY: c.IY, I: c.I, R: c.R, SP: c.SP, PC: c.PC,
		IFF1: c.IFF1, IFF2: c.IFF2, IM: c.IM, Halted: c.Halted, TStates: c.TStates,
		Memory: dm.Dump(),
	}, nil
}

// Restore replaces the CPU's entire state, including memory, from a
// snapshot produced by Snapshot.
func (c *CPU) Restore(snap *snapshot.Snapshot) error {
	dm, ok := c.mem.(dumpableMemory)
	if !ok {
		return fmt.Errorf("cpu: memory %T does not support snapshotting", c.mem)
	}
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = snap.A, snap.F, snap.B, snap.C, snap.D, snap.E, snap.H, snap.L
	c.A2, c.F2, c.B2, c.C2, c.D2, c.E2, c.H2, c.L2 = snap.A2, snap.F2, snap.B2, snap.C2, snap.D2, snap.E2, snap.H2, snap.L2
	c.IX, c.IY, c.I, c.R, c.SP, c.PC = snap.IX, snap.IY, snap.I, snap.R, snap.SP, snap.PC
	c.IFF1, c.IFF2, c.IM, c.Halted, c.TStates = snap.IFF1, snap.IFF2, snap.IM, snap.Halted, snap.TStates
	dm.Restore(snap.Memory)
	return nil
}
