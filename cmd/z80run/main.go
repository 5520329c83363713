// Command z80run is a small Z80 interpreter front-end: load a raw binary
// image, run it until HALT or a step limit, single-step it, print an
// execution trace, disassemble it, or print a saved snapshot. Structured the way the teacher's cmd/z80opt/main.go is —
// a cobra root command with flag-bearing subcommands and RunE returning
// wrapped errors — retargeted from "superoptimizer CLI" to "interpreter
// CLI".
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oisee/z80emu/pkg/cpu"
	"github.com/oisee/z80emu/pkg/mem"
	"github.com/oisee/z80emu/pkg/snapshot"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80run",
		Short: "Z80 interpreter — load, run, step and trace raw binary images",
	}

	var origin string
	var entry string
	var maxSteps int
	var saveSnapshot string

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load an image and run it until HALT or max-steps is reached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadImage(args[0], origin, entry)
			if err != nil {
				return err
			}
			steps := 0
			for steps < maxSteps {
				if !c.Step() {
					return fmt.Errorf("z80run: unimplemented opcode at PC=0x%04X", c.PC)
				}
				steps++
				if c.Halted {
					break
				}
			}
			fmt.Printf("stopped after %d steps, %d T-states, PC=0x%04X\n", steps, c.TStates, c.PC)
			if saveSnapshot != "" {
				snap, err := c.Snapshot()
				if err != nil {
					return fmt.Errorf("z80run: %w", err)
				}
				if err := snapshot.Save(saveSnapshot, snap); err != nil {
					return err
				}
				fmt.Printf("snapshot written to %s\n", saveSnapshot)
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&origin, "origin", "0x0000", "load address for the image")
	runCmd.Flags().StringVar(&entry, "entry", "", "entry PC (defaults to --origin)")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 10_000_000, "safety cap on instruction count")
	runCmd.Flags().StringVar(&saveSnapshot, "snapshot", "", "write a CPU snapshot to this path after stopping")

	stepCmd := &cobra.Command{
		Use:   "step <image>",
		Short: "Load an image and execute a single instruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadImage(args[0], origin, entry)
			if err != nil {
				return err
			}
			mnemonic, _ := c.Disassemble()
			ok := c.Step()
			fmt.Printf("%-20s ok=%v PC=0x%04X T=%d\n", mnemonic, ok, c.PC, c.TStates)
			return nil
		},
	}
	stepCmd.Flags().StringVar(&origin, "origin", "0x0000", "load address for the image")
	stepCmd.Flags().StringVar(&entry, "entry", "", "entry PC (defaults to --origin)")

	var traceSteps int
	var traceFormat string
	traceCmd := &cobra.Command{
		Use:   "trace <image>",
		Short: "Print a per-instruction execution trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadImage(args[0], origin, entry)
			if err != nil {
				return err
			}
			var steps []traceStep
			for i := 0; i < traceSteps && !c.Halted; i++ {
				pc := c.PC
				mnemonic, length := c.Disassemble()
				raw := make([]uint8, length)
				for j := 0; j < length; j++ {
					raw[j] = c.PreviewByte(uint16(j))
				}
				ok := c.Step()
				steps = append(steps, traceStep{
					PC: pc, Bytes: raw, Mnemonic: mnemonic, OK: ok, TStates: c.TStates,
				})
			}
			if traceFormat == "json" {
				b, err := json.MarshalIndent(steps, "", "  ")
				if err != nil {
					return fmt.Errorf("z80run: marshal trace: %w", err)
				}
				fmt.Println(string(b))
				return nil
			}
			for _, s := range steps {
				fmt.Printf("0x%04X  %-20s T=%-8d ok=%v\n", s.PC, s.Mnemonic, s.TStates, s.OK)
			}
			return nil
		},
	}
	traceCmd.Flags().StringVar(&origin, "origin", "0x0000", "load address for the image")
	traceCmd.Flags().StringVar(&entry, "entry", "", "entry PC (defaults to --origin)")
	traceCmd.Flags().IntVar(&traceSteps, "steps", 100, "number of instructions to trace")
	traceCmd.Flags().StringVar(&traceFormat, "format", "text", "text or json")

	var disasmCount int
	disasmCmd := &cobra.Command{
		Use:   "disasm <image>",
		Short: "Disassemble an image from its entry point without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadImage(args[0], origin, entry)
			if err != nil {
				return err
			}
			for i := 0; i < disasmCount; i++ {
				mnemonic, length := c.Disassemble()
				fmt.Printf("0x%04X  %s\n", c.PC, mnemonic)
				if length == 0 {
					length = 1
				}
				c.PC += uint16(length)
			}
			return nil
		},
	}
	disasmCmd.Flags().StringVar(&origin, "origin", "0x0000", "load address for the image")
	disasmCmd.Flags().StringVar(&entry, "entry", "", "entry PC (defaults to --origin)")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 32, "number of instructions to disassemble")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Print a saved CPU snapshot's registers as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}
			out, err := snapshot.DumpJSON(snap)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, stepCmd, traceCmd, disasmCmd, snapshotCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type traceStep struct {
	PC       uint16  `json:"pc"`
	Bytes    []uint8 `json:"bytes"`
	Mnemonic string  `json:"mnemonic"`
	OK       bool    `json:"ok"`
	TStates  uint64  `json:"t_states"`
}

func loadImage(path, originStr, entryStr string) (*cpu.CPU, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("z80run: read %s: %w", path, err)
	}
	origin, err := parseAddr(originStr)
	if err != nil {
		return nil, fmt.Errorf("z80run: --origin: %w", err)
	}
	entry := origin
	if entryStr != "" {
		entry, err = parseAddr(entryStr)
		if err != nil {
			return nil, fmt.Errorf("z80run: --entry: %w", err)
		}
	}
	m := mem.New()
	m.Load(origin, data)
	c := cpu.New(m)
	c.PC = entry
	return c, nil
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

