// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator joins the processor, the device bus and a program into
// a runnable machine.
package emulator

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/bitvm/cpu"
	"github.com/ezrec/bitvm/internal"
	bitio "github.com/ezrec/bitvm/io"
)

// Emulator state. CPU + device bus + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Bus      *bitio.Bus   // Memory mapped devices.
	Program  *cpu.Program // Reference to the currently running program listing.

	Config Config // Machine preset, applied at every Reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Bus:     bitio.NewBus(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Device = emu.Bus

	return
}

// Assembler returns an assembler with the device port names predefined.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range internal.Sorted2(emu.Bus.Defines()) {
		if emu.Verbose {
			log.Print(f("emulator: predefine %v = %v", name, value))
		}
		asm.Predefine(name, value)
	}
	return
}

// Load a program listing into instruction memory, and reset the machine.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	err = emu.Cpu.Load(prog.Words())
	if err != nil {
		return
	}

	emu.Program = prog

	err = emu.Reset()
	return
}

// LoadMachineCode loads the text machine code form of a program.
// Each instruction's line number is its address plus one.
func (emu *Emulator) LoadMachineCode(r io.Reader) (err error) {
	words, err := cpu.ReadMachineCode(r)
	if err != nil {
		return
	}

	prog := &cpu.Program{}
	for n, word := range words {
		prog.Statements = append(prog.Statements, cpu.Statement{
			LineNo: n + 1,
			Ip:     n,
			Code:   cpu.Code(word.Uint()),
		})
	}

	return emu.Load(prog)
}

// LoadFile loads a program file. A '.as' file is assembled, any other file
// is read as machine code.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	if strings.ToLower(filepath.Ext(path)) != ".as" {
		err = emu.LoadMachineCode(inf)
		return
	}

	prog, err := emu.Assembler().Parse(inf)
	if err != nil {
		return
	}

	err = emu.Load(prog)
	return
}

// Apply a machine preset, and reset the machine with it.
func (emu *Emulator) Apply(cfg Config) (err error) {
	// Validate before changing any state.
	_, err = cfg.registers()
	if err != nil {
		err = &ErrConfig{Key: "registers", Err: err}
		return
	}

	emu.Config = cfg
	emu.Verbose = cfg.Verbose

	err = emu.Reset()
	return
}

// Reset the processor and devices, then apply the machine preset.
// The loaded program is kept.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Bus.Reset()

	cfg := &emu.Config

	regs, err := cfg.registers()
	if err != nil {
		err = &ErrConfig{Key: "registers", Err: err}
		return
	}
	emu.Cpu.Registers.Preset(regs)
	emu.Cpu.Memory.Preset(cfg.Memory)

	if cfg.RngSeed != nil {
		err = emu.Bus.Rng.Seed(*cfg.RngSeed)
		if err != nil {
			err = &ErrConfig{Key: "rng_seed", Err: err}
			return
		}
	}

	for _, button := range cfg.Buttons {
		err = emu.Bus.Controller.Press(button, true)
		if err != nil {
			err = &ErrConfig{Key: "buttons", Err: err}
			return
		}
	}

	if emu.Verbose {
		log.Print(f("emulator: reset, %d registers and %d bytes preset", len(regs), len(cfg.Memory)))
	}

	return
}

// LineNo returns the source line number of the instruction at the program
// counter, or 0 if there is none.
func (emu *Emulator) LineNo() int {
	stmt := emu.Program.Debug(uint16(emu.Cpu.Pc.Value.Uint()))
	if stmt == nil {
		return 0
	}

	return stmt.LineNo
}

// Tick performs a single tick of the emulator. done is set once a HLT has
// been fetched.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	opcode, err := emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = cpu.Opcode(opcode.Uint()) == cpu.OPCODE_HLT
	return
}

// Run ticks until HLT, returning the number of ticks taken, the HLT
// included. A maxTicks of
// 0 or less runs without limit; otherwise ErrTickLimit is returned once
// maxTicks instructions have run without reaching HLT.
func (emu *Emulator) Run(maxTicks int) (ticks int, err error) {
	for {
		if maxTicks > 0 && ticks >= maxTicks {
			err = ErrTickLimit
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		ticks++
		if done {
			return
		}
	}
}

// Dump writes a human readable machine state.
func (emu *Emulator) Dump(w io.Writer) (err error) {
	_, err = fmt.Fprint(w, emu.Cpu.String())
	if err != nil {
		return
	}

	_, err = fmt.Fprintf(w, "% 5s: %v\n% 5s: %q\n", "num", emu.Bus.Number.String(), "chars", emu.Bus.Chars.Active)
	if err != nil {
		return
	}

	_, err = fmt.Fprint(w, emu.Bus.Chars.Render('#', '.'), emu.Bus.Screen.Render('#', '.'))
	return
}
