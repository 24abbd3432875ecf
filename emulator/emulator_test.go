package emulator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/bitvm/cpu"
	bitio "github.com/ezrec/bitvm/io"
)

var helloProgram = []string{
	"; hello, on the character display",
	"ldi r15 write_char",
	"ldi r1 'h'",
	"str r15 r1",
	"ldi r1 'e'",
	"str r15 r1",
	"ldi r1 'l'",
	"str r15 r1",
	"str r15 r1",
	"ldi r1 'o'",
	"str r15 r1",
	"str r15 r0 1 ; buffer_chars",
	"hlt",
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	prog, err := emu.Assembler().Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	require.NoError(t, emu.Load(prog))
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(cpu.Device(emu.Bus), emu.Cpu.Device)
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorHello(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := &bytes.Buffer{}
	emu.Bus.Chars.Output = output

	doAssemble(emu, helloProgram, t)

	ticks, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(12, ticks)
	assert.Equal(12, emu.Cpu.Ticks)
	assert.Equal("hello", emu.Bus.Chars.Active)
	assert.Equal("hello\n", output.String())
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, helloProgram, t)

	for _, stmt := range emu.Program.Statements {
		assert.Equal(stmt.LineNo, emu.LineNo())
		here := helloProgram[stmt.LineNo-1]
		done, err := emu.Tick()
		assert.NoError(err, here)
		assert.Equal(stmt.Code.Opcode() == cpu.OPCODE_HLT, done, here)
	}
}

func TestEmulatorNumber(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r1 show_number",
		"ldi r2 200",
		"str r1 r2",
		"hlt",
	}
	doAssemble(emu, program, t)

	_, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal("200", emu.Bus.Number.String())

	// Signed mode is port show_number + 2.
	program = []string{
		"ldi r1 show_number",
		"ldi r2 200",
		"str r1 r0 2",
		"str r1 r2",
		"hlt",
	}
	doAssemble(emu, program, t)

	_, err = emu.Run(0)
	assert.NoError(err)
	assert.Equal("-56", emu.Bus.Number.String())
}

func TestEmulatorDevicesRead(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r1 controller_input",
		"lod r1 r2",
		"ldi r1 rng",
		"lod r1 r3",
		"lod r1 r4",
		"hlt",
	}
	doAssemble(emu, program, t)
	emu.Bus.Controller.Set(bitio.BUTTON_START, true)

	_, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(uint64(0x80), emu.Cpu.Registers.Get(2).Uint())
	assert.Equal(uint64(0x59), emu.Cpu.Registers.Get(3).Uint())
	assert.Equal(uint64(0xb2), emu.Cpu.Registers.Get(4).Uint())
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{"loop:", "jmp loop"}, t)

	ticks, err := emu.Run(10)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(10, ticks)

	// Running off the end of the program halts.
	doAssemble(emu, []string{"nop", "nop"}, t)
	ticks, err = emu.Run(1000)
	assert.NoError(err)
	assert.Equal(cpu.INSTRUCTION_SIZE+1, ticks)
}

func TestEmulatorLoadFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "hello.as")
	err := os.WriteFile(source, []byte(strings.Join(helloProgram, "\n")), 0o644)
	require.NoError(t, err)

	emu := NewEmulator()
	require.NoError(t, emu.LoadFile(source))
	_, err = emu.Run(100)
	assert.NoError(err)
	assert.Equal("hello", emu.Bus.Chars.Active)

	// Same program, as machine code.
	var mc bytes.Buffer
	require.NoError(t, emu.Program.WriteMachineCode(&mc))
	binary := filepath.Join(dir, "hello.mc")
	require.NoError(t, os.WriteFile(binary, mc.Bytes(), 0o644))

	emu = NewEmulator()
	require.NoError(t, emu.LoadFile(binary))
	assert.Equal(1, emu.LineNo())
	_, err = emu.Run(100)
	assert.NoError(err)
	assert.Equal("hello", emu.Bus.Chars.Active)

	err = emu.LoadFile(filepath.Join(dir, "missing.as"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestEmulatorLoadErrors(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	err := emu.LoadMachineCode(strings.NewReader("0000 0000 0000 0000\n0101\n"))
	var es *cpu.ErrSyntax
	assert.ErrorAs(err, &es)
	assert.Equal(2, es.LineNo)

	prog := &cpu.Program{}
	for n := range cpu.INSTRUCTION_SIZE + 1 {
		prog.Statements = append(prog.Statements, cpu.Statement{LineNo: n + 1, Ip: n})
	}
	err = emu.Load(prog)
	assert.ErrorIs(err, cpu.ErrProgramTooLarge)
}

func TestEmulatorConfig(t *testing.T) {
	assert := assert.New(t)

	text := strings.Join([]string{
		"max_ticks = 100",
		"rng_seed = 1",
		`buttons = ["a", "Left"]`,
		"memory = [5, 6]",
		"[registers]",
		"r1 = 10",
		"R15 = 0xff",
	}, "\n")

	cfg, err := ParseConfig(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(100, cfg.MaxTicks)

	emu := NewEmulator()
	doAssemble(emu, []string{"add r1 r15 r2", "hlt"}, t)
	require.NoError(t, emu.Apply(cfg))

	assert.Equal(uint64(10), emu.Cpu.Registers.Get(1).Uint())
	assert.Equal(uint64(0xff), emu.Cpu.Registers.Get(15).Uint())
	assert.Equal(uint64(6), emu.Cpu.Memory.Get(1).Uint())
	assert.Equal(bitio.BUTTON_A|bitio.BUTTON_LEFT, emu.Bus.Controller.Pressed)
	assert.Equal(uint64(2), emu.Bus.Rng.Next().Uint())

	_, err = emu.Run(cfg.MaxTicks)
	assert.NoError(err)
	assert.Equal(uint64(9), emu.Cpu.Registers.Get(2).Uint())

	// Reset applies the preset again.
	require.NoError(t, emu.Reset())
	assert.Equal(uint64(0), emu.Cpu.Registers.Get(2).Uint())
	assert.Equal(uint64(10), emu.Cpu.Registers.Get(1).Uint())
	assert.Equal(0, emu.Cpu.Ticks)
}

func TestEmulatorConfigErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseConfig(strings.NewReader("bogus = 1"))
	assert.ErrorIs(err, ErrConfigKey)

	_, err = ParseConfig(strings.NewReader("max_ticks = "))
	var ec *ErrConfig
	assert.ErrorAs(err, &ec)

	table := [](struct {
		cfg Config
		err error
	}){
		{Config{Registers: map[string]uint8{"r0": 1}}, ErrRegisterName("r0")},
		{Config{Registers: map[string]uint8{"r16": 1}}, ErrRegisterName("r16")},
		{Config{Registers: map[string]uint8{"x1": 1}}, ErrRegisterName("x1")},
		{Config{RngSeed: new(uint8)}, bitio.ErrSeedZero},
		{Config{Buttons: []string{"turbo"}}, bitio.ErrButton("turbo")},
	}

	for _, entry := range table {
		emu := NewEmulator()
		err := emu.Apply(entry.cfg)
		assert.ErrorIs(err, entry.err)
	}
}

func TestEmulatorDump(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, helloProgram, t)
	_, err := emu.Run(0)
	require.NoError(t, err)

	var out bytes.Buffer
	assert.NoError(emu.Dump(&out))
	text := out.String()
	assert.Contains(text, "   pc: 00c\n")
	assert.Contains(text, "chars: \"hello\"\n")
	assert.Contains(text, "  num: 0\n")
}

func TestErrRuntime(t *testing.T) {
	assert := assert.New(t)

	err := error(&ErrRuntime{LineNo: 3, Err: cpu.ErrStackUnderflow})
	assert.True(errors.Is(err, cpu.ErrStackUnderflow))
	assert.Contains(err.Error(), "line 3")
}
