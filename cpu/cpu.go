// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/bitvm/alu"
	"github.com/ezrec/bitvm/bits"
)

// Cpu is the simulation context for the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Alu       *alu.Alu          // Arithmetic logic unit and flags.
	Registers *RegisterFile     // Dual bank register file.
	Stack     Stack             // Call stack.
	Memory    *DataMemory       // Data memory.
	Program   InstructionMemory // Instruction memory.
	Pc        ProgramCounter    // Program counter.
	Device    Device            // Device bus, or nil.

	Ticks      int // Executed instruction counter.
	Underflows int // Call stack underflow counter.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Alu:       alu.NewAlu(alu.OP_ADD),
		Registers: NewRegisterFile(),
		Memory:    NewDataMemory(),
	}
	cpu.Reset()

	return
}

// Reset the CPU state.
// - Clears the registers, flags, call stack and data memory.
// - Zeros statistics counters.
// - Sets the program counter to 0.
//
// The loaded program and the attached device are kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Alu.SetOp(alu.OP_ADD)
	cpu.Alu.SetFlags = false
	cpu.Alu.Flags = alu.Flags{}
	cpu.Registers.Reset()
	cpu.Stack.Reset()
	cpu.Memory.Reset()
	cpu.Pc.Reset()
	cpu.Ticks = 0
	cpu.Underflows = 0
}

// Load replaces the program in instruction memory.
func (cpu *Cpu) Load(words []bits.Bits) (err error) {
	err = cpu.Program.Load(words)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(words))
	}

	return
}

// LoadCodes loads a program of instruction words.
func (cpu *Cpu) LoadCodes(codes []Code) (err error) {
	words := make([]bits.Bits, len(codes))
	for n, code := range codes {
		words[n] = code.Bits()
	}
	return cpu.Load(words)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %03x\n", "pc", cpu.Pc.Value.Uint())
	text += fmt.Sprintf("% 5s: %v\n", "flags", cpu.Alu.Flags)
	for n := range REGISTER_COUNT {
		reg := fmt.Sprintf("r%d", n)
		text += fmt.Sprintf("% 5s: %02x\n", reg, cpu.Registers.Get(n).Uint())
	}
	strval := "---"
	top, ok := cpu.Stack.Peek()
	if ok {
		strval = fmt.Sprintf("%03x (%d)", top.Uint(), cpu.Stack.Depth())
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", strval)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)

	return
}

// FetchCode fetches the instruction at the program counter. ok is false
// when the program counter is outside instruction memory.
func (cpu *Cpu) FetchCode() (code Code, ok bool) {
	word, ok := cpu.Program.Fetch(cpu.Pc.Clock())
	if !ok {
		return
	}

	code = Code(word.Uint())
	return
}

// Tick executes a single instruction cycle, returning the opcode that was
// fetched. Outside instruction memory the opcode is HLT and nothing runs.
func (cpu *Cpu) Tick() (opcode bits.Bits, err error) {
	word, ok := cpu.Program.Fetch(cpu.Pc.Clock())
	if !ok {
		opcode = OPCODE_HLT.Bits()
		return
	}

	opcode = word.Slice(WORD_WIDTH-OPCODE_WIDTH, OPCODE_WIDTH)

	err = cpu.Execute(word)

	return
}

// nextAddress picks the program counter source.
func (cpu *Cpu) nextAddress(signals Signals, instruction bits.Bits) (next bits.Bits) {
	inc := cpu.Pc.Next()
	target := instruction.Slice(0, ADDRESS_WIDTH)

	switch signals.AddrMux {
	case ADDR_JUMP:
		next = target
	case ADDR_RETURN:
		addr, ok := cpu.Stack.Pop()
		if ok {
			next = addr
		} else {
			cpu.Underflows++
			if cpu.Verbose {
				log.Printf("%03x: %v", cpu.Pc.Value.Uint(), ErrStackUnderflow)
			}
			next = inc
		}
	default:
		next = inc
	}

	// Flags are those left by the previous flag-setting instruction.
	if signals.IsBranch {
		cond := alu.Cond(instruction.Slice(ADDRESS_WIDTH, COND_WIDTH).Uint())
		if cpu.Alu.Flags.Test(cond) {
			next = target
		}
	}

	if signals.Stack == STACK_PUSH {
		cpu.Stack.Push(inc)
	}

	return
}

// immediate selects the literal or the sign-extended offset.
func immediate(signals Signals, instruction bits.Bits) bits.Bits {
	if signals.ImmMux == IMM_OFFSET {
		offset := instruction.Slice(0, OFFSET_WIDTH)
		return bits.New(DATA_WIDTH, uint64(offset.Int()))
	}

	return instruction.Slice(0, IMMEDIATE_WIDTH)
}

// readData reads memory, or the device above DEVICE_BASE.
func (cpu *Cpu) readData(addr bits.Bits) bits.Bits {
	if IsDevice(addr) {
		if cpu.Device == nil {
			return bits.Zero(DATA_WIDTH)
		}
		return cpu.Device.OnRead(addr).Resize(DATA_WIDTH)
	}

	return cpu.Memory.Read(addr)
}

// writeData writes memory, or the device above DEVICE_BASE.
func (cpu *Cpu) writeData(addr bits.Bits, value bits.Bits) {
	if IsDevice(addr) {
		if cpu.Device != nil {
			cpu.Device.OnWrite(addr, value)
		}
		return
	}

	cpu.Memory.ScheduleWrite(addr, value)
}

// Execute executes a single instruction word.
func (cpu *Cpu) Execute(instruction bits.Bits) (err error) {
	code := Code(instruction.Uint())
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Pc.Value.Uint(), code)
	}

	signals, err := Decode(instruction.Slice(WORD_WIDTH-OPCODE_WIDTH, OPCODE_WIDTH))
	if err != nil {
		return
	}

	next := cpu.nextAddress(signals, instruction)

	cpu.Alu.SetOp(signals.AluOp)
	cpu.Alu.SetFlags = signals.SetFlags
	cpu.Registers.Enable(signals.RegFileEnable)
	cpu.Memory.SetState(signals.Memory)

	reg_a := instruction.Slice(8, REGISTER_INDEX)
	reg_b := instruction.Slice(4, REGISTER_INDEX)
	reg_c := instruction.Slice(0, REGISTER_INDEX)
	cpu.Registers.SetReadAddresses([2]bits.Bits{reg_a, reg_b})
	outputs := cpu.Registers.Outputs()

	imm := immediate(signals, instruction)
	a, b := outputs[0], outputs[1]
	if signals.AluMux == ALU_BYPASS {
		b = imm
	}

	result := cpu.Alu.Compute(a, b)

	var data bits.Bits
	switch signals.DataMux {
	case DATA_IMMEDIATE:
		data = imm
	case DATA_MEMORY:
		data = cpu.readData(result)
	default:
		data = result
	}

	if signals.Memory == MEMORY_WRITE {
		cpu.writeData(result, outputs[1])
	}

	if signals.RegWrite {
		var dest bits.Bits
		switch signals.DestMux {
		case DEST_A:
			dest = reg_a
		case DEST_B:
			dest = reg_b
		default:
			dest = reg_c
		}
		cpu.Registers.ScheduleWrite(dest, data)
	}

	cpu.Registers.Clock()
	cpu.Stack.Clock()
	cpu.Memory.Clock()

	cpu.Pc.Value = next
	cpu.Ticks++

	return
}
