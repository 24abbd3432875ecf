// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"github.com/ezrec/bitvm/alu"
	"github.com/ezrec/bitvm/bits"
)

// AddrMux selects the source of the next program counter.
type AddrMux int

const (
	ADDR_INCREMENT = AddrMux(0) // PC + 1
	ADDR_JUMP      = AddrMux(1) // Address field of the instruction.
	ADDR_RETURN    = AddrMux(2) // Popped from the call stack.
)

// DataMux selects the value on the data bus.
type DataMux int

const (
	DATA_ALU       = DataMux(0) // ALU result.
	DATA_IMMEDIATE = DataMux(1) // Immediate field.
	DATA_MEMORY    = DataMux(2) // Data memory or device read.
)

// DestMux selects the instruction field naming the write-back register.
type DestMux int

const (
	DEST_C = DestMux(0) // Bits 3..0
	DEST_A = DestMux(1) // Bits 11..8
	DEST_B = DestMux(2) // Bits 7..4
)

// AluMux selects the ALU second operand.
type AluMux int

const (
	ALU_REGISTER = AluMux(0) // Register file port 2.
	ALU_BYPASS   = AluMux(1) // Immediate or offset, bypassing the register file.
)

// StackOp is the call stack action.
type StackOp int

const (
	STACK_NONE = StackOp(0)
	STACK_PUSH = StackOp(1)
	STACK_POP  = StackOp(2)
)

// ImmMux selects how the low instruction bits form an immediate.
type ImmMux int

const (
	IMM_IMMEDIATE = ImmMux(0) // 8 bit literal.
	IMM_OFFSET    = ImmMux(1) // 4 bit signed offset.
)

// MemoryState is the data memory access mode.
type MemoryState int

const (
	MEMORY_DISABLED = MemoryState(0)
	MEMORY_READ     = MemoryState(1)
	MEMORY_WRITE    = MemoryState(2)
)

// Signals are the control lines for one instruction.
type Signals struct {
	AluOp         alu.Op
	RegFileEnable bool
	RegWrite      bool
	DataMux       DataMux
	DestMux       DestMux
	AluMux        AluMux
	AddrMux       AddrMux
	IsBranch      bool
	SetFlags      bool
	Stack         StackOp
	ImmMux        ImmMux
	Memory        MemoryState
}

// controlRom holds the signals for every opcode.
var controlRom = [16]Signals{
	OPCODE_NOP: {},
	OPCODE_HLT: {},
	OPCODE_ADD: {AluOp: alu.OP_ADD, RegFileEnable: true, RegWrite: true, SetFlags: true},
	OPCODE_SUB: {AluOp: alu.OP_SUB, RegFileEnable: true, RegWrite: true, SetFlags: true},
	OPCODE_NOR: {AluOp: alu.OP_NOR, RegFileEnable: true, RegWrite: true, SetFlags: true},
	OPCODE_AND: {AluOp: alu.OP_AND, RegFileEnable: true, RegWrite: true, SetFlags: true},
	OPCODE_XOR: {AluOp: alu.OP_XOR, RegFileEnable: true, RegWrite: true, SetFlags: true},
	OPCODE_RSH: {AluOp: alu.OP_RSHIFT, RegFileEnable: true, RegWrite: true, SetFlags: true},
	OPCODE_LDI: {
		RegFileEnable: true,
		RegWrite:      true,
		DataMux:       DATA_IMMEDIATE,
		DestMux:       DEST_A,
		ImmMux:        IMM_IMMEDIATE,
	},
	OPCODE_ADI: {
		AluOp:         alu.OP_ADD,
		RegFileEnable: true,
		RegWrite:      true,
		DestMux:       DEST_A,
		AluMux:        ALU_BYPASS,
		ImmMux:        IMM_IMMEDIATE,
		SetFlags:      true,
	},
	OPCODE_JMP: {AddrMux: ADDR_JUMP},
	OPCODE_BRH: {IsBranch: true},
	OPCODE_CAL: {AddrMux: ADDR_JUMP, Stack: STACK_PUSH},
	OPCODE_RET: {AddrMux: ADDR_RETURN, Stack: STACK_POP},
	OPCODE_LOD: {
		AluOp:         alu.OP_ADD,
		RegFileEnable: true,
		RegWrite:      true,
		DataMux:       DATA_MEMORY,
		DestMux:       DEST_B,
		AluMux:        ALU_BYPASS,
		ImmMux:        IMM_OFFSET,
		Memory:        MEMORY_READ,
	},
	OPCODE_STR: {
		AluOp:         alu.OP_ADD,
		RegFileEnable: true,
		AluMux:        ALU_BYPASS,
		ImmMux:        IMM_OFFSET,
		Memory:        MEMORY_WRITE,
	},
}

// Decode maps a 4 bit opcode to its control signals.
func Decode(opcode bits.Bits) (signals Signals, err error) {
	if opcode.Width() != OPCODE_WIDTH {
		err = ErrOpcodeWidth
		return
	}

	signals = controlRom[opcode.Uint()]
	return
}
