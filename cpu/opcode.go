// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"

	"github.com/ezrec/bitvm/alu"
	"github.com/ezrec/bitvm/bits"
)

// Opcode is the top four bits of an instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OPCODE_NOP = Opcode(0)  // nop
	OPCODE_HLT = Opcode(1)  // hlt
	OPCODE_ADD = Opcode(2)  // add
	OPCODE_SUB = Opcode(3)  // sub
	OPCODE_NOR = Opcode(4)  // nor
	OPCODE_AND = Opcode(5)  // and
	OPCODE_XOR = Opcode(6)  // xor
	OPCODE_RSH = Opcode(7)  // rsh
	OPCODE_LDI = Opcode(8)  // ldi
	OPCODE_ADI = Opcode(9)  // adi
	OPCODE_JMP = Opcode(10) // jmp
	OPCODE_BRH = Opcode(11) // brh
	OPCODE_CAL = Opcode(12) // cal
	OPCODE_RET = Opcode(13) // ret
	OPCODE_LOD = Opcode(14) // lod
	OPCODE_STR = Opcode(15) // str
)

// Bits returns the opcode as a 4 bit vector.
func (op Opcode) Bits() bits.Bits {
	return bits.New(OPCODE_WIDTH, uint64(op))
}

// Instruction word field widths.
const (
	WORD_WIDTH      = 16
	OPCODE_WIDTH    = 4
	REGISTER_INDEX  = 4
	IMMEDIATE_WIDTH = 8
	OFFSET_WIDTH    = 4
	COND_WIDTH      = 2
	ADDRESS_WIDTH   = 10
)

// Code is a single 16 bit instruction word.
//
//	15..12  opcode
//	11..8   register A
//	7..4    register B
//	3..0    register C, or signed offset
//	7..0    immediate
//	11..10  branch condition
//	9..0    address
type Code uint16

func makeCode(op Opcode, a, b, c uint16) Code {
	return Code(uint16(op)<<12 | (a&0xf)<<8 | (b&0xf)<<4 | (c & 0xf))
}

// MakeCode creates an instruction with no operands (NOP, HLT, RET).
func MakeCode(op Opcode) Code {
	return makeCode(op, 0, 0, 0)
}

// MakeCodeReg creates a three register instruction (ADD, SUB, NOR, AND,
// XOR, RSH).
func MakeCodeReg(op Opcode, a, b, c int) Code {
	return makeCode(op, uint16(a), uint16(b), uint16(c))
}

// MakeCodeImm creates a register and immediate instruction (LDI, ADI).
func MakeCodeImm(op Opcode, a int, imm uint8) Code {
	return Code(uint16(op)<<12 | (uint16(a)&0xf)<<8 | uint16(imm))
}

// MakeCodeMem creates a memory instruction (LOD, STR). The offset is in
// [-8, 7].
func MakeCodeMem(op Opcode, a, b int, offset int) Code {
	return makeCode(op, uint16(a), uint16(b), uint16(offset))
}

// MakeCodeJump creates a control flow instruction (JMP, BRH, CAL).
func MakeCodeJump(op Opcode, cond alu.Cond, addr uint16) Code {
	return Code(uint16(op)<<12 | (uint16(cond)&0x3)<<10 | (addr & 0x3ff))
}

// Bits returns the instruction as a 16 bit vector.
func (code Code) Bits() bits.Bits {
	return bits.New(WORD_WIDTH, uint64(code))
}

// Opcode returns the operation.
func (code Code) Opcode() Opcode {
	return Opcode(code >> 12)
}

// Regs returns the three register fields.
func (code Code) Regs() (a, b, c int) {
	a = int(code>>8) & 0xf
	b = int(code>>4) & 0xf
	c = int(code) & 0xf
	return
}

// Immediate returns the low 8 bits.
func (code Code) Immediate() uint8 {
	return uint8(code)
}

// Offset returns the sign-extended low 4 bits.
func (code Code) Offset() int {
	return int(int8(uint8(code)<<4) >> 4)
}

// Cond returns the branch condition.
func (code Code) Cond() alu.Cond {
	return alu.Cond((code >> 10) & 0x3)
}

// Address returns the 10 bit jump target.
func (code Code) Address() uint16 {
	return uint16(code) & 0x3ff
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	op := code.Opcode()
	a, b, c := code.Regs()

	switch op {
	case OPCODE_NOP, OPCODE_HLT, OPCODE_RET:
		out = op.String()
	case OPCODE_ADD, OPCODE_SUB, OPCODE_NOR, OPCODE_AND, OPCODE_XOR:
		out = fmt.Sprintf("%v r%d r%d r%d", op, a, b, c)
	case OPCODE_RSH:
		out = fmt.Sprintf("%v r%d r%d", op, a, c)
	case OPCODE_LDI, OPCODE_ADI:
		out = fmt.Sprintf("%v r%d %d", op, a, code.Immediate())
	case OPCODE_JMP, OPCODE_CAL:
		out = fmt.Sprintf("%v %d", op, code.Address())
	case OPCODE_BRH:
		out = fmt.Sprintf("%v %v %d", op, code.Cond(), code.Address())
	case OPCODE_LOD, OPCODE_STR:
		out = fmt.Sprintf("%v r%d r%d %d", op, a, b, code.Offset())
	}

	return
}
