package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bitvm/alu"
)

func TestCode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		word uint16
		text string
	}){
		{MakeCode(OPCODE_NOP), 0x0000, "nop"},
		{MakeCode(OPCODE_HLT), 0x1000, "hlt"},
		{MakeCodeReg(OPCODE_ADD, 1, 2, 3), 0x2123, "add r1 r2 r3"},
		{MakeCodeReg(OPCODE_RSH, 4, 0, 5), 0x7405, "rsh r4 r5"},
		{MakeCodeImm(OPCODE_LDI, 15, 0xfa), 0x8ffa, "ldi r15 250"},
		{MakeCodeJump(OPCODE_JMP, alu.COND_ZERO, 0x3ff), 0xa3ff, "jmp 1023"},
		{MakeCodeJump(OPCODE_BRH, alu.COND_NOTCARRY, 5), 0xbc05, "brh notcarry 5"},
		{MakeCodeJump(OPCODE_CAL, alu.COND_ZERO, 12), 0xc00c, "cal 12"},
		{MakeCode(OPCODE_RET), 0xd000, "ret"},
		{MakeCodeMem(OPCODE_LOD, 2, 3, -1), 0xe23f, "lod r2 r3 -1"},
		{MakeCodeMem(OPCODE_STR, 1, 4, 7), 0xf147, "str r1 r4 7"},
	}

	for _, entry := range table {
		assert.Equal(entry.word, uint16(entry.code), entry.text)
		assert.Equal(entry.text, entry.code.String())
		assert.Equal(uint64(entry.word), entry.code.Bits().Uint())
	}
}

func TestCode_Fields(t *testing.T) {
	assert := assert.New(t)

	code := Code(0xe2f8)
	assert.Equal(OPCODE_LOD, code.Opcode())
	a, b, c := code.Regs()
	assert.Equal([]int{2, 15, 8}, []int{a, b, c})
	assert.Equal(-8, code.Offset())
	assert.Equal(uint8(0xf8), code.Immediate())
	assert.Equal(alu.COND_CARRY, Code(0xb800).Cond())
	assert.Equal(uint16(0x2f8), code.Address())
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("nop", OPCODE_NOP.String())
	assert.Equal("str", OPCODE_STR.String())
	assert.Equal("Opcode(16)", Opcode(16).String())
}
