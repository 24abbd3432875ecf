package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bitvm/bits"
)

func testProgram() *Program {
	return &Program{
		Statements: []Statement{
			{LineNo: 1, Ip: 0, Words: []string{"ldi", "r1", "7"},
				Code: MakeCodeImm(OPCODE_LDI, 1, 7)},
			{LineNo: 2, Ip: 1, Words: []string{"add", "r1", "r1", "r2"},
				Code: MakeCodeReg(OPCODE_ADD, 1, 1, 2)},
			{LineNo: 4, Ip: 2, Words: []string{"hlt"},
				Code: MakeCode(OPCODE_HLT)},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	st := prog.Debug(0)
	assert.NotNil(st)
	assert.Equal(1, st.LineNo)

	st = prog.Debug(2)
	assert.NotNil(st)
	assert.Equal(4, st.LineNo)

	assert.Nil(prog.Debug(10))
}

func TestProgram_Codes_EarlyExit(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var ips []uint16
	for ip := range prog.Codes() {
		ips = append(ips, ip)
		if ip == 1 {
			break
		}
	}
	assert.Equal([]uint16{0, 1}, ips)
}

func TestProgram_Words(t *testing.T) {
	assert := assert.New(t)

	words := testProgram().Words()
	assert.Equal([]bits.Bits{
		bits.New(WORD_WIDTH, 0x8107),
		bits.New(WORD_WIDTH, 0x2112),
		bits.New(WORD_WIDTH, 0x1000),
	}, words)

	assert.Nil((&Program{}).Words())
}

func TestProgram_MachineCode(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var buf bytes.Buffer
	assert.NoError(prog.WriteMachineCode(&buf))
	assert.Equal("1000 0001 0000 0111\n0010 0001 0001 0010\n0001 0000 0000 0000\n", buf.String())

	words, err := ReadMachineCode(&buf)
	assert.NoError(err)
	assert.Equal(prog.Words(), words)
}

func TestReadMachineCode(t *testing.T) {
	assert := assert.New(t)

	words, err := ReadMachineCode(strings.NewReader("\n1000000100000111\n  0001 0000\t0000 0000  \n\n"))
	assert.NoError(err)
	assert.Equal([]bits.Bits{
		bits.New(WORD_WIDTH, 0x8107),
		bits.New(WORD_WIDTH, 0x1000),
	}, words)

	table := [](struct {
		text string
		line int
		err  error
	}){
		{"1000 0001 0000 011", 1, ErrMachineCode},
		{"0000000000000000\n1000 0001 0000 01111", 2, ErrMachineCode},
		{"1000 0001 0000 0112", 1, bits.ErrParse},
	}

	for _, entry := range table {
		_, err := ReadMachineCode(strings.NewReader(entry.text))
		var se *ErrSyntax
		if assert.True(errors.As(err, &se), entry.text) {
			assert.Equal(entry.line, se.LineNo, entry.text)
		}
		assert.ErrorIs(err, entry.err, entry.text)
	}
}
