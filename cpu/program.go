// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode"

	"github.com/ezrec/bitvm/bits"
)

// Statement is one assembled source line.
type Statement struct {
	LineNo    int      // Source line number.
	Ip        int      // Instruction address.
	Words     []string // Source words, after expansion.
	Code      Code     // Assembled instruction.
	LinkLabel string   // Label to link into the address field, if any.
}

type Program struct {
	Statements []Statement
}

// Debug returns the statement assembled at ip, or nil.
func (prog *Program) Debug(ip uint16) (stmt *Statement) {
	for n, st := range prog.Statements {
		if uint16(st.Ip) == ip {
			stmt = &prog.Statements[n]
			break
		}
	}

	return
}

// Codes iterates over the instruction address and word of each statement.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(ip uint16, code Code) bool) {
		for _, st := range prog.Statements {
			if !yield(uint16(st.Ip), st.Code) {
				return
			}
		}
	}
}

// Words returns the program as instruction memory contents.
func (prog *Program) Words() (words []bits.Bits) {
	for _, code := range prog.Codes() {
		words = append(words, code.Bits())
	}

	return
}

// WriteMachineCode writes the program in machine code text form: one
// binary word per line, in groups of four digits.
func (prog *Program) WriteMachineCode(w io.Writer) (err error) {
	for _, word := range prog.Words() {
		var groups []string
		for _, chunk := range word.Chunks(OPCODE_WIDTH) {
			groups = append(groups, chunk.String())
		}
		_, err = fmt.Fprintln(w, strings.Join(groups, " "))
		if err != nil {
			return
		}
	}

	return
}

// ReadMachineCode reads the machine code text form. Whitespace within a
// line is ignored, and blank lines are skipped.
func ReadMachineCode(r io.Reader) (words []bits.Bits, err error) {
	scanner := bufio.NewScanner(r)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		line = scanner.Text()
		lineno++

		digits := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, line)
		if len(digits) == 0 {
			continue
		}

		if len(digits) != WORD_WIDTH {
			err = ErrMachineCode
			return
		}

		var word bits.Bits
		word, err = bits.Parse(WORD_WIDTH, digits)
		if err != nil {
			return
		}
		words = append(words, word)
	}

	lineno = 0
	line = ""
	err = scanner.Err()

	return
}
