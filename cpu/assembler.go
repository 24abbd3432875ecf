// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bitvm/alu"
)

// CHARSET is the character display alphabet. A 'x' literal in assembly
// text is the index of x in this string.
const CHARSET = " abcdefghijklmnopqrstuvwxyz.!?"

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"DEVICE_BASE":    strconv.Itoa(DEVICE_BASE),
	"MEMORY_SIZE":    strconv.Itoa(MEMORY_SIZE),
	"REGISTER_COUNT": strconv.Itoa(REGISTER_COUNT),
}

// Assembler is a two pass macro assembler. The first pass assembles each
// line and records labels. The second links label references into the
// address fields.
type Assembler struct {
	Verbose    bool        // If set, verbosely logs the assembler actions.
	Statements []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to instruction addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Count of macro expansions, for '@' local names.
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// directives are the words that start with '.' but are not labels.
var directives = []string{".equ", ".macro", ".endm"}

// labelOf returns the label named by a word, as '.name' or 'name:'.
func labelOf(word string) (label string, ok bool) {
	switch {
	case slices.Contains(directives, word):
		return
	case len(word) > 1 && strings.HasSuffix(word, ":"):
		label = strings.TrimSuffix(word, ":")
	case len(word) > 1 && strings.HasPrefix(word, "."):
		label = word
	default:
		return
	}

	return strings.TrimPrefix(label, "."), true
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// register parses 'rN'.
func (asm *Assembler) register(word string) (reg int, err error) {
	lower := strings.ToLower(word)
	if len(lower) < 2 || lower[0] != 'r' {
		err = ErrRegisterInvalid
		return
	}
	value, perr := strconv.ParseUint(lower[1:], 10, 8)
	if perr != nil || value >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	reg = int(value)
	return
}

// registers parses a list of register words.
func (asm *Assembler) registers(words ...string) (regs []int, err error) {
	for _, word := range words {
		var reg int
		reg, err = asm.register(word)
		if err != nil {
			return
		}
		regs = append(regs, reg)
	}

	return
}

// immediate parses an 8 bit literal; negative values are two's complement.
func (asm *Assembler) immediate(word string) (imm uint8, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value < -128 || value > 255 {
		err = ErrImmediateRange
		return
	}

	imm = uint8(value)
	return
}

// offset parses a signed 4 bit memory offset.
func (asm *Assembler) offset(word string) (offset int, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value < -8 || value > 7 {
		err = ErrOffsetRange
		return
	}

	offset = int(value)
	return
}

// address parses a jump target. A non-numeric word is returned as a label
// to be linked.
func (asm *Assembler) address(word string) (addr uint16, label string, err error) {
	value, verr := asm.valueOf(word)
	if verr == nil {
		if value < 0 || value >= (1<<ADDRESS_WIDTH) {
			err = ErrAddressRange
			return
		}
		addr = uint16(value)
		return
	}

	label, ok := labelOf(word)
	if !ok {
		label = word
	}
	return
}

// condMap maps branch condition names and symbols.
var condMap = map[string]alu.Cond{
	"zero":     alu.COND_ZERO,
	"z":        alu.COND_ZERO,
	"eq":       alu.COND_ZERO,
	"=":        alu.COND_ZERO,
	"notzero":  alu.COND_NOTZERO,
	"nz":       alu.COND_NOTZERO,
	"ne":       alu.COND_NOTZERO,
	"!=":       alu.COND_NOTZERO,
	"carry":    alu.COND_CARRY,
	"c":        alu.COND_CARRY,
	"ge":       alu.COND_CARRY,
	">=":       alu.COND_CARRY,
	"notcarry": alu.COND_NOTCARRY,
	"nc":       alu.COND_NOTCARRY,
	"lt":       alu.COND_NOTCARRY,
	"<":        alu.COND_NOTCARRY,
}

// condition parses a branch condition, by name or number.
func (asm *Assembler) condition(word string) (cond alu.Cond, err error) {
	cond, ok := condMap[strings.ToLower(word)]
	if ok {
		return
	}

	value, err := asm.valueOf(word)
	if err != nil || value < 0 || value > 3 {
		err = ErrConditionInvalid
		return
	}

	cond = alu.Cond(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var (
	reCharacter  = regexp.MustCompile(`'[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// parseLine expands a single line into words, handling equates, labels and
// macro invocations.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := strings.ToLower(word[1 : len(word)-1])
		index := strings.Index(CHARSET, str)
		if index < 0 {
			err = ErrParseCharacter(str)
			return word
		}
		return strconv.Itoa(index)
	})
	if err != nil {
		return
	}

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE, or define CONST VALUE
	if words[0] == ".equ" || strings.ToLower(words[0]) == "define" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if !ok {
			equate, ok = asm.Equate[strings.ToLower(word)]
		}
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 {
		label, ok := labelOf(words[0])
		if !ok {
			break
		}
		_, ok = asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansions++
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the current instruction address.
func (asm *Assembler) currentIp() int {
	return len(asm.Statements)
}

// stripComment removes a ';' or '#' comment.
func stripComment(text string) string {
	if n := strings.IndexAny(text, ";#"); n >= 0 {
		text = text[:n]
	}
	return strings.TrimSpace(text)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.expansions = 0
	asm.Statements = asm.Statements[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = stripComment(text)
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	for n := range asm.Statements {
		st := &asm.Statements[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		lineno = st.LineNo
		line = strings.Join(st.Words, " ")
		ip, ok := asm.Label[st.LinkLabel]
		if !ok {
			err = ErrLabelMissing(st.LinkLabel)
			return
		}
		st.Code |= Code(ip) & ((1 << ADDRESS_WIDTH) - 1)
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statements),
	}

	return
}

// pseudo rewrites pseudo-instructions into machine instructions.
func pseudo(words []string) []string {
	args := words[1:]
	switch strings.ToLower(words[0]) {
	case "cmp":
		// cmp A B => sub A B r0
		if len(args) == 2 {
			return []string{"sub", args[0], args[1], "r0"}
		}
	case "mov":
		// mov A C => add A r0 C
		if len(args) == 2 {
			return []string{"add", args[0], "r0", args[1]}
		}
	case "lsh":
		// lsh A C => add A A C
		if len(args) == 2 {
			return []string{"add", args[0], args[0], args[1]}
		}
	case "not":
		// not A C => nor A r0 C
		if len(args) == 2 {
			return []string{"nor", args[0], "r0", args[1]}
		}
	case "neg":
		// neg A C => sub r0 A C
		if len(args) == 2 {
			return []string{"sub", "r0", args[0], args[1]}
		}
	case "inc":
		// inc A => adi A 1
		if len(args) == 1 {
			return []string{"adi", args[0], "1"}
		}
	case "dec":
		// dec A => adi A -1
		if len(args) == 1 {
			return []string{"adi", args[0], "-1"}
		}
	}

	return words
}

// arity checks the operand count of an instruction.
func arity(words []string, least, most int) (err error) {
	switch {
	case len(words)-1 < least:
		err = ErrOpcodeMissing
	case len(words)-1 > most:
		err = ErrOpcodeExtraArgs
	}
	return
}

// opcodeMap maps machine instruction mnemonics.
var opcodeMap = map[string]Opcode{
	"nop": OPCODE_NOP,
	"hlt": OPCODE_HLT,
	"add": OPCODE_ADD,
	"sub": OPCODE_SUB,
	"nor": OPCODE_NOR,
	"and": OPCODE_AND,
	"xor": OPCODE_XOR,
	"rsh": OPCODE_RSH,
	"ldi": OPCODE_LDI,
	"adi": OPCODE_ADI,
	"jmp": OPCODE_JMP,
	"brh": OPCODE_BRH,
	"cal": OPCODE_CAL,
	"ret": OPCODE_RET,
	"lod": OPCODE_LOD,
	"str": OPCODE_STR,
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var code Code
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil {
			return
		}
		st := Statement{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Code: code, LinkLabel: label}
		if asm.Verbose {
			log.Printf("%03x: %v", st.Ip, st.Code)
		}
		asm.Statements = append(asm.Statements, st)
	}()

	words = pseudo(words)

	op, ok := opcodeMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	switch op {
	case OPCODE_NOP, OPCODE_HLT, OPCODE_RET:
		if err = arity(words, 0, 0); err != nil {
			return
		}
		code = MakeCode(op)
	case OPCODE_ADD, OPCODE_SUB, OPCODE_NOR, OPCODE_AND, OPCODE_XOR:
		if err = arity(words, 3, 3); err != nil {
			return
		}
		var regs []int
		regs, err = asm.registers(words[1:]...)
		if err != nil {
			return
		}
		code = MakeCodeReg(op, regs[0], regs[1], regs[2])
	case OPCODE_RSH:
		if err = arity(words, 2, 2); err != nil {
			return
		}
		var regs []int
		regs, err = asm.registers(words[1:]...)
		if err != nil {
			return
		}
		code = MakeCodeReg(op, regs[0], 0, regs[1])
	case OPCODE_LDI, OPCODE_ADI:
		if err = arity(words, 2, 2); err != nil {
			return
		}
		var reg int
		reg, err = asm.register(words[1])
		if err != nil {
			return
		}
		var imm uint8
		imm, err = asm.immediate(words[2])
		if err != nil {
			return
		}
		code = MakeCodeImm(op, reg, imm)
	case OPCODE_JMP, OPCODE_CAL:
		if err = arity(words, 1, 1); err != nil {
			return
		}
		var addr uint16
		addr, label, err = asm.address(words[1])
		if err != nil {
			return
		}
		code = MakeCodeJump(op, alu.COND_ZERO, addr)
	case OPCODE_BRH:
		if err = arity(words, 2, 2); err != nil {
			return
		}
		var cond alu.Cond
		cond, err = asm.condition(words[1])
		if err != nil {
			return
		}
		var addr uint16
		addr, label, err = asm.address(words[2])
		if err != nil {
			return
		}
		code = MakeCodeJump(op, cond, addr)
	case OPCODE_LOD, OPCODE_STR:
		if err = arity(words, 2, 3); err != nil {
			return
		}
		var regs []int
		regs, err = asm.registers(words[1:3]...)
		if err != nil {
			return
		}
		offset := 0
		if len(words) == 4 {
			offset, err = asm.offset(words[3])
			if err != nil {
				return
			}
		}
		code = MakeCodeMem(op, regs[0], regs[1], offset)
	}

	return
}
