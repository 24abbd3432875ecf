// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package alu

// Op is an ALU operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD      = Op(0)  // add
	OP_SUB      = Op(1)  // sub
	OP_XOR      = Op(2)  // xor
	OP_XNOR     = Op(3)  // xnor
	OP_OR       = Op(4)  // or
	OP_NOR      = Op(5)  // nor
	OP_AND      = Op(6)  // and
	OP_NAND     = Op(7)  // nand
	OP_IMPLIES  = Op(8)  // implies
	OP_NIMPLIES = Op(9)  // nimplies
	OP_RSHIFT   = Op(10) // rshift
)

// Config is the circuit configuration derived from an Op.
type Config struct {
	InvertA    bool // Invert operand A before the carry chain.
	InvertB    bool // Invert operand B before the carry chain.
	CarryIn    bool // Carry into bit 0.
	FloodCarry bool // Force every carry slot to Generate.
	XorToOr    bool // Combine operand bits with OR instead of XOR.
	IsRshift   bool // Bypass the carry chain with a one bit right shift.
}

var opConfig = [...]Config{
	OP_ADD:      {},
	OP_SUB:      {InvertB: true, CarryIn: true},
	OP_XOR:      {InvertB: true, FloodCarry: true},
	OP_XNOR:     {FloodCarry: true},
	OP_OR:       {XorToOr: true},
	OP_NOR:      {XorToOr: true, FloodCarry: true},
	OP_AND:      {InvertA: true, InvertB: true, XorToOr: true, FloodCarry: true},
	OP_NAND:     {InvertA: true, InvertB: true, XorToOr: true},
	OP_IMPLIES:  {InvertA: true, XorToOr: true},
	OP_NIMPLIES: {InvertA: true, XorToOr: true, FloodCarry: true},
	OP_RSHIFT:   {IsRshift: true},
}

// Config returns the circuit configuration for the operation.
// Unknown operations configure as OP_ADD.
func (op Op) Config() (config Config) {
	if op >= 0 && int(op) < len(opConfig) {
		config = opConfig[op]
	}
	return
}
