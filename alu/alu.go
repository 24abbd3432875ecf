// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package alu implements the arithmetic logic unit.
//
// Every operation except the right shift is derived from one adder
// skeleton: optional operand inversion, a per-bit XOR (or OR) combine, and a
// carry chain whose signals invert the combined bit. Flooding the chain with
// Generate turns the adder into the inverting logic functions.
package alu

import (
	"github.com/ezrec/bitvm/bits"
)

// Signal is the state of one carry chain slot.
type Signal bool

const (
	CANCEL   = Signal(false) // No carry into this position.
	GENERATE = Signal(true)  // Carry into this position.
)

// Alu is the arithmetic logic unit state.
type Alu struct {
	Op       Op    // Active operation.
	SetFlags bool  // Capture Flags on Compute.
	Flags    Flags // Flags from the last capturing Compute.

	config Config
}

// NewAlu returns an ALU configured for op.
func NewAlu(op Op) (alu *Alu) {
	alu = &Alu{}
	alu.SetOp(op)
	return
}

// SetOp selects the active operation, rebuilding the configuration.
func (alu *Alu) SetOp(op Op) {
	alu.Op = op
	alu.config = op.Config()
}

// Config returns the active configuration.
func (alu *Alu) Config() Config {
	return alu.config
}

// fill sets every slot from 'from' to the end of the chain.
func fill(carry []Signal, from int, signal Signal) {
	for n := from; n < len(carry); n++ {
		carry[n] = signal
	}
}

// Compute the active operation over two equal-width operands.
func (alu *Alu) Compute(a, b bits.Bits) (result bits.Bits) {
	config := alu.config
	width := a.Width()

	if config.IsRshift {
		result = bits.Zero(width)
		for n := range width - 1 {
			result = result.SetBit(n, a.Bit(n+1))
		}
		if alu.SetFlags {
			alu.Flags.Zero = result.IsZero()
			alu.Flags.Carry = false
		}
		return
	}

	if b.Width() != width {
		panic("alu: operand width mismatch")
	}

	if config.InvertA {
		a = a.Not()
	}
	if config.InvertB {
		b = b.Not()
	}

	// carry[n] is the carry into bit n; carry[width] is the carry out.
	carry := make([]Signal, width+1)
	fill(carry, 0, Signal(config.CarryIn))

	combined := make([]bool, width)
	for n := range width {
		a_bit := a.Bit(n)
		b_bit := b.Bit(n)

		if config.XorToOr {
			combined[n] = a_bit || b_bit
			continue
		}

		combined[n] = a_bit != b_bit
		switch {
		case a_bit && b_bit:
			fill(carry, n+1, GENERATE)
		case !a_bit && !b_bit:
			fill(carry, n+1, CANCEL)
		}
	}

	if config.FloodCarry {
		fill(carry, 0, GENERATE)
	}

	out := make([]bool, width)
	for n := range width {
		out[n] = combined[n] != bool(carry[n])
	}
	result = bits.FromBools(out)

	if alu.SetFlags {
		alu.Flags.Zero = result.IsZero()
		alu.Flags.Carry = bool(carry[width])
	}

	return
}
