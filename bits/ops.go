// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bits

import (
	"strconv"
)

func sameWidth(a, b Bits) {
	if a.width != b.width {
		panic("bits: width mismatch " + strconv.Itoa(a.width) + " != " + strconv.Itoa(b.width))
	}
}

// Not inverts every bit.
func (b Bits) Not() Bits {
	for n := range b.width {
		b.bit[n] = !b.bit[n]
	}
	return b
}

// And is the bitwise conjunction of two equal-width vectors.
func (b Bits) And(other Bits) Bits {
	sameWidth(b, other)
	for n := range b.width {
		b.bit[n] = b.bit[n] && other.bit[n]
	}
	return b
}

// Or is the bitwise disjunction of two equal-width vectors.
func (b Bits) Or(other Bits) Bits {
	sameWidth(b, other)
	for n := range b.width {
		b.bit[n] = b.bit[n] || other.bit[n]
	}
	return b
}

// Xor is the bitwise exclusive-or of two equal-width vectors.
func (b Bits) Xor(other Bits) Bits {
	sameWidth(b, other)
	for n := range b.width {
		b.bit[n] = b.bit[n] != other.bit[n]
	}
	return b
}

func shiftAmount(b Bits, amount Bits) int {
	shift := amount.Uint()
	if shift >= uint64(b.width) {
		panic("bits: shift " + strconv.FormatUint(shift, 10) + " >= width " + strconv.Itoa(b.width))
	}
	return int(shift)
}

// Shl shifts toward the most significant bit, filling with zero.
func (b Bits) Shl(amount Bits) (out Bits) {
	shift := shiftAmount(b, amount)
	out = Zero(b.width)
	copy(out.bit[shift:b.width], b.bit[:b.width-shift])
	return
}

// Shr shifts toward the least significant bit, filling with zero.
func (b Bits) Shr(amount Bits) (out Bits) {
	shift := shiftAmount(b, amount)
	out = Zero(b.width)
	copy(out.bit[:b.width-shift], b.bit[shift:b.width])
	return
}

// Add is ripple-carry addition, wrapping at the vector width.
func (b Bits) Add(other Bits) Bits {
	sameWidth(b, other)
	var carry bool
	for n := range b.width {
		x, y := b.bit[n], other.bit[n]
		b.bit[n] = x != y != carry
		carry = (x && y) || (x && carry) || (y && carry)
	}
	return b
}

// Sub is two's complement subtraction, wrapping at the vector width.
func (b Bits) Sub(other Bits) Bits {
	return b.Add(other.Not()).Add(New(b.width, 1))
}
