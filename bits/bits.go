// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package bits implements the fixed-width bit vector that every part of the
// machine datapath operates on.
//
// A Bits value is an ordered array of booleans, bit 0 being the least
// significant. The width is fixed when the value is built, and only changes
// through an explicit Resize or Slice. Values are small, comparable, and
// copied freely.
package bits

import (
	"strconv"
	"strings"
)

// MaxWidth is the widest supported vector.
const MaxWidth = 64

// Bits is a fixed width vector of booleans.
type Bits struct {
	width int
	bit   [MaxWidth]bool
}

func checkWidth(width int) {
	if width < 1 || width > MaxWidth {
		panic("bits: width " + strconv.Itoa(width) + " out of range")
	}
}

// Zero returns an all-clear vector of the given width.
func Zero(width int) (b Bits) {
	checkWidth(width)
	b.width = width
	return
}

// New returns a vector holding the low 'width' bits of value.
func New(width int, value uint64) (b Bits) {
	b = Zero(width)
	for n := range width {
		b.bit[n] = (value>>n)&1 != 0
	}
	return
}

// FromBools builds a vector from an LSB-first slice.
func FromBools(bools []bool) (b Bits) {
	b = Zero(len(bools))
	copy(b.bit[:], bools)
	return
}

// FromUnsigned returns a vector holding value, or ErrOutOfBounds if value
// needs more than 'width' bits.
func FromUnsigned(width int, value uint64) (b Bits, err error) {
	checkWidth(width)
	limit := maxUnsigned(width)
	if value > limit {
		err = &ErrOutOfBounds{Value: strconv.FormatUint(value, 10), Max: strconv.FormatUint(limit, 10)}
		return
	}
	b = New(width, value)
	return
}

// FromSigned returns the two's complement encoding of value, or
// ErrOutOfBounds if value is outside [-2^(width-1), 2^(width-1)-1].
func FromSigned(width int, value int64) (b Bits, err error) {
	checkWidth(width)
	lo := -(int64(1) << (width - 1))
	hi := int64(maxUnsigned(width) >> 1)
	if value < lo || value > hi {
		err = &ErrOutOfBounds{Value: strconv.FormatInt(value, 10), Max: strconv.FormatInt(hi, 10)}
		return
	}
	b = New(width, uint64(value))
	return
}

func maxUnsigned(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// Parse reads a vector from text.
//
// A string of exactly 'width' characters is binary, most significant digit
// first. A shorter string is a decimal magnitude. A longer string is an
// ErrLength.
func Parse(width int, text string) (b Bits, err error) {
	checkWidth(width)
	switch {
	case len(text) > width:
		err = &ErrLength{Expected: width, Found: len(text), Text: text}
	case len(text) == width:
		b = Zero(width)
		for n := range width {
			switch c := text[width-1-n]; c {
			case '0':
			case '1':
				b.bit[n] = true
			default:
				err = ErrCharacter(c)
				return
			}
		}
	default:
		var value uint64
		value, err = strconv.ParseUint(text, 10, 64)
		if err != nil {
			err = &ErrNumber{Text: text, Err: err}
			return
		}
		b, err = FromUnsigned(width, value)
	}

	return
}

// MustParse is Parse, panicking on error. For tables and tests.
func MustParse(width int, text string) Bits {
	b, err := Parse(width, text)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the number of bits in the vector.
func (b Bits) Width() int {
	return b.width
}

// Bit returns bit n.
func (b Bits) Bit(n int) bool {
	if n < 0 || n >= b.width {
		panic("bits: index " + strconv.Itoa(n) + " out of range")
	}
	return b.bit[n]
}

// SetBit returns a copy with bit n replaced.
func (b Bits) SetBit(n int, value bool) Bits {
	if n < 0 || n >= b.width {
		panic("bits: index " + strconv.Itoa(n) + " out of range")
	}
	b.bit[n] = value
	return b
}

// Bools returns the bits LSB first.
func (b Bits) Bools() []bool {
	out := make([]bool, b.width)
	copy(out, b.bit[:b.width])
	return out
}

// Uint returns the unsigned value.
func (b Bits) Uint() (value uint64) {
	for n := range b.width {
		if b.bit[n] {
			value |= 1 << n
		}
	}
	return
}

// Int returns the value sign-extended from the top bit.
func (b Bits) Int() int64 {
	value := b.Uint()
	if b.width < 64 && b.bit[b.width-1] {
		value |= ^uint64(0) << b.width
	}
	return int64(value)
}

// Resize zero-extends or truncates to a new width.
func (b Bits) Resize(width int) (out Bits) {
	out = Zero(width)
	copy(out.bit[:min(width, b.width)], b.bit[:])
	return
}

// Slice extracts 'width' bits starting at bit 'start'.
func (b Bits) Slice(start, width int) (out Bits) {
	if start < 0 || start+width > b.width {
		panic("bits: slice [" + strconv.Itoa(start) + ":" + strconv.Itoa(start+width) + "] out of range")
	}
	out = Zero(width)
	copy(out.bit[:width], b.bit[start:start+width])
	return
}

// Chunks splits the vector into equal pieces of 'size' bits, most
// significant chunk first.
func (b Bits) Chunks(size int) (chunks []Bits) {
	if size < 1 || b.width%size != 0 {
		panic("bits: chunk size " + strconv.Itoa(size) + " does not divide " + strconv.Itoa(b.width))
	}
	for start := b.width - size; start >= 0; start -= size {
		chunks = append(chunks, b.Slice(start, size))
	}
	return
}

// Equal compares numeric values; widths may differ.
func (b Bits) Equal(other Bits) bool {
	return b.Cmp(other) == 0
}

// Cmp compares numeric values, returning -1, 0 or +1.
func (b Bits) Cmp(other Bits) int {
	x, y := b.Uint(), other.Uint()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// IsZero is true when no bit is set.
func (b Bits) IsZero() bool {
	return b.Uint() == 0
}

// String renders the binary digits, most significant first.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.width)
	for n := b.width - 1; n >= 0; n-- {
		if b.bit[n] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
