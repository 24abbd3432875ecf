// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"iter"
	"maps"
	"strconv"

	"github.com/ezrec/bitvm/bits"
)

// Number display ports.
const (
	PORT_SHOW_NUMBER   = 250 // Store: show value.
	PORT_CLEAR_NUMBER  = 251 // Store: blank the display.
	PORT_SIGNED_MODE   = 252 // Store: show as two's complement.
	PORT_UNSIGNED_MODE = 253 // Store: show as unsigned.
)

// NumberDisplay shows one byte in decimal.
type NumberDisplay struct {
	Value  bits.Bits
	Signed bool
	Shown  bool
}

func (nd *NumberDisplay) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"show_number":   "250",
		"clear_number":  "251",
		"signed_mode":   "252",
		"unsigned_mode": "253",
	})
}

func (nd *NumberDisplay) Reset() {
	*nd = NumberDisplay{Value: bits.Zero(8)}
}

func (nd *NumberDisplay) OnRead(addr bits.Bits) bits.Bits {
	return bits.Zero(8)
}

func (nd *NumberDisplay) OnWrite(addr bits.Bits, value bits.Bits) {
	switch addr.Uint() {
	case PORT_SHOW_NUMBER:
		nd.Value = value.Resize(8)
		nd.Shown = true
	case PORT_CLEAR_NUMBER:
		nd.Shown = false
	case PORT_SIGNED_MODE:
		nd.Signed = true
	case PORT_UNSIGNED_MODE:
		nd.Signed = false
	}
}

// String is the displayed text; "0" when blank.
func (nd *NumberDisplay) String() string {
	switch {
	case !nd.Shown:
		return "0"
	case nd.Signed:
		return strconv.FormatInt(nd.Value.Int(), 10)
	default:
		return strconv.FormatUint(nd.Value.Uint(), 10)
	}
}
