// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package alu

import (
	"fmt"
)

// Cond is a two bit branch condition.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_ZERO     = Cond(0) // zero
	COND_NOTZERO  = Cond(1) // notzero
	COND_CARRY    = Cond(2) // carry
	COND_NOTCARRY = Cond(3) // notcarry
)

// Flags are the condition codes left by the last flag-setting operation.
type Flags struct {
	Zero  bool
	Carry bool
}

// Test evaluates a branch condition against the flags.
func (flags Flags) Test(cond Cond) bool {
	switch cond & 0x3 {
	case COND_ZERO:
		return flags.Zero
	case COND_NOTZERO:
		return !flags.Zero
	case COND_CARRY:
		return flags.Carry
	default:
		return !flags.Carry
	}
}

func (flags Flags) String() string {
	return fmt.Sprintf("z=%v c=%v", flags.Zero, flags.Carry)
}
