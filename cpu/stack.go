// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"github.com/ezrec/bitvm/bits"
)

const (
	STACK_LIMIT = 16 // Maximum stack depth
)

// Stack is the call stack: a shift register of return addresses, Data[0]
// being the top. A push is staged and shifts in at Clock; a pop is
// immediate. Pushing onto a full stack discards the oldest entry.
type Stack struct {
	Data [STACK_LIMIT]bits.Bits

	depth  int
	staged *bits.Bits
}

// Push stages an address to be pushed at the next Clock.
func (s *Stack) Push(value bits.Bits) {
	s.staged = &value
}

// Pop removes the top address. ok is false on underflow, and the stack is
// unchanged.
func (s *Stack) Pop() (value bits.Bits, ok bool) {
	value, ok = s.Peek()
	if !ok {
		return
	}

	copy(s.Data[:], s.Data[1:])
	s.Data[STACK_LIMIT-1] = bits.Bits{}
	s.depth--
	return
}

// Peek returns the top address without removing it.
func (s *Stack) Peek() (value bits.Bits, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[0], true
}

// Clock commits a staged push.
func (s *Stack) Clock() {
	if s.staged == nil {
		return
	}

	copy(s.Data[1:], s.Data[:STACK_LIMIT-1])
	s.Data[0] = *s.staged
	s.staged = nil
	s.depth = min(s.depth+1, STACK_LIMIT)
}

func (s *Stack) Depth() int {
	return s.depth
}

func (s *Stack) Empty() bool {
	return s.depth == 0
}

func (s *Stack) Full() bool {
	return s.depth == STACK_LIMIT
}

func (s *Stack) Reset() {
	clear(s.Data[:])
	s.depth = 0
	s.staged = nil
}
