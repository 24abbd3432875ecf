// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"iter"
	"maps"

	"github.com/ezrec/bitvm/bits"
)

const (
	PORT_RNG = 254 // Load: next random byte.

	RNG_SEED = 0xac // Default seed.
)

// Rng is an 8 bit Fibonacci LFSR with taps at bits 7, 5, 4 and 3.
type Rng struct {
	state bits.Bits
}

func (rng *Rng) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"rng": "254",
	})
}

// Seed sets the generator state. A zero seed would lock the register.
func (rng *Rng) Seed(seed uint8) (err error) {
	if seed == 0 {
		err = ErrSeedZero
		return
	}
	rng.state = bits.New(8, uint64(seed))
	return
}

func (rng *Rng) Reset() {
	rng.state = bits.New(8, RNG_SEED)
}

// Next advances the register and returns the new state.
func (rng *Rng) Next() bits.Bits {
	if rng.state.Width() == 0 {
		rng.Reset()
	}
	s := rng.state
	shift := func(n uint64) bits.Bits { return s.Shr(bits.New(8, n)) }
	bit := shift(7).Xor(shift(5)).Xor(shift(4)).Xor(shift(3)).And(bits.New(8, 1))
	rng.state = s.Shl(bits.New(8, 1)).Or(bit)
	return rng.state
}

func (rng *Rng) OnRead(addr bits.Bits) bits.Bits {
	return rng.Next()
}

func (rng *Rng) OnWrite(addr bits.Bits, value bits.Bits) {
}
