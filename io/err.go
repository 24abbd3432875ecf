// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"

	"github.com/ezrec/bitvm/translate"
)

var f = translate.From

var (
	// Device errors
	ErrSeedZero = errors.New(f("rng seed must be non-zero"))
)

type ErrButton string

func (err ErrButton) Error() string {
	return f("unknown button '%v'", string(err))
}
