// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bits

import (
	"errors"

	"github.com/ezrec/bitvm/translate"
)

var f = translate.From

// ErrParse matches every conversion error of this package.
var ErrParse = errors.New(f("bits parse"))

// ErrLength reports text longer than the target width.
type ErrLength struct {
	Expected int
	Found    int
	Text     string
}

func (err *ErrLength) Error() string {
	return f("invalid length: expected %d, found %d (input: %v)", err.Expected, err.Found, err.Text)
}

func (err *ErrLength) Is(target error) bool {
	return target == ErrParse
}

// ErrCharacter reports a non-binary digit in a binary string.
type ErrCharacter byte

func (err ErrCharacter) Error() string {
	return f("invalid character '%c'", byte(err))
}

func (err ErrCharacter) Is(target error) bool {
	return target == ErrParse
}

// ErrNumber reports a decimal string that does not parse.
type ErrNumber struct {
	Text string
	Err  error
}

func (err *ErrNumber) Error() string {
	return f("'%v' is not a number", err.Text)
}

func (err *ErrNumber) Unwrap() error {
	return err.Err
}

func (err *ErrNumber) Is(target error) bool {
	return target == ErrParse
}

// ErrOutOfBounds reports a value that does not fit the target width.
type ErrOutOfBounds struct {
	Value string
	Max   string
}

func (err *ErrOutOfBounds) Error() string {
	return f("value %v is out of bounds (max: %v)", err.Value, err.Max)
}

func (err *ErrOutOfBounds) Is(target error) bool {
	return target == ErrParse
}
