// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"

	"github.com/ezrec/bitvm/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit exceeded"))
	ErrConfigKey = errors.New(f("unknown key"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfig reports a configuration file problem.
type ErrConfig struct {
	Key string
	Err error
}

func (err *ErrConfig) Error() string {
	if len(err.Key) == 0 {
		return f("config: %v", err.Err)
	}
	return f("config %v: %v", err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrRegisterName is a register name in a configuration that is not r1..r15.
type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("'%v' is not a writable register", string(err))
}
