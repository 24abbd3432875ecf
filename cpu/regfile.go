// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"github.com/ezrec/bitvm/bits"
)

const (
	REGISTER_COUNT = 16 // Registers per bank.
	DATA_WIDTH     = 8  // Register and memory cell width.
)

type pendingWrite struct {
	index int
	value bits.Bits
}

// RegisterFile is a pair of identical register banks, one per read port.
//
// Reads are latched: the outputs hold the values selected by the last
// SetReadAddresses while enabled. A write is staged by ScheduleWrite and
// applied to both banks by Clock. Register 0 always reads as zero.
type RegisterFile struct {
	Banks [2][REGISTER_COUNT]bits.Bits

	enabled     bool
	pending     *pendingWrite
	readAddress [2]int
	outputs     [2]bits.Bits
}

// NewRegisterFile returns an enabled register file with all registers clear.
func NewRegisterFile() (rf *RegisterFile) {
	rf = &RegisterFile{}
	rf.Reset()
	return
}

// Reset clears both banks and the latched state, and enables the file.
func (rf *RegisterFile) Reset() {
	for bank := range rf.Banks {
		for n := range rf.Banks[bank] {
			rf.Banks[bank][n] = bits.Zero(DATA_WIDTH)
		}
	}
	rf.enabled = true
	rf.pending = nil
	rf.readAddress = [2]int{}
	rf.outputs = [2]bits.Bits{bits.Zero(DATA_WIDTH), bits.Zero(DATA_WIDTH)}
}

// Enabled reports whether the file is enabled.
func (rf *RegisterFile) Enabled() bool {
	return rf.enabled
}

// Enable enables or disables the file.
//
// Disabling drops any pending write and zeroes the outputs. Enabling
// re-latches the outputs from the last read addresses.
func (rf *RegisterFile) Enable(enable bool) {
	rf.enabled = enable
	if !enable {
		rf.pending = nil
		rf.outputs = [2]bits.Bits{bits.Zero(DATA_WIDTH), bits.Zero(DATA_WIDTH)}
		return
	}

	for port, index := range rf.readAddress {
		rf.outputs[port] = rf.Banks[port][index]
	}
}

// SetReadAddresses selects the register read on each port. An index
// outside [0, 15] leaves that port unchanged. Ignored while disabled.
func (rf *RegisterFile) SetReadAddresses(addrs [2]bits.Bits) {
	if !rf.enabled {
		return
	}

	for port, addr := range addrs {
		index := addr.Uint()
		if index >= REGISTER_COUNT {
			continue
		}
		rf.readAddress[port] = int(index)
		rf.outputs[port] = rf.Banks[port][index]
	}
}

// Outputs returns the latched read values.
func (rf *RegisterFile) Outputs() [2]bits.Bits {
	return rf.outputs
}

// ScheduleWrite stages a write for the next Clock. An out of range index is
// ignored. A write to register 0 is accepted and discarded at Clock.
func (rf *RegisterFile) ScheduleWrite(index bits.Bits, value bits.Bits) {
	n := index.Uint()
	if n >= REGISTER_COUNT {
		return
	}
	rf.pending = &pendingWrite{index: int(n), value: value.Resize(DATA_WIDTH)}
}

// Clock commits the pending write to both banks. A port latched on the
// written register sees the new value in the same tick.
func (rf *RegisterFile) Clock() {
	pending := rf.pending
	rf.pending = nil

	if !rf.enabled || pending == nil || pending.index == 0 {
		return
	}

	for bank := range rf.Banks {
		rf.Banks[bank][pending.index] = pending.value
	}

	for port, index := range rf.readAddress {
		if index == pending.index {
			rf.outputs[port] = pending.value
		}
	}
}

// Get returns register n from the first bank.
func (rf *RegisterFile) Get(n int) bits.Bits {
	return rf.Banks[0][n]
}

// Bank returns a copy of one bank.
func (rf *RegisterFile) Bank(n int) [REGISTER_COUNT]bits.Bits {
	return rf.Banks[n]
}

// Preset loads register values directly into both banks, bypassing the
// staged write. Register 0 is never changed.
func (rf *RegisterFile) Preset(values map[int]uint8) {
	for n, value := range values {
		if n <= 0 || n >= REGISTER_COUNT {
			continue
		}
		for bank := range rf.Banks {
			rf.Banks[bank][n] = bits.New(DATA_WIDTH, uint64(value))
		}
	}
	rf.Enable(rf.enabled)
}
