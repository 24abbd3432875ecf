// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"github.com/ezrec/bitvm/bits"
)

const (
	MEMORY_SIZE      = 256 // Data memory bytes.
	INSTRUCTION_SIZE = 256 // Instruction memory words.
	DEVICE_BASE      = 240 // First device mapped address.
)

// Device is a memory mapped peripheral, attached at DEVICE_BASE and above.
type Device interface {
	OnRead(addr bits.Bits) bits.Bits
	OnWrite(addr bits.Bits, value bits.Bits)
}

// IsDevice reports whether a data address is routed to the device.
func IsDevice(addr bits.Bits) bool {
	return addr.Uint() >= DEVICE_BASE
}

// DataMemory is the byte addressed data store.
//
// Reads return zero unless the memory is enabled and in the read state.
// A write is staged and committed at Clock, only when enabled and in the
// write state.
type DataMemory struct {
	Enabled bool
	State   MemoryState

	data    [MEMORY_SIZE]bits.Bits
	pending *pendingWrite
}

// NewDataMemory returns an enabled, cleared memory in the read state.
func NewDataMemory() (dm *DataMemory) {
	dm = &DataMemory{}
	dm.Reset()
	return
}

func (dm *DataMemory) Reset() {
	for n := range dm.data {
		dm.data[n] = bits.Zero(DATA_WIDTH)
	}
	dm.Enabled = true
	dm.State = MEMORY_READ
	dm.pending = nil
}

func (dm *DataMemory) SetState(state MemoryState) {
	dm.State = state
}

// Read returns the byte at addr.
func (dm *DataMemory) Read(addr bits.Bits) bits.Bits {
	n := addr.Uint()
	if !dm.Enabled || dm.State != MEMORY_READ || n >= MEMORY_SIZE {
		return bits.Zero(DATA_WIDTH)
	}
	return dm.data[n]
}

// ScheduleWrite stages a write for the next Clock.
func (dm *DataMemory) ScheduleWrite(addr bits.Bits, value bits.Bits) {
	n := addr.Uint()
	if n >= MEMORY_SIZE {
		return
	}
	dm.pending = &pendingWrite{index: int(n), value: value.Resize(DATA_WIDTH)}
}

// Clock commits the staged write.
func (dm *DataMemory) Clock() {
	pending := dm.pending
	dm.pending = nil
	if pending == nil || !dm.Enabled || dm.State != MEMORY_WRITE {
		return
	}
	dm.data[pending.index] = pending.value
}

// Get returns the byte at n, regardless of state.
func (dm *DataMemory) Get(n int) bits.Bits {
	return dm.data[n]
}

// Preset loads bytes starting at address 0.
func (dm *DataMemory) Preset(values []uint8) {
	for n, value := range values[:min(len(values), MEMORY_SIZE)] {
		dm.data[n] = bits.New(DATA_WIDTH, uint64(value))
	}
}

// Bytes returns the memory contents.
func (dm *DataMemory) Bytes() (out []uint8) {
	out = make([]uint8, MEMORY_SIZE)
	for n, value := range dm.data {
		out[n] = uint8(value.Uint())
	}
	return
}

// InstructionMemory holds the loaded program. Words past the program
// read as NOP.
type InstructionMemory struct {
	Words [INSTRUCTION_SIZE]bits.Bits
	Size  int // Number of words loaded.
}

func (im *InstructionMemory) Reset() {
	for n := range im.Words {
		im.Words[n] = bits.Zero(WORD_WIDTH)
	}
	im.Size = 0
}

// Load replaces the program. A program larger than INSTRUCTION_SIZE is
// rejected and the memory is left unchanged.
func (im *InstructionMemory) Load(words []bits.Bits) (err error) {
	if len(words) > INSTRUCTION_SIZE {
		err = ErrProgramTooLarge
		return
	}

	im.Reset()
	for n, word := range words {
		im.Words[n] = word.Resize(WORD_WIDTH)
	}
	im.Size = len(words)
	return
}

// Fetch returns the word at addr. ok is false outside instruction memory.
func (im *InstructionMemory) Fetch(addr bits.Bits) (word bits.Bits, ok bool) {
	n := addr.Uint()
	if n >= INSTRUCTION_SIZE {
		return
	}
	return im.Words[n], true
}

// ProgramCounter is the address of the next instruction.
type ProgramCounter struct {
	Value bits.Bits
}

func (pc *ProgramCounter) Reset() {
	pc.Value = bits.Zero(ADDRESS_WIDTH)
}

// Clock returns the fetch address for this tick.
func (pc *ProgramCounter) Clock() bits.Bits {
	return pc.Value
}

// Next is the sequential successor of the current address.
func (pc *ProgramCounter) Next() bits.Bits {
	return pc.Value.Add(bits.New(ADDRESS_WIDTH, 1))
}
