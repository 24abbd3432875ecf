package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bitvm/bits"
)

func TestDataMemory(t *testing.T) {
	assert := assert.New(t)

	dm := NewDataMemory()
	assert.True(dm.Enabled)
	assert.Equal(MEMORY_READ, dm.State)

	dm.SetState(MEMORY_WRITE)
	dm.ScheduleWrite(data(10), data(99))
	assert.True(dm.Get(10).IsZero())
	dm.Clock()
	assert.Equal(uint64(99), dm.Get(10).Uint())

	// Reads only in the read state.
	assert.True(dm.Read(data(10)).IsZero())
	dm.SetState(MEMORY_READ)
	assert.Equal(uint64(99), dm.Read(data(10)).Uint())

	dm.Enabled = false
	assert.True(dm.Read(data(10)).IsZero())
}

func TestDataMemory_WriteState(t *testing.T) {
	assert := assert.New(t)

	dm := NewDataMemory()
	dm.ScheduleWrite(data(3), data(1))
	dm.Clock()
	assert.True(dm.Get(3).IsZero(), "read state does not commit")

	dm.SetState(MEMORY_WRITE)
	dm.Enabled = false
	dm.ScheduleWrite(data(3), data(1))
	dm.Clock()
	assert.True(dm.Get(3).IsZero(), "disabled does not commit")
}

func TestDataMemory_Preset(t *testing.T) {
	assert := assert.New(t)

	dm := NewDataMemory()
	dm.Preset([]uint8{6, 2, 5})
	assert.Equal([]uint8{6, 2, 5, 0}, dm.Bytes()[:4])
}

func TestInstructionMemory(t *testing.T) {
	assert := assert.New(t)

	im := &InstructionMemory{}
	err := im.Load([]bits.Bits{MakeCode(OPCODE_HLT).Bits()})
	assert.NoError(err)
	assert.Equal(1, im.Size)

	word, ok := im.Fetch(addr(0))
	assert.True(ok)
	assert.Equal(MakeCode(OPCODE_HLT).Bits(), word)

	word, ok = im.Fetch(addr(INSTRUCTION_SIZE - 1))
	assert.True(ok)
	assert.True(word.IsZero())

	_, ok = im.Fetch(addr(INSTRUCTION_SIZE))
	assert.False(ok)

	big := make([]bits.Bits, INSTRUCTION_SIZE+1)
	err = im.Load(big)
	assert.ErrorIs(err, ErrProgramTooLarge)
	assert.Equal(1, im.Size)
}

func TestProgramCounter(t *testing.T) {
	assert := assert.New(t)

	pc := &ProgramCounter{}
	pc.Reset()
	assert.Equal(uint64(0), pc.Clock().Uint())
	assert.Equal(uint64(1), pc.Next().Uint())

	pc.Value = addr(1023)
	assert.Equal(uint64(0), pc.Next().Uint())
}
