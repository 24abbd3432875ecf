package io

import (
	"bytes"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bitvm/bits"
)

func port(n uint64) bits.Bits {
	return bits.New(8, n)
}

func value(n uint64) bits.Bits {
	return bits.New(8, n)
}

func TestBus_Defines(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus()
	defines := maps.Collect(bus.Defines())
	assert.Len(defines, 16)
	assert.Equal("240", defines["pixel_x"])
	assert.Equal("247", defines["write_char"])
	assert.Equal("254", defines["rng"])
	assert.Equal("255", defines["controller_input"])
}

func TestBus_Routing(t *testing.T) {
	assert := assert.New(t)

	bus := NewBus()

	bus.OnWrite(port(PORT_PIXEL_X), value(3))
	assert.Equal(3, bus.Screen.X)
	bus.OnWrite(port(PORT_SHOW_NUMBER), value(42))
	assert.Equal("42", bus.Number.String())
	bus.OnWrite(port(PORT_WRITE_CHAR), value(1))
	assert.Equal("a", bus.Chars.Buffer)

	bus.Controller.Set(BUTTON_START, true)
	assert.Equal(uint64(0x80), bus.OnRead(port(PORT_CONTROLLER)).Uint())
	assert.Equal(uint64(0x59), bus.OnRead(port(PORT_RNG)).Uint())

	// Store only ports read as zero.
	assert.True(bus.OnRead(port(PORT_SHOW_NUMBER)).IsZero())
	// Addresses below the device window are not routed.
	assert.True(bus.OnRead(port(100)).IsZero())
	bus.OnWrite(port(100), value(1))

	bus.Reset()
	assert.Equal(0, bus.Screen.X)
	assert.Equal("", bus.Chars.Buffer)
	assert.Equal(Button(0), bus.Controller.Pressed)
}

func TestScreen(t *testing.T) {
	assert := assert.New(t)

	sc := &Screen{}
	sc.OnWrite(port(PORT_PIXEL_X), value(33)) // low 5 bits: 1
	sc.OnWrite(port(PORT_PIXEL_Y), value(2))
	assert.Equal(1, sc.X)
	assert.Equal(2, sc.Y)

	sc.OnWrite(port(PORT_DRAW_PIXEL), value(0))
	assert.True(sc.Buffer[2][1])
	assert.True(sc.OnRead(port(PORT_LOAD_PIXEL)).IsZero(), "load reads the active frame")

	sc.OnWrite(port(PORT_BUFFER_SCREEN), value(0))
	assert.Equal(uint64(1), sc.OnRead(port(PORT_LOAD_PIXEL)).Uint())

	sc.OnWrite(port(PORT_CLEAR_PIXEL), value(0))
	assert.False(sc.Buffer[2][1])
	sc.OnWrite(port(PORT_DRAW_PIXEL), value(0))
	sc.OnWrite(port(PORT_CLEAR_SCREEN_BUFFER), value(0))
	assert.Equal(Frame{}, sc.Buffer)
	assert.True(sc.Active[2][1])

	frame := sc.Render('#', '.')
	assert.Len(frame, SCREEN_SIZE*(SCREEN_SIZE+1))
	// Row 2 is third from the bottom.
	row := (SCREEN_SIZE - 1 - 2) * (SCREEN_SIZE + 1)
	assert.Equal(".#..", frame[row:row+4])
}

func TestCharDisplay(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	cd := &CharDisplay{Output: &out}
	for _, c := range []uint64{8, 5, 12, 12, 15} {
		cd.OnWrite(port(PORT_WRITE_CHAR), value(c))
	}
	assert.Equal("hello", cd.Buffer)
	assert.Equal("", cd.Active)

	cd.OnWrite(port(PORT_BUFFER_CHARS), value(0))
	assert.Equal("hello", cd.Active)
	assert.Equal("hello\n", out.String())

	cd.OnWrite(port(PORT_CLEAR_CHARS_BUFFER), value(0))
	assert.Equal("", cd.Buffer)
	assert.Equal("hello", cd.Active)

	// Out of range indices are dropped; the buffer holds ten characters.
	cd.OnWrite(port(PORT_WRITE_CHAR), value(30))
	assert.Equal("", cd.Buffer)
	for range 12 {
		cd.OnWrite(port(PORT_WRITE_CHAR), value(1))
	}
	assert.Equal("aaaaaaaaaa", cd.Buffer)
}

func TestCharDisplay_Render(t *testing.T) {
	assert := assert.New(t)

	cd := &CharDisplay{Active: "hi"}
	assert.Equal(
		"#.#.###\n"+
			"#.#..#.\n"+
			"###..#.\n"+
			"#.#..#.\n"+
			"#.#.###\n", cd.Render('#', '.'))
}

func TestNumberDisplay(t *testing.T) {
	assert := assert.New(t)

	nd := &NumberDisplay{}
	nd.Reset()
	assert.Equal("0", nd.String())

	nd.OnWrite(port(PORT_SHOW_NUMBER), value(200))
	assert.Equal("200", nd.String())

	nd.OnWrite(port(PORT_SIGNED_MODE), value(0))
	assert.Equal("-56", nd.String())

	nd.OnWrite(port(PORT_UNSIGNED_MODE), value(0))
	assert.Equal("200", nd.String())

	nd.OnWrite(port(PORT_CLEAR_NUMBER), value(0))
	assert.Equal("0", nd.String())
}

func TestRng(t *testing.T) {
	assert := assert.New(t)

	rng := &Rng{}
	var got []uint64
	for range 5 {
		got = append(got, rng.OnRead(port(PORT_RNG)).Uint())
	}
	assert.Equal([]uint64{0x59, 0xb2, 0x65, 0xcb, 0x96}, got)

	// Maximal length: 255 states before repeating.
	rng.Reset()
	seen := map[uint64]bool{}
	for range 255 {
		seen[rng.Next().Uint()] = true
	}
	assert.Len(seen, 255)
	assert.False(seen[0])

	assert.ErrorIs(rng.Seed(0), ErrSeedZero)
	assert.NoError(rng.Seed(0xac))
	assert.Equal(uint64(0x59), rng.Next().Uint())
}

func TestController(t *testing.T) {
	assert := assert.New(t)

	ct := &Controller{}
	ct.Set(BUTTON_LEFT, true)
	ct.Set(BUTTON_A, true)
	assert.Equal(uint64(0x21), ct.OnRead(port(PORT_CONTROLLER)).Uint())

	ct.Set(BUTTON_LEFT, false)
	assert.Equal(uint64(0x20), ct.OnRead(port(PORT_CONTROLLER)).Uint())

	assert.NoError(ct.Press("Up", true))
	assert.Equal(BUTTON_A|BUTTON_UP, ct.Pressed)

	err := ct.Press("turbo", true)
	assert.Equal(ErrButton("turbo"), err)
}
