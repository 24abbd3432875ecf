// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/bitvm/bits"
)

const (
	SCREEN_SIZE = 32 // Screen width and height in pixels.
)

// Screen device ports.
const (
	PORT_PIXEL_X             = 240 // Store: X coordinate, low 5 bits.
	PORT_PIXEL_Y             = 241 // Store: Y coordinate, low 5 bits.
	PORT_DRAW_PIXEL          = 242 // Store: set buffer pixel at (X, Y).
	PORT_CLEAR_PIXEL         = 243 // Store: clear buffer pixel at (X, Y).
	PORT_LOAD_PIXEL          = 244 // Load: active pixel at (X, Y).
	PORT_BUFFER_SCREEN       = 245 // Store: copy buffer to active.
	PORT_CLEAR_SCREEN_BUFFER = 246 // Store: clear buffer.
)

type Frame [SCREEN_SIZE][SCREEN_SIZE]bool

// Screen is a 32x32 monochrome display with a draw buffer. Y is the row,
// 0 being the bottom.
type Screen struct {
	X, Y   int
	Buffer Frame
	Active Frame
}

func (sc *Screen) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"pixel_x":             "240",
		"pixel_y":             "241",
		"draw_pixel":          "242",
		"clear_pixel":         "243",
		"load_pixel":          "244",
		"buffer_screen":       "245",
		"clear_screen_buffer": "246",
	})
}

func (sc *Screen) Reset() {
	*sc = Screen{}
}

func (sc *Screen) OnRead(addr bits.Bits) (value bits.Bits) {
	value = bits.Zero(8)
	if addr.Uint() == PORT_LOAD_PIXEL && sc.Active[sc.Y][sc.X] {
		value = bits.New(8, 1)
	}
	return
}

func (sc *Screen) OnWrite(addr bits.Bits, value bits.Bits) {
	coord := int(value.Uint() & (SCREEN_SIZE - 1))
	switch addr.Uint() {
	case PORT_PIXEL_X:
		sc.X = coord
	case PORT_PIXEL_Y:
		sc.Y = coord
	case PORT_DRAW_PIXEL:
		sc.Buffer[sc.Y][sc.X] = true
	case PORT_CLEAR_PIXEL:
		sc.Buffer[sc.Y][sc.X] = false
	case PORT_BUFFER_SCREEN:
		sc.Active = sc.Buffer
	case PORT_CLEAR_SCREEN_BUFFER:
		sc.Buffer = Frame{}
	}
}

// Render draws the active frame as text, top row first.
func (sc *Screen) Render(on, off rune) string {
	var sb strings.Builder
	for y := SCREEN_SIZE - 1; y >= 0; y-- {
		for x := range SCREEN_SIZE {
			if sc.Active[y][x] {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
