// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

// font is a 3x5 glyph per display character, top row first, bit 2 being
// the leftmost column.
var font = map[rune][5]uint8{
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
	'a': {0b010, 0b101, 0b111, 0b101, 0b101},
	'b': {0b110, 0b101, 0b110, 0b101, 0b110},
	'c': {0b011, 0b100, 0b100, 0b100, 0b011},
	'd': {0b110, 0b101, 0b101, 0b101, 0b110},
	'e': {0b111, 0b100, 0b111, 0b100, 0b111},
	'f': {0b111, 0b100, 0b111, 0b100, 0b100},
	'g': {0b011, 0b100, 0b101, 0b101, 0b011},
	'h': {0b101, 0b101, 0b111, 0b101, 0b101},
	'i': {0b111, 0b010, 0b010, 0b010, 0b111},
	'j': {0b001, 0b001, 0b001, 0b101, 0b010},
	'k': {0b101, 0b101, 0b110, 0b101, 0b101},
	'l': {0b100, 0b100, 0b100, 0b100, 0b111},
	'm': {0b101, 0b111, 0b101, 0b101, 0b101},
	'n': {0b101, 0b111, 0b111, 0b101, 0b101},
	'o': {0b010, 0b101, 0b101, 0b101, 0b010},
	'p': {0b110, 0b101, 0b110, 0b100, 0b100},
	'q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'r': {0b110, 0b101, 0b110, 0b101, 0b101},
	's': {0b011, 0b100, 0b010, 0b001, 0b110},
	't': {0b111, 0b010, 0b010, 0b010, 0b010},
	'u': {0b101, 0b101, 0b101, 0b101, 0b010},
	'v': {0b101, 0b101, 0b101, 0b010, 0b010},
	'w': {0b101, 0b101, 0b101, 0b111, 0b101},
	'x': {0b101, 0b010, 0b010, 0b010, 0b101},
	'y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'.': {0b000, 0b000, 0b000, 0b010, 0b010},
	'!': {0b010, 0b010, 0b010, 0b000, 0b010},
	'?': {0b111, 0b001, 0b011, 0b000, 0b010},
}
