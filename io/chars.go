// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"io"
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/bitvm/bits"
	"github.com/ezrec/bitvm/cpu"
)

const (
	CHARS_LIMIT = 10 // Maximum characters in the buffer.
)

// Character display ports.
const (
	PORT_WRITE_CHAR         = 247 // Store: append character to buffer.
	PORT_BUFFER_CHARS       = 248 // Store: copy buffer to active.
	PORT_CLEAR_CHARS_BUFFER = 249 // Store: clear buffer.
)

// CharDisplay is a ten character text display with a write buffer.
// Characters are indices into cpu.CHARSET; an index outside it is dropped.
type CharDisplay struct {
	Output io.Writer // If set, each pushed buffer is written as a line.

	Buffer string
	Active string
}

func (cd *CharDisplay) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"write_char":         "247",
		"buffer_chars":       "248",
		"clear_chars_buffer": "249",
	})
}

func (cd *CharDisplay) Reset() {
	cd.Buffer = ""
	cd.Active = ""
}

func (cd *CharDisplay) OnRead(addr bits.Bits) bits.Bits {
	return bits.Zero(8)
}

func (cd *CharDisplay) OnWrite(addr bits.Bits, value bits.Bits) {
	switch addr.Uint() {
	case PORT_WRITE_CHAR:
		index := value.Uint()
		if len(cd.Buffer) < CHARS_LIMIT && index < uint64(len(cpu.CHARSET)) {
			cd.Buffer += string(cpu.CHARSET[index])
		}
	case PORT_BUFFER_CHARS:
		cd.Active = cd.Buffer
		if cd.Output != nil {
			cd.Output.Write([]byte(cd.Active + "\n"))
		}
	case PORT_CLEAR_CHARS_BUFFER:
		cd.Buffer = ""
	}
}

// Render draws the active text in the 3x5 display font.
func (cd *CharDisplay) Render(on, off rune) string {
	var sb strings.Builder
	for row := range 5 {
		for n, c := range cd.Active {
			if n > 0 {
				sb.WriteRune(off)
			}
			glyph := font[c]
			for col := 2; col >= 0; col-- {
				if (glyph[row]>>col)&1 != 0 {
					sb.WriteRune(on)
				} else {
					sb.WriteRune(off)
				}
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
