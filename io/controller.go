// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/bitvm/bits"
)

const (
	PORT_CONTROLLER = 255 // Load: button state.
)

// Button is a controller button bit.
type Button uint8

const (
	BUTTON_LEFT   = Button(1 << 0)
	BUTTON_DOWN   = Button(1 << 1)
	BUTTON_RIGHT  = Button(1 << 2)
	BUTTON_UP     = Button(1 << 3)
	BUTTON_B      = Button(1 << 4)
	BUTTON_A      = Button(1 << 5)
	BUTTON_SELECT = Button(1 << 6)
	BUTTON_START  = Button(1 << 7)
)

var buttonMap = map[string]Button{
	"left":   BUTTON_LEFT,
	"down":   BUTTON_DOWN,
	"right":  BUTTON_RIGHT,
	"up":     BUTTON_UP,
	"b":      BUTTON_B,
	"a":      BUTTON_A,
	"select": BUTTON_SELECT,
	"start":  BUTTON_START,
}

// Controller is an eight button game pad.
type Controller struct {
	Pressed Button
}

func (ct *Controller) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"controller_input": "255",
	})
}

func (ct *Controller) Reset() {
	ct.Pressed = 0
}

// Set presses or releases a button.
func (ct *Controller) Set(button Button, pressed bool) {
	if pressed {
		ct.Pressed |= button
	} else {
		ct.Pressed &^= button
	}
}

// Press presses or releases a button by name.
func (ct *Controller) Press(name string, pressed bool) (err error) {
	button, ok := buttonMap[strings.ToLower(name)]
	if !ok {
		err = ErrButton(name)
		return
	}
	ct.Set(button, pressed)
	return
}

func (ct *Controller) OnRead(addr bits.Bits) bits.Bits {
	return bits.New(8, uint64(ct.Pressed))
}

func (ct *Controller) OnWrite(addr bits.Bits, value bits.Bits) {
}
