// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the memory mapped devices of the bitvm system: a
// 32x32 screen, a character display, a number display, a random number
// generator and a controller, joined by a Bus at addresses 240 through 255.
package io

import (
	"iter"

	"github.com/ezrec/bitvm/bits"
	"github.com/ezrec/bitvm/cpu"
	"github.com/ezrec/bitvm/internal"
)

// Device is a bus attached device, with its port names for the assembler.
type Device interface {
	cpu.Device
	Defines() iter.Seq2[string, string]
	Reset()
}

// Bus routes device port accesses to the owning device.
type Bus struct {
	Screen     Screen
	Chars      CharDisplay
	Number     NumberDisplay
	Rng        Rng
	Controller Controller
}

var _ cpu.Device = (*Bus)(nil)

// NewBus returns a bus with every device reset.
func NewBus() (bus *Bus) {
	bus = &Bus{}
	bus.Reset()
	return
}

// Devices lists the attached devices.
func (bus *Bus) Devices() []Device {
	return []Device{&bus.Screen, &bus.Chars, &bus.Number, &bus.Rng, &bus.Controller}
}

// device returns the device owning a port, or nil.
func (bus *Bus) device(addr bits.Bits) Device {
	switch port := addr.Uint(); {
	case port >= PORT_PIXEL_X && port <= PORT_CLEAR_SCREEN_BUFFER:
		return &bus.Screen
	case port >= PORT_WRITE_CHAR && port <= PORT_CLEAR_CHARS_BUFFER:
		return &bus.Chars
	case port >= PORT_SHOW_NUMBER && port <= PORT_UNSIGNED_MODE:
		return &bus.Number
	case port == PORT_RNG:
		return &bus.Rng
	case port == PORT_CONTROLLER:
		return &bus.Controller
	}
	return nil
}

func (bus *Bus) Reset() {
	for _, dev := range bus.Devices() {
		dev.Reset()
	}
}

// Defines returns the port names of every device.
func (bus *Bus) Defines() iter.Seq2[string, string] {
	var seqs []iter.Seq2[string, string]
	for _, dev := range bus.Devices() {
		seqs = append(seqs, dev.Defines())
	}
	return internal.Concat2(seqs...)
}

func (bus *Bus) OnRead(addr bits.Bits) bits.Bits {
	dev := bus.device(addr)
	if dev == nil {
		return bits.Zero(8)
	}
	return dev.OnRead(addr)
}

func (bus *Bus) OnWrite(addr bits.Bits, value bits.Bits) {
	dev := bus.device(addr)
	if dev == nil {
		return
	}
	dev.OnWrite(addr, value)
}
