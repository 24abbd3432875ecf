// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the processor and assembler for the bitvm system.
//
// The processor is an 8-bit machine built from clocked parts: a control
// decoder, a dual-bank register file with sixteen registers (r0 reads as
// zero), a carry-chain ALU with zero and carry flags, a sixteen entry call
// stack, 256 bytes of data memory, and 256 words of instruction memory.
// Addresses 240 through 255 of the data space are routed to an attached
// Device instead of memory.
//
// Each Tick executes one instruction. Writes to the register file, call
// stack and data memory are staged during the tick and committed together
// at its end.
//
// The assembler turns a small assembly language into instruction words,
// supporting labels, defines, macros, and compile-time expression
// evaluation.
package cpu
