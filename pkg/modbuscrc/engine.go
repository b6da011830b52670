// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import "fmt"

// Checksum is a computed CRC value laid out as (hi << 8) | lo
type Checksum uint16

// String formats the checksum as 4 uppercase hex digits
func (c Checksum) String() string {
	return fmt.Sprintf("%04X", uint16(c))
}

// Bytes returns the checksum in the order it is transmitted after a frame
func (c Checksum) Bytes() []byte {
	return []byte{byte(c >> 8), byte(c)}
}

// Standard returns the value as listed in CRC catalogues (0x4B37 for
// "123456789"), which is the register pair with its bytes swapped.
func (c Checksum) Standard() uint16 {
	return uint16(c)<<8 | uint16(c)>>8
}

// Engine holds the running CRC register pair
type Engine struct {
	hi byte
	lo byte
}

// NewEngine creates an engine with the initial register pair
func NewEngine() *Engine {
	return &Engine{hi: initRegister, lo: initRegister}
}

// Reset restores the initial register pair
func (e *Engine) Reset() {
	e.hi = initRegister
	e.lo = initRegister
}

// Calculate resets the registers and computes the checksum of data.
// Registers never carry over between calls.
func (e *Engine) Calculate(data []byte) Checksum {
	e.Reset()
	for _, b := range data {
		index := e.hi ^ b
		e.hi = e.lo ^ tableHi[index]
		e.lo = tableLo[index]
	}
	return e.Sum()
}

// Sum returns the current register pair as a checksum
func (e *Engine) Sum() Checksum {
	return Checksum(uint16(e.hi)<<8 | uint16(e.lo))
}

// Calculate computes the checksum of data with a fresh engine
func Calculate(data []byte) Checksum {
	var e Engine
	return e.Calculate(data)
}
