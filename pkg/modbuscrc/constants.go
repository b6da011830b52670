// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package modbuscrc implements the table-driven Modbus CRC-16 checksum,
// a hexadecimal input parser and a repeated-iteration benchmark harness.
//
// The checksum uses the Modbus RTU profile: reflected polynomial 0xA001 and
// an initial register value of 0xFFFF. The engine keeps the running CRC as a
// pair of byte registers (hi, lo), the layout used by the classic Modbus
// reference tables, so the computed value is already in frame byte order.
package modbuscrc

// CRC-16/MODBUS configuration
const (
	Polynomial   = 0xA001
	initRegister = 0xFF
	Initial      = uint16(initRegister)<<8 | initRegister
)

// Input and benchmark limits
const (
	MaxInputBytes = 256
	MaxHexDigits  = MaxInputBytes * 2

	MinIterations = 1
	MaxIterations = 1_000_000_000
)

// Modbus RTU frame limits
const (
	MinFrameSize = 4 // address + function + 2 CRC bytes
	MaxFrameSize = 256
	CRCSize      = 2
)
