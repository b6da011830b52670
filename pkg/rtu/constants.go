// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package rtu splits Modbus RTU traffic into frames, checks their CRC and
// keeps running statistics for monitoring tools.
package rtu

import "github.com/Thermoquad/crcmeter/pkg/modbuscrc"

// Frame size limits
const (
	MinFrameSize = modbuscrc.MinFrameSize
	MaxFrameSize = modbuscrc.MaxFrameSize
)

// Exception responses set the high bit of the function code
const exceptionBit = 0x80

// Public function codes
const (
	FuncReadCoils              = 0x01
	FuncReadDiscreteInputs     = 0x02
	FuncReadHoldingRegisters   = 0x03
	FuncReadInputRegisters     = 0x04
	FuncWriteSingleCoil        = 0x05
	FuncWriteSingleRegister    = 0x06
	FuncReadExceptionStatus    = 0x07
	FuncDiagnostics            = 0x08
	FuncWriteMultipleCoils     = 0x0F
	FuncWriteMultipleRegisters = 0x10
	FuncReportServerID         = 0x11
	FuncMaskWriteRegister      = 0x16
	FuncReadWriteRegisters     = 0x17
)
