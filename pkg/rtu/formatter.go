// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rtu

import (
	"fmt"
	"strings"
)

// FormatFrame formats a frame into a human-readable string
func FormatFrame(f *Frame) string {
	timestamp := f.Timestamp().Format("15:04:05.000")

	if f.Len() < MinFrameSize {
		return fmt.Sprintf("[%s] SHORT FRAME len=%d\n%s", timestamp, f.Len(), formatHexDump("Raw", f.Raw()))
	}

	result := fmt.Sprintf("[%s] %s (0x%02X) addr=%d len=%d\n",
		timestamp, FormatFunction(f.Function()), f.Function(), f.Address(), f.Len())

	if data := f.Data(); len(data) > 0 {
		result += formatHexDump("Data", data)
	}

	if err := f.Err(); err != nil {
		result += fmt.Sprintf("  CRC: %s (%v)\n", f.CRC(), err)
	} else {
		result += fmt.Sprintf("  CRC: %s OK\n", f.CRC())
	}

	return result
}

// FormatFunction returns the human-readable name for a function code
func FormatFunction(code uint8) string {
	name := functionName(code &^ exceptionBit)
	if code&exceptionBit != 0 {
		return name + "_EXCEPTION"
	}
	return name
}

func functionName(code uint8) string {
	switch code {
	case FuncReadCoils:
		return "READ_COILS"
	case FuncReadDiscreteInputs:
		return "READ_DISCRETE_INPUTS"
	case FuncReadHoldingRegisters:
		return "READ_HOLDING_REGISTERS"
	case FuncReadInputRegisters:
		return "READ_INPUT_REGISTERS"
	case FuncWriteSingleCoil:
		return "WRITE_SINGLE_COIL"
	case FuncWriteSingleRegister:
		return "WRITE_SINGLE_REGISTER"
	case FuncReadExceptionStatus:
		return "READ_EXCEPTION_STATUS"
	case FuncDiagnostics:
		return "DIAGNOSTICS"
	case FuncWriteMultipleCoils:
		return "WRITE_MULTIPLE_COILS"
	case FuncWriteMultipleRegisters:
		return "WRITE_MULTIPLE_REGISTERS"
	case FuncReportServerID:
		return "REPORT_SERVER_ID"
	case FuncMaskWriteRegister:
		return "MASK_WRITE_REGISTER"
	case FuncReadWriteRegisters:
		return "READ_WRITE_MULTIPLE_REGISTERS"
	default:
		return "UNKNOWN"
	}
}

// formatHexDump prints bytes 16 per line under a label
func formatHexDump(label string, data []byte) string {
	var s strings.Builder
	prefix := fmt.Sprintf("  %s: ", label)
	s.WriteString(prefix)
	for i, b := range data {
		if i > 0 && i%16 == 0 {
			s.WriteString("\n")
			s.WriteString(strings.Repeat(" ", len(prefix)))
		}
		fmt.Fprintf(&s, "%02X ", b)
	}
	s.WriteString("\n")
	return s.String()
}
