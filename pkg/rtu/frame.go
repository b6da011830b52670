// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rtu

import (
	"time"

	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
)

// Frame is one Modbus RTU application data unit as seen on the line
type Frame struct {
	raw       []byte
	err       error
	timestamp time.Time
}

// NewFrame copies raw and checks its trailing CRC
func NewFrame(raw []byte) *Frame {
	data := make([]byte, len(raw))
	copy(data, raw)
	return &Frame{
		raw:       data,
		err:       modbuscrc.VerifyFrame(data),
		timestamp: time.Now(),
	}
}

// Raw returns every byte of the frame including the CRC
func (f *Frame) Raw() []byte {
	return f.raw
}

// Len returns the frame length in bytes
func (f *Frame) Len() int {
	return len(f.raw)
}

// Address returns the server address byte (0 for broadcast)
func (f *Frame) Address() uint8 {
	if len(f.raw) < 1 {
		return 0
	}
	return f.raw[0]
}

// Function returns the function code, including the exception bit
func (f *Frame) Function() uint8 {
	if len(f.raw) < 2 {
		return 0
	}
	return f.raw[1]
}

// IsException returns true for exception responses
func (f *Frame) IsException() bool {
	return f.Function()&exceptionBit != 0
}

// Data returns the bytes between the function code and the CRC
func (f *Frame) Data() []byte {
	if len(f.raw) < MinFrameSize {
		return nil
	}
	return f.raw[2 : len(f.raw)-modbuscrc.CRCSize]
}

// CRC returns the checksum carried by the frame
func (f *Frame) CRC() modbuscrc.Checksum {
	return modbuscrc.FrameCRC(f.raw)
}

// Err returns the verification error, or nil for a valid frame
func (f *Frame) Err() error {
	return f.err
}

// Valid returns true if the frame is long enough and its CRC matches
func (f *Frame) Valid() bool {
	return f.err == nil
}

// Timestamp returns when the frame was completed
func (f *Frame) Timestamp() time.Time {
	return f.timestamp
}
