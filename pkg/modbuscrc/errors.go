// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies input parsing failures
type ErrorKind int

const (
	OddLength ErrorKind = iota + 1
	TooLong
	HexParse
)

// String returns the kind name used in reports
func (k ErrorKind) String() string {
	switch k {
	case OddLength:
		return "OddLength"
	case TooLong:
		return "TooLong"
	case HexParse:
		return "HexParse"
	default:
		return "Unknown"
	}
}

// MarshalText lets encoders emit the kind by name
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Sentinel errors matched by ParseError.Is
var (
	ErrOddLength = errors.New("odd number of hex digits")
	ErrTooLong   = errors.New("input too long")
	ErrHexParse  = errors.New("invalid hex digit")
)

// ErrIterationsOutOfRange is returned for an iteration count outside
// [MinIterations, MaxIterations]
var ErrIterationsOutOfRange = fmt.Errorf("iterations must be between %d and %d", MinIterations, MaxIterations)

// ParseError describes why a hex string could not be decoded
type ParseError struct {
	Kind    ErrorKind
	Message string
	// Group and Position are set for HexParse only. Position is the
	// zero-based index of the byte the group would have decoded to.
	Group    string
	Position int
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return e.Message
}

// Is reports whether target is the sentinel for this error's kind
func (e *ParseError) Is(target error) bool {
	switch e.Kind {
	case OddLength:
		return target == ErrOddLength
	case TooLong:
		return target == ErrTooLong
	case HexParse:
		return target == ErrHexParse
	}
	return false
}

// KindOf returns the parse error kind of err, or 0 if err is not a ParseError
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// ErrCRCMismatch is wrapped by MismatchError
var ErrCRCMismatch = errors.New("CRC mismatch")

// ErrFrameTooShort is returned when a frame cannot hold a CRC
var ErrFrameTooShort = fmt.Errorf("frame shorter than %d bytes", MinFrameSize)

// MismatchError reports a frame whose trailing CRC is wrong
type MismatchError struct {
	Expected Checksum
	Received Checksum
}

// Error implements the error interface
func (e *MismatchError) Error() string {
	return fmt.Sprintf("CRC mismatch: expected 0x%s, got 0x%s", e.Expected, e.Received)
}

// Unwrap returns ErrCRCMismatch
func (e *MismatchError) Unwrap() error {
	return ErrCRCMismatch
}
