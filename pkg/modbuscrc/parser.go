// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseHex converts human-entered hex text into bytes.
//
// Whitespace anywhere in the text is ignored. The remaining characters must
// form pairs of hex digits (either case), at most MaxInputBytes of them.
// Length is checked before any digit is decoded.
func ParseHex(text string) ([]byte, error) {
	digits := []rune(stripSpace(text))

	if len(digits)%2 != 0 {
		return nil, &ParseError{
			Kind:    OddLength,
			Message: fmt.Sprintf("odd number of hex digits (%d): every byte needs two digits", len(digits)),
		}
	}

	count := len(digits) / 2
	if count > MaxInputBytes {
		return nil, &ParseError{
			Kind:    TooLong,
			Message: fmt.Sprintf("input is %d bytes (max %d)", count, MaxInputBytes),
		}
	}

	data := make([]byte, count)
	for i := 0; i < count; i++ {
		high, okHigh := hexValue(digits[2*i])
		low, okLow := hexValue(digits[2*i+1])
		if !okHigh || !okLow {
			group := string(digits[2*i : 2*i+2])
			return nil, &ParseError{
				Kind:     HexParse,
				Message:  fmt.Sprintf("invalid hex byte %q at position %d", group, i),
				Group:    group,
				Position: i,
			}
		}
		data[i] = high<<4 | low
	}

	return data, nil
}

// FormatHex renders bytes as space separated uppercase hex pairs
func FormatHex(data []byte) string {
	var s strings.Builder
	for i, b := range data {
		if i > 0 {
			s.WriteByte(' ')
		}
		fmt.Fprintf(&s, "%02X", b)
	}
	return s.String()
}

func stripSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

func hexValue(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
