// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseHex_Valid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
	}{
		{"empty", "", []byte{}},
		{"only whitespace", " \t\n ", []byte{}},
		{"single byte", "C4", []byte{0xC4}},
		{"lowercase", "c4", []byte{0xC4}},
		{"mixed case", "aBcD", []byte{0xAB, 0xCD}},
		{"with space", "01 10", []byte{0x01, 0x10}},
		{"without space", "0110", []byte{0x01, 0x10}},
		{"tabs and newlines", "01\t10\n00\r\n11", []byte{0x01, 0x10, 0x00, 0x11}},
		{"space inside byte", "0 1 1 0", []byte{0x01, 0x10}},
		{
			"modbus frame",
			"01 10 00 11 00 03 06 1A C4 BA D0",
			[]byte{0x01, 0x10, 0x00, 0x11, 0x00, 0x03, 0x06, 0x1A, 0xC4, 0xBA, 0xD0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ParseHex(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseHex_WhitespaceInsignificant(t *testing.T) {
	a, errA := ParseHex("01 10")
	b, errB := ParseHex("0110")
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("whitespace changed result (-spaced +compact):\n%s", diff)
	}
}

func TestParseHex_CaseInsensitive(t *testing.T) {
	lower, _ := ParseHex("c4")
	upper, _ := ParseHex("C4")
	if len(lower) != 1 || len(upper) != 1 || lower[0] != upper[0] || lower[0] != 0xC4 {
		t.Errorf("c4=%X C4=%X, want both C4", lower, upper)
	}
}

func TestParseHex_OddLength(t *testing.T) {
	for _, input := range []string{"010", "0", "01 1", strings.Repeat("A", MaxHexDigits+3)} {
		_, err := ParseHex(input)
		if !errors.Is(err, ErrOddLength) {
			t.Errorf("ParseHex(%.10q...) = %v, want ErrOddLength", input, err)
		}
		if KindOf(err) != OddLength {
			t.Errorf("KindOf = %v, want OddLength", KindOf(err))
		}
	}
}

func TestParseHex_Length(t *testing.T) {
	data, err := ParseHex(strings.Repeat("AB", MaxInputBytes))
	if err != nil {
		t.Fatalf("256 bytes should parse: %v", err)
	}
	if len(data) != MaxInputBytes {
		t.Errorf("got %d bytes, want %d", len(data), MaxInputBytes)
	}

	_, err = ParseHex(strings.Repeat("AB", MaxInputBytes+1))
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("257 bytes: got %v, want ErrTooLong", err)
	}
	if KindOf(err) != TooLong {
		t.Errorf("KindOf = %v, want TooLong", KindOf(err))
	}
}

func TestParseHex_LengthCheckedBeforeDigits(t *testing.T) {
	_, err := ParseHex(strings.Repeat("ZZ", MaxInputBytes+1))
	if KindOf(err) != TooLong {
		t.Errorf("got %v, want TooLong before HexParse", err)
	}
	_, err = ParseHex("ZZZ")
	if KindOf(err) != OddLength {
		t.Errorf("got %v, want OddLength before HexParse", err)
	}
}

func TestParseHex_InvalidDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		group    string
		position int
	}{
		{"ZZ", "ZZ", "ZZ", 0},
		{"second byte", "01 G2", "G2", 1},
		{"low nibble", "01 10 0x", "0x", 2},
		{"sign", "+1", "+1", 0},
		{"unicode", "01é1", "é1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHex(tt.input)
			if !errors.Is(err, ErrHexParse) {
				t.Fatalf("ParseHex(%q) = %v, want ErrHexParse", tt.input, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error is %T, want *ParseError", err)
			}
			if pe.Kind != HexParse || pe.Group != tt.group || pe.Position != tt.position {
				t.Errorf("got kind=%v group=%q position=%d, want HexParse %q %d",
					pe.Kind, pe.Group, pe.Position, tt.group, tt.position)
			}
			if !strings.Contains(pe.Error(), tt.group) {
				t.Errorf("message %q should name the group", pe.Error())
			}
		})
	}
}

func TestParseError_IsOnlyMatchesOwnKind(t *testing.T) {
	_, err := ParseHex("ZZ")
	if errors.Is(err, ErrOddLength) || errors.Is(err, ErrTooLong) {
		t.Errorf("HexParse error matched another sentinel")
	}
	if KindOf(errors.New("other")) != 0 {
		t.Errorf("KindOf non-parse error should be 0")
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := map[ErrorKind]string{
		OddLength:    "OddLength",
		TooLong:      "TooLong",
		HexParse:     "HexParse",
		ErrorKind(0): "Unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(kind), got, want)
		}
	}
}

func TestFormatHex(t *testing.T) {
	if got := FormatHex([]byte{0x01, 0x10, 0xc4}); got != "01 10 C4" {
		t.Errorf("FormatHex = %q", got)
	}
	if got := FormatHex(nil); got != "" {
		t.Errorf("FormatHex(nil) = %q", got)
	}
}
