// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendCRC(t *testing.T) {
	data := []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x01}
	result := AppendCRC(data)

	want := []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x01, 0x84, 0x0A}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("AppendCRC mismatch (-want +got):\n%s", diff)
	}
	if len(data) != 6 {
		t.Errorf("AppendCRC modified input length")
	}
	if err := VerifyFrame(result); err != nil {
		t.Errorf("AppendCRC produced invalid frame: %v", err)
	}
}

func TestVerifyFrame(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"valid read request", []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x01, 0x84, 0x0A}, nil},
		{"valid instant group", []byte{0x0B, 0x03, 0x20, 0x00, 0x00, 0x22, 0xCE, 0xB9}, nil},
		{"swapped CRC bytes", []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x01, 0x0A, 0x84}, ErrCRCMismatch},
		{"invalid CRC", []byte{0x0B, 0x03, 0x20, 0x00, 0x00, 0x22, 0xFF, 0xFF}, ErrCRCMismatch},
		{"too short", []byte{0x0B, 0x03, 0xFF}, ErrFrameTooShort},
		{"empty", []byte{}, ErrFrameTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyFrame(tt.data)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyFrame_MismatchDetails(t *testing.T) {
	err := VerifyFrame([]byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x01, 0x12, 0x34})
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want *MismatchError", err)
	}
	if me.Expected != 0x840A || me.Received != 0x1234 {
		t.Errorf("expected=0x%s received=0x%s", me.Expected, me.Received)
	}
	if me.Error() != "CRC mismatch: expected 0x840A, got 0x1234" {
		t.Errorf("message = %q", me.Error())
	}
}

func TestFrameCRC(t *testing.T) {
	if got := FrameCRC([]byte{0xAA, 0x84, 0x0A}); got != 0x840A {
		t.Errorf("FrameCRC = 0x%s", got)
	}
	if got := FrameCRC([]byte{0x01}); got != 0 {
		t.Errorf("FrameCRC of 1 byte = 0x%s", got)
	}
}
