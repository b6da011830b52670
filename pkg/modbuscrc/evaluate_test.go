// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEvaluate_Success(t *testing.T) {
	resp, err := Evaluate(context.Background(), Request{
		Text:       "01 10 00 11 00 03 06 1A C4 BA D0",
		Iterations: 10,
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if !resp.OK() {
		t.Fatalf("response not OK: %+v", resp)
	}
	if resp.ChecksumHex != "7F67" {
		t.Errorf("checksum = %q, want 7F67", resp.ChecksumHex)
	}
	if resp.Bytes != 11 || resp.Iterations != 10 {
		t.Errorf("bytes=%d iterations=%d, want 11/10", resp.Bytes, resp.Iterations)
	}
	if resp.AverageDuration != resp.TotalDuration/10 {
		t.Errorf("average %v != total %v / 10", resp.AverageDuration, resp.TotalDuration)
	}
}

func TestEvaluate_ZeroPadded(t *testing.T) {
	resp, err := Evaluate(context.Background(), Request{Text: "00 04", Iterations: 1})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if resp.ChecksumHex != "0073" {
		t.Errorf("checksum = %q, want 0073", resp.ChecksumHex)
	}
}

func TestEvaluate_EmptyInputJSON(t *testing.T) {
	resp, err := Evaluate(context.Background(), Request{Text: " ", Iterations: 3})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if resp.ChecksumHex != "FFFF" {
		t.Errorf("checksum = %q, want FFFF", resp.ChecksumHex)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"checksum_hex", "bytes", "total_duration", "average_duration"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("success JSON missing %q: %s", key, data)
		}
	}
	if decoded["bytes"] != float64(0) {
		t.Errorf("bytes = %v, want 0", decoded["bytes"])
	}
}

func TestEvaluate_ParseFailures(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kind  string
		match error
	}{
		{"odd", "010", "OddLength", ErrOddLength},
		{"too long", strings.Repeat("00", 257), "TooLong", ErrTooLong},
		{"bad digit", "ZZ", "HexParse", ErrHexParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Evaluate(context.Background(), Request{Text: tt.text, Iterations: 1})
			if !errors.Is(err, tt.match) {
				t.Fatalf("err = %v, want %v", err, tt.match)
			}
			if resp.OK() || resp.ErrorKind != tt.kind {
				t.Errorf("error kind = %q, want %q", resp.ErrorKind, tt.kind)
			}
			if resp.Message == "" {
				t.Error("message should be set")
			}
			if resp.ChecksumHex != "" || resp.TotalDuration != 0 || resp.AverageDuration != 0 {
				t.Errorf("failure response carries result fields: %+v", resp)
			}
		})
	}
}

func TestEvaluate_IterationBounds(t *testing.T) {
	for _, n := range []int{0, -1, MaxIterations + 1} {
		_, err := Evaluate(context.Background(), Request{Text: "01", Iterations: n})
		if !errors.Is(err, ErrIterationsOutOfRange) {
			t.Errorf("iterations=%d: err = %v, want ErrIterationsOutOfRange", n, err)
		}
	}
}

func TestEvaluate_Workers(t *testing.T) {
	resp, err := Evaluate(context.Background(), Request{Text: "0110", Iterations: 500, Workers: 4})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if resp.Iterations != 500 {
		t.Errorf("iterations = %d, want 500", resp.Iterations)
	}
	if resp.ChecksumHex != Calculate([]byte{0x01, 0x10}).String() {
		t.Errorf("checksum = %s", resp.ChecksumHex)
	}
}
