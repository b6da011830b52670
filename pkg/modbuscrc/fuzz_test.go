// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import (
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sigurn/crc16"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// newFuzzRng creates a random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := time.Now().UnixNano()
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if s, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			seed = s
		}
	}
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

func randomBytes(rng *rand.Rand, max int) []byte {
	data := make([]byte, rng.Intn(max+1))
	rng.Read(data)
	return data
}

func TestFuzz_MatchesReference(t *testing.T) {
	rng := newFuzzRng(t)
	table := crc16.MakeTable(crc16.CRC16_MODBUS)

	for round := 0; round < getFuzzRounds(); round++ {
		data := randomBytes(rng, MaxInputBytes)
		got := Calculate(data)
		want := crc16.Checksum(data, table)
		if got.Standard() != want {
			t.Fatalf("round %d: engine 0x%04X, reference 0x%04X for % X", round, got.Standard(), want, data)
		}
	}
}

func TestFuzz_ParseFormattedInput(t *testing.T) {
	rng := newFuzzRng(t)
	separators := []string{"", " ", "\t", "  ", "\n"}

	for round := 0; round < getFuzzRounds(); round++ {
		data := randomBytes(rng, MaxInputBytes)

		var s strings.Builder
		for _, b := range data {
			digits := strconv.FormatUint(uint64(b)|0x100, 16)[1:]
			if rng.Intn(2) == 0 {
				digits = strings.ToUpper(digits)
			}
			s.WriteString(digits)
			s.WriteString(separators[rng.Intn(len(separators))])
		}

		parsed, err := ParseHex(s.String())
		if err != nil {
			t.Fatalf("round %d: ParseHex(%q) error: %v", round, s.String(), err)
		}
		if diff := cmp.Diff(data, parsed); diff != "" {
			t.Fatalf("round %d: mismatch (-want +got):\n%s", round, diff)
		}
	}
}

func TestFuzz_AppendedFramesVerify(t *testing.T) {
	rng := newFuzzRng(t)

	for round := 0; round < getFuzzRounds(); round++ {
		body := randomBytes(rng, MaxFrameSize-CRCSize)
		if len(body) < MinFrameSize-CRCSize {
			continue
		}
		frame := AppendCRC(body)
		if err := VerifyFrame(frame); err != nil {
			t.Fatalf("round %d: %v", round, err)
		}

		// A single flipped bit is always detected by a CRC-16
		corrupt := append([]byte(nil), frame...)
		corrupt[rng.Intn(len(corrupt))] ^= 1 << uint(rng.Intn(8))
		if err := VerifyFrame(corrupt); err == nil {
			t.Fatalf("round %d: single bit error not detected in % X", round, corrupt)
		}
	}
}
