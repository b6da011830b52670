// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package report encodes calculation responses for output and publishing.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Thermoquad/crcmeter/pkg/config"
	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes resp to w in the given format
func Encode(w io.Writer, format string, resp modbuscrc.Response) error {
	data, err := Marshal(format, resp)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal encodes resp in the given format
func Marshal(format string, resp modbuscrc.Response) ([]byte, error) {
	switch format {
	case config.FormatText, "":
		return []byte(FormatText(resp)), nil

	case config.FormatJSON:
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil

	case config.FormatYAML:
		data, err := yaml.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil

	case config.FormatCBOR:
		data, err := cbor.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode CBOR: %w", err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("unknown format %q", format)
}

// FormatText renders resp as aligned label/value lines
func FormatText(resp modbuscrc.Response) string {
	if !resp.OK() {
		return fmt.Sprintf("Error (%s): %s\n", resp.ErrorKind, resp.Message)
	}

	var s strings.Builder
	fmt.Fprintf(&s, "Checksum:       %s\n", resp.ChecksumHex)
	fmt.Fprintf(&s, "Bytes:          %d\n", resp.Bytes)
	fmt.Fprintf(&s, "Iterations:     %d\n", resp.Iterations)
	fmt.Fprintf(&s, "Execution time: %v\n", resp.TotalDuration)
	fmt.Fprintf(&s, "Average:        %v\n", resp.AverageDuration)
	fmt.Fprintf(&s, "Single run:     %v\n", resp.SingleDuration)
	return s.String()
}
