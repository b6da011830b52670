// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Request is a calculation request as entered by a user
type Request struct {
	Text       string
	Iterations int
	Workers    int // 0 or 1 runs the iterations on the calling goroutine
}

// Validate checks the iteration count contract
func (r Request) Validate() error {
	if r.Iterations < MinIterations || r.Iterations > MaxIterations {
		return ErrIterationsOutOfRange
	}
	return nil
}

// Response carries either a checksum with timing or a parse failure.
// Encoders emit the success fields or the failure fields, never both.
type Response struct {
	ChecksumHex     string        `json:"checksum_hex,omitempty" yaml:"checksum_hex,omitempty" cbor:"1,keyasint,omitempty"`
	Bytes           int           `json:"bytes,omitempty" yaml:"bytes,omitempty" cbor:"2,keyasint,omitempty"`
	Iterations      int           `json:"iterations,omitempty" yaml:"iterations,omitempty" cbor:"3,keyasint,omitempty"`
	TotalDuration   time.Duration `json:"total_duration,omitempty" yaml:"total_duration,omitempty" cbor:"4,keyasint,omitempty"`
	AverageDuration time.Duration `json:"average_duration,omitempty" yaml:"average_duration,omitempty" cbor:"5,keyasint,omitempty"`
	SingleDuration  time.Duration `json:"single_duration,omitempty" yaml:"single_duration,omitempty" cbor:"6,keyasint,omitempty"`
	ErrorKind       string        `json:"error_kind,omitempty" yaml:"error_kind,omitempty" cbor:"7,keyasint,omitempty"`
	Message         string        `json:"message,omitempty" yaml:"message,omitempty" cbor:"8,keyasint,omitempty"`
}

// OK reports whether the response holds a checksum
func (r Response) OK() bool {
	return r.ErrorKind == ""
}

// successBody is the encoded form of a checksum response. Zero values
// (empty input, sub-nanosecond averages) are still emitted.
type successBody struct {
	ChecksumHex     string        `json:"checksum_hex" yaml:"checksum_hex" cbor:"1,keyasint"`
	Bytes           int           `json:"bytes" yaml:"bytes" cbor:"2,keyasint"`
	Iterations      int           `json:"iterations" yaml:"iterations" cbor:"3,keyasint"`
	TotalDuration   time.Duration `json:"total_duration" yaml:"total_duration" cbor:"4,keyasint"`
	AverageDuration time.Duration `json:"average_duration" yaml:"average_duration" cbor:"5,keyasint"`
	SingleDuration  time.Duration `json:"single_duration" yaml:"single_duration" cbor:"6,keyasint"`
}

// failureBody is the encoded form of a rejected input
type failureBody struct {
	ErrorKind string `json:"error_kind,omitempty" yaml:"error_kind,omitempty" cbor:"7,keyasint,omitempty"`
	Message   string `json:"message" yaml:"message" cbor:"8,keyasint"`
}

func (r Response) body() interface{} {
	if !r.OK() {
		return failureBody{ErrorKind: r.ErrorKind, Message: r.Message}
	}
	return successBody{
		ChecksumHex:     r.ChecksumHex,
		Bytes:           r.Bytes,
		Iterations:      r.Iterations,
		TotalDuration:   r.TotalDuration,
		AverageDuration: r.AverageDuration,
		SingleDuration:  r.SingleDuration,
	}
}

// MarshalJSON encodes only the fields of the response's outcome
func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.body())
}

// MarshalYAML encodes only the fields of the response's outcome
func (r Response) MarshalYAML() (interface{}, error) {
	return r.body(), nil
}

// MarshalCBOR encodes only the fields of the response's outcome
func (r Response) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(r.body())
}

// Evaluate parses the request text and benchmarks the checksum.
//
// A parse failure is reported in the response (ErrorKind and Message) and
// also returned as the error. An invalid iteration count or a cancelled
// context returns an empty response.
func Evaluate(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	data, err := ParseHex(req.Text)
	if err != nil {
		return failure(err), err
	}

	result, err := BenchmarkParallel(ctx, data, req.Iterations, req.Workers)
	if err != nil {
		return Response{}, err
	}

	return Response{
		ChecksumHex:     result.Checksum.String(),
		Bytes:           len(data),
		Iterations:      result.Iterations,
		TotalDuration:   result.Total,
		AverageDuration: result.Average,
		SingleDuration:  result.Single,
	}, nil
}

func failure(err error) Response {
	var pe *ParseError
	if errors.As(err, &pe) {
		return Response{ErrorKind: pe.Kind.String(), Message: pe.Message}
	}
	return Response{Message: err.Error()}
}
