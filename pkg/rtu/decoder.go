// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rtu

import "io"

// Decoder accumulates bytes until an inter-frame gap closes a frame.
// RTU has no delimiters; silence on the line is the only boundary.
type Decoder struct {
	buffer []byte
}

// NewDecoder creates a new frame decoder
func NewDecoder() *Decoder {
	return &Decoder{
		buffer: make([]byte, 0, MaxFrameSize),
	}
}

// Reset drops any partially received frame
func (d *Decoder) Reset() {
	d.buffer = d.buffer[:0]
}

// Pending returns the number of buffered bytes
func (d *Decoder) Pending() int {
	return len(d.buffer)
}

// Feed buffers received bytes. Frames that reach MaxFrameSize without a
// gap are closed and returned.
func (d *Decoder) Feed(p []byte) []*Frame {
	var frames []*Frame
	for len(p) > 0 {
		n := MaxFrameSize - len(d.buffer)
		if n > len(p) {
			n = len(p)
		}
		d.buffer = append(d.buffer, p[:n]...)
		p = p[n:]

		if len(d.buffer) == MaxFrameSize {
			frames = append(frames, NewFrame(d.buffer))
			d.Reset()
		}
	}
	return frames
}

// Gap marks line silence and returns the buffered frame, or nil if the
// buffer is empty
func (d *Decoder) Gap() *Frame {
	if len(d.buffer) == 0 {
		return nil
	}
	f := NewFrame(d.buffer)
	d.Reset()
	return f
}

// FrameReader reads frames from a connection whose Read returns (0, nil)
// when the line goes quiet: a serial port with a read timeout, or a
// message-oriented transport between messages.
type FrameReader struct {
	src     io.Reader
	decoder *Decoder
	chunk   []byte
	ready   []*Frame
	err     error
}

// NewFrameReader creates a frame reader on src
func NewFrameReader(src io.Reader) *FrameReader {
	return &FrameReader{
		src:     src,
		decoder: NewDecoder(),
		chunk:   make([]byte, 128),
	}
}

// ReadFrame blocks until a frame is complete. A read error first flushes
// any buffered bytes as a frame and is returned on the following call.
func (r *FrameReader) ReadFrame() (*Frame, error) {
	for {
		if len(r.ready) > 0 {
			f := r.ready[0]
			r.ready = r.ready[1:]
			return f, nil
		}
		if r.err != nil {
			if f := r.decoder.Gap(); f != nil {
				return f, nil
			}
			return nil, r.err
		}

		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.ready = append(r.ready, r.decoder.Feed(r.chunk[:n])...)
		}
		if err != nil {
			r.err = err
			continue
		}
		if n == 0 {
			if f := r.decoder.Gap(); f != nil {
				return f, nil
			}
		}
	}
}
