// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rtu

import (
	"errors"
	"fmt"
	"time"

	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
)

// Statistics tracks frame counts and error rates
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalFrames uint64
	ValidFrames uint64
	CRCErrors   uint64
	ShortFrames uint64
	Exceptions  uint64
	TotalBytes  uint64

	// Rates (calculated)
	FrameRate float64 // frames/sec
	ErrorRate float64 // errors/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update counts a received frame
func (s *Statistics) Update(f *Frame) {
	s.TotalFrames++
	s.TotalBytes += uint64(f.Len())

	switch err := f.Err(); {
	case err == nil:
		s.ValidFrames++
		if f.IsException() {
			s.Exceptions++
		}
	case errors.Is(err, modbuscrc.ErrFrameTooShort):
		s.ShortFrames++
	default:
		s.CRCErrors++
	}

	s.LastUpdateTime = time.Now()
}

// Errors returns the number of frames that failed verification
func (s *Statistics) Errors() uint64 {
	return s.CRCErrors + s.ShortFrames
}

// CalculateRates calculates frame and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.TotalFrames) / elapsed
		s.ErrorRate = float64(s.Errors()) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var validPercent, crcPercent, shortPercent float64
	if s.TotalFrames > 0 {
		validPercent = float64(s.ValidFrames) * 100.0 / float64(s.TotalFrames)
		crcPercent = float64(s.CRCErrors) * 100.0 / float64(s.TotalFrames)
		shortPercent = float64(s.ShortFrames) * 100.0 / float64(s.TotalFrames)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Frames:    %8d (%d bytes)\n", s.TotalFrames, s.TotalBytes)
	result += fmt.Sprintf("Valid Frames:    %8d (%.1f%%)\n", s.ValidFrames, validPercent)

	if s.CRCErrors > 0 {
		result += fmt.Sprintf("CRC Errors:      %8d (%.1f%%)\n", s.CRCErrors, crcPercent)
	}
	if s.ShortFrames > 0 {
		result += fmt.Sprintf("Short Frames:    %8d (%.1f%%)\n", s.ShortFrames, shortPercent)
	}
	if s.Exceptions > 0 {
		result += fmt.Sprintf("Exceptions:      %8d\n", s.Exceptions)
	}

	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", s.FrameRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	*s = *NewStatistics()
}
