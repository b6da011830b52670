// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package logger wraps the standard logger with verbosity levels.
package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Level names accepted in configuration
const (
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
	LevelDebug = "debug"
)

var levels = []string{LevelError, LevelWarn, LevelInfo, LevelDebug}

// Logger writes messages at or below its configured level
type Logger struct {
	*log.Logger
	level int
}

// New creates a logger writing to out. An empty level means info.
func New(out io.Writer, level string) (*Logger, error) {
	index, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return &Logger{
		Logger: log.New(out, "", log.LstdFlags),
		level:  index,
	}, nil
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard, "", 0), level: -1}
}

func parseLevel(level string) (int, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = LevelInfo
	}
	for i, l := range levels {
		if l == level {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q (use %s)", level, strings.Join(levels, ", "))
}

// Level returns the configured level name
func (l *Logger) Level() string {
	if l.level < 0 {
		return "off"
	}
	return levels[l.level]
}

func (l *Logger) logf(level int, tag, format string, args ...interface{}) {
	if level <= l.level {
		l.Printf(tag+" "+format, args...)
	}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(0, "ERROR", format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(1, "WARN", format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(2, "INFO", format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(3, "DEBUG", format, args...)
}
