// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package config loads crcmeter defaults from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	"gopkg.in/yaml.v3"
)

// DefaultInput is the request frame shown when nothing else is given
const DefaultInput = "01 10 00 11 00 03 06 1A C4 BA D0"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// Config is the complete application configuration
type Config struct {
	Input      string          `yaml:"input"`
	Iterations int             `yaml:"iterations"`
	Workers    int             `yaml:"workers"`
	Format     string          `yaml:"format"`
	Logging    LoggingConfig   `yaml:"logging"`
	Serial     SerialConfig    `yaml:"serial"`
	WebSocket  WebSocketConfig `yaml:"websocket"`
	MQTT       MQTTConfig      `yaml:"mqtt"`
}

// LoggingConfig selects the log verbosity
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SerialConfig describes the port used by the monitor command
type SerialConfig struct {
	Port   string        `yaml:"port"`
	Baud   int           `yaml:"baud"`
	Parity string        `yaml:"parity"` // none, even or odd
	Gap    time.Duration `yaml:"gap"`    // silence that ends an RTU frame
}

// WebSocketConfig describes a WebSocket bridge carrying RTU frames
type WebSocketConfig struct {
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	NoSSLVerify bool   `yaml:"no_ssl_verify"`
}

// MQTTConfig describes where benchmark results are published
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
	QoS      byte   `yaml:"qos"`
	Retained bool   `yaml:"retained"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Input:      DefaultInput,
		Iterations: modbuscrc.MinIterations,
		Workers:    1,
		Format:     FormatText,
		Logging:    LoggingConfig{Level: "info"},
		Serial: SerialConfig{
			Baud:   9600,
			Parity: "even",
			Gap:    10 * time.Millisecond,
		},
		MQTT: MQTTConfig{
			Topic:    "crcmeter/results",
			ClientID: "crcmeter",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Iterations < modbuscrc.MinIterations || c.Iterations > modbuscrc.MaxIterations {
		return modbuscrc.ErrIterationsOutOfRange
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML, FormatCBOR:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("serial baud must be positive")
	}
	switch c.Serial.Parity {
	case "none", "even", "odd":
	default:
		return fmt.Errorf("unknown serial parity %q", c.Serial.Parity)
	}
	if c.Serial.Gap <= 0 {
		return fmt.Errorf("serial gap must be positive")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2")
	}
	return nil
}
