// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Thermoquad/crcmeter/pkg/config"
	"github.com/Thermoquad/crcmeter/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	// Loaded before any subcommand runs
	cfg  = config.Default()
	logs = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "crcmeter",
	Short: "Modbus CRC-16 calculator and benchmark",
	Long: `crcmeter - Compute the Modbus CRC-16 of a byte sequence and measure how long it takes.

Bytes are entered as hexadecimal pairs; whitespace is ignored, so
"01 10 00 11" and "01100011" are the same input. At most 256 bytes are accepted.

The checksum is printed as 4 hex digits in frame order: the first two digits
are the byte transmitted first after the data.

Defaults can be stored in a YAML file passed with --config.

For WebSocket authentication in the monitor command, the password is read from
the CRCMETER_PASSWORD environment variable, or prompted interactively if not set.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: error, warn, info, debug")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	l, err := logger.New(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	logs = l
	logs.Debug("config loaded from %q, log level %s", configPath, logs.Level())
	return nil
}

// resolveInput picks the hex text from arguments, the --input flag or the
// configured default, in that order
func resolveInput(cmd *cobra.Command, args []string, flagValue string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	if cmd.Flags().Changed("input") {
		return flagValue
	}
	return cfg.Input
}

// exitError carries a process exit code for an error already shown to the user
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode reports err to the user unless already reported, and returns the
// process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
	return 1
}
