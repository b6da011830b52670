// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/Thermoquad/crcmeter/pkg/config"
	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	"github.com/Thermoquad/crcmeter/pkg/report"
	"github.com/spf13/cobra"
)

var (
	calcInput  string
	calcFormat string
)

var calcCmd = &cobra.Command{
	Use:   "calc [HEX...]",
	Short: "Calculate the Modbus CRC-16 of a byte sequence",
	Long: `Calculate the Modbus CRC-16 of a byte sequence.

Arguments are joined with spaces, so both of these are the same input:
  crcmeter calc 01 10 00 11 00 03 06 1A C4 BA D0
  crcmeter calc "011000110003061AC4BAD0"

With no arguments the --input flag or the configured default is used.`,
	Example: `  crcmeter calc 01 03 00 00 00 01
  crcmeter calc --format json 01 03 00 00 00 01`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&calcInput, "input", "i", "", "Hex bytes to checksum")
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", "", "Output format: text, json, yaml, cbor")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	req := modbuscrc.Request{
		Text:       resolveInput(cmd, args, calcInput),
		Iterations: 1,
	}
	resp, err := modbuscrc.Evaluate(context.Background(), req)
	return writeResponse(cmd, resp, err, outputFormat(calcFormat), false)
}

// outputFormat returns the flag value, falling back to the configured format
func outputFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Format
}

// writeResponse prints resp in the chosen format. Parse failures are shown
// to the user and turned into exit status 1.
func writeResponse(cmd *cobra.Command, resp modbuscrc.Response, err error, format string, benchmark bool) error {
	var pe *modbuscrc.ParseError
	if err != nil && !errors.As(err, &pe) {
		return err
	}

	out := cmd.OutOrStdout()
	if format == config.FormatText || format == "" {
		if !resp.OK() {
			printParseFailure(cmd.ErrOrStderr(), resp)
			return &exitError{code: 1}
		}
		_, werr := io.WriteString(out, renderResponse(resp, benchmark))
		return werr
	}

	if werr := report.Encode(out, format, resp); werr != nil {
		return werr
	}
	if !resp.OK() {
		return &exitError{code: 1}
	}
	return nil
}
