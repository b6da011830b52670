// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	"github.com/Thermoquad/crcmeter/pkg/rtu"
	"github.com/spf13/cobra"
)

var frameCmd = &cobra.Command{
	Use:   "frame HEX...",
	Short: "Append the CRC to a Modbus RTU frame",
	Long: `Print the frame with its two CRC bytes appended in transmission order.

The input is the address, function code and data of an RTU frame.`,
	Example: `  crcmeter frame 01 03 00 00 00 01
  # 01 03 00 00 00 01 84 0A`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFrame,
}

var verifyCmd = &cobra.Command{
	Use:   "verify HEX...",
	Short: "Check the trailing CRC of a Modbus RTU frame",
	Long: `Check that the last two bytes of a frame are its CRC.

Exits with status 1 when the CRC does not match or the frame is shorter
than 4 bytes.`,
	Example: `  crcmeter verify 01 03 00 00 00 01 84 0A`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runVerify,
}

func init() {
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(verifyCmd)
}

func parseArgs(cmd *cobra.Command, args []string) ([]byte, error) {
	data, err := modbuscrc.ParseHex(strings.Join(args, " "))
	if err != nil {
		var pe *modbuscrc.ParseError
		if errors.As(err, &pe) {
			printParseFailure(cmd.ErrOrStderr(), modbuscrc.Response{ErrorKind: pe.Kind.String(), Message: pe.Message})
			return nil, &exitError{code: 1}
		}
		return nil, err
	}
	return data, nil
}

func runFrame(cmd *cobra.Command, args []string) error {
	data, err := parseArgs(cmd, args)
	if err != nil {
		return err
	}
	if len(data) > modbuscrc.MaxFrameSize-modbuscrc.CRCSize {
		return fmt.Errorf("frame body of %d bytes leaves no room for the CRC (max %d)",
			len(data), modbuscrc.MaxFrameSize-modbuscrc.CRCSize)
	}

	fmt.Fprintln(cmd.OutOrStdout(), modbuscrc.FormatHex(modbuscrc.AppendCRC(data)))
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := parseArgs(cmd, args)
	if err != nil {
		return err
	}

	f := rtu.NewFrame(data)
	out := cmd.OutOrStdout()
	if f.Err() != nil {
		fmt.Fprintln(out, errorStyle.Render("INVALID")+" "+f.Err().Error())
		return &exitError{code: 1}
	}

	fmt.Fprint(out, valueStyle.Render("OK")+" "+rtu.FormatFrame(f))
	return nil
}
