// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	"github.com/spf13/cobra"
)

const tableColumns = 8

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the CRC lookup tables",
	Long: `Print the high and low byte lookup tables used by the checksum engine,
generated from the reflected polynomial 0xA001.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hi, lo := modbuscrc.Tables()
		out := cmd.OutOrStdout()
		writeTable(out, "TableHi", hi)
		fmt.Fprintln(out)
		writeTable(out, "TableLo", lo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}

func writeTable(w io.Writer, name string, table [256]byte) {
	fmt.Fprintf(w, "%s (polynomial 0x%04X):\n", name, modbuscrc.Polynomial)
	for row := 0; row < len(table); row += tableColumns {
		cells := make([]string, tableColumns)
		for i := range cells {
			cells[i] = fmt.Sprintf("0x%02X", table[row+i])
		}
		fmt.Fprintf(w, "  %s,\n", strings.Join(cells, ", "))
	}
}
