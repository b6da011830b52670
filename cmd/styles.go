// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"

	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// printParseFailure shows a rejected input in the error style
func printParseFailure(w io.Writer, resp modbuscrc.Response) {
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render(resp.ErrorKind+":"), resp.Message)
}

// renderResponse renders a successful response as styled label/value lines
func renderResponse(resp modbuscrc.Response, benchmark bool) string {
	line := func(label, value string) string {
		return fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label)), valueStyle.Render(value))
	}

	s := line("Checksum:", resp.ChecksumHex)
	if !benchmark {
		return s
	}
	s += line("Bytes:", fmt.Sprintf("%d", resp.Bytes))
	s += line("Iterations:", fmt.Sprintf("%d", resp.Iterations))
	s += line("Execution time:", resp.TotalDuration.String())
	s += line("Average:", resp.AverageDuration.String())
	s += line("Single run:", resp.SingleDuration.String())
	return s
}
