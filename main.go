// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// crcmeter - Modbus CRC-16 calculator and benchmark
//
// A CLI tool for computing the Modbus RTU checksum of hex-entered bytes and
// timing repeated calculations.

package main

import (
	"os"

	"github.com/Thermoquad/crcmeter/cmd"
)

func main() {
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
