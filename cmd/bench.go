// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	"github.com/Thermoquad/crcmeter/pkg/report"
	"github.com/spf13/cobra"
)

var (
	benchInput      string
	benchIterations int
	benchWorkers    int
	benchTimeout    time.Duration
	benchFormat     string
	benchPublish    bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [HEX...]",
	Short: "Time repeated checksum calculations",
	Long: `Calculate the checksum N times and report the total and average time.

The iteration count must be between 1 and 1000000000. Use --workers to
split the iterations across goroutines; the total is then wall-clock time
for all of them. Ctrl+C or --timeout stops the run early.

With --publish the JSON result is sent to the MQTT broker and topic from
the config file.`,
	Example: `  crcmeter bench -n 1000000 01 10 00 11 00 03 06 1A C4 BA D0
  crcmeter bench -n 100000000 -w 4 --timeout 30s 01 03 00 00 00 01`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVarP(&benchInput, "input", "i", "", "Hex bytes to checksum")
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "n", 0, "Number of calculations (default from config)")
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", 0, "Worker goroutines (default from config)")
	benchCmd.Flags().DurationVar(&benchTimeout, "timeout", 0, "Stop after this long (0 = no limit)")
	benchCmd.Flags().StringVarP(&benchFormat, "format", "f", "", "Output format: text, json, yaml, cbor")
	benchCmd.Flags().BoolVar(&benchPublish, "publish", false, "Publish the result to the configured MQTT broker")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	req := modbuscrc.Request{
		Text:       resolveInput(cmd, args, benchInput),
		Iterations: cfg.Iterations,
		Workers:    cfg.Workers,
	}
	if cmd.Flags().Changed("iterations") {
		req.Iterations = benchIterations
	}
	if cmd.Flags().Changed("workers") {
		req.Workers = benchWorkers
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w (got %d)", err, req.Iterations)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if benchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, benchTimeout)
		defer cancel()
	}

	logs.Info("benchmarking %d iterations on %d workers", req.Iterations, max(req.Workers, 1))
	resp, err := modbuscrc.Evaluate(ctx, req)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("benchmark stopped: %w", err)
	}
	if err := writeResponse(cmd, resp, err, outputFormat(benchFormat), true); err != nil {
		return err
	}

	if benchPublish {
		return publishResponse(resp)
	}
	return nil
}

func publishResponse(resp modbuscrc.Response) error {
	pub, err := report.NewPublisher(cfg.MQTT)
	if err != nil {
		return err
	}
	defer pub.Close()

	if err := pub.Publish(resp); err != nil {
		return err
	}
	logs.Info("published result to %s on %s", cfg.MQTT.Topic, cfg.MQTT.Broker)
	return nil
}
