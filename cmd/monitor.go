// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/Thermoquad/crcmeter/pkg/config"
	"github.com/Thermoquad/crcmeter/pkg/rtu"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
)

var (
	portName      string
	baudRate      int
	parity        string
	frameGap      time.Duration
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool
	statsInterval time.Duration
	errorsOnly    bool
	resetStats    bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Verify the CRC of live Modbus RTU traffic",
	Long: `Read Modbus RTU frames from a serial port or a WebSocket bridge and
check each frame's CRC.

On a serial port a frame ends when the line is silent for --gap. Over
WebSocket every binary message is one frame.

Statistics are printed every --stats-interval and when monitoring stops.`,
	Example: `  crcmeter monitor -p /dev/ttyUSB0 -b 19200
  crcmeter monitor -u wss://bridge.local/rtu --username admin`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVarP(&portName, "port", "p", "", "Serial port device")
	monitorCmd.Flags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate")
	monitorCmd.Flags().StringVar(&parity, "parity", "even", "Parity: none, even, odd")
	monitorCmd.Flags().DurationVar(&frameGap, "gap", 10*time.Millisecond, "Line silence that ends a frame")
	monitorCmd.Flags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	monitorCmd.Flags().StringVar(&wsUsername, "username", "", "WebSocket Basic auth username")
	monitorCmd.Flags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification")
	monitorCmd.Flags().DurationVar(&statsInterval, "stats-interval", 10*time.Second, "Statistics interval (0 = only at exit)")
	monitorCmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "Only print frames that fail verification")
	monitorCmd.Flags().BoolVar(&resetStats, "reset-stats", false, "Reset statistics after each periodic report")
	rootCmd.AddCommand(monitorCmd)
}

// monitorConfig applies explicitly set flags over the loaded config
func monitorConfig(cmd *cobra.Command) config.Config {
	c := *cfg
	flags := cmd.Flags()
	if flags.Changed("port") {
		c.Serial.Port = portName
	}
	if flags.Changed("baud") {
		c.Serial.Baud = baudRate
	}
	if flags.Changed("parity") {
		c.Serial.Parity = parity
	}
	if flags.Changed("gap") {
		c.Serial.Gap = frameGap
	}
	if flags.Changed("url") {
		c.WebSocket.URL = wsURL
	}
	if flags.Changed("username") {
		c.WebSocket.Username = wsUsername
	}
	if flags.Changed("no-ssl-verify") {
		c.WebSocket.NoSSLVerify = wsNoSSLVerify
	}
	return c
}

// frameMonitor prints verified frames and keeps statistics
type frameMonitor struct {
	mu         sync.Mutex
	out        io.Writer
	stats      *rtu.Statistics
	errorsOnly bool
}

func newFrameMonitor(out io.Writer, errorsOnly bool) *frameMonitor {
	return &frameMonitor{
		out:        out,
		stats:      rtu.NewStatistics(),
		errorsOnly: errorsOnly,
	}
}

func (m *frameMonitor) handle(f *rtu.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Update(f)
	if f.Valid() {
		if !m.errorsOnly {
			fmt.Fprint(m.out, rtu.FormatFrame(f))
		}
		return
	}
	fmt.Fprint(m.out, errorStyle.Render("CRC ERROR")+" "+rtu.FormatFrame(f))
}

// printStats writes the statistics summary, starting a new interval if reset is set
func (m *frameMonitor) printStats(reset bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.CalculateRates()
	fmt.Fprint(m.out, headerStyle.Render(m.stats.String()))
	if reset {
		m.stats.Reset()
	}
}

// readFrames feeds every frame from r to the monitor until the source ends
func (m *frameMonitor) readFrames(r *rtu.FrameReader) error {
	for {
		f, err := r.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrConnectionClosed) {
				return nil
			}
			return err
		}
		m.handle(f)
	}
}

func runMonitor(cmd *cobra.Command, args []string) error {
	c := monitorConfig(cmd)
	if err := c.Validate(); err != nil {
		return err
	}

	conn, connInfo, err := OpenConnection(c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render("RTU MONITOR"), connInfo)
	fmt.Fprintln(out, headerStyle.Render("Press Ctrl+C to stop"))
	logs.Info("monitoring %s", connInfo)

	mon := newFrameMonitor(out, errorsOnly)
	var g run.Group

	// Frame reader; closing the connection unblocks Read
	{
		reader := rtu.NewFrameReader(conn)
		g.Add(func() error {
			return mon.readFrames(reader)
		}, func(error) {
			conn.Close()
		})
	}

	// Periodic statistics
	if statsInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			ticker := time.NewTicker(statsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mon.printStats(resetStats)
				case <-ctx.Done():
					return nil
				}
			}
		}, func(error) {
			cancel()
		})
	}

	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	err = g.Run()
	mon.printStats(false)

	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		logs.Info("received %v, stopping", sigErr.Signal)
		return nil
	}
	return err
}
