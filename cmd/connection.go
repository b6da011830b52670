// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/Thermoquad/crcmeter/pkg/config"
	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"golang.org/x/term"
)

// PasswordEnv names the environment variable holding the WebSocket password
const PasswordEnv = "CRCMETER_PASSWORD"

// Connection is a byte source for RTU traffic. Read returns (0, nil) when
// the line goes quiet, which closes the current frame.
type Connection interface {
	io.Reader
	io.Closer
}

// SerialConnection wraps a serial port with a read timeout equal to the
// inter-frame gap
type SerialConnection struct {
	port serial.Port
}

func (s *SerialConnection) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *SerialConnection) Close() error {
	return s.port.Close()
}

// ErrConnectionClosed is returned when reading from a closed WebSocket connection
var ErrConnectionClosed = errors.New("websocket connection closed")

// WebSocketConnection reads one RTU frame per binary message
type WebSocketConnection struct {
	conn       *websocket.Conn
	buf        []byte
	bufOffset  int
	pendingGap bool
	closed     bool
}

func (w *WebSocketConnection) Read(p []byte) (int, error) {
	if w.closed {
		return 0, ErrConnectionClosed
	}

	if w.bufOffset < len(w.buf) {
		n := copy(p, w.buf[w.bufOffset:])
		w.bufOffset += n
		return n, nil
	}

	// Message fully consumed: report the boundary once
	if w.pendingGap {
		w.pendingGap = false
		return 0, nil
	}

	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.closed = true
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, ErrConnectionClosed
			}
			return 0, err
		}

		if messageType != websocket.BinaryMessage || len(data) == 0 {
			continue
		}

		w.buf = data
		w.bufOffset = copy(p, w.buf)
		w.pendingGap = true
		return w.bufOffset, nil
	}
}

func (w *WebSocketConnection) Close() error {
	return w.conn.Close()
}

func serialParity(name string) (serial.Parity, error) {
	switch name {
	case "none":
		return serial.NoParity, nil
	case "even", "":
		return serial.EvenParity, nil
	case "odd":
		return serial.OddParity, nil
	}
	return serial.NoParity, fmt.Errorf("unknown parity %q", name)
}

// OpenSerialConnection opens a serial port for RTU monitoring
func OpenSerialConnection(sc config.SerialConfig) (Connection, error) {
	parity, err := serialParity(sc.Parity)
	if err != nil {
		return nil, err
	}

	// Modbus RTU uses 11-bit characters: 2 stop bits when there is no parity
	stopBits := serial.OneStopBit
	if parity == serial.NoParity {
		stopBits = serial.TwoStopBits
	}

	mode := &serial.Mode{
		BaudRate: sc.Baud,
		DataBits: 8,
		Parity:   parity,
		StopBits: stopBits,
	}

	port, err := serial.Open(sc.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", sc.Port, err)
	}

	if err := port.SetReadTimeout(sc.Gap); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", sc.Port, err)
	}

	return &SerialConnection{port: port}, nil
}

// OpenWebSocketConnection opens a WebSocket connection with HTTP Basic auth
func OpenWebSocketConnection(wsURL, username, password string, skipSSLVerify bool) (Connection, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch u.Scheme {
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	return &WebSocketConnection{conn: conn}, nil
}

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	if pw := os.Getenv(PasswordEnv); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Not a terminal
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}

// OpenConnection opens a WebSocket connection if a URL is configured,
// otherwise the serial port
func OpenConnection(c config.Config) (Connection, string, error) {
	if c.WebSocket.URL != "" {
		password := ""
		if c.WebSocket.Username != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		conn, err := OpenWebSocketConnection(c.WebSocket.URL, c.WebSocket.Username, password, c.WebSocket.NoSSLVerify)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("WebSocket: %s", c.WebSocket.URL), nil
	}

	if c.Serial.Port != "" {
		conn, err := OpenSerialConnection(c.Serial)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("Serial: %s @ %d baud, %s parity, gap %v", c.Serial.Port, c.Serial.Baud, c.Serial.Parity, c.Serial.Gap), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}
