// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

// Focus states
const (
	focusBytesInput = iota
	focusIterationsInput
	focusButton
)

const iterationsHint = "Iterations must be a whole number between 1 and 1000000000"

//////////////////////////////////////////////////////////////
// Command
//////////////////////////////////////////////////////////////

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive calculator",
	Long: `Open an interactive form to enter bytes and an iteration count.

Tab moves between fields, Enter calculates. On the iterations field the
up and down arrows multiply or divide the count by 10. Esc cancels a
running calculation, Ctrl+C quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := initialCalcModel(cfg.Input, cfg.Iterations, cfg.Workers)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// calcModel is the Bubble Tea model for the calculator form
type calcModel struct {
	bytesInput      textinput.Model
	iterationsInput textinput.Model
	focusedField    int
	workers         int

	// Running calculation
	running bool
	cancel  context.CancelFunc

	// Last outcome
	result   *modbuscrc.Response
	errorMsg string

	width    int
	quitting bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type calcDoneMsg struct {
	resp modbuscrc.Response
	err  error
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialCalcModel(input string, iterations, workers int) calcModel {
	bi := textinput.New()
	bi.Prompt = ""
	bi.Placeholder = "01 10 00 11 00 03 06 1A C4 BA D0"
	bi.CharLimit = 4 * modbuscrc.MaxInputBytes
	bi.Width = 48
	bi.SetValue(input)
	bi.Focus()

	ii := textinput.New()
	ii.Prompt = ""
	ii.Placeholder = "1000"
	ii.CharLimit = 10
	ii.Width = 12
	ii.SetValue(strconv.Itoa(iterations))

	return calcModel{
		bytesInput:      bi,
		iterationsInput: ii,
		focusedField:    focusBytesInput,
		workers:         workers,
		width:           80,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m calcModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m calcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case calcDoneMsg:
		m.finishCalculation(msg)
	}

	return m, nil
}

func (m *calcModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.running && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case "tab", "down":
		if msg.String() == "down" && m.focusedField == focusIterationsInput {
			m.stepIterations(-1)
			return m, nil
		}
		return m.cycleFocus(1), nil

	case "shift+tab", "up":
		if msg.String() == "up" && m.focusedField == focusIterationsInput {
			m.stepIterations(1)
			return m, nil
		}
		return m.cycleFocus(-1), nil

	case "enter":
		return m.startCalculation()
	}

	var cmd tea.Cmd
	switch m.focusedField {
	case focusBytesInput:
		m.bytesInput, cmd = m.bytesInput.Update(msg)
	case focusIterationsInput:
		m.iterationsInput, cmd = m.iterationsInput.Update(msg)
	}
	return m, cmd
}

func (m *calcModel) cycleFocus(delta int) *calcModel {
	m.focusedField = (m.focusedField + delta + focusButton + 1) % (focusButton + 1)

	m.bytesInput.Blur()
	m.iterationsInput.Blur()
	switch m.focusedField {
	case focusBytesInput:
		m.bytesInput.Focus()
	case focusIterationsInput:
		m.iterationsInput.Focus()
	}
	return m
}

// stepIterations scales the iteration count by a power of ten
func (m *calcModel) stepIterations(direction int) {
	n, err := m.iterations()
	if err != nil {
		n = modbuscrc.MinIterations
	}
	if direction > 0 {
		n = min(n*10, modbuscrc.MaxIterations)
	} else {
		n = max(n/10, modbuscrc.MinIterations)
	}
	m.iterationsInput.SetValue(strconv.Itoa(n))
}

func (m *calcModel) iterations() (int, error) {
	text := strings.ReplaceAll(strings.TrimSpace(m.iterationsInput.Value()), "_", "")
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.New(iterationsHint)
	}
	req := modbuscrc.Request{Iterations: n}
	if err := req.Validate(); err != nil {
		return 0, errors.New(iterationsHint)
	}
	return n, nil
}

func (m *calcModel) startCalculation() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}

	n, err := m.iterations()
	if err != nil {
		m.result = nil
		m.errorMsg = err.Error()
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true
	m.errorMsg = ""

	req := modbuscrc.Request{
		Text:       m.bytesInput.Value(),
		Iterations: n,
		Workers:    m.workers,
	}
	return m, evaluateCmd(ctx, req)
}

func evaluateCmd(ctx context.Context, req modbuscrc.Request) tea.Cmd {
	return func() tea.Msg {
		resp, err := modbuscrc.Evaluate(ctx, req)
		return calcDoneMsg{resp: resp, err: err}
	}
}

func (m *calcModel) finishCalculation(msg calcDoneMsg) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.running = false

	switch {
	case !msg.resp.OK():
		m.result = nil
		m.errorMsg = fmt.Sprintf("%s: %s", msg.resp.ErrorKind, msg.resp.Message)
	case errors.Is(msg.err, context.Canceled):
		m.result = nil
		m.errorMsg = "Calculation cancelled"
	case msg.err != nil:
		m.result = nil
		m.errorMsg = msg.err.Error()
	default:
		resp := msg.resp
		m.result = &resp
		m.errorMsg = ""
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m calcModel) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	fieldStyle := boxStyle
	focusedFieldStyle := boxStyle.
		BorderForeground(lipgloss.Color("12"))

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Padding(0, 2)

	focusedButtonStyle := buttonStyle.
		Background(lipgloss.Color("10"))

	field := func(focus int, view string) string {
		if m.focusedField == focus {
			return focusedFieldStyle.Render(view)
		}
		return fieldStyle.Render(view)
	}

	// Header
	s.WriteString(titleStyle.Render("CRC METER"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render("| Modbus CRC-16 | Tab=switch Enter=calculate Ctrl+C=quit"))
	s.WriteString("\n\n")

	// Form
	s.WriteString(labelStyle.Render("Bytes (hex)"))
	s.WriteString("\n")
	s.WriteString(field(focusBytesInput, m.bytesInput.View()))
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Iterations"))
	s.WriteString(headerStyle.Render("  (up/down: x10)"))
	s.WriteString("\n")
	s.WriteString(field(focusIterationsInput, m.iterationsInput.View()))
	s.WriteString("\n")

	button := buttonStyle
	if m.focusedField == focusButton {
		button = focusedButtonStyle
	}
	s.WriteString(button.Render("Calculate"))
	s.WriteString("\n\n")

	// Outcome
	switch {
	case m.running:
		s.WriteString(warningStyle.Render("Calculating... (Esc to cancel)"))
		s.WriteString("\n")
	case m.errorMsg != "":
		s.WriteString(errorStyle.Render(m.errorMsg))
		s.WriteString("\n")
	case m.result != nil:
		s.WriteString(renderResultLines(*m.result))
	}

	return s.String()
}

func renderResultLines(resp modbuscrc.Response) string {
	line := func(label, value string) string {
		return fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label)), valueStyle.Render(value))
	}

	return line("Result:", resp.ChecksumHex) +
		line("Execution time:", resp.TotalDuration.String()) +
		line("Iteration time:", resp.AverageDuration.String()) +
		line("Single run:", resp.SingleDuration.String())
}
