// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// runCalculation presses enter and feeds the finished calculation back
func runCalculation(t *testing.T, m calcModel) calcModel {
	t.Helper()

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		model, _ = model.Update(cmd())
	}

	switch got := model.(type) {
	case calcModel:
		return got
	case *calcModel:
		return *got
	}
	t.Fatalf("unexpected model type %T", model)
	return m
}

func TestCalcModel_Result(t *testing.T) {
	m := initialCalcModel("01 10 00 11 00 03 06 1A C4 BA D0", 100, 1)
	m = runCalculation(t, m)

	if m.running {
		t.Fatal("calculation still running")
	}
	if m.result == nil {
		t.Fatalf("no result, error %q", m.errorMsg)
	}
	if m.result.ChecksumHex != "7F67" {
		t.Errorf("checksum = %s, want 7F67", m.result.ChecksumHex)
	}
	if m.result.Iterations != 100 {
		t.Errorf("iterations = %d, want 100", m.result.Iterations)
	}

	view := m.View()
	for _, want := range []string{"Result:", "7F67", "Execution time:", "Iteration time:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCalcModel_EscCancelsCalculation(t *testing.T) {
	m := initialCalcModel("01 10 00 11 00 03 06 1A C4 BA D0", 1000000000, 1)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("calculation not started")
	}
	if !strings.Contains(model.View(), "Calculating...") {
		t.Errorf("running state not shown:\n%s", model.View())
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, _ = model.Update(cmd())

	view := model.View()
	if !strings.Contains(view, "Calculation cancelled") {
		t.Errorf("cancellation not shown:\n%s", view)
	}
	if strings.Contains(view, "Result:") {
		t.Error("cancelled calculation shows a result")
	}
}

func TestCalcModel_ParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  string
	}{
		{"010", "OddLength"},
		{strings.Repeat("00", 257), "TooLong"},
		{"ZZ", "HexParse"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			m := runCalculation(t, initialCalcModel(tt.input, 1, 1))
			if m.result != nil {
				t.Fatalf("expected no result, got %s", m.result.ChecksumHex)
			}
			if !strings.HasPrefix(m.errorMsg, tt.kind) {
				t.Errorf("error = %q, want prefix %q", m.errorMsg, tt.kind)
			}
			if !strings.Contains(m.View(), tt.kind) {
				t.Error("error not shown in view")
			}
		})
	}
}

func TestCalcModel_InvalidIterations(t *testing.T) {
	for _, value := range []string{"", "0", "abc", "1000000001"} {
		m := initialCalcModel("01", 1, 1)
		m.iterationsInput.SetValue(value)

		_, cmd := m.startCalculation()
		if cmd != nil {
			t.Errorf("iterations %q: calculation started", value)
		}
		if m.errorMsg != iterationsHint {
			t.Errorf("iterations %q: error = %q", value, m.errorMsg)
		}
	}
}

func TestCalcModel_StepIterations(t *testing.T) {
	m := initialCalcModel("01", 1000, 1)
	m.stepIterations(1)
	if got := m.iterationsInput.Value(); got != "10000" {
		t.Errorf("after up = %s, want 10000", got)
	}

	m.iterationsInput.SetValue("5")
	m.stepIterations(-1)
	if got := m.iterationsInput.Value(); got != "1" {
		t.Errorf("after down = %s, want 1", got)
	}

	m.iterationsInput.SetValue("500000000")
	m.stepIterations(1)
	if got := m.iterationsInput.Value(); got != "1000000000" {
		t.Errorf("capped = %s, want 1000000000", got)
	}
}

func TestCalcModel_FocusCycle(t *testing.T) {
	m := initialCalcModel("", 1, 1)

	order := []int{focusIterationsInput, focusButton, focusBytesInput}
	for _, want := range order {
		m.cycleFocus(1)
		if m.focusedField != want {
			t.Fatalf("focus = %d, want %d", m.focusedField, want)
		}
	}

	m.cycleFocus(-1)
	if m.focusedField != focusButton {
		t.Errorf("reverse focus = %d, want %d", m.focusedField, focusButton)
	}
	if m.bytesInput.Focused() || m.iterationsInput.Focused() {
		t.Error("inputs focused while button is selected")
	}
}
