package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zephyrtronium/scicalc"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(scicalc.NewContext(), Options{History: true})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func enter(t *testing.T, m Model, text string) Model {
	t.Helper()
	m.input.SetValue(text)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestEvaluate(t *testing.T) {
	m := newTestModel(t)
	m = enter(t, m, "2sin(30)+√16")
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if m.result != "5" {
		t.Errorf("result = %q, want 5", m.result)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	if m.calc.History().Len() != 1 {
		t.Errorf("history has %d entries, want 1", m.calc.History().Len())
	}
	if !strings.Contains(m.View(), "2sin(30)+√16") {
		t.Error("view does not show the history entry")
	}
}

func TestEvaluateError(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"syntax", "2+", "Syntax ERROR"},
		{"math", "1/0", "Math ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m = enter(t, m, tt.in)
			if m.err == nil {
				t.Fatal("no error")
			}
			if got := scicalc.ErrorText(m.err); got != tt.want {
				t.Errorf("error text = %q, want %q", got, tt.want)
			}
			if m.input.Value() != tt.in {
				t.Errorf("input = %q, want it kept as %q", m.input.Value(), tt.in)
			}
			if m.calc.History().Len() != 0 {
				t.Error("failed evaluation recorded in history")
			}
			if !strings.Contains(m.View(), tt.want) {
				t.Errorf("view does not show %q", tt.want)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)
	m = enter(t, m, "4")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)
	if m.calc.AngleMode() != scicalc.Radians {
		t.Errorf("after DRG, mode = %v, want radians", m.calc.AngleMode())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(Model)
	if got := m.calc.RecallVariable(scicalc.RegM); got != 4 {
		t.Errorf("M = %v, want 4", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	if m.calc.History().Len() != 0 {
		t.Errorf("history has %d entries after clear", m.calc.History().Len())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc did not return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}
}

func TestHistoryDisabled(t *testing.T) {
	m := NewModel(scicalc.NewContext(), Options{Format: scicalc.Fix(2)})
	m = enter(t, m, "1/3")
	if m.result != "0.33" {
		t.Errorf("result = %q, want 0.33", m.result)
	}
	if m.calc.History().Len() != 0 {
		t.Error("evaluation recorded with history disabled")
	}
	if m.View() != "Loading..." {
		t.Error("view rendered before the window size was known")
	}
}
