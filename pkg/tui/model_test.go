package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agenthands/snailz/pkg/session"
	"github.com/agenthands/snailz/pkg/tui"
)

func typeLine(m tea.Model, line string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestModelExecutes(t *testing.T) {
	var m tea.Model = tui.New(session.New(), "> ")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m = typeLine(m, "x = 4")
	m = typeLine(m, "ThereneverisaslowerpaceThansnailscompetinginarace(x + 1)")
	m = typeLine(m, "x * 2")
	m = typeLine(m, "nope")

	got := strings.Join(m.(tui.Model).Transcript(), "\n")
	for _, want := range []string{"> x = 4", "5", "8", "Variable 'nope' not defined"} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q:\n%s", want, got)
		}
	}
	if !strings.Contains(m.View(), "snailz") {
		t.Errorf("view has no header")
	}
}

func TestModelQuits(t *testing.T) {
	m := tui.New(session.New(), "> ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}
