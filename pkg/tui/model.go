// Package tui is a Bubble Tea front end over a single session.
package tui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agenthands/snailz/pkg/session"
)

const (
	headerHeight = 2
	footerHeight = 3
)

// Model is the Bubble Tea model. Output of print and snail is captured
// from the session and shown in the transcript.
type Model struct {
	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model

	sess   *session.Session
	output *bytes.Buffer
	prompt string

	transcript []string

	history      []string
	historyIndex int // -1 while editing a new line
}

// New wires a fresh session into the model. The session's output is
// redirected into the transcript.
func New(sess *session.Session, prompt string) Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "statement"
	ti.Focus()

	out := &bytes.Buffer{}
	sess.SetOutput(out)

	return Model{
		input:        ti,
		viewport:     viewport.New(80, 20),
		sess:         sess,
		output:       out,
		prompt:       prompt,
		historyIndex: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.execute(m.input.Value())
			m.input.SetValue("")
			return m, nil
		case tea.KeyUp:
			m.recall(1)
			return m, nil
		case tea.KeyDown:
			m.recall(-1)
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.input.Width = max(msg.Width-len(m.prompt)-1, 1)
		m.ready = true
		m.refresh()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs line and appends its echo, output and outcome.
func (m *Model) execute(line string) {
	m.historyIndex = -1
	if line == "" {
		return
	}
	m.history = append(m.history, line)
	m.transcript = append(m.transcript, EchoStyle.Render(m.prompt+line))

	res, err := m.sess.Exec(line)
	for _, d := range res.Diagnostics {
		m.transcript = append(m.transcript, WarningStyle.Render(d.String()))
	}
	if out := strings.TrimSuffix(m.output.String(), "\n"); out != "" {
		m.transcript = append(m.transcript, out)
	}
	m.output.Reset()

	switch {
	case err != nil:
		m.transcript = append(m.transcript, ErrorStyle.Render(err.Error()))
	case !res.Value.IsVoid():
		m.transcript = append(m.transcript, ValueStyle.Render(res.Value.String()))
	}
	m.refresh()
}

// recall walks the input history; step 1 is older, -1 newer.
func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	idx := m.historyIndex + step
	switch {
	case idx < 0:
		m.historyIndex = -1
		m.input.SetValue("")
		return
	case idx >= len(m.history):
		idx = len(m.history) - 1
	}
	m.historyIndex = idx
	m.input.SetValue(m.history[len(m.history)-1-idx])
	m.input.CursorEnd()
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

// Transcript returns the lines shown so far.
func (m Model) Transcript() []string {
	return m.transcript
}

func (m Model) View() string {
	if !m.ready {
		return "\n  starting..."
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("snailz"))
	b.WriteString(" ")
	b.WriteString(HelpStyle.Render(m.sess.ID.String()))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: run  up/down: history  esc: quit"))
	return b.String()
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(sess *session.Session, prompt string) error {
	_, err := tea.NewProgram(New(sess, prompt), tea.WithAltScreen()).Run()
	return err
}
