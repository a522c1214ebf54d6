package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/scicalc"
)

// Options configures the calculator screen.
type Options struct {
	// Format is the display format for results.
	Format scicalc.DisplayFormat
	// History enables the history log.
	History bool
}

// Model is the calculator TUI model
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Calculator
	calc   *scicalc.Context
	format scicalc.DisplayFormat
	record bool

	// Display
	result string
	err    error

	// Components
	input    textinput.Model
	viewport viewport.Model
}

// NewModel creates a calculator screen which evaluates with calc.
func NewModel(calc *scicalc.Context, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "2sin(30)+√16"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 76
	ti.Focus()

	return Model{
		calc:   calc,
		format: opts.Format,
		record: opts.History,
		result: "0",
		input:  ti,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.evaluate()
			return m, nil

		case "ctrl+r":
			// DRG
			m.calc.SetAngleMode(m.calc.AngleMode().Next())
			return m, nil

		case "ctrl+p":
			// M+
			m.calc.MemoryAdd(m.calc.Store().Ans())
			return m, nil

		case "ctrl+n":
			// M−
			m.calc.MemorySubtract(m.calc.Store().Ans())
			return m, nil

		case "ctrl+l":
			m.calc.History().Clear()
			m.updateContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		h := max(msg.Height-10, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.viewport.YPosition = 2
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.input.Width = max(msg.Width-8, 10)
		m.updateContent()
	}

	// Update components
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// evaluate runs the input line. On success the input clears; on error it
// stays so it can be corrected.
func (m *Model) evaluate() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	r, err := m.calc.Evaluate(text)
	if err != nil {
		m.err = err
		if ie, ok := err.(scicalc.InputError); ok {
			m.input.SetCursor(ie.Pos() - 1)
		}
		return
	}
	m.err = nil
	m.result = scicalc.Format(r, m.format)
	if m.record {
		m.calc.PushHistory(text, r)
	}
	m.input.Reset()
	m.updateContent()
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	var s strings.Builder
	for _, e := range m.calc.History().Entries() {
		s.WriteString(ExprStyle.Render(e.Expr))
		s.WriteString("\n")
		s.WriteString(lipgloss.PlaceHorizontal(max(m.width-2, 1), lipgloss.Right, ResultStyle.Render(scicalc.Format(e.Result, m.format))))
		s.WriteString("\n")
	}
	m.viewport.SetContent(s.String())
	m.viewport.GotoBottom()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	// Header
	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	// History
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	// Display
	s.WriteString(m.renderDisplay())
	s.WriteString("\n")
	s.WriteString(InputStyle.Render(m.input.View()))

	// Footer
	s.WriteString("\n")
	s.WriteString(RenderHelp("Enter: = • Ctrl+R: DRG • Ctrl+P: M+ • Ctrl+N: M− • Ctrl+L: clear • Esc: quit"))

	return s.String()
}

func (m *Model) renderHeader() string {
	indicators := []string{
		IndicatorStyle.Render(m.calc.AngleMode().Label()),
		m.format.String(),
	}
	if m.calc.RecallVariable(scicalc.RegM) != 0 {
		indicators = append(indicators, MemoryStyle.Render("M"))
	}
	title := TitleStyle.Render("scicalc")
	status := StatusBarStyle.Render(strings.Join(indicators, "  "))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status)
}

func (m *Model) renderDisplay() string {
	w := max(m.width-2, 1)
	if m.err != nil {
		msg := ErrorStyle.Render(scicalc.ErrorText(m.err))
		detail := DetailStyle.Render(m.err.Error())
		return lipgloss.PlaceHorizontal(w, lipgloss.Right, msg) + "\n" + lipgloss.PlaceHorizontal(w, lipgloss.Right, detail)
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Right, ResultStyle.Render(m.result)) + "\n"
}
