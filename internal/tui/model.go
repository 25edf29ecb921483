package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/icco/sheetplay/internal/input"
	"github.com/icco/sheetplay/internal/scope"
)

// Mode selects how the model reacts once the engine finishes
type Mode int

const (
	// ModePlay keeps the last frame up with a Done banner until a key is pressed
	ModePlay Mode = iota
	// ModeLive quits as soon as the engine stops
	ModeLive
)

// FrameMsg carries a frame from the engine goroutine
type FrameMsg scope.Frame

// DoneMsg tells the model the engine has stopped
type DoneMsg struct {
	Err error
}

var (
	traceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	doneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Model draws scope frames and forwards key presses to the engine
type Model struct {
	mode  Mode
	press func(input.Key)
	frame scope.Frame
	done  bool
	err   error
}

// New returns a model that calls press for every key the user hits
func New(mode Mode, press func(input.Key)) Model {
	return Model{mode: mode, press: press}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.frame = scope.Frame(msg)

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		if m.mode == ModeLive {
			return m, tea.Quit
		}

	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		m.press(keyFor(msg))
	}
	return m, nil
}

// keyFor maps a terminal key to the engine's key names
func keyFor(msg tea.KeyMsg) input.Key {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return input.KeyQuit
	case tea.KeySpace:
		return input.KeyPanic
	}
	return input.Key(strings.ToLower(msg.String()))
}

// View implements tea.Model
func (m Model) View() string {
	lines := m.frame.Lines()
	var b strings.Builder
	for i, line := range lines {
		if i < len(m.frame.Header) {
			h := min(len(m.frame.Header[i]), len(line))
			b.WriteString(headerStyle.Render(line[:h]))
			b.WriteString(traceStyle.Render(line[h:]))
		} else {
			b.WriteString(traceStyle.Render(line))
		}
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
		b.WriteString(helpStyle.Render("Press any key to exit"))
	case m.done:
		b.WriteString(doneStyle.Render("Done.") + " " + helpStyle.Render("Press any key to exit"))
	}
	return b.String()
}

// Screen forwards frames to a running program
type Screen struct {
	program *tea.Program
}

// NewScreen returns a scope.Screen backed by p
func NewScreen(p *tea.Program) *Screen {
	return &Screen{program: p}
}

// Show sends f to the program's update loop
func (s *Screen) Show(f scope.Frame) {
	s.program.Send(FrameMsg(f))
}
