package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/icco/sheetplay/internal/input"
	"github.com/icco/sheetplay/internal/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presses struct {
	keys []input.Key
}

func (p *presses) press(k input.Key) { p.keys = append(p.keys, k) }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestKeysAreForwarded(t *testing.T) {
	p := &presses{}
	m := New(ModePlay, p.press)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Nil(t, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'W'}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Equal(t, []input.Key{"a", "w", input.KeyPanic, input.KeyQuit, input.KeyQuit}, p.keys)
}

func TestFrameIsDrawn(t *testing.T) {
	m := New(ModePlay, func(input.Key) {})
	m, _ = update(t, m, FrameMsg(scope.Frame{Header: []string{"Playing sheet..."}, Freqs: []uint16{4400}}))

	view := m.View()
	assert.Contains(t, view, "Playing sheet...")
	assert.Contains(t, view, "*")
	assert.NotContains(t, view, "Done.")
}

func TestPlayWaitsForKeyAfterDone(t *testing.T) {
	p := &presses{}
	m := New(ModePlay, p.press)

	m, cmd := update(t, m, DoneMsg{})
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Done.")

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.True(t, isQuit(cmd))
	assert.Empty(t, p.keys)
}

func TestPlayShowsError(t *testing.T) {
	m := New(ModePlay, func(input.Key) {})
	m, _ = update(t, m, DoneMsg{Err: errors.New("disk on fire")})
	assert.True(t, strings.Contains(m.View(), "disk on fire"))
}

func TestLiveQuitsOnDone(t *testing.T) {
	m := New(ModeLive, func(input.Key) {})
	_, cmd := update(t, m, DoneMsg{})
	assert.True(t, isQuit(cmd))
}
