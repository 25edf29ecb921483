package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRepeaterReleasesAfterQuiet(t *testing.T) {
	kb := NewKeyboard([]Key{"a"})
	r := NewRepeater(kb, 30*time.Millisecond)

	r.Press("a")
	assert.True(t, kb.Down(0))

	assert.Eventually(t, func() bool { return !kb.Down(0) }, time.Second, 5*time.Millisecond)
}

func TestRepeaterHoldsWhileRepeating(t *testing.T) {
	kb := NewKeyboard([]Key{"a"})
	r := NewRepeater(kb, 100*time.Millisecond)

	for i := 0; i < 5; i++ {
		r.Press("a")
		time.Sleep(20 * time.Millisecond)
		assert.True(t, kb.Down(0))
	}

	assert.Eventually(t, func() bool { return !kb.Down(0) }, time.Second, 5*time.Millisecond)
}

func TestRepeaterSpecialKeys(t *testing.T) {
	kb := NewKeyboard([]Key{"a"})
	r := NewRepeater(kb, time.Millisecond)

	r.Press(KeyPanic)
	r.Press(KeyQuit)
	r.Press("unbound")

	assert.True(t, kb.TakePanic())
	assert.True(t, kb.QuitRequested())
	assert.Empty(t, r.debounce)
}

func TestNewRepeaterDefault(t *testing.T) {
	r := NewRepeater(NewKeyboard(nil), 0)
	assert.Equal(t, DefaultReleaseAfter, r.after)
}
