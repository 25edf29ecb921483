package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyboardPressRelease(t *testing.T) {
	kb := NewKeyboard([]Key{"a", "w", "s"})

	kb.Press("w")
	assert.False(t, kb.Down(0))
	assert.True(t, kb.Down(1))

	kb.Release("w")
	assert.False(t, kb.Down(1))
}

func TestKeyboardIgnoresUnbound(t *testing.T) {
	kb := NewKeyboard([]Key{"a"})
	kb.Press("z")

	assert.False(t, kb.Down(0))
	assert.False(t, kb.Down(5))
	assert.False(t, kb.Down(-1))
	assert.False(t, kb.Bound("z"))
	assert.Equal(t, 1, kb.Len())
}

func TestKeyboardPanicIsTakenOnce(t *testing.T) {
	kb := NewKeyboard(nil)
	kb.Press(KeyPanic)

	assert.True(t, kb.TakePanic())
	assert.False(t, kb.TakePanic())

	kb.Release(KeyPanic)
	assert.False(t, kb.TakePanic())
}

func TestKeyboardQuitLatches(t *testing.T) {
	kb := NewKeyboard(nil)
	assert.False(t, kb.QuitRequested())

	kb.Press(KeyQuit)
	kb.Release(KeyQuit)
	assert.True(t, kb.QuitRequested())
	assert.True(t, kb.CancelRequested())
}

func TestKeyboardCancel(t *testing.T) {
	kb := NewKeyboard(nil)
	kb.Cancel()
	assert.True(t, kb.CancelRequested())
}

func TestKeyboardConcurrentListener(t *testing.T) {
	kb := NewKeyboard([]Key{"a", "s"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			kb.Press("a")
			kb.Release("a")
		}
		kb.Press("s")
	}()
	for i := 0; i < 1000; i++ {
		kb.Down(0)
		kb.TakePanic()
	}
	wg.Wait()

	assert.False(t, kb.Down(0))
	assert.True(t, kb.Down(1))
}
