// Package input collects key presses from an asynchronous listener into a
// table the main loop polls
package input

import "sync/atomic"

// Key identifies a physical key, e.g. "a" or "space"
type Key string

// Special keys
const (
	KeyPanic Key = "space"
	KeyQuit  Key = "esc"
)

// Event is a raw press or release reported by a listener
type Event struct {
	Key     Key
	Pressed bool
}

// Keyboard is the shared state between a listener and the main loop. The
// listener only writes through Handle; the main loop reads and clears. Its
// key index is fixed at construction, so a listener must only be attached
// after NewKeyboard returns.
type Keyboard struct {
	index map[Key]int
	down  []atomic.Bool

	panic atomic.Bool
	quit  atomic.Bool
}

// NewKeyboard builds a table with one slot per key, in order
func NewKeyboard(keys []Key) *Keyboard {
	kb := &Keyboard{
		index: make(map[Key]int, len(keys)),
		down:  make([]atomic.Bool, len(keys)),
	}
	for i, k := range keys {
		if _, dup := kb.index[k]; !dup {
			kb.index[k] = i
		}
	}
	return kb
}

// Handle records an event. It never blocks.
func (kb *Keyboard) Handle(ev Event) {
	switch ev.Key {
	case KeyPanic:
		if ev.Pressed {
			kb.panic.Store(true)
		}
	case KeyQuit:
		if ev.Pressed {
			kb.quit.Store(true)
		}
	default:
		if i, ok := kb.index[ev.Key]; ok {
			kb.down[i].Store(ev.Pressed)
		}
	}
}

// Press is shorthand for Handle with a press event
func (kb *Keyboard) Press(k Key) { kb.Handle(Event{Key: k, Pressed: true}) }

// Release is shorthand for Handle with a release event
func (kb *Keyboard) Release(k Key) { kb.Handle(Event{Key: k, Pressed: false}) }

// Bound reports whether k has a slot in the table
func (kb *Keyboard) Bound(k Key) bool {
	_, ok := kb.index[k]
	return ok
}

// Len returns the number of slots
func (kb *Keyboard) Len() int { return len(kb.down) }

// Down reports whether the key in slot i is currently held
func (kb *Keyboard) Down(i int) bool {
	if i < 0 || i >= len(kb.down) {
		return false
	}
	return kb.down[i].Load()
}

// TakePanic reports and clears a pending panic request
func (kb *Keyboard) TakePanic() bool { return kb.panic.Swap(false) }

// QuitRequested reports whether the quit key was pressed. It stays set.
func (kb *Keyboard) QuitRequested() bool { return kb.quit.Load() }

// CancelRequested is the playback cancel poll; the quit key cancels too
func (kb *Keyboard) CancelRequested() bool { return kb.quit.Load() }

// Cancel requests quit/cancel without a key event, e.g. on SIGINT
func (kb *Keyboard) Cancel() { kb.quit.Store(true) }
