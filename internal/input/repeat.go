package input

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultReleaseAfter is how long a terminal key may go without an
// auto-repeat before it counts as released
const DefaultReleaseAfter = 500 * time.Millisecond

// Repeater infers key releases for sources that only report presses, such
// as a terminal. Every press or auto-repeat restarts a per-key debounce
// timer; when it fires the key is released.
type Repeater struct {
	kb    *Keyboard
	after time.Duration

	mu       sync.Mutex
	debounce map[Key]func(f func())
}

// NewRepeater returns a Repeater feeding kb
func NewRepeater(kb *Keyboard, after time.Duration) *Repeater {
	if after <= 0 {
		after = DefaultReleaseAfter
	}
	return &Repeater{
		kb:       kb,
		after:    after,
		debounce: make(map[Key]func(f func())),
	}
}

// Press records a press of k. Panic and quit keys are latched by the
// keyboard and need no release.
func (r *Repeater) Press(k Key) {
	r.kb.Press(k)
	if k == KeyPanic || k == KeyQuit || !r.kb.Bound(k) {
		return
	}
	r.debouncer(k)(func() { r.kb.Release(k) })
}

func (r *Repeater) debouncer(k Key) func(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.debounce[k]
	if !ok {
		d = debounce.New(r.after)
		r.debounce[k] = d
	}
	return d
}
