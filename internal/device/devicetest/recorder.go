// Package devicetest provides an in-memory device.Output for tests
package devicetest

import (
	"fmt"
	"sync"

	"github.com/icco/sheetplay/internal/device"
)

// Message kinds recorded by Recorder
const (
	KindNoteOn        = "note-on"
	KindNoteOff       = "note-off"
	KindProgramChange = "program"
	KindControlChange = "cc"
	KindAllNotesOff   = "all-off"
)

// Event is a message captured by Recorder. Data1 is the key, program or
// controller, Data2 the velocity or controller value.
type Event struct {
	Kind    string
	Channel uint8
	Data1   uint8
	Data2   uint8
}

func (e Event) String() string {
	return fmt.Sprintf("%s ch=%d %d %d", e.Kind, e.Channel, e.Data1, e.Data2)
}

// Recorder is an Output that keeps every message in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ device.Output = (*Recorder)(nil)

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) NoteOn(channel, key, velocity uint8) {
	r.add(Event{KindNoteOn, channel, key, velocity})
}

func (r *Recorder) NoteOff(channel, key, velocity uint8) {
	r.add(Event{KindNoteOff, channel, key, velocity})
}

func (r *Recorder) ProgramChange(channel, program uint8) {
	r.add(Event{KindProgramChange, channel, program, 0})
}

func (r *Recorder) ControlChange(channel, controller, value uint8) {
	r.add(Event{KindControlChange, channel, controller, value})
}

func (r *Recorder) AllNotesOff(channel uint8) {
	r.add(Event{KindAllNotesOff, channel, 0, 0})
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset forgets all recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
