package input

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ListenMIDI attaches a MIDI keyboard: note on/off for a pitch in keys acts
// as press/release of that key. The returned func detaches the listener.
func ListenMIDI(portPrefix string, kb *Keyboard, keys map[uint8]Key) (stop func(), err error) {
	var in drivers.In
	for _, p := range midi.GetInPorts() {
		if strings.HasPrefix(p.String(), portPrefix) {
			in = p
			break
		}
	}
	if in == nil {
		return nil, fmt.Errorf("no MIDI input matching %q", portPrefix)
	}

	stop, err = midi.ListenTo(in, MIDIHandler(kb, keys))
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return stop, nil
}

// MIDIHandler turns incoming messages into keyboard events. Anything other
// than note on/off is ignored.
func MIDIHandler(kb *Keyboard, keys map[uint8]Key) func(msg midi.Message, timestampms int32) {
	return func(msg midi.Message, _ int32) {
		var channel, note, velocity uint8
		switch {
		case msg.GetNoteOn(&channel, &note, &velocity):
			if k, ok := keys[note]; ok {
				kb.Handle(Event{Key: k, Pressed: velocity > 0})
			}
		case msg.GetNoteOff(&channel, &note, &velocity):
			if k, ok := keys[note]; ok {
				kb.Release(k)
			}
		}
	}
}
