// Package device defines the sound output the player and live engine drive
package device

import "github.com/sirupsen/logrus"

// Controller numbers used by the player
const (
	CCSustain     uint8 = 64
	CCAllNotesOff uint8 = 123

	PedalDown uint8 = 127
	PedalUp   uint8 = 0
)

// Output is a sound generating device. Sends are best effort: a device that
// is not ready drops the message instead of blocking or failing.
type Output interface {
	NoteOn(channel, key, velocity uint8)
	NoteOff(channel, key, velocity uint8)
	ProgramChange(channel, program uint8)
	ControlChange(channel, controller, value uint8)
	AllNotesOff(channel uint8)
}

// Startup puts a freshly opened device in a known state: pedal up and the
// default program.
func Startup(out Output, channel, program uint8) {
	out.ControlChange(channel, CCSustain, PedalUp)
	out.ProgramChange(channel, program)
}

// Logged wraps out so every message is written to log at debug level
func Logged(out Output, log logrus.FieldLogger) Output {
	return &logged{out: out, log: log.WithField("component", "device")}
}

type logged struct {
	out Output
	log logrus.FieldLogger
}

func (l *logged) NoteOn(channel, key, velocity uint8) {
	l.log.WithFields(logrus.Fields{"ch": channel, "key": key, "vel": velocity}).Debug("note on")
	l.out.NoteOn(channel, key, velocity)
}

func (l *logged) NoteOff(channel, key, velocity uint8) {
	l.log.WithFields(logrus.Fields{"ch": channel, "key": key, "vel": velocity}).Debug("note off")
	l.out.NoteOff(channel, key, velocity)
}

func (l *logged) ProgramChange(channel, program uint8) {
	l.log.WithFields(logrus.Fields{"ch": channel, "program": program}).Debug("program change")
	l.out.ProgramChange(channel, program)
}

func (l *logged) ControlChange(channel, controller, value uint8) {
	l.log.WithFields(logrus.Fields{"ch": channel, "cc": controller, "value": value}).Debug("control change")
	l.out.ControlChange(channel, controller, value)
}

func (l *logged) AllNotesOff(channel uint8) {
	l.log.WithField("ch", channel).Debug("all notes off")
	l.out.AllNotesOff(channel)
}
