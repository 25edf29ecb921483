package live

import (
	"context"
	"io"
	"time"

	"github.com/icco/sheetplay/internal/device"
	"github.com/icco/sheetplay/internal/scope"
	"github.com/sirupsen/logrus"
)

const (
	// Channel is the MIDI channel live notes are sent on
	Channel uint8 = 0

	// PollInterval is the cadence at which key state is sampled
	PollInterval = 30 * time.Millisecond

	DefaultVelocityOn  uint8 = 100
	DefaultVelocityOff uint8 = 64
)

var header = []string{
	"Poly mode: hold multiple keys  A..K with W/E/T/Y/U/O/P",
	"Space = All Notes Off   |   Esc = Quit",
}

// Keys is the key state the engine polls. Slot i matches binding i.
type Keys interface {
	Down(i int) bool
	TakePanic() bool
	QuitRequested() bool
}

// Options tune an Engine. Zero values fall back to the defaults.
type Options struct {
	VelocityOn  uint8
	VelocityOff uint8
	Sleep       func(time.Duration)
	Log         logrus.FieldLogger
}

// Engine edge-detects held keys and sends note on/off for each transition
type Engine struct {
	table    Table
	sounding []bool
	keys     Keys
	out      device.Output
	screen   scope.Screen
	opts     Options
	log      logrus.FieldLogger
}

// New returns an engine for table. keys must have been built from
// table.Keys() so slots line up.
func New(table Table, keys Keys, out device.Output, screen scope.Screen, opts Options) *Engine {
	if opts.VelocityOn == 0 {
		opts.VelocityOn = DefaultVelocityOn
	}
	if opts.VelocityOff == 0 {
		opts.VelocityOff = DefaultVelocityOff
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}
	if screen == nil {
		screen = scope.Discard
	}
	return &Engine{
		table:    table,
		sounding: make([]bool, table.Len()),
		keys:     keys,
		out:      out,
		screen:   screen,
		opts:     opts,
		log:      opts.Log.WithField("component", "live"),
	}
}

// Sounding reports whether binding i is currently sounding
func (e *Engine) Sounding(i int) bool { return e.sounding[i] }

// Step runs one iteration: panic, edge detection, then a frame. It reports
// false once quit has been requested, without sending anything.
func (e *Engine) Step() bool {
	if e.keys.QuitRequested() {
		return false
	}

	if e.keys.TakePanic() {
		e.silence()
		e.out.AllNotesOff(Channel)
		e.log.Debug("panic")
	}

	for i := range e.sounding {
		b := e.table.At(i)
		down := e.keys.Down(i)
		switch {
		case down && !e.sounding[i]:
			e.out.NoteOn(Channel, b.Pitch, e.opts.VelocityOn)
			e.sounding[i] = true
		case !down && e.sounding[i]:
			e.out.NoteOff(Channel, b.Pitch, e.opts.VelocityOff)
			e.sounding[i] = false
		}
	}

	e.screen.Show(e.frame())
	return true
}

// Run polls until quit is requested or ctx is done, then silences
// everything.
func (e *Engine) Run(ctx context.Context) error {
	e.log.WithField("bindings", e.table.Len()).Info("live session started")
	defer e.Close()

	for ctx.Err() == nil && e.Step() {
		e.opts.Sleep(PollInterval)
	}
	return nil
}

// Close sends note-off for every sounding binding, then all-notes-off and
// pedal up
func (e *Engine) Close() {
	e.silence()
	e.out.AllNotesOff(Channel)
	e.out.ControlChange(Channel, device.CCSustain, device.PedalUp)
	e.log.Info("live session ended")
}

func (e *Engine) silence() {
	for i, on := range e.sounding {
		if on {
			e.out.NoteOff(Channel, e.table.At(i).Pitch, e.opts.VelocityOff)
			e.sounding[i] = false
		}
	}
}

func (e *Engine) frame() scope.Frame {
	var freqs []uint16
	for i, on := range e.sounding {
		if on {
			freqs = append(freqs, e.table.At(i).Freq)
		}
	}
	return scope.Frame{Header: header, Freqs: freqs}
}
