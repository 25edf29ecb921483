// Package player realizes a sheet as device events and oscilloscope frames
package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/icco/sheetplay/internal/device"
	"github.com/icco/sheetplay/internal/notation"
	"github.com/icco/sheetplay/internal/scope"
	"github.com/sirupsen/logrus"
)

const (
	// Channel is the only MIDI channel the player uses
	Channel uint8 = 0

	// FrameInterval is the visualization tick; cancellation is polled once per frame
	FrameInterval = 30 * time.Millisecond

	DefaultVelocityOn  uint8 = 100
	DefaultVelocityOff uint8 = 64

	maxLine = 1 << 20
)

// Canceller is polled once per frame
type Canceller interface {
	CancelRequested() bool
}

// Options tune a Player. Zero values fall back to the defaults.
type Options struct {
	VelocityOn  uint8
	VelocityOff uint8
	Sleep       func(time.Duration)
	Log         logrus.FieldLogger
}

// Player plays sheets one token at a time. Each event's duration comes from
// the state at the moment it is reached.
type Player struct {
	out    device.Output
	screen scope.Screen
	cancel Canceller
	opts   Options
	log    logrus.FieldLogger

	name  string
	state notation.State
}

// New returns a Player driving out and screen
func New(out device.Output, screen scope.Screen, cancel Canceller, opts Options) *Player {
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
	return &Player{
		out:    out,
		screen: screen,
		cancel: cancel,
		opts:   opts,
		log:    opts.Log.WithField("component", "player"),
		state:  notation.NewState(),
	}
}

// State returns the timing and instrument state as it currently stands
func (p *Player) State() notation.State { return p.state }

// Play resets the device and the state, then plays every line of r. It
// returns nil when playback is cancelled; only read errors are returned.
func (p *Player) Play(ctx context.Context, name string, r io.Reader) error {
	p.name = name
	p.state.Reset()
	p.out.AllNotesOff(Channel)
	p.out.ControlChange(Channel, device.CCSustain, device.PedalUp)
	p.out.ProgramChange(Channel, p.state.Program)
	defer func() {
		p.out.AllNotesOff(Channel)
		p.out.ControlChange(Channel, device.CCSustain, device.PedalUp)
	}()

	p.log.WithField("file", name).Info("playback started")

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	for lineNo := 1; sc.Scan(); lineNo++ {
		if !p.playLine(ctx, sc.Text()) {
			p.log.WithField("line", lineNo).Info("playback cancelled")
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}

	p.log.WithField("file", name).Info("playback finished")
	return nil
}

// playLine reports false once playback has been cancelled
func (p *Player) playLine(ctx context.Context, line string) bool {
	sc := notation.NewScanner(line)
	for sc.Next() {
		tok := sc.Token()
		switch tok.Kind {
		case notation.KindDirective:
			p.directive(tok.Directive)
		case notation.KindNote, notation.KindChord:
			if !p.sound(ctx, tok.Notes.Pitches(), p.state.Millis(tok.Value)) {
				return false
			}
		case notation.KindRest:
			if !p.animate(ctx, p.state.Millis(tok.Value), nil) {
				return false
			}
		}
	}
	return true
}

func (p *Player) directive(d notation.Directive) {
	if !p.state.Apply(d) {
		p.log.WithFields(logrus.Fields{"directive": d.Kind.String(), "value": d.Value}).Debug("ignored directive")
		return
	}
	switch d.Kind {
	case notation.DirInstrument:
		p.out.ProgramChange(Channel, p.state.Program)
	case notation.DirSustain:
		if p.state.Sustain {
			p.out.ControlChange(Channel, device.CCSustain, device.PedalDown)
		} else {
			p.out.ControlChange(Channel, device.CCSustain, device.PedalUp)
		}
	}
}

// sound plays a note or chord. With sustain off the note-offs wait for the
// overlap; with sustain on they go out right away and the pedal holds the
// sound.
func (p *Player) sound(ctx context.Context, pitches []uint8, ms int) bool {
	freqs := make([]uint16, 0, len(pitches))
	for _, pitch := range pitches {
		p.out.NoteOn(Channel, pitch, p.opts.VelocityOn)
		freqs = append(freqs, notation.Freq10(int(pitch)))
	}
	p.log.WithFields(logrus.Fields{"pitches": pitches, "ms": ms}).Debug("sound")

	ok := p.animate(ctx, ms, freqs)
	if ok && p.state.OverlapMs > 0 && !p.state.Sustain {
		p.opts.Sleep(time.Duration(p.state.OverlapMs) * time.Millisecond)
	}
	for _, pitch := range pitches {
		p.out.NoteOff(Channel, pitch, p.opts.VelocityOff)
	}
	return ok
}

// animate shows frames for ms milliseconds
func (p *Player) animate(ctx context.Context, ms int, freqs []uint16) bool {
	frame := int(FrameInterval / time.Millisecond)
	for elapsed := 0; elapsed < ms; elapsed += frame {
		p.screen.Show(p.frame(freqs))
		p.opts.Sleep(FrameInterval)
		if p.cancelled(ctx) {
			return false
		}
	}
	return true
}

func (p *Player) cancelled(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return p.cancel != nil && p.cancel.CancelRequested()
}

func (p *Player) frame(freqs []uint16) scope.Frame {
	sus := "OFF"
	if p.state.Sustain {
		sus = "ON"
	}
	return scope.Frame{
		Header: []string{
			"Playing sheet...  Esc=stop",
			fmt.Sprintf("Tempo:%d  Beat:%s  Notes:%d  OVL:%dms  SUS:%s",
				p.state.Tempo, p.state.Beat, len(freqs), p.state.OverlapMs, sus),
			"File: " + p.name,
		},
		Freqs: freqs,
	}
}
