package device

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DefaultSendTimeout bounds how long a single message may wait for the port
const DefaultSendTimeout = 50 * time.Millisecond

const queueSize = 64

// Port sends messages to a MIDI output port. Messages are queued to a writer
// goroutine; if the queue stays full for longer than the send timeout the
// message is dropped.
type Port struct {
	name    string
	send    func(msg midi.Message) error
	closer  func() error
	timeout time.Duration
	log     logrus.FieldLogger

	queue  chan midi.Message
	done   chan struct{}
	mu     sync.RWMutex // guards closed against sends racing Close
	closed bool
}

// OpenPort opens the first output port whose name starts with prefix, or the
// first available port when prefix is empty.
func OpenPort(prefix string, timeout time.Duration, log logrus.FieldLogger) (*Port, error) {
	out, err := findOut(prefix)
	if err != nil {
		return nil, err
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("failed to open port %s: %w", out.String(), err)
	}
	return newPort(out.String(), send, out.Close, timeout, log), nil
}

func findOut(prefix string) (drivers.Out, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return nil, errors.New("no MIDI outputs found")
	}
	if prefix == "" {
		return outs[0], nil
	}
	for _, out := range outs {
		if strings.HasPrefix(out.String(), prefix) {
			return out, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output matching %q", prefix)
}

func newPort(name string, send func(midi.Message) error, closer func() error, timeout time.Duration, log logrus.FieldLogger) *Port {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	p := &Port{
		name:    name,
		send:    send,
		closer:  closer,
		timeout: timeout,
		log:     log.WithField("port", name),
		queue:   make(chan midi.Message, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Port) run() {
	defer close(p.done)
	for msg := range p.queue {
		if err := p.send(msg); err != nil {
			p.log.WithError(err).Debugf("send %s failed", msg)
		}
	}
}

func (p *Port) emit(msg midi.Message) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	t := time.NewTimer(p.timeout)
	defer t.Stop()
	select {
	case p.queue <- msg:
	case <-t.C:
		p.log.Debugf("port not ready, dropped %s", msg)
	}
}

// String returns the port name
func (p *Port) String() string { return p.name }

func (p *Port) NoteOn(channel, key, velocity uint8) {
	p.emit(midi.NoteOn(channel&0x0F, key&0x7F, velocity&0x7F))
}

func (p *Port) NoteOff(channel, key, velocity uint8) {
	p.emit(midi.NoteOffVelocity(channel&0x0F, key&0x7F, velocity&0x7F))
}

func (p *Port) ProgramChange(channel, program uint8) {
	p.emit(midi.ProgramChange(channel&0x0F, program&0x7F))
}

func (p *Port) ControlChange(channel, controller, value uint8) {
	p.emit(midi.ControlChange(channel&0x0F, controller&0x7F, value&0x7F))
}

func (p *Port) AllNotesOff(channel uint8) {
	p.ControlChange(channel, CCAllNotesOff, 0)
}

// Close drains the queue and closes the port
func (p *Port) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	if p.closer != nil {
		return p.closer()
	}
	return nil
}

// PortNames lists the available MIDI output and input ports
func PortNames() (outs, ins []string) {
	for _, out := range midi.GetOutPorts() {
		outs = append(outs, out.String())
	}
	for _, in := range midi.GetInPorts() {
		ins = append(ins, in.String())
	}
	return outs, ins
}

// CloseDriver releases the MIDI driver
func CloseDriver() {
	midi.CloseDriver()
}
