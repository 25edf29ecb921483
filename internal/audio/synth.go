// Package audio provides a built-in software synthesizer so sheets can be
// played without an external MIDI device
package audio

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/icco/sheetplay/internal/device"
	"github.com/icco/sheetplay/internal/notation"
)

const (
	sampleRate   = 44100
	channelCount = 2 // stereo
	bitDepth     = 2 // 16-bit
	midiChannels = 16
)

// WaveType represents different oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSawtooth
	WaveSquare
)

// WaveForProgram picks a wave shape for a General MIDI program. Each block of
// 32 programs shares a shape.
func WaveForProgram(program uint8) WaveType {
	return WaveType((program & 0x7F) / 32)
}

// Voice represents a single playing note
type Voice struct {
	note      uint8
	channel   uint8
	velocity  uint8
	frequency float64
	phase     float64
	envelope  float64 // 0-1 for the attack/release envelope
	held      bool    // note-off arrived while the pedal was down
	releasing bool
	active    bool
}

// Synth is a polyphonic synthesizer that implements device.Output
type Synth struct {
	mu           sync.Mutex
	otoCtx       *oto.Context
	player       *oto.Player
	voices       []*Voice
	maxVoices    int
	masterVolume float64
	waveTypes    [midiChannels]WaveType
	sustain      [midiChannels]bool
}

var _ device.Output = (*Synth)(nil)

// NewSynth opens the system audio output and starts the synth stream
func NewSynth() (*Synth, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	s := newSynth()
	s.otoCtx = otoCtx
	s.player = otoCtx.NewPlayer(&synthReader{synth: s})
	s.player.Play()

	return s, nil
}

func newSynth() *Synth {
	return &Synth{
		maxVoices:    64,
		masterVolume: 0.3,
	}
}

// synthReader implements io.Reader for continuous audio generation
type synthReader struct {
	synth *Synth
}

func (r *synthReader) Read(buf []byte) (int, error) {
	s := r.synth
	s.mu.Lock()
	defer s.mu.Unlock()

	numSamples := len(buf) / (channelCount * bitDepth)

	for i := 0; i < numSamples; i++ {
		var sample float64

		for _, v := range s.voices {
			if v == nil || !v.active {
				continue
			}

			oscSample := generateWave(s.waveTypes[v.channel%midiChannels], v.phase)

			velocityScale := float64(v.velocity) / 127.0
			sample += oscSample * velocityScale * v.envelope * 0.2

			v.phase += v.frequency / sampleRate
			if v.phase >= 1.0 {
				v.phase -= 1.0
			}

			if v.releasing {
				// Release phase - exponential decay
				v.envelope *= 0.9995
				if v.envelope < 0.001 {
					v.active = false
				}
			} else if v.envelope < 1.0 {
				v.envelope += 0.001
				if v.envelope > 1.0 {
					v.envelope = 1.0
				}
			}
		}

		sample *= s.masterVolume
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}

		sampleInt := int16(sample * 32767)

		// Same sample on left and right
		idx := i * channelCount * bitDepth
		buf[idx] = byte(sampleInt)
		buf[idx+1] = byte(sampleInt >> 8)
		buf[idx+2] = byte(sampleInt)
		buf[idx+3] = byte(sampleInt >> 8)
	}

	return len(buf), nil
}

func generateWave(waveType WaveType, phase float64) float64 {
	switch waveType {
	case WaveSquare:
		if phase < 0.5 {
			return 0.8
		}
		return -0.8
	case WaveSawtooth:
		return 2*phase - 1
	case WaveTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// NoteOn triggers a new note
func (s *Synth) NoteOn(channel, note, velocity uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channel %= midiChannels
	if velocity == 0 {
		s.noteOffLocked(channel, note)
		return
	}

	// Find an inactive voice or steal the oldest one
	var voice *Voice
	for _, v := range s.voices {
		if v != nil && !v.active {
			voice = v
			break
		}
	}

	if voice == nil {
		if len(s.voices) < s.maxVoices {
			voice = &Voice{}
			s.voices = append(s.voices, voice)
		} else {
			voice = s.voices[0]
		}
	}

	*voice = Voice{
		note:      note,
		channel:   channel,
		velocity:  velocity,
		frequency: float64(notation.Freq10(int(note))) / 10,
		active:    true,
	}
}

// NoteOff releases a note, or marks it held while the sustain pedal is down
func (s *Synth) NoteOff(channel, note, _ uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteOffLocked(channel%midiChannels, note)
}

func (s *Synth) noteOffLocked(channel, note uint8) {
	for _, v := range s.voices {
		if v != nil && v.active && v.note == note && v.channel == channel && !v.releasing && !v.held {
			if s.sustain[channel] {
				v.held = true
			} else {
				v.releasing = true
			}
			break
		}
	}
}

// ProgramChange selects the wave shape for a channel
func (s *Synth) ProgramChange(channel, program uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waveTypes[channel%midiChannels] = WaveForProgram(program)
}

// ControlChange handles the sustain pedal and all-notes-off controllers.
// Other controllers are ignored.
func (s *Synth) ControlChange(channel, controller, value uint8) {
	switch controller {
	case device.CCSustain:
		s.setSustain(channel%midiChannels, value >= 64)
	case device.CCAllNotesOff:
		s.AllNotesOff(channel)
	}
}

func (s *Synth) setSustain(channel uint8, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sustain[channel] = down
	if down {
		return
	}
	for _, v := range s.voices {
		if v != nil && v.active && v.held && v.channel == channel {
			v.held = false
			v.releasing = true
		}
	}
}

// AllNotesOff releases every note on a channel
func (s *Synth) AllNotesOff(channel uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	channel %= midiChannels
	for _, v := range s.voices {
		if v != nil && v.active && v.channel == channel {
			v.held = false
			v.releasing = true
		}
	}
}

// SetVolume sets the master volume (0.0 - 1.0)
func (s *Synth) SetVolume(vol float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	s.masterVolume = vol
}

// Close silences the synthesizer
func (s *Synth) Close() error {
	s.mu.Lock()
	for _, v := range s.voices {
		if v != nil {
			v.active = false
		}
	}
	s.mu.Unlock()

	// As of oto v3.4 the player is cleaned up when garbage collected.
	return nil
}
