package notation

// Defaults applied at process start and at the start of every file
const (
	DefaultTempo     = 120
	DefaultBeat      = BeatQuarter
	DefaultProgram   = 0
	DefaultOverlapMs = 20

	MinTempo   = 1
	MaxTempo   = 799
	MaxProgram = 127
	MaxOverlap = 200
)

// State holds the timing and instrument settings that directives change.
// It is threaded explicitly through playback and reset per file.
type State struct {
	Tempo     int
	Beat      Beat
	QuarterMs int
	Program   uint8
	Sustain   bool
	OverlapMs int
}

// NewState returns the default state: 120 bpm, quarter beat, program 0,
// sustain off, 20ms overlap.
func NewState() State {
	var s State
	s.Reset()
	return s
}

// Reset restores the defaults
func (s *State) Reset() {
	s.Tempo = DefaultTempo
	s.Beat = DefaultBeat
	s.Program = DefaultProgram
	s.Sustain = false
	s.OverlapMs = DefaultOverlapMs
	s.recompute()
}

func (s *State) recompute() {
	s.QuarterMs = QuarterMillis(s.Tempo, s.Beat)
}

// Millis resolves v with the current quarter length
func (s *State) Millis(v Value) int {
	return Millis(s.QuarterMs, v)
}

// Apply mutates the state according to d. It reports false and leaves the
// state untouched when the value is out of range.
func (s *State) Apply(d Directive) bool {
	switch d.Kind {
	case DirTempo:
		if d.Value < MinTempo || d.Value > MaxTempo {
			return false
		}
		s.Tempo = d.Value
		s.recompute()
	case DirBeat:
		if _, ok := beatNames[Beat(d.Value)]; !ok {
			return false
		}
		s.Beat = Beat(d.Value)
		s.recompute()
	case DirInstrument:
		if d.Value < 0 || d.Value > MaxProgram {
			return false
		}
		s.Program = uint8(d.Value) //nolint:gosec // range checked above
	case DirSustain:
		s.Sustain = d.Value != 0
	case DirOverlap:
		if d.Value < 0 || d.Value > MaxOverlap {
			return false
		}
		s.OverlapMs = d.Value
	default:
		return false
	}
	return true
}
