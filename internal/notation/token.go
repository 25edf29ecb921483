package notation

import "strings"

// MaxChordNotes is the number of pitches a chord can hold. Further notes
// are parsed and dropped.
const MaxChordNotes = 8

// maxNumber bounds directive values so long digit runs can't overflow
const maxNumber = 1 << 20

// Kind identifies what a token is
type Kind int

const (
	KindDirective Kind = iota + 1
	KindNote
	KindChord
	KindRest
)

func (k Kind) String() string {
	switch k {
	case KindDirective:
		return "directive"
	case KindNote:
		return "note"
	case KindChord:
		return "chord"
	case KindRest:
		return "rest"
	default:
		return "unknown"
	}
}

// DirectiveKind identifies which setting a directive changes
type DirectiveKind int

const (
	DirTempo      DirectiveKind = iota + 1 // T=
	DirBeat                                // B=
	DirInstrument                          // I=
	DirSustain                             // SUS=
	DirOverlap                             // OVL=
)

func (k DirectiveKind) String() string {
	switch k {
	case DirTempo:
		return "T"
	case DirBeat:
		return "B"
	case DirInstrument:
		return "I"
	case DirSustain:
		return "SUS"
	case DirOverlap:
		return "OVL"
	default:
		return "?"
	}
}

// Directive is a KEY=value setting. Value is the raw number as written, a
// Beat for DirBeat, and 1 or 0 for DirSustain.
type Directive struct {
	Kind  DirectiveKind
	Value int
}

// Chord is a bounded set of pitches
type Chord struct {
	pitches [MaxChordNotes]uint8
	n       int
}

// Add appends a pitch. It reports false and drops the pitch once the chord
// is full.
func (c *Chord) Add(pitch uint8) bool {
	if c.n == MaxChordNotes {
		return false
	}
	c.pitches[c.n] = pitch
	c.n++
	return true
}

// Len returns the number of pitches
func (c Chord) Len() int { return c.n }

// Pitches returns the pitches in the order they were written
func (c Chord) Pitches() []uint8 {
	out := make([]uint8, c.n)
	copy(out, c.pitches[:c.n])
	return out
}

// Token is one unit of a sheet line. Notes carry a single pitch, chords up
// to MaxChordNotes, rests none.
type Token struct {
	Kind      Kind
	Directive Directive
	Notes     Chord
	Value     Value
}

// StripComment cuts everything from the first '#' or ';'
func StripComment(line string) string {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		return line[:i]
	}
	return line
}

// Scanner walks a single line and yields tokens one at a time, so a caller
// can apply each directive before the next token is read.
type Scanner struct {
	line string
	pos  int
	tok  Token
}

// NewScanner returns a scanner over line with its comment removed
func NewScanner(line string) *Scanner {
	return &Scanner{line: StripComment(line)}
}

// Token returns the token produced by the last call to Next
func (s *Scanner) Token() Token { return s.tok }

// Next advances to the next recognized token. Unknown units are skipped.
func (s *Scanner) Next() bool {
	for s.pos < len(s.line) {
		c := s.line[s.pos]
		if c == '|' || isSpace(c) {
			s.pos++
			continue
		}
		if d, matched, ok := s.directive(); matched {
			if ok {
				s.tok = Token{Kind: KindDirective, Directive: d}
				return true
			}
			continue
		}
		switch {
		case c == 'R' || c == 'r':
			s.pos++
			s.tok = Token{Kind: KindRest, Value: s.value()}
			return true
		case c == '[':
			if tok, ok := s.chord(); ok {
				s.tok = tok
				return true
			}
			continue
		}
		if tok, ok := s.note(); ok {
			s.tok = tok
			return true
		}
		s.skipUnit()
	}
	return false
}

// ParseLine returns every token of line
func ParseLine(line string) []Token {
	var toks []Token
	sc := NewScanner(line)
	for sc.Next() {
		toks = append(toks, sc.Token())
	}
	return toks
}

// directive reports whether a KEY= prefix was found and whether it yielded
// a directive. A value that does not parse yields nothing.
func (s *Scanner) directive() (d Directive, matched, ok bool) {
	rest := s.line[s.pos:]
	switch {
	case hasKey(rest, "T"):
		s.pos += 2
		v, ok := s.number()
		return Directive{Kind: DirTempo, Value: v}, true, ok
	case hasKey(rest, "B"):
		s.pos += 2
		b, ok := s.beat()
		return Directive{Kind: DirBeat, Value: int(b)}, true, ok
	case hasKey(rest, "I"):
		s.pos += 2
		v, ok := s.number()
		return Directive{Kind: DirInstrument, Value: v}, true, ok
	case hasKey(rest, "SUS"):
		s.pos += 4
		switch {
		case hasFold(s.line[s.pos:], "ON"):
			s.pos += 2
			return Directive{Kind: DirSustain, Value: 1}, true, true
		case hasFold(s.line[s.pos:], "OFF"):
			s.pos += 3
			return Directive{Kind: DirSustain, Value: 0}, true, true
		}
		return Directive{}, true, false
	case hasKey(rest, "OVL"):
		s.pos += 4
		v, ok := s.number()
		return Directive{Kind: DirOverlap, Value: v}, true, ok
	}
	return Directive{}, false, false
}

func (s *Scanner) beat() (Beat, bool) {
	if hasFold(s.line[s.pos:], "DQ") {
		s.pos += 2
		return BeatDottedQuarter, true
	}
	if s.pos >= len(s.line) {
		return 0, false
	}
	c := upper(s.line[s.pos])
	s.pos++
	switch c {
	case 'Q':
		return BeatQuarter, true
	case 'E':
		return BeatEighth, true
	case 'H':
		return BeatHalf, true
	case 'W':
		return BeatWhole, true
	case 'S':
		return BeatSixteenth, true
	}
	return 0, false
}

// number reads a run of digits. It reports false when there are none.
func (s *Scanner) number() (int, bool) {
	start := s.pos
	v := 0
	for s.pos < len(s.line) && isDigit(s.line[s.pos]) {
		if v < maxNumber {
			v = v*10 + int(s.line[s.pos]-'0')
		}
		s.pos++
	}
	return v, s.pos > start
}

// value reads an optional duration letter and an optional dot
func (s *Scanner) value() Value {
	v := Value{Length: Quarter}
	if s.pos < len(s.line) {
		if l, ok := ParseLength(s.line[s.pos]); ok {
			v.Length = l
			s.pos++
		}
	}
	if s.pos < len(s.line) && s.line[s.pos] == '.' {
		v.Dotted = true
		s.pos++
	}
	return v
}

func (s *Scanner) chord() (Token, bool) {
	tok := Token{Kind: KindChord}
	s.pos++
	for s.pos < len(s.line) && s.line[s.pos] != ']' {
		s.skipSpace()
		if s.pos >= len(s.line) || s.line[s.pos] == ']' {
			break
		}
		pitch, n, err := ParsePitch(s.line[s.pos:])
		if err != nil || pitch > maxPitch {
			for s.pos < len(s.line) && !isSpace(s.line[s.pos]) && s.line[s.pos] != ']' {
				s.pos++
			}
			continue
		}
		tok.Notes.Add(uint8(pitch)) //nolint:gosec // pitch <= maxPitch
		s.pos += n
	}
	if s.pos < len(s.line) && s.line[s.pos] == ']' {
		s.pos++
	}
	tok.Value = s.value()
	return tok, tok.Notes.Len() > 0
}

func (s *Scanner) note() (Token, bool) {
	pitch, n, err := ParsePitch(s.line[s.pos:])
	if err != nil || pitch > maxPitch {
		return Token{}, false
	}
	s.pos += n
	tok := Token{Kind: KindNote}
	tok.Notes.Add(uint8(pitch)) //nolint:gosec // pitch <= maxPitch
	tok.Value = s.value()
	return tok, true
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.line) && isSpace(s.line[s.pos]) {
		s.pos++
	}
}

func (s *Scanner) skipUnit() {
	for s.pos < len(s.line) && !isSpace(s.line[s.pos]) && s.line[s.pos] != '|' {
		s.pos++
	}
}

func hasKey(s, key string) bool {
	return len(s) > len(key) && s[len(key)] == '=' && strings.EqualFold(s[:len(key)], key)
}

func hasFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
